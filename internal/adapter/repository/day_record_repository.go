package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/moa-team/moa-backend/internal/domain/entities"
)

// DayRecordRepository implements the day record repository interface using GORM
type DayRecordRepository struct {
	db *gorm.DB
}

// NewDayRecordRepository creates a new day record repository
func NewDayRecordRepository(db *gorm.DB) *DayRecordRepository {
	return &DayRecordRepository{
		db: db,
	}
}

// Create creates a new day record
func (r *DayRecordRepository) Create(ctx context.Context, record *entities.DayRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create day record: %w", err)
	}
	return nil
}

// FindByUserAndDate finds the record for one user and calendar date
func (r *DayRecordRepository) FindByUserAndDate(ctx context.Context, userID, date string) (*entities.DayRecord, error) {
	var record entities.DayRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND record_date = ?", userID, date).
		First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, entities.ErrDayRecordNotFound
		}
		return nil, fmt.Errorf("failed to find day record: %w", err)
	}
	return &record, nil
}

// Update updates a day record
func (r *DayRecordRepository) Update(ctx context.Context, record *entities.DayRecord) error {
	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		return fmt.Errorf("failed to update day record: %w", err)
	}
	return nil
}

// ListByUserAndMonth lists records for a user within a "YYYY-MM" month
func (r *DayRecordRepository) ListByUserAndMonth(ctx context.Context, userID, month string) ([]*entities.DayRecord, error) {
	var records []*entities.DayRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND record_date LIKE ?", userID, month+"-%").
		Order("record_date ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list day records by month: %w", err)
	}
	return records, nil
}
