package repositories

import (
	"context"

	"github.com/moa-team/moa-backend/internal/domain/entities"
)

// DayRecordRepository defines the interface for day record data access
type DayRecordRepository interface {
	// Create creates a new day record
	Create(ctx context.Context, record *entities.DayRecord) error

	// FindByUserAndDate retrieves the record for one user and calendar date
	FindByUserAndDate(ctx context.Context, userID, date string) (*entities.DayRecord, error)

	// Update persists the full record state
	Update(ctx context.Context, record *entities.DayRecord) error

	// ListByUserAndMonth retrieves all records for a user whose date falls in
	// the given "YYYY-MM" month, ordered by date ascending
	ListByUserAndMonth(ctx context.Context, userID, month string) ([]*entities.DayRecord, error)
}
