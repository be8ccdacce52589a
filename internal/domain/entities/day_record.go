package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	// MaxAudioSlots is the number of daily questions and therefore audio slots.
	MaxAudioSlots = 3
	// FinalSlotNumber is the slot whose submission completes the day's set.
	FinalSlotNumber = MaxAudioSlots
)

// SlotMap maps a question number (1..MaxAudioSlots) to the stored audio
// object reference. Persisted as a jsonb column.
type SlotMap map[int]string

// Value implements driver.Valuer
func (m SlotMap) Value() (driver.Value, error) {
	if m == nil {
		m = SlotMap{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (m *SlotMap) Scan(value interface{}) error {
	if value == nil {
		*m = SlotMap{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported slot map source type %T", value)
	}
	if len(b) == 0 {
		*m = SlotMap{}
		return nil
	}
	return json.Unmarshal(b, m)
}

// SlotRef is one populated audio slot, in question order.
type SlotRef struct {
	Number int
	URI    string
}

// DayRecord is the per-user, per-calendar-day aggregate of audio answers,
// the combined transcript, and the attached emotion report.
type DayRecord struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID     string    `json:"user_id" gorm:"type:varchar(64);uniqueIndex:idx_day_records_user_date;not null"`
	RecordDate string    `json:"record_date" gorm:"type:varchar(10);uniqueIndex:idx_day_records_user_date;not null"`

	AudioSlots SlotMap `json:"audio_slots" gorm:"type:jsonb;default:'{}'"`
	Transcript string  `json:"transcript" gorm:"type:text"`

	// IsProcessed is set after the transcript assembly and report attempt have
	// run, successful or not. It gates re-triggering on repeat submissions.
	IsProcessed bool `json:"is_processed" gorm:"default:false;not null"`

	Report            datatypes.JSON `json:"report,omitempty" gorm:"type:jsonb"`
	ReportError       string         `json:"report_error,omitempty" gorm:"type:text"`
	ReportGeneratedAt *time.Time     `json:"report_generated_at,omitempty" gorm:"type:timestamp"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName overrides the table name
func (DayRecord) TableName() string {
	return "day_records"
}

// NewDayRecord creates an empty record for the given user and date.
func NewDayRecord(userID, recordDate string) *DayRecord {
	now := time.Now()
	return &DayRecord{
		ID:         uuid.New(),
		UserID:     userID,
		RecordDate: recordDate,
		AudioSlots: SlotMap{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// SetSlot stores the audio reference for a question. Overwriting an already
// filled slot is allowed; slots are never removed.
func (d *DayRecord) SetSlot(number int, uri string) error {
	if number < 1 || number > MaxAudioSlots {
		return ErrInvalidSlotNumber
	}
	if d.AudioSlots == nil {
		d.AudioSlots = SlotMap{}
	}
	d.AudioSlots[number] = uri
	d.UpdatedAt = time.Now()
	return nil
}

// Slot returns the audio reference stored for a question, if any.
func (d *DayRecord) Slot(number int) (string, bool) {
	uri, ok := d.AudioSlots[number]
	return uri, ok && uri != ""
}

// FilledSlots returns populated slots in ascending question order,
// regardless of submission order.
func (d *DayRecord) FilledSlots() []SlotRef {
	refs := make([]SlotRef, 0, MaxAudioSlots)
	for n := 1; n <= MaxAudioSlots; n++ {
		if uri, ok := d.Slot(n); ok {
			refs = append(refs, SlotRef{Number: n, URI: uri})
		}
	}
	return refs
}

// AttachReport attaches a generated report. The transcript must exist first.
func (d *DayRecord) AttachReport(report *EmotionReport, generatedAt time.Time) error {
	if d.Transcript == "" {
		return ErrEmptyTranscript
	}
	b, err := json.Marshal(report)
	if err != nil {
		return err
	}
	d.Report = datatypes.JSON(b)
	d.ReportError = ""
	d.ReportGeneratedAt = &generatedAt
	d.UpdatedAt = time.Now()
	return nil
}

// AttachReportFailure records a failed generation attempt without a payload.
func (d *DayRecord) AttachReportFailure(message string, generatedAt time.Time) {
	d.Report = nil
	d.ReportError = message
	d.ReportGeneratedAt = &generatedAt
	d.UpdatedAt = time.Now()
}

// GetReport decodes the attached report, if present.
func (d *DayRecord) GetReport() (*EmotionReport, error) {
	if len(d.Report) == 0 {
		return nil, ErrNoReport
	}
	var report EmotionReport
	if err := json.Unmarshal(d.Report, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
