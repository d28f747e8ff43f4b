package models

import (
	"time"

	"github.com/google/uuid"
)

type ReportStatus string

const (
	StatusQueued     ReportStatus = "queued"
	StatusProcessing ReportStatus = "processing"
	StatusCompleted  ReportStatus = "completed"
	StatusFailed     ReportStatus = "failed"
)

// AnalysisReport is one analysis request and, once completed, its result.
// A completed row is replaced by a new row on re-analysis, never edited.
type AnalysisReport struct {
	ID             uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CVDocumentID   uuid.UUID    `gorm:"type:uuid;not null" json:"cv_document_id"`
	JobDescription string       `gorm:"type:text;not null" json:"job_description"`
	Status         ReportStatus `gorm:"not null;default:'queued'" json:"status"`
	ResultJSON     *string      `gorm:"type:text" json:"-"`
	ErrorKind      *string      `gorm:"type:text" json:"error_kind,omitempty"`
	ErrorMessage   *string      `gorm:"type:text" json:"error_message,omitempty"`
	ErrorHint      *string      `gorm:"type:text" json:"error_hint,omitempty"`
	CreatedAt      time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	CVDocument Document `gorm:"foreignKey:CVDocumentID" json:"-"`
}

func (AnalysisReport) TableName() string {
	return "analysis_reports"
}
