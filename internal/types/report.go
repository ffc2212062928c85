package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Report groups one week's analyses for one elder. The header is immutable
// after creation and (elder_id, year, week_number) is unique, so a second
// create for the same week fails at the store instead of duplicating.
type Report struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ElderID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_report_elder_week,unique;column:elder_id" json:"elder_id"`
	Elder      *Elder         `gorm:"constraint:OnDelete:CASCADE;foreignKey:ElderID;references:ID" json:"elder,omitempty"`
	Year       int            `gorm:"not null;index:idx_report_elder_week,unique;column:year" json:"year"`
	WeekNumber int            `gorm:"not null;index:idx_report_elder_week,unique;column:week_number" json:"week_number"`
	Metadata   datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
}

func (Report) TableName() string { return "report" }

// ReportMetadata is marshaled into Report.Metadata at creation time as an
// audit trail of how many eligible questions were scored versus skipped.
type ReportMetadata struct {
	EligibleQuestions int `json:"eligible_questions"`
	ScoredQuestions   int `json:"scored_questions"`
	SkippedNoPair     int `json:"skipped_no_pair"`
	SkippedEmbedding  int `json:"skipped_embedding"`
}
