package types

import (
	"time"

	"github.com/google/uuid"
)

// Analysis is one scored first-versus-last answer comparison. It lives and
// dies with its report; the question reference is lookup-only, so deleting a
// report never touches the question row.
type Analysis struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ElderID       uuid.UUID `gorm:"type:uuid;not null;index;column:elder_id" json:"elder_id"`
	QuestionID    uuid.UUID `gorm:"type:uuid;not null;index:idx_analysis_report_question,unique;column:question_id" json:"question_id"`
	Question      *Question `gorm:"foreignKey:QuestionID;references:ID" json:"question,omitempty"`
	FirstAnswerID uuid.UUID `gorm:"type:uuid;not null;column:first_answer_id" json:"first_answer_id"`
	LastAnswerID  uuid.UUID `gorm:"type:uuid;not null;column:last_answer_id" json:"last_answer_id"`
	Similarity    float64   `gorm:"not null;column:similarity" json:"similarity"`
	ReportID      uuid.UUID `gorm:"type:uuid;not null;index:idx_analysis_report_question,unique;column:report_id" json:"report_id"`
	Report        *Report   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ReportID;references:ID" json:"report,omitempty"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

func (Analysis) TableName() string { return "analysis" }

// AnalysisDetail is the denormalized row returned inside report payloads:
// the analysis joined to its question text and both answer texts.
type AnalysisDetail struct {
	ID            uuid.UUID `json:"id"`
	QuestionID    uuid.UUID `json:"question_id"`
	Question      string    `json:"question"`
	FirstAnswerID uuid.UUID `json:"first_answer_id"`
	FirstAnswer   string    `json:"first_answer"`
	LastAnswerID  uuid.UUID `json:"last_answer_id"`
	LastAnswer    string    `json:"last_answer"`
	Similarity    float64   `json:"similarity"`
	ReportID      uuid.UUID `json:"report_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// ReportWithAnalyses is the fully hydrated report view.
type ReportWithAnalyses struct {
	ID         uuid.UUID        `json:"id"`
	ElderID    uuid.UUID        `json:"elder_id"`
	Year       int              `json:"year"`
	WeekNumber int              `json:"week_number"`
	CreatedAt  time.Time        `json:"created_at"`
	Analyses   []AnalysisDetail `json:"analyses"`
}
