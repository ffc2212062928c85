package types

import (
	"time"

	"github.com/google/uuid"
)

// Question is shared across activity guides. IsReported flips to true exactly
// once, when an analysis referencing the question is persisted; the transition
// is enforced in QuestionRepo.MarkReported and is never reversed.
type Question struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Text       string    `gorm:"not null;column:text" json:"text"`
	IsReported bool      `gorm:"not null;default:false;column:is_reported" json:"is_reported"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (Question) TableName() string { return "question" }
