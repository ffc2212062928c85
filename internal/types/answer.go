package types

import (
	"time"

	"github.com/google/uuid"
)

type Answer struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ElderID      uuid.UUID `gorm:"type:uuid;not null;index:idx_answer_elder_question;column:elder_id" json:"elder_id"`
	Elder        *Elder    `gorm:"constraint:OnDelete:CASCADE;foreignKey:ElderID;references:ID" json:"elder,omitempty"`
	QuestionID   uuid.UUID `gorm:"type:uuid;not null;index:idx_answer_elder_question;column:question_id" json:"question_id"`
	Question     *Question `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionID;references:ID" json:"question,omitempty"`
	Response     string    `gorm:"not null;column:response" json:"response"`
	ResponseDate time.Time `gorm:"not null;index;column:response_date" json:"response_date"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (Answer) TableName() string { return "answer" }
