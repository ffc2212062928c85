package types

import (
	"time"

	"github.com/google/uuid"
)

type ActivityGuide struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	ElderID     uuid.UUID   `gorm:"type:uuid;not null;index;column:elder_id" json:"elder_id"`
	Elder       *Elder      `gorm:"constraint:OnDelete:CASCADE;foreignKey:ElderID;references:ID" json:"elder,omitempty"`
	Title       string      `gorm:"not null;column:title" json:"title"`
	Content     string      `gorm:"column:content" json:"content"`
	HaveStudied bool        `gorm:"not null;default:false;column:have_studied" json:"have_studied"`
	Questions   []*Question `gorm:"many2many:guide_question" json:"questions,omitempty"`
	CreatedAt   time.Time   `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`
}

func (ActivityGuide) TableName() string { return "activity_guide" }
