package types

import (
	"time"

	"github.com/google/uuid"
)

type Elder struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null;column:name" json:"name"`
	BirthDate *time.Time `gorm:"column:birth_date" json:"birth_date,omitempty"`
	Contact   string    `gorm:"column:contact" json:"contact"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Elder) TableName() string { return "elder" }
