package model

import (
	"gorm.io/gorm"

	"github.com/demotours/tours-backend/pkg/token"
)

// Tag is a free-text label attached to an itinerary.
type Tag struct {
	ID          string `gorm:"column:id;primaryKey"`
	Item        string `gorm:"column:item;not null"`
	ItineraryID string `gorm:"column:itinerary_id;not null"`
}

func (Tag) TableName() string {
	return "tags"
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = token.Generate("TAG")
	}
	return nil
}
