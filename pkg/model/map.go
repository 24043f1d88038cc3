package model

import (
	"gorm.io/gorm"

	"github.com/demotours/tours-backend/pkg/token"
)

// Map is the route map of an itinerary. Its images are attached through the
// generic link table like every other owner kind.
type Map struct {
	ID          string `gorm:"column:id;primaryKey"`
	ItineraryID string `gorm:"column:itinerary_id;not null"`
}

func (Map) TableName() string {
	return "maps"
}

func (m *Map) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = token.Generate("MAP")
	}
	return nil
}
