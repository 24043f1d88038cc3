package model

import (
	"gorm.io/gorm"

	"github.com/demotours/tours-backend/pkg/token"
)

// ItineraryDay is a single day within an itinerary, ordered by DayNumber.
type ItineraryDay struct {
	ID          string `gorm:"column:id;primaryKey"`
	DayNumber   int    `gorm:"column:day_number;not null"`
	Title       string `gorm:"column:title;not null"`
	Description string `gorm:"column:description;not null"`
	ItineraryID string `gorm:"column:itinerary_id;not null"`

	HotelDetail *HotelDetail `gorm:"foreignKey:DayID"`
}

func (ItineraryDay) TableName() string {
	return "itinerary_days"
}

func (d *ItineraryDay) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = token.Generate("ITIDY")
	}
	return nil
}
