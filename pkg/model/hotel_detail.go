package model

import (
	"gorm.io/gorm"

	"github.com/demotours/tours-backend/pkg/token"
)

// HotelDetail describes the hotel for a single itinerary day.
type HotelDetail struct {
	ID    string  `gorm:"column:id;primaryKey"`
	Name  string  `gorm:"column:name;not null"`
	URL   *string `gorm:"column:url"`
	DayID string  `gorm:"column:day_id"`
}

func (HotelDetail) TableName() string {
	return "hotel_details"
}

func (h *HotelDetail) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = token.Generate("HOTEL")
	}
	return nil
}
