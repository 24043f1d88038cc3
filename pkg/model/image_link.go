package model

import (
	"gorm.io/gorm"

	"github.com/demotours/tours-backend/pkg/token"
)

// OwnerKind enumerates the entity types that can own images through the
// polymorphic link table.
type OwnerKind string

const (
	OwnerKindItinerary    OwnerKind = "itinerary"
	OwnerKindItineraryDay OwnerKind = "itinerary_day"
	OwnerKindHotelDetail  OwnerKind = "hotel_detail"
	OwnerKindMap          OwnerKind = "map"
)

// Valid reports whether k is one of the known owner kinds.
func (k OwnerKind) Valid() bool {
	switch k {
	case OwnerKindItinerary, OwnerKindItineraryDay, OwnerKindHotelDetail, OwnerKindMap:
		return true
	}
	return false
}

// ImageLink associates an Image with an arbitrary owning entity via an
// (owner_type, owner_id) pair. The owner reference is application-managed;
// there is no polymorphic foreign key at the SQL level, so deletion paths
// must purge links explicitly.
type ImageLink struct {
	ID        string    `gorm:"column:id;primaryKey"`
	ImageID   string    `gorm:"column:image_id;not null"`
	OwnerKind OwnerKind `gorm:"column:owner_type;not null"`
	OwnerID   string    `gorm:"column:owner_id;not null"`
}

func (ImageLink) TableName() string {
	return "image_links"
}

func (l *ImageLink) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = token.Generate("IMGLNK")
	}
	return nil
}
