package model

import (
	"gorm.io/gorm"

	"github.com/demotours/tours-backend/pkg/token"
)

// Image holds metadata for an asset hosted on the external media service.
// Ownership is expressed through ImageLink rows, never through a typed
// foreign key on the image itself.
type Image struct {
	ID       string `gorm:"column:id;primaryKey"`
	URL      string `gorm:"column:url;not null"`
	PublicID string `gorm:"column:public_id;not null"`
}

func (Image) TableName() string {
	return "images"
}

func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = token.Generate("IMG")
	}
	return nil
}
