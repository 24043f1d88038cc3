package gorm

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/demotours/tours-backend/pkg/model"
	"github.com/demotours/tours-backend/pkg/server/store"
)

// createImage inserts image metadata inside the caller's transaction. The
// caller controls the transaction boundary; nothing is committed here.
func createImage(tx *gorm.DB, url, publicID string) (*model.Image, error) {
	img := &model.Image{URL: url, PublicID: publicID}
	if err := tx.Create(img).Error; err != nil {
		return nil, err
	}
	return img, nil
}

// attach links an image to its owner. Pure insert; the caller guarantees the
// owner row was just created and has an identifier.
func attach(tx *gorm.DB, imageID string, kind model.OwnerKind, ownerID string) error {
	if !kind.Valid() {
		return fmt.Errorf("invalid owner kind %q", kind)
	}
	return tx.Create(&model.ImageLink{ImageID: imageID, OwnerKind: kind, OwnerID: ownerID}).Error
}

// attachImages creates and links every image of a payload collection, in
// payload order.
func attachImages(tx *gorm.DB, images []store.NewImage, kind model.OwnerKind, ownerID string) error {
	for _, in := range images {
		img, err := createImage(tx, in.URL, in.PublicID)
		if err != nil {
			return err
		}
		if err := attach(tx, img.ID, kind, ownerID); err != nil {
			return err
		}
	}
	return nil
}

type linkedImage struct {
	ID       string `gorm:"column:id"`
	URL      string `gorm:"column:url"`
	PublicID string `gorm:"column:public_id"`
	OwnerID  string `gorm:"column:owner_id"`
}

// imagesByOwner is the read projection through the link table: the attached
// images for a batch of owners of one kind, keyed by owner id.
func imagesByOwner(db *gorm.DB, kind model.OwnerKind, ownerIDs []string) (map[string][]store.Image, error) {
	result := make(map[string][]store.Image)
	if len(ownerIDs) == 0 {
		return result, nil
	}

	var rows []linkedImage
	err := db.Table("images").
		Select("images.id, images.url, images.public_id, image_links.owner_id").
		Joins("JOIN image_links ON image_links.image_id = images.id").
		Where("image_links.owner_type = ? AND image_links.owner_id IN ?", kind, ownerIDs).
		Order("image_links.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.OwnerID] = append(result[row.OwnerID], store.Image{
			ID:       row.ID,
			URL:      row.URL,
			PublicID: row.PublicID,
		})
	}
	return result, nil
}
