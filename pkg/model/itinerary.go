package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/demotours/tours-backend/pkg/token"
)

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapse = regexp.MustCompile(`[-\s]+`)
)

// Slugify converts a title into a URL-safe slug: non word characters are
// stripped, the result is lowercased and runs of whitespace/hyphens collapse
// into single hyphens.
func Slugify(value string) string {
	value = slugStrip.ReplaceAllString(value, "")
	value = strings.ToLower(strings.TrimSpace(value))
	return slugCollapse.ReplaceAllString(value, "-")
}

// CostItems is a schemaless list of cost line items stored as a JSON column.
// No shape is enforced beyond "list of objects".
type CostItems []map[string]interface{}

func (c CostItems) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	return json.Marshal(c)
}

func (c *CostItems) Scan(src interface{}) error {
	if src == nil {
		*c = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	}
	return fmt.Errorf("cost items: cannot scan from %T", src)
}

// Itinerary is the root aggregate of the object graph.
type Itinerary struct {
	ID            string    `gorm:"column:id;primaryKey"`
	Title         string    `gorm:"column:title;not null"`
	Overview      string    `gorm:"column:overview;not null"`
	Slug          string    `gorm:"column:slug;not null"`
	Duration      int       `gorm:"column:duration;not null"`
	ArrivalCity   string    `gorm:"column:arrival_city;not null"`
	DepartureCity string    `gorm:"column:departure_city;not null"`
	Accommodation string    `gorm:"column:accommodation;not null"`
	Location      string    `gorm:"column:location;not null"`
	Discount      int       `gorm:"column:discount"`
	Price         int       `gorm:"column:price"`
	CostInclusive CostItems `gorm:"column:cost_inclusive;type:jsonb"`
	CostExclusive CostItems `gorm:"column:cost_exclusive;type:jsonb"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`

	Days []ItineraryDay `gorm:"foreignKey:ItineraryID"`
	Map  *Map           `gorm:"foreignKey:ItineraryID"`
	Tags []Tag          `gorm:"foreignKey:ItineraryID"`
}

func (Itinerary) TableName() string {
	return "itineraries"
}

func (i *Itinerary) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = token.Generate("ITI")
	}
	return nil
}

// BeforeSave recomputes the slug from the title on every insert or update,
// mirroring the behavior of a derived column.
func (i *Itinerary) BeforeSave(tx *gorm.DB) error {
	if i.Title != "" {
		i.Slug = Slugify(i.Title)
	}
	return nil
}
