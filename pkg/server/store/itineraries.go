package store

import (
	"errors"
	"time"
)

// ErrItineraryNotFound is returned when no itinerary matches the given slug.
var ErrItineraryNotFound = errors.New("itinerary not found")

// Image is an attached media asset as returned to clients.
type Image struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// HotelDetail is the hotel of a single day, with its attached images.
type HotelDetail struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	URL    *string `json:"url"`
	Images []Image `json:"images"`
}

// Day is one itinerary day with its images and optional hotel detail.
type Day struct {
	ID          string       `json:"id"`
	DayNumber   int          `json:"day_number"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Images      []Image      `json:"images"`
	HotelDetail *HotelDetail `json:"hotel_detail"`
}

// Map is the itinerary route map with its attached images.
type Map struct {
	ID     string  `json:"id"`
	Images []Image `json:"images"`
}

// Tag is a free-text label on an itinerary.
type Tag struct {
	ID   string `json:"id"`
	Item string `json:"item"`
}

// Itinerary is the fully hydrated object graph returned by fetch operations.
type Itinerary struct {
	ID            string                   `json:"id"`
	Title         string                   `json:"title"`
	Overview      string                   `json:"overview"`
	Slug          string                   `json:"slug"`
	Duration      int                      `json:"duration"`
	ArrivalCity   string                   `json:"arrival_city"`
	DepartureCity string                   `json:"departure_city"`
	Accommodation string                   `json:"accommodation"`
	Location      string                   `json:"location"`
	Discount      int                      `json:"discount"`
	Price         int                      `json:"price"`
	CostInclusive []map[string]interface{} `json:"cost_inclusive"`
	CostExclusive []map[string]interface{} `json:"cost_exclusive"`
	Images        []Image                  `json:"images"`
	Days          []Day                    `json:"days"`
	Map           *Map                     `json:"map"`
	Tags          []Tag                    `json:"tags"`
	CreatedAt     time.Time                `json:"created_at"`
}

// AllImages collects every image attached anywhere in the graph: the root,
// each day, each day's hotel detail and the map.
func (i *Itinerary) AllImages() []Image {
	var images []Image
	images = append(images, i.Images...)
	for _, day := range i.Days {
		images = append(images, day.Images...)
		if day.HotelDetail != nil {
			images = append(images, day.HotelDetail.Images...)
		}
	}
	if i.Map != nil {
		images = append(images, i.Map.Images...)
	}
	return images
}

// NewImage is an image reference in a creation payload. The asset itself was
// already uploaded to the media host by the client.
type NewImage struct {
	URL      string `json:"url" validate:"required,url"`
	PublicID string `json:"public_id" validate:"required"`
}

// NewHotelDetail is the hotel of a day in a creation payload.
type NewHotelDetail struct {
	Name   string     `json:"name" validate:"required"`
	URL    *string    `json:"url" validate:"omitempty,url"`
	Images []NewImage `json:"images" validate:"dive"`
}

// NewDay is one day in a creation payload.
type NewDay struct {
	DayNumber   int             `json:"day_number" validate:"required,min=1"`
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description" validate:"required"`
	HotelDetail *NewHotelDetail `json:"hotel_detail"`
	Images      []NewImage      `json:"images" validate:"dive"`
}

// NewMap carries the single map image of a creation payload.
type NewMap struct {
	Image *NewImage `json:"image"`
}

// NewTag is a tag in a creation payload.
type NewTag struct {
	Item string `json:"item" validate:"required"`
}

// NewItinerary is the full nested creation payload.
type NewItinerary struct {
	Title         string                   `json:"title" validate:"required"`
	Overview      string                   `json:"overview" validate:"required"`
	Duration      int                      `json:"duration" validate:"required,min=1"`
	ArrivalCity   string                   `json:"arrival_city" validate:"required"`
	DepartureCity string                   `json:"departure_city" validate:"required"`
	Accommodation string                   `json:"accommodation" validate:"required"`
	Location      string                   `json:"location" validate:"required"`
	Discount      int                      `json:"discount" validate:"min=0"`
	Price         int                      `json:"price" validate:"min=0"`
	CostInclusive []map[string]interface{} `json:"cost_inclusive"`
	CostExclusive []map[string]interface{} `json:"cost_exclusive"`
	Days          []NewDay                 `json:"days" validate:"dive"`
	Map           *NewMap                  `json:"map"`
	Tags          []NewTag                 `json:"tags" validate:"dive"`
	Images        []NewImage               `json:"images" validate:"dive"`
}

// ItinerariesStore abstracts itinerary graph persistence.
type ItinerariesStore interface {
	// ListItineraries returns every itinerary with all descendants loaded.
	ListItineraries() ([]Itinerary, error)

	// FetchItinerary returns the full graph for a slug.
	// Returns ErrItineraryNotFound if no itinerary matches.
	FetchItinerary(slug string) (*Itinerary, error)

	// CreateItinerary persists the whole nested payload atomically and
	// returns the generated root identifier.
	CreateItinerary(payload *NewItinerary) (string, error)

	// DeleteItineraryGraph removes the itinerary, its descendants and their
	// image links in one transaction. The remote assets must already have
	// been dealt with by the caller.
	DeleteItineraryGraph(itinerary *Itinerary) error
}
