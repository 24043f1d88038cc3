package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/demotours/tours-backend/pkg/model"
	"github.com/demotours/tours-backend/pkg/server/store"
)

// Ensure ItinerariesStore implements store.ItinerariesStore
var _ store.ItinerariesStore = (*ItinerariesStore)(nil)

// ItinerariesStore implements store.ItinerariesStore using GORM
type ItinerariesStore struct {
	db *gorm.DB
}

// NewItinerariesStore creates a new ItinerariesStore
func NewItinerariesStore(db *gorm.DB) *ItinerariesStore {
	return &ItinerariesStore{db: db}
}

// eagerQuery preloads every descendant level of the graph except images,
// which go through the polymorphic link table and are batch-loaded after.
func (s *ItinerariesStore) eagerQuery() *gorm.DB {
	return s.db.
		Preload("Days", func(db *gorm.DB) *gorm.DB {
			return db.Order("itinerary_days.day_number ASC")
		}).
		Preload("Days.HotelDetail").
		Preload("Map").
		Preload("Tags")
}

// ListItineraries returns every itinerary with all descendants loaded.
func (s *ItinerariesStore) ListItineraries() ([]store.Itinerary, error) {
	var rows []model.Itinerary
	if err := s.eagerQuery().Order("itineraries.created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	graphs := make([]store.Itinerary, len(rows))
	ptrs := make([]*store.Itinerary, len(rows))
	for i := range rows {
		graphs[i] = toGraph(&rows[i])
		ptrs[i] = &graphs[i]
	}

	if err := s.loadImages(ptrs); err != nil {
		return nil, err
	}
	return graphs, nil
}

// FetchItinerary returns the full graph for a slug.
func (s *ItinerariesStore) FetchItinerary(slug string) (*store.Itinerary, error) {
	var row model.Itinerary
	err := s.eagerQuery().Where("slug = ?", slug).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrItineraryNotFound
		}
		return nil, err
	}

	graph := toGraph(&row)
	if err := s.loadImages([]*store.Itinerary{&graph}); err != nil {
		return nil, err
	}
	return &graph, nil
}

// CreateItinerary persists the whole nested payload in one transaction,
// creating each level and linking its images in payload order. Any failure
// rolls the entire graph back.
func (s *ItinerariesStore) CreateItinerary(payload *store.NewItinerary) (string, error) {
	var rootID string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		itinerary := &model.Itinerary{
			Title:         payload.Title,
			Overview:      payload.Overview,
			Duration:      payload.Duration,
			ArrivalCity:   payload.ArrivalCity,
			DepartureCity: payload.DepartureCity,
			Accommodation: payload.Accommodation,
			Location:      payload.Location,
			Discount:      payload.Discount,
			Price:         payload.Price,
			CostInclusive: model.CostItems(payload.CostInclusive),
			CostExclusive: model.CostItems(payload.CostExclusive),
		}
		if err := tx.Create(itinerary).Error; err != nil {
			return err
		}

		if err := attachImages(tx, payload.Images, model.OwnerKindItinerary, itinerary.ID); err != nil {
			return err
		}

		for _, d := range payload.Days {
			day := &model.ItineraryDay{
				DayNumber:   d.DayNumber,
				Title:       d.Title,
				Description: d.Description,
				ItineraryID: itinerary.ID,
			}
			if err := tx.Create(day).Error; err != nil {
				return err
			}
			if err := attachImages(tx, d.Images, model.OwnerKindItineraryDay, day.ID); err != nil {
				return err
			}

			if d.HotelDetail != nil {
				hotel := &model.HotelDetail{
					Name:  d.HotelDetail.Name,
					URL:   d.HotelDetail.URL,
					DayID: day.ID,
				}
				if err := tx.Create(hotel).Error; err != nil {
					return err
				}
				if err := attachImages(tx, d.HotelDetail.Images, model.OwnerKindHotelDetail, hotel.ID); err != nil {
					return err
				}
			}
		}

		if payload.Map != nil && payload.Map.Image != nil {
			routeMap := &model.Map{ItineraryID: itinerary.ID}
			if err := tx.Create(routeMap).Error; err != nil {
				return err
			}
			if err := attachImages(tx, []store.NewImage{*payload.Map.Image}, model.OwnerKindMap, routeMap.ID); err != nil {
				return err
			}
		}

		for _, t := range payload.Tags {
			if err := tx.Create(&model.Tag{Item: t.Item, ItineraryID: itinerary.ID}).Error; err != nil {
				return err
			}
		}

		rootID = itinerary.ID
		return nil
	})

	return rootID, err
}

// DeleteItineraryGraph removes the graph in one transaction: image links for
// every owner are purged explicitly (no polymorphic foreign key exists to do
// it), image rows left without any link are dropped, then the root delete
// cascades to days, hotel details, map and tags at the schema level.
func (s *ItinerariesStore) DeleteItineraryGraph(itinerary *store.Itinerary) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		owners := map[model.OwnerKind][]string{
			model.OwnerKindItinerary: {itinerary.ID},
		}
		for _, day := range itinerary.Days {
			owners[model.OwnerKindItineraryDay] = append(owners[model.OwnerKindItineraryDay], day.ID)
			if day.HotelDetail != nil {
				owners[model.OwnerKindHotelDetail] = append(owners[model.OwnerKindHotelDetail], day.HotelDetail.ID)
			}
		}
		if itinerary.Map != nil {
			owners[model.OwnerKindMap] = append(owners[model.OwnerKindMap], itinerary.Map.ID)
		}

		kinds := []model.OwnerKind{
			model.OwnerKindItinerary,
			model.OwnerKindItineraryDay,
			model.OwnerKindHotelDetail,
			model.OwnerKindMap,
		}
		for _, kind := range kinds {
			ids := owners[kind]
			if len(ids) == 0 {
				continue
			}
			err := tx.Where("owner_type = ? AND owner_id IN ?", kind, ids).
				Delete(&model.ImageLink{}).Error
			if err != nil {
				return err
			}
		}

		var imageIDs []string
		for _, img := range itinerary.AllImages() {
			imageIDs = append(imageIDs, img.ID)
		}
		if len(imageIDs) > 0 {
			err := tx.Where(
				"id IN ? AND NOT EXISTS (SELECT 1 FROM image_links WHERE image_links.image_id = images.id)",
				imageIDs,
			).Delete(&model.Image{}).Error
			if err != nil {
				return err
			}
		}

		res := tx.Where("id = ?", itinerary.ID).Delete(&model.Itinerary{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return store.ErrItineraryNotFound
		}
		return nil
	})
}

// toGraph maps a preloaded model row onto the response graph. Collections
// are materialized as empty slices so clients always see sequences.
func toGraph(row *model.Itinerary) store.Itinerary {
	graph := store.Itinerary{
		ID:            row.ID,
		Title:         row.Title,
		Overview:      row.Overview,
		Slug:          row.Slug,
		Duration:      row.Duration,
		ArrivalCity:   row.ArrivalCity,
		DepartureCity: row.DepartureCity,
		Accommodation: row.Accommodation,
		Location:      row.Location,
		Discount:      row.Discount,
		Price:         row.Price,
		CostInclusive: normalizeCosts(row.CostInclusive),
		CostExclusive: normalizeCosts(row.CostExclusive),
		Images:        []store.Image{},
		Days:          make([]store.Day, 0, len(row.Days)),
		Tags:          make([]store.Tag, 0, len(row.Tags)),
		CreatedAt:     row.CreatedAt,
	}

	for _, d := range row.Days {
		day := store.Day{
			ID:          d.ID,
			DayNumber:   d.DayNumber,
			Title:       d.Title,
			Description: d.Description,
			Images:      []store.Image{},
		}
		if d.HotelDetail != nil {
			day.HotelDetail = &store.HotelDetail{
				ID:     d.HotelDetail.ID,
				Name:   d.HotelDetail.Name,
				URL:    d.HotelDetail.URL,
				Images: []store.Image{},
			}
		}
		graph.Days = append(graph.Days, day)
	}

	if row.Map != nil {
		graph.Map = &store.Map{ID: row.Map.ID, Images: []store.Image{}}
	}

	for _, t := range row.Tags {
		graph.Tags = append(graph.Tags, store.Tag{ID: t.ID, Item: t.Item})
	}

	return graph
}

func normalizeCosts(items model.CostItems) []map[string]interface{} {
	if items == nil {
		return []map[string]interface{}{}
	}
	return items
}

// loadImages runs the batched link-table projection per owner kind and
// distributes the results onto the graphs, mirroring the eager read shape of
// the fetch contract.
func (s *ItinerariesStore) loadImages(graphs []*store.Itinerary) error {
	itineraryIDs := make([]string, 0, len(graphs))
	days := make(map[string]*store.Day)
	hotels := make(map[string]*store.HotelDetail)
	routeMaps := make(map[string]*store.Map)

	for _, g := range graphs {
		itineraryIDs = append(itineraryIDs, g.ID)
		for i := range g.Days {
			day := &g.Days[i]
			days[day.ID] = day
			if day.HotelDetail != nil {
				hotels[day.HotelDetail.ID] = day.HotelDetail
			}
		}
		if g.Map != nil {
			routeMaps[g.Map.ID] = g.Map
		}
	}

	rootImages, err := imagesByOwner(s.db, model.OwnerKindItinerary, itineraryIDs)
	if err != nil {
		return err
	}
	for _, g := range graphs {
		if imgs, ok := rootImages[g.ID]; ok {
			g.Images = imgs
		}
	}

	dayImages, err := imagesByOwner(s.db, model.OwnerKindItineraryDay, mapKeys(days))
	if err != nil {
		return err
	}
	for id, imgs := range dayImages {
		days[id].Images = imgs
	}

	hotelImages, err := imagesByOwner(s.db, model.OwnerKindHotelDetail, mapKeys(hotels))
	if err != nil {
		return err
	}
	for id, imgs := range hotelImages {
		hotels[id].Images = imgs
	}

	mapImages, err := imagesByOwner(s.db, model.OwnerKindMap, mapKeys(routeMaps))
	if err != nil {
		return err
	}
	for id, imgs := range mapImages {
		routeMaps[id].Images = imgs
	}

	return nil
}

func mapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
