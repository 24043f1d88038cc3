package endpoints

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/mock"

	"github.com/demotours/tours-backend/pkg/server/store"
)

func sampleItinerary() *store.Itinerary {
	hotelURL := "https://example.com/hotel"
	return &store.Itinerary{
		ID:            "ITI-1A2B3C4D",
		Title:         "Golden Triangle Tour",
		Overview:      "Delhi, Agra and Jaipur in six days.",
		Slug:          "golden-triangle-tour",
		Duration:      6,
		ArrivalCity:   "Delhi",
		DepartureCity: "Jaipur",
		Accommodation: "4-star hotels",
		Location:      "India",
		Discount:      10,
		Price:         1200,
		CostInclusive: []map[string]interface{}{{"item": "Breakfast"}},
		CostExclusive: []map[string]interface{}{},
		Images: []store.Image{
			{ID: "IMG-AAAA1111", URL: "https://cdn.example.com/root.jpg", PublicID: "itineraries/root"},
		},
		Days: []store.Day{
			{
				ID:          "ITIDY-BBBB2222",
				DayNumber:   1,
				Title:       "Arrival in Delhi",
				Description: "Airport pickup and city walk.",
				Images: []store.Image{
					{ID: "IMG-CCCC3333", URL: "https://cdn.example.com/day1.jpg", PublicID: "itineraries/day1"},
				},
				HotelDetail: &store.HotelDetail{
					ID:   "HOTEL-DDDD4444",
					Name: "The Imperial",
					URL:  &hotelURL,
					Images: []store.Image{
						{ID: "IMG-EEEE5555", URL: "https://cdn.example.com/hotel.jpg", PublicID: "itineraries/hotel"},
					},
				},
			},
		},
		Map: &store.Map{
			ID: "MAP-FFFF6666",
			Images: []store.Image{
				{ID: "IMG-GGGG7777", URL: "https://cdn.example.com/map.jpg", PublicID: "itineraries/map"},
			},
		},
		Tags: []store.Tag{{ID: "TAG-HHHH8888", Item: "culture"}},
	}
}

func decodeDetail(t *testing.T, body io.Reader) string {
	t.Helper()
	var payload map[string]string
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	detail, ok := payload["detail"]
	if !ok {
		t.Fatalf("expected 'detail' field in error body, got %v", payload)
	}
	return detail
}

func TestListItinerariesEndpoint(t *testing.T) {
	t.Run("returns all itineraries with total", func(t *testing.T) {
		itineraries := NewMockItinerariesStore()
		itineraries.On("ListItineraries").Return([]store.Itinerary{*sampleItinerary()}, nil)

		req := httptest.NewRequest("GET", "/itineraries/", nil)
		w := httptest.NewRecorder()
		handleListItineraries(itineraries)(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp ItinerariesResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Total != 1 {
			t.Errorf("expected total 1, got %d", resp.Total)
		}
		if len(resp.Itineraries) != 1 || resp.Itineraries[0].Slug != "golden-triangle-tour" {
			t.Errorf("unexpected itineraries payload: %+v", resp.Itineraries)
		}
		itineraries.AssertExpectations(t)
	})

	t.Run("returns empty list when store has no rows", func(t *testing.T) {
		itineraries := NewMockItinerariesStore()
		itineraries.On("ListItineraries").Return([]store.Itinerary{}, nil)

		req := httptest.NewRequest("GET", "/itineraries/", nil)
		w := httptest.NewRecorder()
		handleListItineraries(itineraries)(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}

		var resp ItinerariesResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Total != 0 {
			t.Errorf("expected total 0, got %d", resp.Total)
		}
	})

	t.Run("maps store failure to 500", func(t *testing.T) {
		itineraries := NewMockItinerariesStore()
		itineraries.On("ListItineraries").Return(nil, errors.New("connection refused"))

		req := httptest.NewRequest("GET", "/itineraries/", nil)
		w := httptest.NewRecorder()
		handleListItineraries(itineraries)(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status 500, got %d", w.Code)
		}
		if detail := decodeDetail(t, w.Body); detail != "Database error occurred" {
			t.Errorf("unexpected detail: %q", detail)
		}
	})
}

func TestGetItineraryEndpoint(t *testing.T) {
	t.Run("returns the full graph", func(t *testing.T) {
		itineraries := NewMockItinerariesStore()
		itineraries.On("FetchItinerary", "golden-triangle-tour").Return(sampleItinerary(), nil)

		req := httptest.NewRequest("GET", "/itineraries/golden-triangle-tour", nil)
		req = mux.SetURLVars(req, map[string]string{"slug": "golden-triangle-tour"})
		w := httptest.NewRecorder()
		handleGetItinerary(itineraries)(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var graph store.Itinerary
		if err := json.NewDecoder(w.Body).Decode(&graph); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if graph.ID != "ITI-1A2B3C4D" {
			t.Errorf("expected id ITI-1A2B3C4D, got %q", graph.ID)
		}
		if len(graph.Days) != 1 || graph.Days[0].HotelDetail == nil {
			t.Errorf("expected nested day with hotel detail, got %+v", graph.Days)
		}
		itineraries.AssertExpectations(t)
	})

	t.Run("returns 404 for unknown slug", func(t *testing.T) {
		itineraries := NewMockItinerariesStore()
		itineraries.On("FetchItinerary", "nope").Return(nil, store.ErrItineraryNotFound)

		req := httptest.NewRequest("GET", "/itineraries/nope", nil)
		req = mux.SetURLVars(req, map[string]string{"slug": "nope"})
		w := httptest.NewRecorder()
		handleGetItinerary(itineraries)(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", w.Code)
		}
		if detail := decodeDetail(t, w.Body); detail != "Itinerary not found" {
			t.Errorf("unexpected detail: %q", detail)
		}
	})

	t.Run("maps store failure to 500", func(t *testing.T) {
		itineraries := NewMockItinerariesStore()
		itineraries.On("FetchItinerary", "broken").Return(nil, errors.New("connection refused"))

		req := httptest.NewRequest("GET", "/itineraries/broken", nil)
		req = mux.SetURLVars(req, map[string]string{"slug": "broken"})
		w := httptest.NewRecorder()
		handleGetItinerary(itineraries)(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status 500, got %d", w.Code)
		}
		if detail := decodeDetail(t, w.Body); detail != "Database error occurred" {
			t.Errorf("unexpected detail: %q", detail)
		}
	})
}

func validCreatePayload() string {
	return `{
		"title": "Golden Triangle Tour",
		"overview": "Delhi, Agra and Jaipur in six days.",
		"duration": 6,
		"arrival_city": "Delhi",
		"departure_city": "Jaipur",
		"accommodation": "4-star hotels",
		"location": "India",
		"discount": 10,
		"price": 1200,
		"days": [
			{
				"day_number": 1,
				"title": "Arrival in Delhi",
				"description": "Airport pickup and city walk.",
				"images": [{"url": "https://cdn.example.com/day1.jpg", "public_id": "itineraries/day1"}]
			}
		],
		"tags": [{"item": "culture"}],
		"images": [{"url": "https://cdn.example.com/root.jpg", "public_id": "itineraries/root"}]
	}`
}

func TestCreateItineraryEndpoint(t *testing.T) {
	t.Run("creates the graph and returns the new id", func(t *testing.T) {
		itineraries := NewMockItinerariesStore()
		itineraries.On("CreateItinerary", mock.AnythingOfType("*store.NewItinerary")).
			Return("ITI-1A2B3C4D", nil)

		req := httptest.NewRequest("POST", "/itineraries/create", strings.NewReader(validCreatePayload()))
		w := httptest.NewRecorder()
		handleCreateItinerary(itineraries)(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var resp CreatedResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.ItineraryID != "ITI-1A2B3C4D" {
			t.Errorf("expected itinerary_id ITI-1A2B3C4D, got %q", resp.ItineraryID)
		}
		if resp.Message != "Itinerary created successfully" {
			t.Errorf("unexpected message: %q", resp.Message)
		}

		payload := itineraries.Calls[0].Arguments.Get(0).(*store.NewItinerary)
		if payload.Title != "Golden Triangle Tour" {
			t.Errorf("expected decoded title, got %q", payload.Title)
		}
		if len(payload.Days) != 1 || payload.Days[0].DayNumber != 1 {
			t.Errorf("expected one decoded day, got %+v", payload.Days)
		}
		itineraries.AssertExpectations(t)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		itineraries := NewMockItinerariesStore()

		req := httptest.NewRequest("POST", "/itineraries/create", strings.NewReader("{not json"))
		w := httptest.NewRecorder()
		handleCreateItinerary(itineraries)(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", w.Code)
		}
		if detail := decodeDetail(t, w.Body); detail != "Invalid request body" {
			t.Errorf("unexpected detail: %q", detail)
		}
		itineraries.AssertNotCalled(t, "CreateItinerary", mock.Anything)
	})

	t.Run("rejects payload missing required fields", func(t *testing.T) {
		itineraries := NewMockItinerariesStore()

		req := httptest.NewRequest("POST", "/itineraries/create", strings.NewReader(`{"title": "Nameless"}`))
		w := httptest.NewRecorder()
		handleCreateItinerary(itineraries)(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected status 422, got %d: %s", w.Code, w.Body.String())
		}
		if detail := decodeDetail(t, w.Body); !strings.Contains(detail, "Overview") {
			t.Errorf("expected validation detail to mention the missing field, got %q", detail)
		}
		itineraries.AssertNotCalled(t, "CreateItinerary", mock.Anything)
	})

	t.Run("maps store failure to 500", func(t *testing.T) {
		itineraries := NewMockItinerariesStore()
		itineraries.On("CreateItinerary", mock.AnythingOfType("*store.NewItinerary")).
			Return("", errors.New("duplicate key value violates unique constraint"))

		req := httptest.NewRequest("POST", "/itineraries/create", strings.NewReader(validCreatePayload()))
		w := httptest.NewRecorder()
		handleCreateItinerary(itineraries)(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status 500, got %d", w.Code)
		}
		if detail := decodeDetail(t, w.Body); detail != "Database error occurred" {
			t.Errorf("unexpected detail: %q", detail)
		}
	})
}

func TestDeleteItineraryEndpoint(t *testing.T) {
	t.Run("destroys remote assets and deletes the graph", func(t *testing.T) {
		graph := sampleItinerary()

		itineraries := NewMockItinerariesStore()
		itineraries.On("FetchItinerary", "golden-triangle-tour").Return(graph, nil)
		itineraries.On("DeleteItineraryGraph", graph).Return(nil)

		mediaClient := NewMockMediaClient()
		for _, img := range graph.AllImages() {
			mediaClient.On("Destroy", mock.Anything, img.PublicID).Return(nil)
		}

		req := httptest.NewRequest("DELETE", "/itineraries/golden-triangle-tour", nil)
		req = mux.SetURLVars(req, map[string]string{"slug": "golden-triangle-tour"})
		w := httptest.NewRecorder()
		handleDeleteItinerary(itineraries, mediaClient)(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp DeletedResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Message != "Itinerary deleted successfully" {
			t.Errorf("unexpected message: %q", resp.Message)
		}
		mediaClient.AssertNumberOfCalls(t, "Destroy", len(graph.AllImages()))
		itineraries.AssertExpectations(t)
	})

	t.Run("still deletes locally when remote cleanup fails", func(t *testing.T) {
		graph := sampleItinerary()

		itineraries := NewMockItinerariesStore()
		itineraries.On("FetchItinerary", "golden-triangle-tour").Return(graph, nil)
		itineraries.On("DeleteItineraryGraph", graph).Return(nil)

		mediaClient := NewMockMediaClient()
		mediaClient.On("Destroy", mock.Anything, mock.AnythingOfType("string")).
			Return(errors.New("cloudinary unreachable"))

		req := httptest.NewRequest("DELETE", "/itineraries/golden-triangle-tour", nil)
		req = mux.SetURLVars(req, map[string]string{"slug": "golden-triangle-tour"})
		w := httptest.NewRecorder()
		handleDeleteItinerary(itineraries, mediaClient)(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200 despite remote failures, got %d: %s", w.Code, w.Body.String())
		}
		mediaClient.AssertNumberOfCalls(t, "Destroy", len(graph.AllImages()))
		itineraries.AssertCalled(t, "DeleteItineraryGraph", graph)
	})

	t.Run("rejects a blank slug", func(t *testing.T) {
		itineraries := NewMockItinerariesStore()
		mediaClient := NewMockMediaClient()

		req := httptest.NewRequest("DELETE", "/itineraries/%20", nil)
		req = mux.SetURLVars(req, map[string]string{"slug": "  "})
		w := httptest.NewRecorder()
		handleDeleteItinerary(itineraries, mediaClient)(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", w.Code)
		}
		if detail := decodeDetail(t, w.Body); detail != "Slug must not be empty" {
			t.Errorf("unexpected detail: %q", detail)
		}
		itineraries.AssertNotCalled(t, "FetchItinerary", mock.Anything)
	})

	t.Run("returns 404 for unknown slug", func(t *testing.T) {
		itineraries := NewMockItinerariesStore()
		itineraries.On("FetchItinerary", "nope").Return(nil, store.ErrItineraryNotFound)
		mediaClient := NewMockMediaClient()

		req := httptest.NewRequest("DELETE", "/itineraries/nope", nil)
		req = mux.SetURLVars(req, map[string]string{"slug": "nope"})
		w := httptest.NewRecorder()
		handleDeleteItinerary(itineraries, mediaClient)(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", w.Code)
		}
		mediaClient.AssertNotCalled(t, "Destroy", mock.Anything, mock.Anything)
	})

	t.Run("maps local delete failure to 500", func(t *testing.T) {
		graph := sampleItinerary()

		itineraries := NewMockItinerariesStore()
		itineraries.On("FetchItinerary", "golden-triangle-tour").Return(graph, nil)
		itineraries.On("DeleteItineraryGraph", graph).Return(errors.New("deadlock detected"))

		mediaClient := NewMockMediaClient()
		mediaClient.On("Destroy", mock.Anything, mock.AnythingOfType("string")).Return(nil)

		req := httptest.NewRequest("DELETE", "/itineraries/golden-triangle-tour", nil)
		req = mux.SetURLVars(req, map[string]string{"slug": "golden-triangle-tour"})
		w := httptest.NewRecorder()
		handleDeleteItinerary(itineraries, mediaClient)(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status 500, got %d", w.Code)
		}
		if detail := decodeDetail(t, w.Body); detail != "Database error occurred" {
			t.Errorf("unexpected detail: %q", detail)
		}
	})
}
