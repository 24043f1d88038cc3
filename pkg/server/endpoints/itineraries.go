package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/demotours/tours-backend/pkg/media"
	"github.com/demotours/tours-backend/pkg/server"
	"github.com/demotours/tours-backend/pkg/server/store"
)

// ItinerariesResponse wraps the list endpoint payload.
type ItinerariesResponse struct {
	Itineraries []store.Itinerary `json:"itineraries"`
	Total       int               `json:"total"`
}

// CreatedResponse is returned after a successful creation.
type CreatedResponse struct {
	Message     string `json:"message"`
	ItineraryID string `json:"itinerary_id"`
}

// DeletedResponse is returned after a successful deletion.
type DeletedResponse struct {
	Message string `json:"message"`
}

// RegisterItinerariesEndpoints registers the itinerary CRUD endpoints
func RegisterItinerariesEndpoints(s *server.Server) {
	itineraries := s.ItinerariesStore
	mediaClient := s.Media

	router := s.Router.PathPrefix("/itineraries").Subrouter()

	// GET /itineraries/ - List all itineraries with full graphs
	router.HandleFunc("", handleListItineraries(itineraries)).Methods("GET")
	router.HandleFunc("/", handleListItineraries(itineraries)).Methods("GET")

	// POST /itineraries/create - Create a full nested graph
	router.HandleFunc("/create", handleCreateItinerary(itineraries)).Methods("POST")

	// GET /itineraries/{slug} - Fetch one full graph
	router.HandleFunc("/{slug}", handleGetItinerary(itineraries)).Methods("GET")

	// DELETE /itineraries/{slug} - Cascading delete with remote asset cleanup
	router.HandleFunc("/{slug}", handleDeleteItinerary(itineraries, mediaClient)).Methods("DELETE")
}

func handleListItineraries(itineraries store.ItinerariesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		graphs, err := itineraries.ListItineraries()
		if err != nil {
			zap.L().Error("Failed to list itineraries", zap.Error(err))
			respondWithDetail(w, http.StatusInternalServerError, "Database error occurred")
			return
		}

		respondWithJSON(w, http.StatusOK, ItinerariesResponse{
			Itineraries: graphs,
			Total:       len(graphs),
		})
	}
}

func handleGetItinerary(itineraries store.ItinerariesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := mux.Vars(r)["slug"]

		graph, err := itineraries.FetchItinerary(slug)
		if err != nil {
			if errors.Is(err, store.ErrItineraryNotFound) {
				zap.L().Warn("Itinerary not found", zap.String("slug", slug))
				respondWithDetail(w, http.StatusNotFound, "Itinerary not found")
				return
			}
			zap.L().Error("Failed to fetch itinerary", zap.String("slug", slug), zap.Error(err))
			respondWithDetail(w, http.StatusInternalServerError, "Database error occurred")
			return
		}

		respondWithJSON(w, http.StatusOK, graph)
	}
}

func handleCreateItinerary(itineraries store.ItinerariesStore) http.HandlerFunc {
	validate := validator.New(validator.WithRequiredStructEnabled())

	return func(w http.ResponseWriter, r *http.Request) {
		var payload store.NewItinerary
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			respondWithDetail(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := validate.Struct(&payload); err != nil {
			var ve validator.ValidationErrors
			if errors.As(err, &ve) {
				respondWithDetail(w, http.StatusUnprocessableEntity, ve.Error())
				return
			}
			zap.L().Error("Unexpected validation failure", zap.Error(err))
			respondWithDetail(w, http.StatusInternalServerError, "Data validation error")
			return
		}

		id, err := itineraries.CreateItinerary(&payload)
		if err != nil {
			zap.L().Error("Failed to create itinerary", zap.String("title", payload.Title), zap.Error(err))
			respondWithDetail(w, http.StatusInternalServerError, "Database error occurred")
			return
		}

		respondWithJSON(w, http.StatusCreated, CreatedResponse{
			Message:     "Itinerary created successfully",
			ItineraryID: id,
		})
	}
}

func handleDeleteItinerary(itineraries store.ItinerariesStore, mediaClient media.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := mux.Vars(r)["slug"]
		if strings.TrimSpace(slug) == "" {
			respondWithDetail(w, http.StatusBadRequest, "Slug must not be empty")
			return
		}

		graph, err := itineraries.FetchItinerary(slug)
		if err != nil {
			if errors.Is(err, store.ErrItineraryNotFound) {
				zap.L().Warn("Itinerary not found for deletion", zap.String("slug", slug))
				respondWithDetail(w, http.StatusNotFound, "Itinerary not found")
				return
			}
			zap.L().Error("Failed to load itinerary for deletion", zap.String("slug", slug), zap.Error(err))
			respondWithDetail(w, http.StatusInternalServerError, "Database error occurred")
			return
		}

		// Remote cleanup is best effort: a failed destroy never blocks the
		// local delete, and destroys already performed are not undone if the
		// local delete fails afterwards.
		for _, img := range graph.AllImages() {
			if img.PublicID == "" {
				continue
			}
			if err := mediaClient.Destroy(r.Context(), img.PublicID); err != nil {
				zap.L().Warn("Failed to delete remote asset",
					zap.String("public_id", img.PublicID),
					zap.String("slug", slug),
					zap.Error(err),
				)
			}
		}

		if err := itineraries.DeleteItineraryGraph(graph); err != nil {
			zap.L().Error("Failed to delete itinerary", zap.String("slug", slug), zap.Error(err))
			respondWithDetail(w, http.StatusInternalServerError, "Database error occurred")
			return
		}

		zap.L().Info("Itinerary deleted", zap.String("slug", slug), zap.String("id", graph.ID))
		respondWithJSON(w, http.StatusOK, DeletedResponse{Message: "Itinerary deleted successfully"})
	}
}
