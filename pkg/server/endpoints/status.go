package endpoints

import (
	"net/http"
	"os"

	"github.com/demotours/tours-backend/pkg/server"
)

// StatusResponse is the liveness payload served at the root path.
type StatusResponse struct {
	Service string `json:"service"`
	Status  string `json:"status"`
	Version string `json:"version"`
}

// RegisterStatusEndpoint registers the liveness endpoint
func RegisterStatusEndpoint(s *server.Server) {
	s.Router.HandleFunc("/", handleStatus()).Methods("GET")
}

func handleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := os.Getenv("TOURS_VERSION_DISPLAY")
		if version == "" {
			version = "1.0.0"
		}

		respondWithJSON(w, http.StatusOK, StatusResponse{
			Service: "tours-backend",
			Status:  "ok",
			Version: version,
		})
	}
}
