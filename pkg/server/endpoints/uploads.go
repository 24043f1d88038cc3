package endpoints

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/demotours/tours-backend/pkg/media"
	"github.com/demotours/tours-backend/pkg/server"
)

// RegisterUploadsEndpoints registers the signed-upload endpoint
func RegisterUploadsEndpoints(s *server.Server) {
	router := s.Router.PathPrefix("/uploads").Subrouter()

	// GET /uploads/signature - Signed descriptor for direct client-side upload
	router.HandleFunc("/signature", handleUploadSignature(s.Media)).Methods("GET")
}

func handleUploadSignature(mediaClient media.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		descriptor, err := mediaClient.SignUpload(time.Now().Unix())
		if err != nil {
			zap.L().Error("Failed to sign upload request", zap.Error(err))
			respondWithDetail(w, http.StatusInternalServerError, "Failed to generate upload signature")
			return
		}

		respondWithJSON(w, http.StatusOK, descriptor)
	}
}
