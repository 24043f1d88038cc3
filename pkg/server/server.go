package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/demotours/tours-backend/pkg/media"
	"github.com/demotours/tours-backend/pkg/server/store"
)

type Server struct {
	Router           *mux.Router
	DB               *gorm.DB
	ItinerariesStore store.ItinerariesStore
	Media            media.Client
	srv              *http.Server
}

func NewServer(
	db *gorm.DB,
	itinerariesStore store.ItinerariesStore,
	mediaClient media.Client,
	host string,
	port string,
	allowedOrigins []string,
) *Server {

	router := mux.NewRouter().UseEncodedPath()

	var handler http.Handler = router
	if len(allowedOrigins) > 0 {
		handler = handlers.CORS(
			handlers.AllowedOrigins(allowedOrigins),
			handlers.AllowedMethods([]string{"GET", "POST", "DELETE", "OPTIONS"}),
			handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
			handlers.AllowCredentials(),
		)(handler)
	}

	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, handler),
		Addr:    host + ":" + port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Router:           router,
		DB:               db,
		ItinerariesStore: itinerariesStore,
		Media:            mediaClient,
		srv:              srv,
	}
}

func (s Server) Start() error {
	return s.srv.ListenAndServe()
}
