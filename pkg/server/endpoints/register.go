package endpoints

import (
	"github.com/demotours/tours-backend/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterStatusEndpoint(srv)
	RegisterItinerariesEndpoints(srv)
	RegisterUploadsEndpoints(srv)
}
