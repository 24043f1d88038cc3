// Package main implements toursctl, the control CLI for the Demo Tours backend.
//
// The backend serves a REST API for managing travel itineraries. Each itinerary
// is a graph of days, hotel details, a route map, tags and Cloudinary-hosted
// images, stored in PostgreSQL.
//
// # Quick Start
//
//	# Run database migrations
//	toursctl db migrate
//
//	# Start the server
//	toursctl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - CLOUDINARY_CLOUD_NAME: Cloudinary cloud name
//   - CLOUDINARY_API_KEY: Cloudinary API key
//   - CLOUDINARY_API_SECRET: Cloudinary API secret
//   - CLOUDINARY_UPLOAD_FOLDER: Target folder for signed uploads (default: itineraries)
//   - CORS_ALLOWED_ORIGINS: Comma-separated list of allowed origins
//   - LOG_LEVEL: Log level (debug, info, warn, error)
//   - PORT: Server port (default: 8000)
//   - BIND_ADDRESS: Server bind address (default: 0.0.0.0)
package main
