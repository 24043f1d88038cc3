// Package server provides the HTTP server and routing for the tours backend.
package server
