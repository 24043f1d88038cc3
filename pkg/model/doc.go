// Package model contains the database models for the itinerary object graph.
package model
