// Package store defines the storage interfaces and data types the HTTP
// endpoints depend on. Implementations live in subpackages.
package store
