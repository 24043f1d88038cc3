// Package gorm implements the store interfaces using GORM against PostgreSQL.
package gorm
