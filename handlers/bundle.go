// File: handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Booking endpoints
	GetAvailability   gin.HandlerFunc
	CommitBooking     gin.HandlerFunc
	GenerateSeries    gin.HandlerFunc
	CancelBooking     gin.HandlerFunc
	RescheduleBooking gin.HandlerFunc
	LockBooking       gin.HandlerFunc

	// Resource endpoints
	ListResources gin.HandlerFunc
	GetResource   gin.HandlerFunc
	CreateHold    gin.HandlerFunc

	// Catalogue endpoints
	ListServices gin.HandlerFunc
	GetService   gin.HandlerFunc
}
