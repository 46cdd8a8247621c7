// File: realfun/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all your endpoint handlers into one struct.
type HandlerBundle struct {
	// Copilot endpoints
	GenerateHandler        gin.HandlerFunc
	SessionResponseHandler gin.HandlerFunc
	TranscribeHandler      gin.HandlerFunc

	// History endpoints
	ListHistoryHandler   gin.HandlerFunc
	GetHistoryHandler    gin.HandlerFunc
	DeleteHistoryHandler gin.HandlerFunc
}
