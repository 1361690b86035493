// Package http provides HTTP server infrastructure including the Module interface
// that all domain modules must implement for route registration.
package http

import (
	"skrytki/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module represents a bounded context that can register its HTTP routes.
type Module interface {
	// Name returns the module's identifier for logging purposes.
	Name() string
	// RegisterRoutes mounts the module's routes.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext provides shared dependencies for module route registration.
type RouterContext struct {
	// Engine is the root Gin engine.
	Engine *gin.Engine
	// Root is the unprefixed route group the public lookup routes live on.
	Root *gin.RouterGroup
	// API is the /api route group.
	API *gin.RouterGroup
	// SearchRateLimiter throttles the database-backed lookup routes per client IP.
	SearchRateLimiter *httpkit.IPRateLimiter
}
