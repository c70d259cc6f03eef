package ui

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmarisk/domain/core"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// setupMiddleware configures Gin middleware and the static file tree
func (s *Server) setupMiddleware() error {
	s.router.Use(gin.Logger(), gin.Recovery(), requestID())

	staticFS, err := fs.Sub(s.assets, "static")
	if err != nil {
		return fmt.Errorf("failed to create static filesystem: %w", err)
	}
	s.router.StaticFS("/static", http.FS(staticFS))
	return nil
}

// requestID keeps a well-formed incoming X-Request-ID or assigns a new one
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := core.ParseRequestID(c.GetHeader(requestIDHeader))
		if err != nil {
			id = core.RequestID(core.NewID())
		}
		c.Set(requestIDKey, id.String())
		c.Header(requestIDHeader, id.String())
		c.Next()
	}
}
