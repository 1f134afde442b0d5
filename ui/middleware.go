package ui

import (
	"io/fs"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// setupMiddleware configures Gin middleware and the embedded static files
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Logger(), gin.Recovery())
	if s.maxUpload > 0 {
		s.router.MaxMultipartMemory = s.maxUpload
	}

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		log.Printf("[setupMiddleware] Error creating static filesystem: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}
