// Package ui serves the dashboard pages with gin.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"loadboard/domain/schedule"
	"loadboard/internal/analytics"
	"loadboard/ports"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html templates/*.md static/*
var embeddedFiles embed.FS

// Server represents the web server for the dashboard UI
type Server struct {
	router    *gin.Engine
	dashboard ports.DashboardPort
	api       http.Handler
	templates *template.Template
	tips      template.HTML
	maxUpload int64
}

// NewServer parses the embedded templates and registers the routes. api is
// mounted under /api when non-nil.
func NewServer(dashboard ports.DashboardPort, api http.Handler, maxUpload int64) (*Server, error) {
	s := &Server{
		router:    gin.New(),
		dashboard: dashboard,
		api:       api,
		maxUpload: maxUpload,
	}

	funcMap := template.FuncMap{
		"hours":     hours,
		"fixed1":    func(v float64) string { return fmt.Sprintf("%.1f", v) },
		"shortName": analytics.ShortName,
		"join":      strings.Join,
		"add":       func(a, b int) int { return a + b },
		"withQuery": withQuery,
		"ranked":    newRankedTable,
		"heat": func(count, maxCount int) template.CSS {
			alpha := 0.0
			if maxCount > 0 && count > 0 {
				alpha = 0.15 + 0.85*float64(count)/float64(maxCount)
			}
			return template.CSS(fmt.Sprintf("--heat: %.2f", alpha))
		},
		"isDay": func(set analytics.OptionalSet[schedule.Day], d schedule.Day) bool { return set.Contains(d) },
		"isSel": func(set analytics.OptionalSet[string], v string) bool { return set.Contains(v) },
	}

	templatesFS, err := fs.Sub(embeddedFiles, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to create templates filesystem: %w", err)
	}
	s.templates, err = template.New("").Funcs(funcMap).ParseFS(templatesFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	tips, err := fs.ReadFile(templatesFS, "tips.md")
	if err != nil {
		return nil, fmt.Errorf("failed to read tips: %w", err)
	}
	s.tips = renderMarkdown(tips)

	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// setupRoutes registers pages, upload and the API mount
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.POST("/upload", s.handleUpload)
	if s.api != nil {
		s.router.Any("/api/*path", gin.WrapH(http.StripPrefix("/api", s.api)))
	}
}

// rankedTable feeds ranked.html
type rankedTable struct {
	Title string
	Unit  string
	Rows  []analytics.Ranked
	Short bool
}

func newRankedTable(title, unit string, rows []analytics.Ranked, short bool) rankedTable {
	return rankedTable{Title: title, Unit: unit, Rows: rows, Short: short}
}

// hours formats minutes as hours with one decimal
func hours(minutes interface{}) string {
	switch v := minutes.(type) {
	case int:
		return fmt.Sprintf("%.1f", float64(v)/60)
	case float64:
		return fmt.Sprintf("%.1f", v/60)
	default:
		return "N/A"
	}
}

// Handler exposes the router for an http.Server
func (s *Server) Handler() http.Handler {
	return s.router
}
