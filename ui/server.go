package ui

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmarisk/app"
	"pharmarisk/internal"
)

// Server is the dashboard web server
type Server struct {
	router    *gin.Engine
	templates *template.Template
	assets    fs.FS
	dashboard *app.DashboardService
	logger    *internal.Logger
}

// NewServer parses the templates under assets and registers every route.
// assets must hold templates/*.html and static/.
func NewServer(dashboard *app.DashboardService, assets fs.FS, logger *internal.Logger) (*Server, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router:    gin.New(),
		assets:    assets,
		dashboard: dashboard,
		logger:    logger,
	}

	if err := s.parseTemplates(); err != nil {
		return nil, err
	}
	if err := s.setupMiddleware(); err != nil {
		return nil, err
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) parseTemplates() error {
	templatesFS, err := fs.Sub(s.assets, "templates")
	if err != nil {
		return fmt.Errorf("failed to create templates filesystem: %w", err)
	}
	files, err := fs.Glob(templatesFS, "*.html")
	if err != nil {
		return fmt.Errorf("failed to glob templates: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no templates found")
	}

	s.templates = template.New("")
	for _, file := range files {
		content, err := fs.ReadFile(templatesFS, file)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", file, err)
		}
		if _, err := s.templates.New(file).Parse(string(content)); err != nil {
			return fmt.Errorf("failed to parse template %s: %w", file, err)
		}
	}
	s.logger.Debug("parsed %d templates: %v", len(files), files)
	return nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.POST("/predict", s.handlePredict)

	export := s.router.Group("/export")
	export.GET("/lots.csv", s.handleExportCSV)
	export.GET("/report.xlsx", s.handleExportWorkbook)
}

// Handler exposes the router for an http.Server
func (s *Server) Handler() http.Handler {
	return s.router
}
