// Package ui exposes the dashboard over an HTTP JSON API: six analytical
// views, filter options and a table export, all computed from the filtered,
// metric-augmented listing set.
package ui

import (
	"github.com/gin-gonic/gin"

	"inmopanel/app"
)

// Server is the dashboard API server
type Server struct {
	router  *gin.Engine
	service *app.DashboardService
}

// NewServer creates the API server around the dashboard service
func NewServer(service *app.DashboardService, ginMode string) *Server {
	if ginMode != "" {
		gin.SetMode(ginMode)
	}

	s := &Server{
		router:  gin.Default(),
		service: service,
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")

	api.GET("/status", s.handleStatus)
	api.GET("/filters", s.handleFilters)

	views := api.Group("/views")
	views.GET("/overview", s.handleOverview)
	views.GET("/housing-prices", s.handleHousingPrices)
	views.GET("/profitability", s.handleProfitability)
	views.GET("/competition", s.handleCompetition)
	views.GET("/advanced", s.handleAdvanced)
	views.GET("/conclusions", s.handleConclusions)

	api.GET("/export", s.handleExport)
}

// Router returns the underlying gin engine, mainly for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the server on the given address
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
