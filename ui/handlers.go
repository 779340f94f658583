package ui

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"inmopanel/domain/market"
	"inmopanel/internal/analysis"
	"inmopanel/internal/errors"
)

// selectionFromQuery reads the filter widgets from the query string. City is
// optional; neighbourhoods arrive either as repeated `neighbourhood` params
// or one comma-separated `neighbourhoods` value.
func selectionFromQuery(c *gin.Context) market.Selection {
	sel := market.Selection{City: strings.TrimSpace(c.Query("city"))}

	for _, name := range c.QueryArray("neighbourhood") {
		if name = strings.TrimSpace(name); name != "" {
			sel.Neighbourhoods = append(sel.Neighbourhoods, name)
		}
	}
	if len(sel.Neighbourhoods) == 0 {
		for _, name := range strings.Split(c.Query("neighbourhoods"), ",") {
			if name = strings.TrimSpace(name); name != "" {
				sel.Neighbourhoods = append(sel.Neighbourhoods, name)
			}
		}
	}
	return sel
}

// writeError maps the error taxonomy onto HTTP responses. Filter emptiness
// is a user-actionable warning; a failed load is a service-level outage with
// full diagnostic detail.
func writeError(c *gin.Context, err error) {
	switch errors.GetCode(err) {
	case errors.CodeNoMatchingData:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"warning": err.Error()})
	case errors.CodeDataUnavailable:
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":  err.Error(),
			"detail": fmt.Sprintf("%+v", err),
		})
	case errors.CodeInvalidInput:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (s *Server) handleStatus(c *gin.Context) {
	status := "loading"
	if s.service.Ready() {
		status = "loaded"
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

func (s *Server) handleFilters(c *gin.Context) {
	city := strings.TrimSpace(c.Query("city"))

	universe, err := s.service.Universe(c.Request.Context(), city)
	if err != nil {
		log.Printf("[handleFilters] universe lookup failed: %v", err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cities":         market.Cities,
		"neighbourhoods": universe,
	})
}

func (s *Server) handleOverview(c *gin.Context) {
	interaction, err := s.service.Refresh(c.Request.Context(), selectionFromQuery(c))
	if err != nil {
		log.Printf("[handleOverview] refresh failed: %v", err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis.BuildOverview(interaction.Listings))
}

func (s *Server) handleHousingPrices(c *gin.Context) {
	interaction, err := s.service.Refresh(c.Request.Context(), selectionFromQuery(c))
	if err != nil {
		log.Printf("[handleHousingPrices] refresh failed: %v", err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis.HousingPriceRanking(interaction.SalePrices))
}

func (s *Server) handleProfitability(c *gin.Context) {
	interaction, err := s.service.Refresh(c.Request.Context(), selectionFromQuery(c))
	if err != nil {
		log.Printf("[handleProfitability] refresh failed: %v", err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis.BuildProfitability(interaction.Listings))
}

func (s *Server) handleCompetition(c *gin.Context) {
	interaction, err := s.service.Refresh(c.Request.Context(), selectionFromQuery(c))
	if err != nil {
		log.Printf("[handleCompetition] refresh failed: %v", err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis.BuildCompetition(interaction.Listings))
}

func (s *Server) handleAdvanced(c *gin.Context) {
	interaction, err := s.service.Refresh(c.Request.Context(), selectionFromQuery(c))
	if err != nil {
		log.Printf("[handleAdvanced] refresh failed: %v", err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis.BuildAdvanced(interaction.Listings, interaction.Crime))
}
