package ui

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"inmopanel/internal/errors"
	"inmopanel/internal/export"
)

// handleExport downloads the currently filtered, metric-augmented listing
// table. Formats: csv (default) and xlsx.
func (s *Server) handleExport(c *gin.Context) {
	interaction, err := s.service.Refresh(c.Request.Context(), selectionFromQuery(c))
	if err != nil {
		log.Printf("[handleExport] refresh failed: %v", err)
		writeError(c, err)
		return
	}

	format := c.DefaultQuery("format", "csv")
	switch format {
	case "csv":
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", `attachment; filename="`+export.CSVFileName+`"`)
		c.Status(http.StatusOK)
		if err := export.WriteCSV(c.Writer, interaction.Listings); err != nil {
			log.Printf("[handleExport] csv write failed: %v", err)
		}
	case "xlsx":
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", `attachment; filename="`+export.XLSXFileName+`"`)
		c.Status(http.StatusOK)
		if err := export.WriteXLSX(c.Writer, interaction.Listings); err != nil {
			log.Printf("[handleExport] xlsx write failed: %v", err)
		}
	default:
		writeError(c, errors.InvalidInput("format must be csv or xlsx"))
	}
}
