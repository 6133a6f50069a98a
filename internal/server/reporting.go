package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) SupervisorOverview(c *gin.Context) {
	overview, err := s.reportingSvc.Overview(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": overview})
}

func (s *Server) ExportLeads(c *gin.Context) {
	payload, err := s.reportingSvc.ExportCSV(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="filleuls.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", payload)
}
