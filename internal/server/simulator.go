package server

import (
	"net/http"

	"github.com/freeenergie/parrainage/internal/simulator"
	"github.com/gin-gonic/gin"
)

func (s *Server) Simulate(c *gin.Context) {
	var req simulator.Input
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	projection, err := simulator.Project(s.rewards.Get(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": projection})
}
