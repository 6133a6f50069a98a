package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListNotifications(c *gin.Context) {
	notifications, err := s.notificationSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": notifications})
}

func (s *Server) MarkAllNotificationsRead(c *gin.Context) {
	updated, err := s.notificationSvc.MarkAllRead(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"updated": updated}})
}
