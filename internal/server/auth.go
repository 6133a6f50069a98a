package server

import (
	"net/http"

	authdomain "github.com/freeenergie/parrainage/internal/auth/domain"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email string `json:"email"`
}

func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	session, err := s.authSvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Email: req.Email,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": session})
}

type supervisorLoginRequest struct {
	PIN string `json:"pin"`
}

func (s *Server) SupervisorLogin(c *gin.Context) {
	var req supervisorLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	session, err := s.authSvc.SupervisorLogin(c.Request.Context(), authdomain.SupervisorLoginRequest{
		PIN: req.PIN,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": session})
}
