package server

import (
	"net/http"

	sponsordomain "github.com/freeenergie/parrainage/internal/sponsor/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) Me(c *gin.Context) {
	sponsor, err := s.sponsorSvc.Me(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sponsor})
}

type updateProfileRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (s *Server) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	sponsor, err := s.sponsorSvc.UpdateProfile(c.Request.Context(), sponsordomain.UpdateProfileRequest{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sponsor})
}

func (s *Server) GetDashboard(c *gin.Context) {
	view, err := s.dashboardSvc.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": view})
}

type setNetworkInstallsRequest struct {
	Count *int `json:"count" binding:"required"`
}

func (s *Server) SetNetworkInstalls(c *gin.Context) {
	var req setNetworkInstallsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Count == nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	sponsor, err := s.sponsorSvc.SetNetworkInstalls(c.Request.Context(), sponsordomain.SetNetworkInstallsRequest{
		SponsorID: c.Param("id"),
		Count:     *req.Count,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sponsor})
}

type grantBonusTokensRequest struct {
	Tokens int64 `json:"tokens" binding:"required"`
}

func (s *Server) GrantBonusTokens(c *gin.Context) {
	var req grantBonusTokensRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	sponsor, err := s.sponsorSvc.GrantBonusTokens(c.Request.Context(), sponsordomain.GrantBonusTokensRequest{
		SponsorID: c.Param("id"),
		Tokens:    req.Tokens,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sponsor})
}
