package server

import (
	"net/http"

	partnerdomain "github.com/freeenergie/parrainage/internal/partner/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListPartners(c *gin.Context) {
	partners, err := s.partnerSvc.ListValidated(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": partners})
}

func (s *Server) ListPendingPartners(c *gin.Context) {
	partners, err := s.partnerSvc.ListPending(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": partners})
}

type createPartnerRequest struct {
	CompanyName      string `json:"company_name"`
	Category         string `json:"category"`
	OfferDescription string `json:"offer_description"`
	Department       string `json:"department"`
	Image            string `json:"image"`
}

func (s *Server) CreatePartner(c *gin.Context) {
	var req createPartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	partner, err := s.partnerSvc.Create(c.Request.Context(), partnerdomain.CreatePartnerRequest{
		CompanyName:      req.CompanyName,
		Category:         req.Category,
		OfferDescription: req.OfferDescription,
		Department:       req.Department,
		Image:            req.Image,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": partner})
}

type moderatePartnerRequest struct {
	Status string `json:"status"`
}

func (s *Server) ModeratePartner(c *gin.Context) {
	var req moderatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	partner, err := s.partnerSvc.Moderate(c.Request.Context(), partnerdomain.ModerateRequest{
		ID:     c.Param("id"),
		Status: req.Status,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": partner})
}
