package server

import (
	"net/http"

	catalogdomain "github.com/freeenergie/parrainage/internal/catalog/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListCatalog(c *gin.Context) {
	items, err := s.catalogSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (s *Server) RedeemCatalogItem(c *gin.Context) {
	result, err := s.catalogSvc.Redeem(c.Request.Context(), catalogdomain.RedeemRequest{
		ItemID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

type createCatalogItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	TokenCost   int64  `json:"token_cost"`
	EuroValue   int64  `json:"euro_value"`
	Image       string `json:"image"`
	Category    string `json:"category"`
}

func (s *Server) CreateCatalogItem(c *gin.Context) {
	var req createCatalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.catalogSvc.Create(c.Request.Context(), catalogdomain.CreateItemRequest{
		Title:       req.Title,
		Description: req.Description,
		TokenCost:   req.TokenCost,
		EuroValue:   req.EuroValue,
		Image:       req.Image,
		Category:    req.Category,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": item})
}

type updateCatalogItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	TokenCost   *int64 `json:"token_cost"`
	EuroValue   *int64 `json:"euro_value"`
	Image       string `json:"image"`
	Category    string `json:"category"`
}

func (s *Server) UpdateCatalogItem(c *gin.Context) {
	var req updateCatalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.catalogSvc.Update(c.Request.Context(), catalogdomain.UpdateItemRequest{
		ID:          c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		TokenCost:   req.TokenCost,
		EuroValue:   req.EuroValue,
		Image:       req.Image,
		Category:    req.Category,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) DeleteCatalogItem(c *gin.Context) {
	if err := s.catalogSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
