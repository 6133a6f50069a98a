package server

import (
	"net/http"

	referraldomain "github.com/freeenergie/parrainage/internal/referral/domain"
	"github.com/freeenergie/parrainage/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

type createReferralRequest struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Address         string `json:"address"`
	IsHomeowner     bool   `json:"is_homeowner"`
	HouseOver2Years bool   `json:"house_over_2_years"`
}

func (s *Server) CreateReferral(c *gin.Context) {
	var req createReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	referral, err := s.referralSvc.Create(c.Request.Context(), referraldomain.CreateReferralRequest{
		Name:            req.Name,
		Phone:           req.Phone,
		Email:           req.Email,
		Address:         req.Address,
		IsHomeowner:     req.IsHomeowner,
		HouseOver2Years: req.HouseOver2Years,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": referral})
}

type batchContactRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type createReferralBatchRequest struct {
	Contacts []batchContactRequest `json:"contacts"`
}

func (s *Server) CreateReferralBatch(c *gin.Context) {
	var req createReferralBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	contacts := make([]referraldomain.BatchContact, 0, len(req.Contacts))
	for _, contact := range req.Contacts {
		contacts = append(contacts, referraldomain.BatchContact{
			Name:  contact.Name,
			Phone: contact.Phone,
		})
	}

	referrals, err := s.referralSvc.CreateBatch(c.Request.Context(), referraldomain.BatchCreateRequest{
		Contacts: contacts,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": referrals})
}

type listReferralsQuery struct {
	pagination.Pagination
	Status string `form:"status"`
	Search string `form:"search"`
}

func (s *Server) ListReferrals(c *gin.Context) {
	var query listReferralsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.referralSvc.List(c.Request.Context(), referraldomain.ListReferralRequest{
		PageToken: query.PageToken,
		PageSize:  int32(query.PageSize),
		Status:    query.Status,
		Search:    query.Search,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListLeads(c *gin.Context) {
	var query listReferralsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.referralSvc.ListAll(c.Request.Context(), referraldomain.ListReferralRequest{
		PageToken: query.PageToken,
		PageSize:  int32(query.PageSize),
		Status:    query.Status,
		Search:    query.Search,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateReferralStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) UpdateReferralStatus(c *gin.Context) {
	var req updateReferralStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	referral, err := s.referralSvc.UpdateStatus(c.Request.Context(), referraldomain.UpdateStatusRequest{
		ID:     c.Param("id"),
		Status: req.Status,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": referral})
}
