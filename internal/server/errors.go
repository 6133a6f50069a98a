package server

import (
	"errors"
	"net/http"

	authdomain "github.com/freeenergie/parrainage/internal/auth/domain"
	catalogdomain "github.com/freeenergie/parrainage/internal/catalog/domain"
	dashboarddomain "github.com/freeenergie/parrainage/internal/dashboard/domain"
	notificationdomain "github.com/freeenergie/parrainage/internal/notification/domain"
	partnerdomain "github.com/freeenergie/parrainage/internal/partner/domain"
	referraldomain "github.com/freeenergie/parrainage/internal/referral/domain"
	"github.com/freeenergie/parrainage/internal/simulator"
	sponsordomain "github.com/freeenergie/parrainage/internal/sponsor/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrTooManyRequest = errors.New("too_many_requests")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	var vErrs *ValidationErrors
	if errors.As(err, &vErrs) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErrs.Errors,
		}
	}

	switch {
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{Field: "request", Code: err.Error(), Message: err.Error()},
			},
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "resource not found",
		}
	case isUnauthorizedError(err):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case errors.Is(err, catalogdomain.ErrInsufficientTokens):
		return http.StatusConflict, errorPayload{
			Type:    "insufficient_tokens",
			Message: "token balance does not cover this item",
		}
	case errors.Is(err, ErrTooManyRequest):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "too_many_requests",
			Message: "rate limit exceeded",
		}
	}

	return http.StatusInternalServerError, errorPayload{
		Type:    "internal_error",
		Message: "internal server error",
	}
}

func isValidationError(err error) bool {
	for _, candidate := range []error{
		sponsordomain.ErrInvalidID,
		sponsordomain.ErrInvalidName,
		sponsordomain.ErrInvalidEmail,
		sponsordomain.ErrInvalidTokens,
		sponsordomain.ErrInvalidCount,
		referraldomain.ErrInvalidID,
		referraldomain.ErrInvalidName,
		referraldomain.ErrInvalidPhone,
		referraldomain.ErrInvalidStatus,
		referraldomain.ErrNotEligible,
		referraldomain.ErrEmptyBatch,
		catalogdomain.ErrInvalidID,
		catalogdomain.ErrInvalidTitle,
		catalogdomain.ErrInvalidTokenCost,
		catalogdomain.ErrInvalidCategory,
		partnerdomain.ErrInvalidID,
		partnerdomain.ErrInvalidCompanyName,
		partnerdomain.ErrInvalidCategory,
		partnerdomain.ErrInvalidDepartment,
		partnerdomain.ErrInvalidStatus,
		notificationdomain.ErrInvalidTitle,
		notificationdomain.ErrInvalidType,
		simulator.ErrUnknownEnergyType,
	} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}

func isNotFoundError(err error) bool {
	for _, candidate := range []error{
		sponsordomain.ErrNotFound,
		referraldomain.ErrNotFound,
		catalogdomain.ErrNotFound,
		partnerdomain.ErrNotFound,
		gorm.ErrRecordNotFound,
	} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}

func isUnauthorizedError(err error) bool {
	for _, candidate := range []error{
		ErrUnauthorized,
		sponsordomain.ErrUnauthenticated,
		referraldomain.ErrUnauthenticated,
		catalogdomain.ErrUnauthenticated,
		partnerdomain.ErrUnauthenticated,
		dashboarddomain.ErrUnauthenticated,
		authdomain.ErrInvalidCredentials,
		authdomain.ErrInvalidPIN,
		authdomain.ErrInvalidToken,
		authdomain.ErrNoSupervisor,
	} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}

// classifyErrorForLog feeds the request logger's error_type/error_code fields.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	switch {
	case status >= 500:
		return "server_error", payload.Type
	case status >= 400:
		return "client_error", payload.Type
	default:
		return "", ""
	}
}
