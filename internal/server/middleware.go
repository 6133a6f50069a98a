package server

import (
	"strings"

	"github.com/freeenergie/parrainage/internal/sponsorctx"
	"github.com/gin-gonic/gin"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		identity, err := s.authSvc.Verify(token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		ctx := sponsorctx.WithIdentity(c.Request.Context(), identity)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func (s *Server) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := sponsorctx.IdentityFromContext(c.Request.Context())
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		for _, role := range roles {
			if identity.Role == role {
				c.Next()
				return
			}
		}
		AbortWithError(c, ErrForbidden)
	}
}

// RateLimit applies the redis token bucket per caller and endpoint class.
// Without a configured limiter every request passes.
func (s *Server) RateLimit(class string) gin.HandlerFunc {
	const (
		rate  = 1.0 // refill per second
		burst = 10
	)

	return func(c *gin.Context) {
		if s.limiter == nil {
			c.Next()
			return
		}

		identity, _ := sponsorctx.IdentityFromContext(c.Request.Context())
		key := "ratelimit:" + class + ":" + identity.SponsorID.String()

		result, err := s.limiter.Allow(c.Request.Context(), key, rate, burst)
		if err != nil {
			// Redis being down must not take the API with it.
			s.log.Warn("rate limiter unavailable")
			c.Next()
			return
		}
		if !result.Allowed {
			if s.metrics != nil {
				s.metrics.RecordRateLimitDenied(c.Request.Context(), class, "bucket_empty")
			}
			AbortWithError(c, ErrTooManyRequest)
			return
		}
		if s.metrics != nil {
			s.metrics.RecordRateLimitAllowed(c.Request.Context(), class)
		}
		c.Next()
	}
}
