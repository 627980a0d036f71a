package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/campusops/tpo-api/internal/middleware"
	"github.com/campusops/tpo-api/internal/models"
)

// claimsFromContext returns the authenticated claims set by the JWT
// middleware, or nil on public requests.
func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}
