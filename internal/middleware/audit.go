package middleware

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusops/tpo-api/internal/models"
	"github.com/campusops/tpo-api/internal/service"
)

// Audit records an audit event after successful requests on sensitive routes.
// Recording never affects the response.
func Audit(audit *service.AuditService, action, targetTable string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}

		var actorID *string
		var actorRole *models.Role
		if claims, ok := c.Get(ContextUserKey); ok {
			user := claims.(*models.JWTClaims)
			actorID = &user.ProfileID
			actorRole = &user.Role
		}

		details, _ := json.Marshal(map[string]interface{}{
			"path":    c.FullPath(),
			"method":  c.Request.Method,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).Milliseconds(),
			"ip":      c.ClientIP(),
		})

		audit.Record(c.Request.Context(), models.AuditEvent{
			ActorID:     actorID,
			ActorRole:   actorRole,
			Action:      action,
			TargetTable: targetTable,
			Details:     details,
		})
	}
}
