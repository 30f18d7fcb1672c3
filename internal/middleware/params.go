package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequireUUID rejects requests whose named route parameter is empty or
// not a valid UUID, before any handler runs.
func RequireUUID(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.Param(param))
		if id == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"ok":      false,
				"message": "El ID es requerido",
			})
			return
		}
		if _, err := uuid.Parse(id); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"ok":      false,
				"message": "El ID proporcionado no es valido",
			})
			return
		}
		c.Next()
	}
}
