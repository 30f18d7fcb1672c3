package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medregistry/hospital-api/internal/model"
	"github.com/medregistry/hospital-api/internal/repository"
	"github.com/medregistry/hospital-api/pkg/auth"
)

const (
	// HeaderToken carries the session JWT on authenticated requests.
	HeaderToken = "x-token"
	// ContextUserID is the gin context key holding the caller's id.
	ContextUserID = "userID"
)

type AuthMiddleware struct {
	jwtSvc   auth.JWTService
	userRepo repository.UserRepository
}

func NewAuthMiddleware(jwtSvc auth.JWTService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{jwtSvc: jwtSvc, userRepo: userRepo}
}

// Authenticate verifies the x-token JWT and puts the caller's id in the
// context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(HeaderToken)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"ok":      false,
				"message": "Necesita una key especial para esta acción.",
			})
			return
		}

		userID, err := m.jwtSvc.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"ok":      false,
				"message": "La key proporcionada no es valida",
			})
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// AdminOrSelf allows the request through when the caller holds the
// admin role, or when the route's guid parameter is the caller's own
// id. The caller's role is read fresh from storage, never from the
// token.
func (m *AuthMiddleware) AdminOrSelf() gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID := UserID(c)

		user, err := m.userRepo.Get(c.Request.Context(), callerID)
		if errors.Is(err, repository.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"ok":      false,
				"message": "Usuario no encontrado",
			})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"ok":      false,
				"message": "Error al realizar la acción",
			})
			return
		}

		if user.Role != model.RoleAdmin && callerID.String() != c.Param("guid") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"ok":      false,
				"message": "El usuario no poseé autorización para realizar la acción",
			})
			return
		}

		c.Next()
	}
}

// UserID returns the authenticated caller's id from the context.
func UserID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
