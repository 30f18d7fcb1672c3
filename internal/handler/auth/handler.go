package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medregistry/hospital-api/internal/handler"
	"github.com/medregistry/hospital-api/internal/middleware"
	"github.com/medregistry/hospital-api/internal/model"
	authService "github.com/medregistry/hospital-api/internal/service/auth"
	"github.com/medregistry/hospital-api/pkg/metrics"
)

type Handler struct {
	service        *authService.Service
	limiter        *middleware.LoginLimiter
	authMW         *middleware.AuthMiddleware
	googleClientID string
	metrics        *metrics.Metrics
}

func NewHandler(service *authService.Service, limiter *middleware.LoginLimiter,
	authMW *middleware.AuthMiddleware, googleClientID string, m *metrics.Metrics) *Handler {
	return &Handler{
		service:        service,
		limiter:        limiter,
		authMW:         authMW,
		googleClientID: googleClientID,
		metrics:        m,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	login := r.Group("/login")
	{
		login.POST("", h.limiter.Limit(), h.Login)
		login.POST("/google", h.GoogleSignIn)
		login.GET("/renew", h.authMW.Authenticate(), h.Renew)
		login.GET("/config", h.Config)
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindingError(c, err)
		return
	}

	token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		handler.Error(c, err)
		return
	}

	h.metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	handler.Respond(c, http.StatusOK, gin.H{
		"message": "Login successfull",
		"token":   token,
	})
}

func (h *Handler) GoogleSignIn(c *gin.Context) {
	var req model.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindingError(c, err)
		return
	}

	profile, token, err := h.service.GoogleSignIn(c.Request.Context(), req.Token)
	if err != nil {
		h.metrics.LoginAttemptsTotal.WithLabelValues("google_failure").Inc()
		handler.Error(c, err)
		return
	}

	h.metrics.LoginAttemptsTotal.WithLabelValues("google_success").Inc()
	handler.Respond(c, http.StatusOK, gin.H{
		"userAuth":    profile,
		"tokenServer": token,
	})
}

func (h *Handler) Renew(c *gin.Context) {
	token, user, err := h.service.Renew(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Respond(c, http.StatusOK, gin.H{
		"message":  "Token renovado",
		"newToken": token,
		"usuario":  user,
	})
}

// Config exposes the public identity-provider client id the frontend
// needs to start a Google sign-in.
func (h *Handler) Config(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"googleClientId": h.googleClientID})
}
