package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medregistry/hospital-api/internal/handler"
	"github.com/medregistry/hospital-api/internal/middleware"
	"github.com/medregistry/hospital-api/internal/model"
	userService "github.com/medregistry/hospital-api/internal/service/user"
)

type Handler struct {
	service *userService.Service
	authMW  *middleware.AuthMiddleware
}

func NewHandler(service *userService.Service, authMW *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, authMW: authMW}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/usuario", h.authMW.Authenticate())
	{
		users.GET("", h.List)
		users.POST("", h.Create)
		users.PUT("/:guid", middleware.RequireUUID("guid"), h.Update)
		users.DELETE("/:guid", middleware.RequireUUID("guid"), h.authMW.AdminOrSelf(), h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	page, _ := model.PageOffset(c.Query("pagina"), model.UserPageSize)

	users, total, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Respond(c, http.StatusOK, gin.H{
		"usuarioCollection": users,
		"total":             total,
	})
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindingError(c, err)
		return
	}

	user, token, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Respond(c, http.StatusOK, gin.H{
		"message":        "Ususario creado",
		"usuarioDestino": user,
		"token":          token,
	})
}

func (h *Handler) Update(c *gin.Context) {
	id := uuid.MustParse(c.Param("guid"))

	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindingError(c, err)
		return
	}

	user, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Respond(c, http.StatusOK, gin.H{
		"message":        "Usuario actualizado!",
		"usuarioDestino": user,
	})
}

func (h *Handler) Delete(c *gin.Context) {
	id := uuid.MustParse(c.Param("guid"))

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	handler.Respond(c, http.StatusOK, gin.H{
		"message": "Usuario eliminado.",
		"guid":    id,
	})
}
