package hospital

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medregistry/hospital-api/internal/handler"
	"github.com/medregistry/hospital-api/internal/middleware"
	"github.com/medregistry/hospital-api/internal/model"
	hospitalService "github.com/medregistry/hospital-api/internal/service/hospital"
)

type Handler struct {
	service *hospitalService.Service
	authMW  *middleware.AuthMiddleware
}

func NewHandler(service *hospitalService.Service, authMW *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, authMW: authMW}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	hospitals := r.Group("/hospital", h.authMW.Authenticate())
	{
		hospitals.GET("", h.List)
		hospitals.GET("/:guid", middleware.RequireUUID("guid"), h.Get)
		hospitals.POST("", h.Create)
		hospitals.PUT("/:guid", middleware.RequireUUID("guid"), h.Update)
		hospitals.DELETE("/:guid", middleware.RequireUUID("guid"), h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	page, _ := model.PageOffset(c.Query("pagina"), model.DefaultPageSize)

	hospitals, total, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Respond(c, http.StatusOK, gin.H{
		"hospitalCollection": hospitals,
		"total":              total,
	})
}

func (h *Handler) Get(c *gin.Context) {
	hospital, err := h.service.Get(c.Request.Context(), uuid.MustParse(c.Param("guid")))
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Respond(c, http.StatusOK, gin.H{"hospital": hospital})
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateHospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindingError(c, err)
		return
	}

	hospital, err := h.service.Create(c.Request.Context(), &req, middleware.UserID(c))
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Respond(c, http.StatusOK, gin.H{
		"message":  "Hospital creado",
		"hospital": hospital,
	})
}

func (h *Handler) Update(c *gin.Context) {
	var req model.UpdateHospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindingError(c, err)
		return
	}

	hospital, err := h.service.Update(c.Request.Context(), uuid.MustParse(c.Param("guid")), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Respond(c, http.StatusOK, gin.H{
		"message":  "Hospital actualizado",
		"hospital": hospital,
	})
}

func (h *Handler) Delete(c *gin.Context) {
	id := uuid.MustParse(c.Param("guid"))

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	handler.Respond(c, http.StatusOK, gin.H{
		"message": "Hospital eliminado.",
		"guid":    id,
	})
}
