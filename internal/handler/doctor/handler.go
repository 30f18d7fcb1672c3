package doctor

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medregistry/hospital-api/internal/handler"
	"github.com/medregistry/hospital-api/internal/middleware"
	"github.com/medregistry/hospital-api/internal/model"
	doctorService "github.com/medregistry/hospital-api/internal/service/doctor"
)

type Handler struct {
	service *doctorService.Service
	authMW  *middleware.AuthMiddleware
}

func NewHandler(service *doctorService.Service, authMW *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, authMW: authMW}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/medico", h.authMW.Authenticate())
	{
		doctors.GET("", h.List)
		doctors.GET("/:guid", middleware.RequireUUID("guid"), h.Get)
		doctors.POST("", h.Create)
		doctors.PUT("/:guid", middleware.RequireUUID("guid"), h.Update)
		doctors.DELETE("/:guid", middleware.RequireUUID("guid"), h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	page, _ := model.PageOffset(c.Query("pagina"), model.DefaultPageSize)

	doctors, total, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Respond(c, http.StatusOK, gin.H{
		"medicoCollection": doctors,
		"total":            total,
	})
}

func (h *Handler) Get(c *gin.Context) {
	doctor, err := h.service.Get(c.Request.Context(), uuid.MustParse(c.Param("guid")))
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Respond(c, http.StatusOK, gin.H{"medico": doctor})
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindingError(c, err)
		return
	}

	doctor, err := h.service.Create(c.Request.Context(), &req, middleware.UserID(c))
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Respond(c, http.StatusOK, gin.H{
		"message": "Medico creado",
		"medico":  doctor,
	})
}

func (h *Handler) Update(c *gin.Context) {
	var req model.UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindingError(c, err)
		return
	}

	doctor, err := h.service.Update(c.Request.Context(), uuid.MustParse(c.Param("guid")), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Respond(c, http.StatusOK, gin.H{
		"message": "Medico actualizado",
		"medico":  doctor,
	})
}

func (h *Handler) Delete(c *gin.Context) {
	id := uuid.MustParse(c.Param("guid"))

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	handler.Respond(c, http.StatusOK, gin.H{
		"message": "Medico eliminado.",
		"guid":    id,
	})
}
