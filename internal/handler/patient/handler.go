package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medregistry/hospital-api/internal/handler"
	"github.com/medregistry/hospital-api/internal/middleware"
	"github.com/medregistry/hospital-api/internal/model"
	patientService "github.com/medregistry/hospital-api/internal/service/patient"
)

type Handler struct {
	service *patientService.Service
}

func NewHandler(service *patientService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/paciente")
	{
		patients.GET("", h.List)
		patients.GET("/:guid", middleware.RequireUUID("guid"), h.Get)
		patients.POST("", h.Create)
		patients.PUT("/:guid", middleware.RequireUUID("guid"), h.Update)
		patients.DELETE("/:guid", middleware.RequireUUID("guid"), h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	page, _ := model.PageOffset(c.Query("pagina"), model.DefaultPageSize)

	patients, total, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Respond(c, http.StatusOK, gin.H{
		"pacienteCollection": patients,
		"total":              total,
		"pagina":             page,
	})
}

func (h *Handler) Get(c *gin.Context) {
	patient, err := h.service.Get(c.Request.Context(), uuid.MustParse(c.Param("guid")))
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Respond(c, http.StatusOK, gin.H{"paciente": patient})
}

func (h *Handler) Create(c *gin.Context) {
	var req model.PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindingError(c, err)
		return
	}

	patient, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Respond(c, http.StatusCreated, gin.H{
		"message":         "Paciente creado",
		"pacienteDestino": patient,
	})
}

func (h *Handler) Update(c *gin.Context) {
	var req model.PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindingError(c, err)
		return
	}

	patient, err := h.service.Update(c.Request.Context(), uuid.MustParse(c.Param("guid")), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Respond(c, http.StatusOK, gin.H{
		"message":  "Paciente actualizado",
		"paciente": patient,
	})
}

func (h *Handler) Delete(c *gin.Context) {
	patient, err := h.service.Delete(c.Request.Context(), uuid.MustParse(c.Param("guid")))
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Respond(c, http.StatusOK, gin.H{
		"message":  "Paciente eliminado correctamente",
		"paciente": patient,
	})
}
