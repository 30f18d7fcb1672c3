package search

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medregistry/hospital-api/internal/handler"
	"github.com/medregistry/hospital-api/internal/middleware"
	searchService "github.com/medregistry/hospital-api/internal/service/search"
	"github.com/medregistry/hospital-api/pkg/metrics"
)

type Handler struct {
	service *searchService.Service
	authMW  *middleware.AuthMiddleware
	metrics *metrics.Metrics
}

func NewHandler(service *searchService.Service, authMW *middleware.AuthMiddleware,
	m *metrics.Metrics) *Handler {
	return &Handler{service: service, authMW: authMW, metrics: m}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// The one-segment form searches everything; the two-segment form
	// narrows to a single collection. The shared :tabla name keeps the
	// route tree free of param conflicts.
	all := r.Group("/todo", h.authMW.Authenticate())
	{
		all.GET("/:tabla", h.SearchAll)
		all.GET("/:tabla/:search", h.SearchCollection)
	}
}

func (h *Handler) SearchAll(c *gin.Context) {
	results, err := h.service.SearchAll(c.Request.Context(), c.Param("tabla"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	h.metrics.SearchesTotal.WithLabelValues("todo").Inc()
	handler.Respond(c, http.StatusOK, gin.H{
		"usuarios":   results.Users,
		"medicos":    results.Doctors,
		"hospitales": results.Hospitals,
	})
}

func (h *Handler) SearchCollection(c *gin.Context) {
	tabla := c.Param("tabla")

	data, err := h.service.SearchCollection(c.Request.Context(), tabla, c.Param("search"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	h.metrics.SearchesTotal.WithLabelValues(tabla).Inc()
	handler.Respond(c, http.StatusOK, gin.H{"data": data})
}
