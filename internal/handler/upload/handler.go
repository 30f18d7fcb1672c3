package upload

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medregistry/hospital-api/internal/handler"
	"github.com/medregistry/hospital-api/internal/middleware"
	uploadService "github.com/medregistry/hospital-api/internal/service/upload"
)

type Handler struct {
	service *uploadService.Service
	authMW  *middleware.AuthMiddleware
}

func NewHandler(service *uploadService.Service, authMW *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, authMW: authMW}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	files := r.Group("/fileupload")
	{
		files.PUT("/:tabla/:guid", h.authMW.Authenticate(), middleware.RequireUUID("guid"), h.Upload)
		// Image retrieval stays public so <img> tags work without a token.
		files.GET("/:tabla/:img", h.Serve)
	}
}

func (h *Handler) Upload(c *gin.Context) {
	// The collection token is validated first; a missing file is only
	// reported for collections that exist.
	if err := h.service.CheckCollection(c.Param("tabla")); err != nil {
		handler.Error(c, err)
		return
	}

	file, err := c.FormFile("img")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":      false,
			"message": "No se subio ningún archivo",
		})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":      false,
			"message": "No se subio ningún archivo",
		})
		return
	}
	defer src.Close()

	filename, err := h.service.Store(c.Request.Context(), c.Param("tabla"),
		uuid.MustParse(c.Param("guid")), file.Filename, src)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Respond(c, http.StatusOK, gin.H{
		"message":       "Archivo guardado",
		"nombreArchivo": filename,
	})
}

func (h *Handler) Serve(c *gin.Context) {
	c.File(h.service.Open(c.Param("tabla"), c.Param("img")))
}
