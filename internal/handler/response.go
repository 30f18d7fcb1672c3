package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/medregistry/hospital-api/pkg/errors"
)

// Respond writes a success envelope: ok is always true, extra payload
// keys merge in at the top level.
func Respond(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"ok": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// Error writes the failure envelope for an application error. Unknown
// error types become a generic 500.
func Error(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.StatusCode(), gin.H{"ok": false, "message": appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"ok":      false,
		"message": "Error inesperado, hable con el administrador",
	})
}

// BindingError converts request-binding failures into the per-field
// error map: {ok:false, error:{field:{msg}}}.
func BindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := gin.H{}
		for _, fe := range verrs {
			fields[fe.Field()] = gin.H{"msg": fieldMessage(fe)}
		}
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "Peticion no valida"})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "El campo " + fe.Field() + " es obligatorio"
	case "email":
		return "El campo " + fe.Field() + " debe ser un email valido"
	case "oneof":
		return "El campo " + fe.Field() + " debe ser uno de: " + fe.Param()
	case "uuid":
		return "El campo " + fe.Field() + " debe ser un identificador valido"
	case "min":
		return "El campo " + fe.Field() + " es demasiado corto"
	default:
		return "El campo " + fe.Field() + " no es valido"
	}
}
