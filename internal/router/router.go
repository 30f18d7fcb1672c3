package router

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/medregistry/hospital-api/internal/middleware"
	"github.com/medregistry/hospital-api/pkg/metrics"
)

// Handler registers a group of routes under the API prefix.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimitRPS   float64
	RateLimitBurst int
	CORS           middleware.CORSConfig
}

type Router struct {
	engine *gin.Engine
	api    *gin.RouterGroup
}

func New(cfg Config, m *metrics.Metrics) *Router {
	gin.SetMode(gin.ReleaseMode)
	registerTagNames()

	engine := gin.New()
	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(m),
		middleware.CORS(cfg.CORS),
		middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return &Router{
		engine: engine,
		api:    engine.Group("/api"),
	}
}

// Register mounts each handler's routes under /api.
func (r *Router) Register(handlers ...Handler) {
	for _, h := range handlers {
		h.RegisterRoutes(r.api)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// registerTagNames makes binding errors report the JSON field name
// instead of the Go struct field.
func registerTagNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}
