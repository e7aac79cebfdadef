package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/Gunvolt24/pricecache/internal/ports"
	"github.com/Gunvolt24/pricecache/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// ServiceName — имя сервиса в трейсах.
const ServiceName = "pricecache"

// MaxAgeLimit — верхняя граница max_age из запроса.
const MaxAgeLimit = 24 * time.Hour

// Handler — HTTP-обработчики поверх сервиса цен.
type Handler struct {
	service       ports.PriceQueryService
	log           ports.Logger
	timeout       time.Duration
	defaultMaxAge time.Duration
}

// NewHandler — конструктор. timeout <= 0 отключает таймаут обработчика.
func NewHandler(service ports.PriceQueryService, log ports.Logger, timeout, defaultMaxAge time.Duration) *Handler {
	return &Handler{
		service:       service,
		log:           log,
		timeout:       timeout,
		defaultMaxAge: defaultMaxAge,
	}
}

// NewRouter — gin-движок со всеми маршрутами и middleware.
func NewRouter(h *Handler, ginMode string) *gin.Engine {
	if ginMode != "" {
		gin.SetMode(ginMode)
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(ServiceName))
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))
	r.Use(handlerTimeout(h.timeout))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/price/:key", h.getPrice)
	r.POST("/aggregate", h.aggregate)
	r.GET("/classify/:price", h.classify)
	r.GET("/stats", h.stats)

	return r
}

// handlerTimeout — ограничивает время жизни контекста запроса.
func handlerTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
