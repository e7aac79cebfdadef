package httpx

import (
	"time"

	"github.com/Gunvolt24/pricecache/internal/ports"
	"github.com/Gunvolt24/pricecache/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
)

// RequestLogger — middleware для логирования HTTP-запросов.
// Ключ цены из пути (":key") кладётся в контекст, чтобы попасть во все логи запроса.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		if key := c.Param("key"); key != "" {
			c.Request = c.Request.WithContext(ctxmeta.WithPriceKey(c.Request.Context(), key))
		}
		c.Next()

		// не логируем /metrics, /ping
		switch c.FullPath() {
		case "/metrics", "/ping":
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		ctx := c.Request.Context()
		rid, _ := ctxmeta.RequestIDFromContext(ctx)
		tr, _ := ctxmeta.TraceIDFromContext(ctx)
		sp, _ := ctxmeta.SpanIDFromContext(ctx)

		log.Infof(
			ctx,
			"request id=%s trace=%s span=%s method=%s path=%s status=%d ip=%s duration=%s size=%d",
			rid, tr, sp,
			c.Request.Method,
			path,
			c.Writer.Status(),
			c.ClientIP(),
			time.Since(start),
			c.Writer.Size(),
		)
	}
}
