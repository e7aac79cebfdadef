package httpx_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Gunvolt24/pricecache/pkg/ctxmeta"
	"github.com/Gunvolt24/pricecache/pkg/httpx"
	"github.com/gin-gonic/gin"
)

type recLogger struct {
	mu    sync.Mutex
	lines []string
	keys  []string
}

func (l *recLogger) rec(ctx context.Context, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
	k, _ := ctxmeta.PriceKeyFromContext(ctx)
	l.keys = append(l.keys, k)
}

func (l *recLogger) Debugf(ctx context.Context, f string, a ...any) { l.rec(ctx, f, a...) }
func (l *recLogger) Infof(ctx context.Context, f string, a ...any)  { l.rec(ctx, f, a...) }
func (l *recLogger) Warnf(ctx context.Context, f string, a ...any)  { l.rec(ctx, f, a...) }
func (l *recLogger) Errorf(ctx context.Context, f string, a ...any) { l.rec(ctx, f, a...) }

func TestRequestLogger_LogsRouteAndPriceKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := &recLogger{}

	r := gin.New()
	r.Use(httpx.RequestIDMiddleware())
	r.GET("/price/:key", httpx.RequestLogger(log), func(c *gin.Context) { c.Status(http.StatusAccepted) })
	r.GET("/ping", httpx.RequestLogger(log), func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/price/Warp", http.NoBody))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", http.NoBody))

	if len(log.lines) != 1 {
		t.Fatalf("expected exactly one log line (ping skipped), got %d: %v", len(log.lines), log.lines)
	}
	if !strings.Contains(log.lines[0], "path=/price/:key") || !strings.Contains(log.lines[0], "status=202") {
		t.Fatalf("unexpected line: %s", log.lines[0])
	}
	if log.keys[0] != "Warp" {
		t.Fatalf("price key not in context: %q", log.keys[0])
	}
}
