package httpx

import (
	"time"

	"github.com/gin-gonic/gin"
)

// ClampDuration — ограничение значения v в диапазоне [lo, hi].
func ClampDuration(v, lo, hi time.Duration) time.Duration {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParseMaxAge — читает окно свежести из query "max_age" (формат time.ParseDuration: 30s, 5m).
// Нет параметра или он некорректен → def; значение ограничивается [0, hi].
func ParseMaxAge(c *gin.Context, def, hi time.Duration) time.Duration {
	raw, ok := c.GetQuery("max_age")
	if !ok || raw == "" {
		return ClampDuration(def, 0, hi)
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return ClampDuration(def, 0, hi)
	}
	return ClampDuration(v, 0, hi)
}
