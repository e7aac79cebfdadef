package httpx

import (
	"github.com/Gunvolt24/pricecache/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID — заголовок сквозного идентификатора запроса.
const HeaderRequestID = "X-Request-ID"

// maxRequestIDLen — длиннее не принимаем от клиента: значение попадает в каждую строку лога.
const maxRequestIDLen = 128

// RequestIDMiddleware — берёт X-Request-ID клиента (если он короткий и печатный)
// или генерирует UUID, кладёт его в контекст запроса и возвращает в ответе.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if !acceptableRequestID(requestID) {
			requestID = uuid.NewString()
		}
		c.Header(HeaderRequestID, requestID)

		c.Request = c.Request.WithContext(ctxmeta.WithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}

func acceptableRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}
