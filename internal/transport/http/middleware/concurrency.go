package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	resp "ai-interview-lab/internal/transport/http/response"
)

// ConcurrencyLimit 限制同时处理的请求数，保护数据目录上的文件锁
func ConcurrencyLimit(max int64) gin.HandlerFunc {
	if max <= 0 {
		max = 1
	}
	sem := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		if err := sem.Acquire(c.Request.Context(), 1); err != nil {
			resp.Abort(c, resp.CodeServerError, "server busy")
			return
		}
		defer sem.Release(1)
		c.Next()
	}
}
