package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/klabeseguimientos-netizen/intranet-sub005/pkg/redis"
	"github.com/klabeseguimientos-netizen/intranet-sub005/pkg/response"
)

// RateLimit middleware de limitación de tasa respaldado por Redis
// limit: máximo de peticiones por ventana; window: duración de la ventana.
// Con rdb a nil (o Redis caído) degrada dejando pasar.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			// Error de Redis: se degrada dejando pasar.
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, 10004, "demasiadas peticiones, inténtelo más tarde")
			c.Abort()
			return
		}

		c.Next()
	}
}
