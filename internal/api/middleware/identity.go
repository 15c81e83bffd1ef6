package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/klabeseguimientos-netizen/intranet-sub005/pkg/response"
)

const usuarioIDKey = "usuario_id"

// Identity middleware de identidad resuelta
// La autenticación vive en la pasarela corporativa, que inyecta la cabecera
// X-Usuario-ID con el identificador numérico ya verificado. Este núcleo solo
// la valida sintácticamente y la deja en el contexto.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-Usuario-ID")
		if raw == "" {
			response.Unauthorized(c, 10002, "identidad no resuelta")
			c.Abort()
			return
		}

		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			response.Unauthorized(c, 10002, "identidad no resuelta")
			c.Abort()
			return
		}

		c.Set(usuarioIDKey, uint(id))
		c.Next()
	}
}
