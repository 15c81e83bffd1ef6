package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/dto"
	"github.com/klabeseguimientos-netizen/intranet-sub005/pkg/response"
)

// MustGetUsuarioID extrae el usuario_id que dejó el middleware de identidad.
// Si falta, escribe la respuesta 401 y devuelve false; el llamante debe
// hacer return inmediatamente.
func MustGetUsuarioID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("usuario_id")
	if !exists {
		response.Unauthorized(c, 10002, "identidad no resuelta")
		return 0, false
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		response.Unauthorized(c, 10002, "identidad no resuelta")
		return 0, false
	}
	return id, true
}

// RequestMeta construye los metadatos de auditoría de la petición actual.
func RequestMeta(c *gin.Context) dto.RequestMeta {
	return dto.RequestMeta{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// ParamID interpreta el parámetro de ruta como identificador numérico.
func ParamID(c *gin.Context, nombre string) (uint, bool) {
	raw := c.Param(nombre)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, 10001, "identificador no válido")
		return 0, false
	}
	return uint(id), true
}
