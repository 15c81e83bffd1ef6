package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/dto"
	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/service"
	"github.com/klabeseguimientos-netizen/intranet-sub005/pkg/response"
)

// ContratoHandler procesador HTTP del ciclo de vida de contratos
type ContratoHandler struct {
	contratoSvc service.ContratoService
}

// NewContratoHandler crea un ContratoHandler
func NewContratoHandler(contratoSvc service.ContratoService) *ContratoHandler {
	return &ContratoHandler{contratoSvc: contratoSvc}
}

// Crear alta de contrato con notificación al propietario
// POST /api/v1/contratos
func (h *ContratoHandler) Crear(c *gin.Context) {
	usuarioID, ok := MustGetUsuarioID(c)
	if !ok {
		return
	}

	var req dto.CrearContratoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros no válidos")
		return
	}

	resp, err := h.contratoSvc.Crear(c.Request.Context(), usuarioID, &req, RequestMeta(c))
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, resp)
}

// Instalar marca el contrato como instalado y notifica
// PUT /api/v1/contratos/:id/instalar
func (h *ContratoHandler) Instalar(c *gin.Context) {
	usuarioID, ok := MustGetUsuarioID(c)
	if !ok {
		return
	}
	contratoID, ok := ParamID(c, "id")
	if !ok {
		return
	}

	resp, err := h.contratoSvc.Instalar(c.Request.Context(), contratoID, usuarioID, RequestMeta(c))
	if err != nil {
		if errors.Is(err, service.ErrContratoNoEncontrado) {
			response.NotFound(c, 40001, "el contrato no existe")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, resp)
}

// Ver detalle del contrato, marcando como leídas sus notificaciones
// GET /api/v1/contratos/:id
func (h *ContratoHandler) Ver(c *gin.Context) {
	usuarioID, ok := MustGetUsuarioID(c)
	if !ok {
		return
	}
	contratoID, ok := ParamID(c, "id")
	if !ok {
		return
	}

	resp, err := h.contratoSvc.Ver(c.Request.Context(), contratoID, usuarioID)
	if err != nil {
		if errors.Is(err, service.ErrContratoNoEncontrado) {
			response.NotFound(c, 40001, "el contrato no existe")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, resp)
}

// Barrer lanza manualmente el barrido de contratos estancados
// POST /api/v1/contratos/barrido
func (h *ContratoHandler) Barrer(c *gin.Context) {
	if _, ok := MustGetUsuarioID(c); !ok {
		return
	}

	resumen, err := h.contratoSvc.BarrerEstancados(c.Request.Context(), time.Now())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, resumen)
}
