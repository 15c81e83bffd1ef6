package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/dto"
	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/service"
	"github.com/klabeseguimientos-netizen/intranet-sub005/pkg/response"
)

// NotificacionHandler procesador HTTP del centro de notificaciones
type NotificacionHandler struct {
	notifSvc service.NotificacionService
}

// NewNotificacionHandler crea un NotificacionHandler
func NewNotificacionHandler(notifSvc service.NotificacionService) *NotificacionHandler {
	return &NotificacionHandler{notifSvc: notifSvc}
}

// ListarActivas listado de notificaciones visibles
// GET /api/v1/notificaciones
func (h *NotificacionHandler) ListarActivas(c *gin.Context) {
	usuarioID, ok := MustGetUsuarioID(c)
	if !ok {
		return
	}

	var req dto.ListarNotificacionesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros no válidos")
		return
	}

	items, total, meta, err := h.notifSvc.ListarActivas(c.Request.Context(), usuarioID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPageMeta(c, items, meta, total, req.GetPage(), req.GetPageSize())
}

// ListarProgramadas listado de notificaciones con visibilidad futura
// GET /api/v1/notificaciones/programadas
func (h *NotificacionHandler) ListarProgramadas(c *gin.Context) {
	usuarioID, ok := MustGetUsuarioID(c)
	if !ok {
		return
	}

	var req dto.ListarProgramadasRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros no válidos")
		return
	}

	items, total, resumen, err := h.notifSvc.ListarProgramadas(c.Request.Context(), usuarioID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPageMeta(c, items, resumen, total, req.GetPage(), req.GetPageSize())
}

// ContarNoLeidas recuento de no leídas con desglose por prioridad
// GET /api/v1/notificaciones/no-leidas
func (h *NotificacionHandler) ContarNoLeidas(c *gin.Context) {
	usuarioID, ok := MustGetUsuarioID(c)
	if !ok {
		return
	}

	resumen, err := h.notifSvc.ContarNoLeidas(c.Request.Context(), usuarioID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, resumen)
}

// MarcarLeida marca una notificación como leída
// PUT /api/v1/notificaciones/:id/leer
func (h *NotificacionHandler) MarcarLeida(c *gin.Context) {
	usuarioID, ok := MustGetUsuarioID(c)
	if !ok {
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	resp, err := h.notifSvc.MarcarLeida(c.Request.Context(), id, usuarioID)
	if err != nil {
		if errors.Is(err, service.ErrNotificacionNoEncontrada) {
			response.NotFound(c, 30001, "la notificación no existe")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, resp)
}

// MarcarTodasLeidas marca todas las notificaciones activas como leídas
// PUT /api/v1/notificaciones/leer-todas
func (h *NotificacionHandler) MarcarTodasLeidas(c *gin.Context) {
	usuarioID, ok := MustGetUsuarioID(c)
	if !ok {
		return
	}

	resp, err := h.notifSvc.MarcarTodasLeidas(c.Request.Context(), usuarioID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, resp)
}

// Eliminar borrado lógico de una notificación
// DELETE /api/v1/notificaciones/:id
func (h *NotificacionHandler) Eliminar(c *gin.Context) {
	usuarioID, ok := MustGetUsuarioID(c)
	if !ok {
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	resp, err := h.notifSvc.Eliminar(c.Request.Context(), id, usuarioID)
	if err != nil {
		if errors.Is(err, service.ErrNotificacionNoEncontrada) {
			response.NotFound(c, 30001, "la notificación no existe")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, resp)
}
