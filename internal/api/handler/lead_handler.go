package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/dto"
	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/service"
	"github.com/klabeseguimientos-netizen/intranet-sub005/pkg/response"
)

// LeadHandler procesador HTTP de comentarios e historial de leads
type LeadHandler struct {
	comentarioSvc service.ComentarioService
	leadSvc       service.LeadService
	exportSvc     service.ExportService
}

// NewLeadHandler crea un LeadHandler
func NewLeadHandler(comentarioSvc service.ComentarioService, leadSvc service.LeadService, exportSvc service.ExportService) *LeadHandler {
	return &LeadHandler{
		comentarioSvc: comentarioSvc,
		leadSvc:       leadSvc,
		exportSvc:     exportSvc,
	}
}

// RegistrarComentario alta de comentario con orquestación de recordatorio y estado
// POST /api/v1/leads/:id/comentarios
func (h *LeadHandler) RegistrarComentario(c *gin.Context) {
	usuarioID, ok := MustGetUsuarioID(c)
	if !ok {
		return
	}
	leadID, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var req dto.RegistrarComentarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros no válidos")
		return
	}

	resp, err := h.comentarioSvc.RegistrarComentario(c.Request.Context(), leadID, usuarioID, &req, RequestMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLeadNoEncontrado):
			response.NotFound(c, 20001, "el lead no existe")
		case errors.Is(err, service.ErrTipoComentarioNoEncontrado):
			response.NotFound(c, 20002, "el tipo de comentario no existe")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, resp)
}

// ListarComentarios comentarios de un lead
// GET /api/v1/leads/:id/comentarios
func (h *LeadHandler) ListarComentarios(c *gin.Context) {
	if _, ok := MustGetUsuarioID(c); !ok {
		return
	}
	leadID, ok := ParamID(c, "id")
	if !ok {
		return
	}

	comentarios, err := h.comentarioSvc.ListarPorLead(c.Request.Context(), leadID)
	if err != nil {
		if errors.Is(err, service.ErrLeadNoEncontrado) {
			response.NotFound(c, 20001, "el lead no existe")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, comentarios)
}

// HistorialEstados tiempo transcurrido entre transiciones de estado
// GET /api/v1/leads/:id/historial-estados
func (h *LeadHandler) HistorialEstados(c *gin.Context) {
	if _, ok := MustGetUsuarioID(c); !ok {
		return
	}
	leadID, ok := ParamID(c, "id")
	if !ok {
		return
	}

	historial, err := h.leadSvc.HistorialTransiciones(c.Request.Context(), leadID)
	if err != nil {
		if errors.Is(err, service.ErrLeadNoEncontrado) {
			response.NotFound(c, 20001, "el lead no existe")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, historial)
}

// ExportarHistorialEstados historial de transiciones en formato Excel
// GET /api/v1/leads/:id/historial-estados/export
func (h *LeadHandler) ExportarHistorialEstados(c *gin.Context) {
	if _, ok := MustGetUsuarioID(c); !ok {
		return
	}
	leadID, ok := ParamID(c, "id")
	if !ok {
		return
	}

	buf, nombre, err := h.exportSvc.ExportarHistorialEstados(c.Request.Context(), leadID)
	if err != nil {
		if errors.Is(err, service.ErrLeadNoEncontrado) {
			response.NotFound(c, 20001, "el lead no existe")
			return
		}
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", nombre))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
