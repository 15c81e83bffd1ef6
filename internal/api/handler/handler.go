package handler

import "github.com/klabeseguimientos-netizen/intranet-sub005/internal/service"

// Handler punto de entrada agregado de todos los handlers
type Handler struct {
	Notificacion *NotificacionHandler
	Lead         *LeadHandler
	Contrato     *ContratoHandler
}

// NewHandler crea el agregado de handlers
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Notificacion: NewNotificacionHandler(svc.Notificacion),
		Lead:         NewLeadHandler(svc.Comentario, svc.Lead, svc.Export),
		Contrato:     NewContratoHandler(svc.Contrato),
	}
}
