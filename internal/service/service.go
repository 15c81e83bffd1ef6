package service

import (
	"go.uber.org/zap"

	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/repository"
)

// Service punto de entrada agregado de todos los servicios
type Service struct {
	Audit        AuditService
	Lead         LeadService
	Comentario   ComentarioService
	Notificacion NotificacionService
	Contrato     ContratoService
	Export       ExportService
}

// NewService crea el agregado de servicios
func NewService(repo *repository.Repository, logger *zap.Logger) *Service {
	audit := NewAuditService(repo, logger)
	lead := NewLeadService(repo, audit, logger)

	return &Service{
		Audit:        audit,
		Lead:         lead,
		Comentario:   NewComentarioService(repo, lead, logger),
		Notificacion: NewNotificacionService(repo, logger),
		Contrato:     NewContratoService(repo, audit, logger),
		Export:       NewExportService(repo, lead, logger),
	}
}
