package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/dto"
	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/model"
	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/repository"
)

// AuditService escritor del registro de auditoría
//
// Componente de solo inserción: la agregación de lectura (tiempo entre
// transiciones) es un cálculo derivado que vive en LeadService, no aquí.
type AuditService interface {
	// Registrar añade una entrada usando el repositorio base del servicio.
	Registrar(ctx context.Context, tabla string, registroID uint, accion string, usuarioID uint, antes, despues model.JSONMap, meta dto.RequestMeta) error
	// RegistrarEn añade una entrada a través del repositorio recibido, de
	// forma que la escritura participe en la transacción del llamante.
	RegistrarEn(ctx context.Context, repo *repository.Repository, tabla string, registroID uint, accion string, usuarioID uint, antes, despues model.JSONMap, meta dto.RequestMeta) error
}

type auditService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAuditService crea una instancia de AuditService
func NewAuditService(repo *repository.Repository, logger *zap.Logger) AuditService {
	return &auditService{repo: repo, logger: logger}
}

func (s *auditService) Registrar(ctx context.Context, tabla string, registroID uint, accion string, usuarioID uint, antes, despues model.JSONMap, meta dto.RequestMeta) error {
	return s.RegistrarEn(ctx, s.repo, tabla, registroID, accion, usuarioID, antes, despues, meta)
}

func (s *auditService) RegistrarEn(ctx context.Context, repo *repository.Repository, tabla string, registroID uint, accion string, usuarioID uint, antes, despues model.JSONMap, meta dto.RequestMeta) error {
	entrada := &model.AuditLog{
		Tabla:      tabla,
		RegistroID: registroID,
		Accion:     accion,
		UsuarioID:  usuarioID,
		Antes:      antes,
		Despues:    despues,
		IP:         meta.IP,
		UserAgent:  meta.UserAgent,
	}

	if err := repo.AuditLog.Create(ctx, entrada); err != nil {
		s.logger.Error("fallo al escribir entrada de auditoría",
			zap.String("tabla", tabla),
			zap.Uint("registro_id", registroID),
			zap.String("accion", accion),
			zap.Error(err))
		return err
	}
	return nil
}
