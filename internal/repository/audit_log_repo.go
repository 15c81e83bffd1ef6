package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/model"
)

// AuditLogRepository acceso al registro de auditoría
// Tabla de solo inserción: no hay Update ni Delete.
type AuditLogRepository interface {
	Create(ctx context.Context, entrada *model.AuditLog) error
	// ListPorRegistro devuelve las entradas de un registro concreto,
	// ordenadas por fecha de creación ascendente.
	ListPorRegistro(ctx context.Context, tabla string, registroID uint, accion string) ([]model.AuditLog, error)
}

type auditLogRepo struct {
	db *gorm.DB
}

// NewAuditLogRepo crea una instancia de AuditLogRepository
func NewAuditLogRepo(db *gorm.DB) AuditLogRepository {
	return &auditLogRepo{db: db}
}

func (r *auditLogRepo) Create(ctx context.Context, entrada *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(entrada).Error
}

func (r *auditLogRepo) ListPorRegistro(ctx context.Context, tabla string, registroID uint, accion string) ([]model.AuditLog, error) {
	db := r.db.WithContext(ctx).
		Where("tabla = ? AND registro_id = ?", tabla, registroID)
	if accion != "" {
		db = db.Where("accion = ?", accion)
	}

	var entradas []model.AuditLog
	err := db.Order("created_at ASC").Find(&entradas).Error
	if err != nil {
		return nil, err
	}
	return entradas, nil
}
