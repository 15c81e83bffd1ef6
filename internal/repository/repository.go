package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxManager ejecuta una función dentro de una transacción de base de datos.
// Las escrituras realizadas a través del Repository recibido se confirman o
// revierten como una unidad (todo o nada).
type TxManager interface {
	Transaction(ctx context.Context, fn func(txRepo *Repository) error) error
}

// Repository punto de entrada agregado de todos los repositorios
type Repository struct {
	Tx TxManager

	Notificacion   NotificacionRepository
	Lead           LeadRepository
	EstadoLead     EstadoLeadRepository
	Comentario     ComentarioRepository
	TipoComentario TipoComentarioRepository
	Contrato       ContratoRepository
	AuditLog       AuditLogRepository
}

// NewRepository crea el agregado de repositorios sobre una conexión GORM
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Tx:             &gormTxManager{db: db},
		Notificacion:   NewNotificacionRepo(db),
		Lead:           NewLeadRepo(db),
		EstadoLead:     NewEstadoLeadRepo(db),
		Comentario:     NewComentarioRepo(db),
		TipoComentario: NewTipoComentarioRepo(db),
		Contrato:       NewContratoRepo(db),
		AuditLog:       NewAuditLogRepo(db),
	}
}

// gormTxManager implementación de TxManager sobre gorm.DB.Transaction
type gormTxManager struct {
	db *gorm.DB
}

func (m *gormTxManager) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
