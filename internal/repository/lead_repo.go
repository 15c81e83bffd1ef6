package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/model"
)

// LeadRepository acceso a datos de leads
type LeadRepository interface {
	GetByID(ctx context.Context, id uint) (*model.Lead, error)
	// GetByIDForUpdate consulta con bloqueo de fila (SELECT ... FOR UPDATE).
	// Debe invocarse sobre un Repository transaccional.
	GetByIDForUpdate(ctx context.Context, id uint) (*model.Lead, error)
	Update(ctx context.Context, lead *model.Lead) error
}

// leadRepo implementación GORM de LeadRepository
type leadRepo struct {
	db *gorm.DB
}

// NewLeadRepo crea una instancia de LeadRepository
func NewLeadRepo(db *gorm.DB) LeadRepository {
	return &leadRepo{db: db}
}

func (r *leadRepo) GetByID(ctx context.Context, id uint) (*model.Lead, error) {
	var lead model.Lead
	err := r.db.WithContext(ctx).
		Preload("EstadoLead").
		Where("lead_id = ?", id).
		First(&lead).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepo) GetByIDForUpdate(ctx context.Context, id uint) (*model.Lead, error) {
	var lead model.Lead
	err := r.db.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		Where("lead_id = ?", id).
		First(&lead).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepo) Update(ctx context.Context, lead *model.Lead) error {
	return r.db.WithContext(ctx).Save(lead).Error
}

// ── Catálogo de estados ──

// EstadoLeadRepository acceso al catálogo de estados de lead
// Tabla de referencia: su contenido se mantiene como configuración externa.
type EstadoLeadRepository interface {
	GetByID(ctx context.Context, id uint) (*model.EstadoLead, error)
	List(ctx context.Context) ([]model.EstadoLead, error)
}

type estadoLeadRepo struct {
	db *gorm.DB
}

// NewEstadoLeadRepo crea una instancia de EstadoLeadRepository
func NewEstadoLeadRepo(db *gorm.DB) EstadoLeadRepository {
	return &estadoLeadRepo{db: db}
}

func (r *estadoLeadRepo) GetByID(ctx context.Context, id uint) (*model.EstadoLead, error) {
	var estado model.EstadoLead
	err := r.db.WithContext(ctx).
		Where("estado_lead_id = ?", id).
		First(&estado).Error
	if err != nil {
		return nil, err
	}
	return &estado, nil
}

func (r *estadoLeadRepo) List(ctx context.Context) ([]model.EstadoLead, error) {
	var estados []model.EstadoLead
	err := r.db.WithContext(ctx).
		Order("orden_proceso ASC").
		Find(&estados).Error
	if err != nil {
		return nil, err
	}
	return estados, nil
}
