package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/model"
)

// ContratoRepository acceso a datos de contratos
type ContratoRepository interface {
	Create(ctx context.Context, c *model.Contrato) error
	GetByID(ctx context.Context, id uint) (*model.Contrato, error)
	Update(ctx context.Context, c *model.Contrato) error
	// ListEstancados devuelve los contratos en estado activo creados antes
	// del instante umbral (excluyendo los borrados lógicamente).
	ListEstancados(ctx context.Context, umbral time.Time) ([]model.Contrato, error)
}

type contratoRepo struct {
	db *gorm.DB
}

// NewContratoRepo crea una instancia de ContratoRepository
func NewContratoRepo(db *gorm.DB) ContratoRepository {
	return &contratoRepo{db: db}
}

func (r *contratoRepo) Create(ctx context.Context, c *model.Contrato) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *contratoRepo) GetByID(ctx context.Context, id uint) (*model.Contrato, error) {
	var contrato model.Contrato
	err := r.db.WithContext(ctx).
		Where("contrato_id = ?", id).
		First(&contrato).Error
	if err != nil {
		return nil, err
	}
	return &contrato, nil
}

func (r *contratoRepo) Update(ctx context.Context, c *model.Contrato) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *contratoRepo) ListEstancados(ctx context.Context, umbral time.Time) ([]model.Contrato, error) {
	var contratos []model.Contrato
	err := r.db.WithContext(ctx).
		Where("estado = ? AND created_at < ?", model.ContratoActivo, umbral).
		Order("created_at ASC").
		Find(&contratos).Error
	if err != nil {
		return nil, err
	}
	return contratos, nil
}
