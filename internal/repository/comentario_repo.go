package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/model"
)

// ComentarioRepository acceso a datos de comentarios
// Los comentarios son inmutables: solo hay inserción y lectura.
type ComentarioRepository interface {
	Create(ctx context.Context, c *model.Comentario) error
	ListPorLead(ctx context.Context, leadID uint) ([]model.Comentario, error)
}

type comentarioRepo struct {
	db *gorm.DB
}

// NewComentarioRepo crea una instancia de ComentarioRepository
func NewComentarioRepo(db *gorm.DB) ComentarioRepository {
	return &comentarioRepo{db: db}
}

func (r *comentarioRepo) Create(ctx context.Context, c *model.Comentario) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *comentarioRepo) ListPorLead(ctx context.Context, leadID uint) ([]model.Comentario, error) {
	var comentarios []model.Comentario
	err := r.db.WithContext(ctx).
		Preload("TipoComentario").
		Where("lead_id = ?", leadID).
		Order("created_at DESC").
		Find(&comentarios).Error
	if err != nil {
		return nil, err
	}
	return comentarios, nil
}

// ── Taxonomía de comentarios ──

// TipoComentarioRepository acceso al catálogo de tipos de comentario
type TipoComentarioRepository interface {
	GetByID(ctx context.Context, id uint) (*model.TipoComentario, error)
	List(ctx context.Context) ([]model.TipoComentario, error)
}

type tipoComentarioRepo struct {
	db *gorm.DB
}

// NewTipoComentarioRepo crea una instancia de TipoComentarioRepository
func NewTipoComentarioRepo(db *gorm.DB) TipoComentarioRepository {
	return &tipoComentarioRepo{db: db}
}

func (r *tipoComentarioRepo) GetByID(ctx context.Context, id uint) (*model.TipoComentario, error) {
	var tipo model.TipoComentario
	err := r.db.WithContext(ctx).
		Where("tipo_comentario_id = ?", id).
		First(&tipo).Error
	if err != nil {
		return nil, err
	}
	return &tipo, nil
}

func (r *tipoComentarioRepo) List(ctx context.Context) ([]model.TipoComentario, error) {
	var tipos []model.TipoComentario
	err := r.db.WithContext(ctx).
		Where("activo = true").
		Order("nombre ASC").
		Find(&tipos).Error
	if err != nil {
		return nil, err
	}
	return tipos, nil
}
