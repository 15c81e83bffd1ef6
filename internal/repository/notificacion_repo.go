package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/model"
)

// NotificacionFilters filtros opcionales de los listados de notificaciones
type NotificacionFilters struct {
	Tipo      string
	Prioridad string
	Leida     *bool
	Buscar    string // búsqueda en título y mensaje (solo programadas)
}

// ProgramadasVentanas recuentos de notificaciones programadas por ventana
type ProgramadasVentanas struct {
	Total          int64
	Hoy            int64
	Proximos7Dias  int64
	Proximos30Dias int64
}

// NotificacionRepository acceso a datos de notificaciones
//
// La distinción activa/programada se resuelve siempre comparando
// fecha_notificacion con el instante recibido: no existe columna de estado.
type NotificacionRepository interface {
	Create(ctx context.Context, n *model.Notificacion) error
	GetActiva(ctx context.Context, id, usuarioID uint, ahora time.Time) (*model.Notificacion, error)
	GetPropia(ctx context.Context, id, usuarioID uint) (*model.Notificacion, error)
	ExistePropia(ctx context.Context, id, usuarioID uint) (bool, error)
	Update(ctx context.Context, n *model.Notificacion) error
	MarcarTodasLeidas(ctx context.Context, usuarioID uint, ahora time.Time) (int64, error)
	SoftDelete(ctx context.Context, id, usuarioID, eliminadaPor uint, ahora time.Time) (int64, error)
	ContarNoLeidas(ctx context.Context, usuarioID uint, hasta time.Time) (int64, map[string]int64, error)
	ListActivas(ctx context.Context, usuarioID uint, f *NotificacionFilters, ahora time.Time, offset, limit int) ([]model.Notificacion, int64, error)
	ListProgramadas(ctx context.Context, usuarioID uint, f *NotificacionFilters, ahora time.Time, offset, limit int) ([]model.Notificacion, int64, error)
	ContarProgramadasVentanas(ctx context.Context, usuarioID uint, ahora time.Time) (*ProgramadasVentanas, error)
	ExisteNoLeida(ctx context.Context, usuarioID uint, entidadTipo string, entidadID uint, tipo string) (bool, error)
	MarcarEntidadLeidas(ctx context.Context, usuarioID uint, entidadTipo string, entidadID uint, ahora time.Time) (int64, error)
}

// notificacionRepo implementación GORM de NotificacionRepository
type notificacionRepo struct {
	db *gorm.DB
}

// NewNotificacionRepo crea una instancia de NotificacionRepository
func NewNotificacionRepo(db *gorm.DB) NotificacionRepository {
	return &notificacionRepo{db: db}
}

func (r *notificacionRepo) Create(ctx context.Context, n *model.Notificacion) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// GetActiva devuelve la notificación solo si pertenece al usuario y ya es visible.
func (r *notificacionRepo) GetActiva(ctx context.Context, id, usuarioID uint, ahora time.Time) (*model.Notificacion, error) {
	var n model.Notificacion
	err := r.db.WithContext(ctx).
		Where("notificacion_id = ? AND usuario_id = ? AND fecha_notificacion <= ?", id, usuarioID, ahora).
		First(&n).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// GetPropia devuelve la notificación del usuario sin exigir visibilidad.
func (r *notificacionRepo) GetPropia(ctx context.Context, id, usuarioID uint) (*model.Notificacion, error) {
	var n model.Notificacion
	err := r.db.WithContext(ctx).
		Where("notificacion_id = ? AND usuario_id = ?", id, usuarioID).
		First(&n).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// ExistePropia comprueba pertenencia incluyendo filas ya borradas lógicamente.
// Permite distinguir "no existe" de "ya borrada" (esta última es un no-op).
func (r *notificacionRepo) ExistePropia(ctx context.Context, id, usuarioID uint) (bool, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Unscoped().
		Model(&model.Notificacion{}).
		Where("notificacion_id = ? AND usuario_id = ?", id, usuarioID).
		Count(&total).Error
	return total > 0, err
}

func (r *notificacionRepo) Update(ctx context.Context, n *model.Notificacion) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *notificacionRepo) MarcarTodasLeidas(ctx context.Context, usuarioID uint, ahora time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Notificacion{}).
		Where("usuario_id = ? AND leida = false AND fecha_notificacion <= ?", usuarioID, ahora).
		Updates(map[string]interface{}{
			"leida":         true,
			"fecha_lectura": ahora,
		})
	return res.RowsAffected, res.Error
}

func (r *notificacionRepo) SoftDelete(ctx context.Context, id, usuarioID, eliminadaPor uint, ahora time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Notificacion{}).
		Where("notificacion_id = ? AND usuario_id = ?", id, usuarioID).
		Updates(map[string]interface{}{
			"deleted_at": ahora,
			"deleted_by": eliminadaPor,
		})
	return res.RowsAffected, res.Error
}

func (r *notificacionRepo) ContarNoLeidas(ctx context.Context, usuarioID uint, hasta time.Time) (int64, map[string]int64, error) {
	base := r.db.WithContext(ctx).
		Model(&model.Notificacion{}).
		Where("usuario_id = ? AND leida = false AND fecha_notificacion <= ?", usuarioID, hasta)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	type fila struct {
		Prioridad string
		Total     int64
	}
	var filas []fila
	err := base.Session(&gorm.Session{}).
		Select("prioridad, COUNT(*) AS total").
		Group("prioridad").
		Scan(&filas).Error
	if err != nil {
		return 0, nil, err
	}

	desglose := make(map[string]int64, len(filas))
	for _, f := range filas {
		desglose[f.Prioridad] = f.Total
	}
	return total, desglose, nil
}

func (r *notificacionRepo) ListActivas(ctx context.Context, usuarioID uint, f *NotificacionFilters, ahora time.Time, offset, limit int) ([]model.Notificacion, int64, error) {
	db := r.db.WithContext(ctx).
		Model(&model.Notificacion{}).
		Where("usuario_id = ? AND fecha_notificacion <= ?", usuarioID, ahora)
	db = aplicarFiltrosNotificacion(db, f)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.Notificacion
	err := db.
		Order("fecha_notificacion DESC").
		Offset(offset).Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *notificacionRepo) ListProgramadas(ctx context.Context, usuarioID uint, f *NotificacionFilters, ahora time.Time, offset, limit int) ([]model.Notificacion, int64, error) {
	db := r.db.WithContext(ctx).
		Model(&model.Notificacion{}).
		Where("usuario_id = ? AND fecha_notificacion > ?", usuarioID, ahora)
	db = aplicarFiltrosNotificacion(db, f)
	if f != nil && f.Buscar != "" {
		patron := "%" + f.Buscar + "%"
		db = db.Where("titulo ILIKE ? OR mensaje ILIKE ?", patron, patron)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.Notificacion
	err := db.
		Order("fecha_notificacion ASC").
		Offset(offset).Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *notificacionRepo) ContarProgramadasVentanas(ctx context.Context, usuarioID uint, ahora time.Time) (*ProgramadasVentanas, error) {
	finHoy := time.Date(ahora.Year(), ahora.Month(), ahora.Day()+1, 0, 0, 0, 0, ahora.Location())

	v := &ProgramadasVentanas{}
	ventanas := []struct {
		destino *int64
		hasta   *time.Time
	}{
		{&v.Total, nil},
		{&v.Hoy, &finHoy},
		{&v.Proximos7Dias, ptrTime(ahora.AddDate(0, 0, 7))},
		{&v.Proximos30Dias, ptrTime(ahora.AddDate(0, 0, 30))},
	}

	for _, ven := range ventanas {
		db := r.db.WithContext(ctx).
			Model(&model.Notificacion{}).
			Where("usuario_id = ? AND fecha_notificacion > ?", usuarioID, ahora)
		if ven.hasta != nil {
			db = db.Where("fecha_notificacion < ?", *ven.hasta)
		}
		if err := db.Count(ven.destino).Error; err != nil {
			return nil, err
		}
	}
	return v, nil
}

func (r *notificacionRepo) ExisteNoLeida(ctx context.Context, usuarioID uint, entidadTipo string, entidadID uint, tipo string) (bool, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Notificacion{}).
		Where("usuario_id = ? AND entidad_tipo = ? AND entidad_id = ? AND tipo = ? AND leida = false",
			usuarioID, entidadTipo, entidadID, tipo).
		Count(&total).Error
	return total > 0, err
}

func (r *notificacionRepo) MarcarEntidadLeidas(ctx context.Context, usuarioID uint, entidadTipo string, entidadID uint, ahora time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Notificacion{}).
		Where("usuario_id = ? AND entidad_tipo = ? AND entidad_id = ? AND leida = false",
			usuarioID, entidadTipo, entidadID).
		Updates(map[string]interface{}{
			"leida":         true,
			"fecha_lectura": ahora,
		})
	return res.RowsAffected, res.Error
}

// ── Auxiliares ──

func aplicarFiltrosNotificacion(db *gorm.DB, f *NotificacionFilters) *gorm.DB {
	if f == nil {
		return db
	}
	if f.Tipo != "" {
		db = db.Where("tipo = ?", f.Tipo)
	}
	if f.Prioridad != "" {
		db = db.Where("prioridad = ?", f.Prioridad)
	}
	if f.Leida != nil {
		db = db.Where("leida = ?", *f.Leida)
	}
	return db
}

func ptrTime(t time.Time) *time.Time { return &t }
