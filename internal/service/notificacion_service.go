package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/dto"
	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/model"
	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/repository"
)

// ── Módulo de notificaciones: errores de negocio ──

// La falta de pertenencia se reporta igual que la inexistencia para no
// revelar qué identificadores existen.
var ErrNotificacionNoEncontrada = errors.New("la notificación no existe")

// NotificacionService superficie de consulta y comando del centro de notificaciones
type NotificacionService interface {
	ListarActivas(ctx context.Context, usuarioID uint, req *dto.ListarNotificacionesRequest) ([]dto.NotificacionResponse, int64, *dto.NotificacionListMeta, error)
	ListarProgramadas(ctx context.Context, usuarioID uint, req *dto.ListarProgramadasRequest) ([]dto.NotificacionResponse, int64, *dto.ProgramadasResumen, error)
	ContarNoLeidas(ctx context.Context, usuarioID uint) (*dto.NoLeidasResponse, error)
	MarcarLeida(ctx context.Context, notificacionID, usuarioID uint) (*dto.MarcarLeidaResponse, error)
	MarcarTodasLeidas(ctx context.Context, usuarioID uint) (*dto.MarcarTodasResponse, error)
	Eliminar(ctx context.Context, notificacionID, usuarioID uint) (*dto.EliminarNotificacionResponse, error)
}

type notificacionService struct {
	repo   *repository.Repository
	logger *zap.Logger
	ahora  func() time.Time
}

// NewNotificacionService crea una instancia de NotificacionService
func NewNotificacionService(repo *repository.Repository, logger *zap.Logger) NotificacionService {
	return &notificacionService{repo: repo, logger: logger, ahora: time.Now}
}

// ────────────────────── ListarActivas ──────────────────────

func (s *notificacionService) ListarActivas(ctx context.Context, usuarioID uint, req *dto.ListarNotificacionesRequest) ([]dto.NotificacionResponse, int64, *dto.NotificacionListMeta, error) {
	ahora := s.ahora()
	filtros := &repository.NotificacionFilters{
		Tipo:      req.Tipo,
		Prioridad: req.Prioridad,
		Leida:     req.Leida,
	}

	items, total, err := s.repo.Notificacion.ListActivas(ctx, usuarioID, filtros, ahora, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("fallo al listar notificaciones activas",
			zap.Uint("usuario_id", usuarioID), zap.Error(err))
		return nil, 0, nil, err
	}

	noLeidas, _, err := s.repo.Notificacion.ContarNoLeidas(ctx, usuarioID, ahora)
	if err != nil {
		return nil, 0, nil, err
	}

	result := make([]dto.NotificacionResponse, 0, len(items))
	for i := range items {
		result = append(result, toNotificacionResponse(&items[i]))
	}
	return result, total, &dto.NotificacionListMeta{NoLeidas: noLeidas}, nil
}

// ────────────────────── ListarProgramadas ──────────────────────

func (s *notificacionService) ListarProgramadas(ctx context.Context, usuarioID uint, req *dto.ListarProgramadasRequest) ([]dto.NotificacionResponse, int64, *dto.ProgramadasResumen, error) {
	ahora := s.ahora()
	filtros := &repository.NotificacionFilters{
		Tipo:      req.Tipo,
		Prioridad: req.Prioridad,
		Buscar:    req.Buscar,
	}

	items, total, err := s.repo.Notificacion.ListProgramadas(ctx, usuarioID, filtros, ahora, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("fallo al listar notificaciones programadas",
			zap.Uint("usuario_id", usuarioID), zap.Error(err))
		return nil, 0, nil, err
	}

	ventanas, err := s.repo.Notificacion.ContarProgramadasVentanas(ctx, usuarioID, ahora)
	if err != nil {
		return nil, 0, nil, err
	}

	result := make([]dto.NotificacionResponse, 0, len(items))
	for i := range items {
		result = append(result, toNotificacionResponse(&items[i]))
	}
	resumen := &dto.ProgramadasResumen{
		Total:          ventanas.Total,
		Hoy:            ventanas.Hoy,
		Proximos7Dias:  ventanas.Proximos7Dias,
		Proximos30Dias: ventanas.Proximos30Dias,
	}
	return result, total, resumen, nil
}

// ────────────────────── ContarNoLeidas ──────────────────────

func (s *notificacionService) ContarNoLeidas(ctx context.Context, usuarioID uint) (*dto.NoLeidasResponse, error) {
	total, desglose, err := s.repo.Notificacion.ContarNoLeidas(ctx, usuarioID, s.ahora())
	if err != nil {
		s.logger.Error("fallo al contar no leídas",
			zap.Uint("usuario_id", usuarioID), zap.Error(err))
		return nil, err
	}
	return &dto.NoLeidasResponse{Total: total, PorPrioridad: desglose}, nil
}

// ────────────────────── MarcarLeida ──────────────────────

func (s *notificacionService) MarcarLeida(ctx context.Context, notificacionID, usuarioID uint) (*dto.MarcarLeidaResponse, error) {
	ahora := s.ahora()

	n, err := s.repo.Notificacion.GetActiva(ctx, notificacionID, usuarioID, ahora)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificacionNoEncontrada
		}
		s.logger.Error("fallo al consultar notificación",
			zap.Uint("notificacion_id", notificacionID), zap.Error(err))
		return nil, err
	}

	// Segunda llamada sobre una ya leída: no-op, se devuelve el estado actual.
	if !n.Leida {
		n.Leida = true
		n.FechaLectura = &ahora
		if err := s.repo.Notificacion.Update(ctx, n); err != nil {
			s.logger.Error("fallo al marcar notificación leída",
				zap.Uint("notificacion_id", notificacionID), zap.Error(err))
			return nil, err
		}
	}

	noLeidas, _, err := s.repo.Notificacion.ContarNoLeidas(ctx, usuarioID, ahora)
	if err != nil {
		return nil, err
	}

	return &dto.MarcarLeidaResponse{
		Notificacion: toNotificacionResponse(n),
		NoLeidas:     noLeidas,
	}, nil
}

// ────────────────────── MarcarTodasLeidas ──────────────────────

func (s *notificacionService) MarcarTodasLeidas(ctx context.Context, usuarioID uint) (*dto.MarcarTodasResponse, error) {
	afectadas, err := s.repo.Notificacion.MarcarTodasLeidas(ctx, usuarioID, s.ahora())
	if err != nil {
		s.logger.Error("fallo al marcar todas leídas",
			zap.Uint("usuario_id", usuarioID), zap.Error(err))
		return nil, err
	}
	return &dto.MarcarTodasResponse{Afectadas: afectadas}, nil
}

// ────────────────────── Eliminar ──────────────────────

func (s *notificacionService) Eliminar(ctx context.Context, notificacionID, usuarioID uint) (*dto.EliminarNotificacionResponse, error) {
	ahora := s.ahora()

	afectadas, err := s.repo.Notificacion.SoftDelete(ctx, notificacionID, usuarioID, usuarioID, ahora)
	if err != nil {
		s.logger.Error("fallo al borrar notificación",
			zap.Uint("notificacion_id", notificacionID), zap.Error(err))
		return nil, err
	}
	if afectadas == 0 {
		// Puede ser una fila ya borrada (no-op) o una inexistente/ajena (NotFound).
		existe, err := s.repo.Notificacion.ExistePropia(ctx, notificacionID, usuarioID)
		if err != nil {
			return nil, err
		}
		if !existe {
			return nil, ErrNotificacionNoEncontrada
		}
	}

	noLeidas, _, err := s.repo.Notificacion.ContarNoLeidas(ctx, usuarioID, ahora)
	if err != nil {
		return nil, err
	}
	return &dto.EliminarNotificacionResponse{NoLeidas: noLeidas}, nil
}

// ── Auxiliares ──

func toNotificacionResponse(n *model.Notificacion) dto.NotificacionResponse {
	return dto.NotificacionResponse{
		ID:                n.NotificacionID,
		Titulo:            n.Titulo,
		Mensaje:           n.Mensaje,
		Tipo:              n.Tipo,
		EntidadTipo:       n.EntidadTipo,
		EntidadID:         n.EntidadID,
		Leida:             n.Leida,
		FechaNotificacion: n.FechaNotificacion,
		FechaLectura:      n.FechaLectura,
		Prioridad:         n.Prioridad,
		CreatedAt:         n.CreatedAt,
	}
}
