package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/dto"
	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/model"
	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/repository"
)

// ── Módulo de comentarios: errores de negocio ──

var ErrTipoComentarioNoEncontrado = errors.New("el tipo de comentario no existe")

// Rango admitido para el recordatorio. Un valor fuera de rango no es un
// error: simplemente se omite el recordatorio.
const (
	minDiasRecordatorio = 1
	maxDiasRecordatorio = 90
)

// Longitud máxima del cuerpo del comentario dentro del mensaje del recordatorio.
const maxCaracteresMensaje = 100

// ComentarioService orquestador transaccional de comentarios
//
// Un alta de comentario puede, en la misma transacción: crear un recordatorio
// con visibilidad futura y avanzar la máquina de estados del lead. Un fallo
// en cualquier paso revierte todos los anteriores.
type ComentarioService interface {
	RegistrarComentario(ctx context.Context, leadID, usuarioID uint, req *dto.RegistrarComentarioRequest, meta dto.RequestMeta) (*dto.RegistrarComentarioResponse, error)
	ListarPorLead(ctx context.Context, leadID uint) ([]dto.ComentarioResponse, error)
}

type comentarioService struct {
	repo    *repository.Repository
	leadSvc LeadService
	logger  *zap.Logger
	ahora   func() time.Time
}

// NewComentarioService crea una instancia de ComentarioService
func NewComentarioService(repo *repository.Repository, leadSvc LeadService, logger *zap.Logger) ComentarioService {
	return &comentarioService{
		repo:    repo,
		leadSvc: leadSvc,
		logger:  logger,
		ahora:   time.Now,
	}
}

// ────────────────────── RegistrarComentario ──────────────────────

func (s *comentarioService) RegistrarComentario(ctx context.Context, leadID, usuarioID uint, req *dto.RegistrarComentarioRequest, meta dto.RequestMeta) (*dto.RegistrarComentarioResponse, error) {
	ahora := s.ahora()
	resp := &dto.RegistrarComentarioResponse{
		NotificacionesCreadas: make([]dto.NotificacionResponse, 0),
	}

	err := s.repo.Tx.Transaction(ctx, func(txRepo *repository.Repository) error {
		// 1. Resolver el tipo de comentario
		tipo, err := txRepo.TipoComentario.GetByID(ctx, req.TipoComentarioID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTipoComentarioNoEncontrado
			}
			return err
		}

		// 2. Comprobar que el lead existe antes de escribir nada
		if _, err := txRepo.Lead.GetByID(ctx, leadID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLeadNoEncontrado
			}
			return err
		}

		// 3. Insertar el comentario (inmutable a partir de aquí)
		comentario := &model.Comentario{
			LeadID:           leadID,
			UsuarioID:        usuarioID,
			TipoComentarioID: tipo.TipoComentarioID,
			Contenido:        req.Contenido,
			CreatedAt:        ahora,
		}
		if err := txRepo.Comentario.Create(ctx, comentario); err != nil {
			s.logger.Error("fallo al insertar comentario",
				zap.Uint("lead_id", leadID), zap.Error(err))
			return err
		}

		// 4. Recordatorio opcional con visibilidad futura
		if req.CrearRecordatorio {
			if req.DiasRecordatorio >= minDiasRecordatorio && req.DiasRecordatorio <= maxDiasRecordatorio {
				notif := &model.Notificacion{
					UsuarioID:         usuarioID,
					Titulo:            fmt.Sprintf("Recordatorio: %s", tipo.Nombre),
					Mensaje:           limitarTexto(req.Contenido, maxCaracteresMensaje),
					Tipo:              model.TipoNotifRecordatorioComentario,
					Prioridad:         model.PrioridadNormal,
					FechaNotificacion: ahora.AddDate(0, 0, req.DiasRecordatorio),
					CreatedAt:         ahora,
				}
				notif.RefEntidad(model.EntidadComentario, comentario.ComentarioID)

				if err := txRepo.Notificacion.Create(ctx, notif); err != nil {
					s.logger.Error("fallo al crear recordatorio",
						zap.Uint("lead_id", leadID), zap.Error(err))
					return err
				}
				resp.NotificacionesCreadas = append(resp.NotificacionesCreadas, toNotificacionResponse(notif))
			}
			// Días fuera de (0, 90]: se omite el recordatorio sin error.
		}

		// 5. Avance opcional de la máquina de estados
		if req.AvanzarEstado {
			estadoNuevo, err := s.leadSvc.AplicarSenalComentarioEn(ctx, txRepo, leadID, tipo.Nombre, usuarioID, meta)
			if err != nil {
				return err
			}
			if estadoNuevo != nil {
				resp.EstadoNuevo = toEstadoLeadResponse(estadoNuevo)
			}
		}

		resp.Comentario = dto.ComentarioResponse{
			ID:               comentario.ComentarioID,
			LeadID:           comentario.LeadID,
			UsuarioID:        comentario.UsuarioID,
			TipoComentarioID: comentario.TipoComentarioID,
			TipoComentario:   tipo.Nombre,
			Contenido:        comentario.Contenido,
			CreatedAt:        comentario.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// ────────────────────── ListarPorLead ──────────────────────

func (s *comentarioService) ListarPorLead(ctx context.Context, leadID uint) ([]dto.ComentarioResponse, error) {
	if _, err := s.repo.Lead.GetByID(ctx, leadID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNoEncontrado
		}
		return nil, err
	}

	comentarios, err := s.repo.Comentario.ListPorLead(ctx, leadID)
	if err != nil {
		s.logger.Error("fallo al listar comentarios", zap.Uint("lead_id", leadID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ComentarioResponse, 0, len(comentarios))
	for _, c := range comentarios {
		item := dto.ComentarioResponse{
			ID:               c.ComentarioID,
			LeadID:           c.LeadID,
			UsuarioID:        c.UsuarioID,
			TipoComentarioID: c.TipoComentarioID,
			Contenido:        c.Contenido,
			CreatedAt:        c.CreatedAt,
		}
		if c.TipoComentario != nil {
			item.TipoComentario = c.TipoComentario.Nombre
		}
		result = append(result, item)
	}
	return result, nil
}

// ── Auxiliares ──

// limitarTexto recorta el texto a max runas y añade puntos suspensivos
// solo cuando hubo recorte.
func limitarTexto(texto string, max int) string {
	runas := []rune(texto)
	if len(runas) <= max {
		return texto
	}
	return string(runas[:max]) + "..."
}

func toEstadoLeadResponse(e *model.EstadoLead) *dto.EstadoLeadResponse {
	return &dto.EstadoLeadResponse{
		ID:           e.EstadoLeadID,
		Nombre:       e.Nombre,
		Categoria:    e.Categoria,
		OrdenProceso: e.OrdenProceso,
		Color:        e.Color,
	}
}
