package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/dto"
	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/model"
	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/repository"
)

// ── Módulo de leads: errores de negocio ──

var (
	ErrLeadNoEncontrado        = errors.New("el lead no existe")
	ErrEstadoLeadNoConfigurado = errors.New("el estado de destino no existe en el catálogo")
)

// transicionesPorTipoComentario asocia nombres de tipo de comentario con el
// estado de destino del lead. Un tipo ausente del mapa no provoca transición.
var transicionesPorTipoComentario = map[string]uint{
	"Contacto inicial":  2, // Contactado
	"Seguimiento lead":  3, // Calificado
	"Propuesta enviada": 4, // Propuesta enviada
	"Negociación":       5, // Negociación
}

// nombreEstadoDesconocido se emite cuando un snapshot de auditoría carece del
// campo de estado o este no resuelve contra el catálogo.
const nombreEstadoDesconocido = "Desconocido"

// LeadService máquina de estados del lead y cálculo derivado del historial
type LeadService interface {
	// AplicarSenalComentario aplica la transición asociada al tipo de
	// comentario dentro de su propia transacción. Devuelve el estado nuevo,
	// o nil si el tipo no está mapeado o el lead ya estaba en el destino.
	AplicarSenalComentario(ctx context.Context, leadID uint, tipoComentario string, usuarioID uint, meta dto.RequestMeta) (*model.EstadoLead, error)
	// AplicarSenalComentarioEn es la variante que participa en una
	// transacción del llamante (la usa el orquestador de comentarios).
	AplicarSenalComentarioEn(ctx context.Context, txRepo *repository.Repository, leadID uint, tipoComentario string, usuarioID uint, meta dto.RequestMeta) (*model.EstadoLead, error)
	// HistorialTransiciones calcula el tiempo transcurrido entre cambios de
	// estado consecutivos a partir del registro de auditoría.
	HistorialTransiciones(ctx context.Context, leadID uint) (*dto.HistorialEstadosResponse, error)
}

type leadService struct {
	repo     *repository.Repository
	auditSvc AuditService
	logger   *zap.Logger
}

// NewLeadService crea una instancia de LeadService
func NewLeadService(repo *repository.Repository, auditSvc AuditService, logger *zap.Logger) LeadService {
	return &leadService{repo: repo, auditSvc: auditSvc, logger: logger}
}

// ────────────────────── AplicarSenalComentario ──────────────────────

func (s *leadService) AplicarSenalComentario(ctx context.Context, leadID uint, tipoComentario string, usuarioID uint, meta dto.RequestMeta) (*model.EstadoLead, error) {
	var resultado *model.EstadoLead
	err := s.repo.Tx.Transaction(ctx, func(txRepo *repository.Repository) error {
		estado, err := s.AplicarSenalComentarioEn(ctx, txRepo, leadID, tipoComentario, usuarioID, meta)
		if err != nil {
			return err
		}
		resultado = estado
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resultado, nil
}

func (s *leadService) AplicarSenalComentarioEn(ctx context.Context, txRepo *repository.Repository, leadID uint, tipoComentario string, usuarioID uint, meta dto.RequestMeta) (*model.EstadoLead, error) {
	destinoID, mapeado := transicionesPorTipoComentario[tipoComentario]
	if !mapeado {
		// Tipo sin transición asociada: no-op silencioso.
		return nil, nil
	}

	lead, err := txRepo.Lead.GetByIDForUpdate(ctx, leadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNoEncontrado
		}
		s.logger.Error("fallo al consultar lead", zap.Uint("lead_id", leadID), zap.Error(err))
		return nil, err
	}

	if lead.EstadoLeadID == destinoID {
		// Ya está en el destino: no-op idempotente, sin segunda entrada de auditoría.
		return nil, nil
	}

	estadoNuevo, err := txRepo.EstadoLead.GetByID(ctx, destinoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEstadoLeadNoConfigurado
		}
		return nil, err
	}

	estadoAnterior := lead.EstadoLeadID
	lead.EstadoLeadID = destinoID
	lead.UpdatedBy = &usuarioID

	if err := txRepo.Lead.Update(ctx, lead); err != nil {
		s.logger.Error("fallo al actualizar estado del lead",
			zap.Uint("lead_id", leadID), zap.Error(err))
		return nil, err
	}

	// Toda transición lleva emparejada su entrada de auditoría, en la misma
	// transacción: o suceden ambas o ninguna.
	err = s.auditSvc.RegistrarEn(ctx, txRepo,
		model.Lead{}.TableName(), leadID, model.AccionUpdate, usuarioID,
		model.JSONMap{"estado_lead_id": estadoAnterior},
		model.JSONMap{"estado_lead_id": destinoID, "motivo": tipoComentario},
		meta)
	if err != nil {
		return nil, err
	}

	s.logger.Info("transición de estado de lead",
		zap.Uint("lead_id", leadID),
		zap.Uint("estado_anterior", estadoAnterior),
		zap.Uint("estado_nuevo", destinoID),
		zap.String("motivo", tipoComentario))

	return estadoNuevo, nil
}

// ────────────────────── HistorialTransiciones ──────────────────────

// HistorialTransiciones recorre las entradas de auditoría de un lead en orden
// ascendente y emite un tramo por cada par consecutivo de cambios de estado.
// Un pliegue puro: misma entrada, mismo resultado. Los snapshots malformados
// resuelven a "Desconocido" en lugar de abortar el cálculo.
func (s *leadService) HistorialTransiciones(ctx context.Context, leadID uint) (*dto.HistorialEstadosResponse, error) {
	if _, err := s.repo.Lead.GetByID(ctx, leadID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNoEncontrado
		}
		return nil, err
	}

	entradas, err := s.repo.AuditLog.ListPorRegistro(ctx, model.Lead{}.TableName(), leadID, model.AccionUpdate)
	if err != nil {
		s.logger.Error("fallo al consultar auditoría del lead",
			zap.Uint("lead_id", leadID), zap.Error(err))
		return nil, err
	}

	nombres, err := s.nombresEstados(ctx)
	if err != nil {
		return nil, err
	}

	// Solo interesan las entradas cuyo snapshot posterior contenga un estado.
	var cambios []model.AuditLog
	for _, e := range entradas {
		if _, ok := estadoIDSnapshot(e.Despues); ok {
			cambios = append(cambios, e)
		}
	}

	transiciones := make([]dto.TransicionEstado, 0)
	for i := 1; i < len(cambios); i++ {
		anterior, actual := cambios[i-1], cambios[i]

		duracion := actual.CreatedAt.Sub(anterior.CreatedAt)
		totalMinutos := int(duracion.Minutes())

		transiciones = append(transiciones, dto.TransicionEstado{
			DesdeEstado: nombreEstado(nombres, anterior.Despues),
			HastaEstado: nombreEstado(nombres, actual.Despues),
			Dias:        totalMinutos / (24 * 60),
			Horas:       (totalMinutos % (24 * 60)) / 60,
			Minutos:     totalMinutos % 60,
			Fecha:       actual.CreatedAt,
		})
	}

	return &dto.HistorialEstadosResponse{LeadID: leadID, Transiciones: transiciones}, nil
}

// ── Auxiliares ──

func (s *leadService) nombresEstados(ctx context.Context) (map[uint]string, error) {
	estados, err := s.repo.EstadoLead.List(ctx)
	if err != nil {
		s.logger.Error("fallo al cargar catálogo de estados", zap.Error(err))
		return nil, err
	}
	nombres := make(map[uint]string, len(estados))
	for _, e := range estados {
		nombres[e.EstadoLeadID] = e.Nombre
	}
	return nombres, nil
}

// estadoIDSnapshot extrae estado_lead_id de un snapshot JSONB de forma
// defensiva: el valor llega como float64 tras deserializar JSON, pero puede
// ser entero cuando el snapshot se construyó en memoria.
func estadoIDSnapshot(snapshot model.JSONMap) (uint, bool) {
	if snapshot == nil {
		return 0, false
	}
	v, ok := snapshot["estado_lead_id"]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		if n < 0 {
			return 0, false
		}
		return uint(n), true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint(n), true
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint(n), true
	case uint:
		return n, true
	default:
		return 0, false
	}
}

func nombreEstado(nombres map[uint]string, snapshot model.JSONMap) string {
	id, ok := estadoIDSnapshot(snapshot)
	if !ok {
		return nombreEstadoDesconocido
	}
	if nombre, ok := nombres[id]; ok {
		return nombre
	}
	return nombreEstadoDesconocido
}
