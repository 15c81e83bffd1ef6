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

// ── Módulo de contratos: errores de negocio ──

var ErrContratoNoEncontrado = errors.New("el contrato no existe")

// mesesUmbralEstancamiento antigüedad mínima para considerar estancado un
// contrato activo sin instalar.
const mesesUmbralEstancamiento = 1

// ContratoService ciclo de vida del contrato y sus notificaciones
//
// El barrido no es transaccional por contrato: el cambio de estado y la
// notificación de cada contrato son unidades independientes, y el fallo de
// uno no interrumpe el procesamiento del resto.
type ContratoService interface {
	Crear(ctx context.Context, usuarioID uint, req *dto.CrearContratoRequest, meta dto.RequestMeta) (*dto.ContratoResponse, error)
	Instalar(ctx context.Context, contratoID, usuarioID uint, meta dto.RequestMeta) (*dto.ContratoResponse, error)
	// Ver devuelve el contrato y marca como leído su hilo de notificaciones
	// para el usuario que lo consulta.
	Ver(ctx context.Context, contratoID, usuarioID uint) (*dto.ContratoResponse, error)
	// BarrerEstancados detecta contratos activos con más de un mes de
	// antigüedad, los pasa a pendiente_instalacion y notifica con supresión
	// de duplicados. Seguro de re-ejecutar si se interrumpe a medias.
	BarrerEstancados(ctx context.Context, ahora time.Time) (*dto.BarridoResponse, error)
}

type contratoService struct {
	repo     *repository.Repository
	auditSvc AuditService
	logger   *zap.Logger
	ahora    func() time.Time
}

// NewContratoService crea una instancia de ContratoService
func NewContratoService(repo *repository.Repository, auditSvc AuditService, logger *zap.Logger) ContratoService {
	return &contratoService{repo: repo, auditSvc: auditSvc, logger: logger, ahora: time.Now}
}

// ────────────────────── Crear ──────────────────────

func (s *contratoService) Crear(ctx context.Context, usuarioID uint, req *dto.CrearContratoRequest, meta dto.RequestMeta) (*dto.ContratoResponse, error) {
	ahora := s.ahora()
	contrato := &model.Contrato{
		UsuarioID:     usuarioID,
		NombreCliente: req.NombreCliente,
		Estado:        model.ContratoActivo,
	}
	contrato.CreatedAt = ahora
	contrato.CreatedBy = &usuarioID

	if err := s.repo.Contrato.Create(ctx, contrato); err != nil {
		s.logger.Error("fallo al crear contrato", zap.Error(err))
		return nil, err
	}

	// La notificación de alta no condiciona la creación: si falla se registra
	// en el log y el contrato queda creado igualmente.
	if err := s.notificarCreacion(ctx, contrato, ahora); err != nil {
		s.logger.Error("fallo al notificar alta de contrato",
			zap.Uint("contrato_id", contrato.ContratoID), zap.Error(err))
	}

	if err := s.auditSvc.Registrar(ctx, model.Contrato{}.TableName(), contrato.ContratoID,
		model.AccionCreate, usuarioID, nil,
		model.JSONMap{"estado": contrato.Estado, "nombre_cliente": contrato.NombreCliente},
		meta); err != nil {
		s.logger.Warn("fallo al auditar alta de contrato",
			zap.Uint("contrato_id", contrato.ContratoID), zap.Error(err))
	}

	return toContratoResponse(contrato), nil
}

// ────────────────────── Instalar ──────────────────────

func (s *contratoService) Instalar(ctx context.Context, contratoID, usuarioID uint, meta dto.RequestMeta) (*dto.ContratoResponse, error) {
	contrato, err := s.repo.Contrato.GetByID(ctx, contratoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContratoNoEncontrado
		}
		s.logger.Error("fallo al consultar contrato",
			zap.Uint("contrato_id", contratoID), zap.Error(err))
		return nil, err
	}

	// Ya instalado: no-op, sin segunda notificación.
	if contrato.Estado == model.ContratoInstalado {
		return toContratoResponse(contrato), nil
	}

	ahora := s.ahora()
	estadoAnterior := contrato.Estado
	contrato.Estado = model.ContratoInstalado
	contrato.UpdatedBy = &usuarioID

	if err := s.repo.Contrato.Update(ctx, contrato); err != nil {
		s.logger.Error("fallo al instalar contrato",
			zap.Uint("contrato_id", contratoID), zap.Error(err))
		return nil, err
	}

	if err := s.notificarInstalacion(ctx, contrato, ahora); err != nil {
		s.logger.Error("fallo al notificar instalación",
			zap.Uint("contrato_id", contratoID), zap.Error(err))
	}

	if err := s.auditSvc.Registrar(ctx, model.Contrato{}.TableName(), contrato.ContratoID,
		model.AccionUpdate, usuarioID,
		model.JSONMap{"estado": estadoAnterior},
		model.JSONMap{"estado": contrato.Estado},
		meta); err != nil {
		s.logger.Warn("fallo al auditar instalación",
			zap.Uint("contrato_id", contratoID), zap.Error(err))
	}

	return toContratoResponse(contrato), nil
}

// ────────────────────── Ver ──────────────────────

func (s *contratoService) Ver(ctx context.Context, contratoID, usuarioID uint) (*dto.ContratoResponse, error) {
	contrato, err := s.repo.Contrato.GetByID(ctx, contratoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContratoNoEncontrado
		}
		return nil, err
	}

	// Consultar el contrato limpia su hilo de notificaciones pendientes.
	if _, err := s.repo.Notificacion.MarcarEntidadLeidas(ctx, usuarioID, model.EntidadContrato, contratoID, s.ahora()); err != nil {
		s.logger.Warn("fallo al limpiar hilo de notificaciones del contrato",
			zap.Uint("contrato_id", contratoID), zap.Error(err))
	}

	return toContratoResponse(contrato), nil
}

// ────────────────────── BarrerEstancados ──────────────────────

func (s *contratoService) BarrerEstancados(ctx context.Context, ahora time.Time) (*dto.BarridoResponse, error) {
	umbral := ahora.AddDate(0, -mesesUmbralEstancamiento, 0)

	contratos, err := s.repo.Contrato.ListEstancados(ctx, umbral)
	if err != nil {
		s.logger.Error("fallo al listar contratos estancados", zap.Error(err))
		return nil, err
	}

	resultado := &dto.BarridoResponse{}
	for i := range contratos {
		contrato := &contratos[i]

		contrato.Estado = model.ContratoPendienteInstalacion
		if err := s.repo.Contrato.Update(ctx, contrato); err != nil {
			// Fallo aislado: se registra y se continúa con el resto.
			s.logger.Error("barrido: fallo al actualizar contrato",
				zap.Uint("contrato_id", contrato.ContratoID), zap.Error(err))
			continue
		}
		resultado.Procesados++

		notificado, err := s.notificarPendiente(ctx, contrato, ahora)
		if err != nil {
			s.logger.Error("barrido: fallo al notificar contrato",
				zap.Uint("contrato_id", contrato.ContratoID), zap.Error(err))
			continue
		}
		if notificado {
			resultado.Notificados++
		}
	}

	s.logger.Info("barrido de contratos estancados completado",
		zap.Int("procesados", resultado.Procesados),
		zap.Int("notificados", resultado.Notificados))

	return resultado, nil
}

// ── Notificaciones del ciclo de vida ──

// notificarPendiente emite la notificación de instalación pendiente con
// supresión de duplicados: si ya existe una no leída para el mismo
// (propietario, entidad, tipo), no se crea otra.
func (s *contratoService) notificarPendiente(ctx context.Context, contrato *model.Contrato, ahora time.Time) (bool, error) {
	existe, err := s.repo.Notificacion.ExisteNoLeida(ctx, contrato.UsuarioID,
		model.EntidadContrato, contrato.ContratoID, model.TipoNotifContratoPendiente)
	if err != nil {
		return false, err
	}
	if existe {
		return false, nil
	}

	// La antigüedad se calcula en el momento de notificar, no al crear el contrato.
	edadDias := int(ahora.Sub(contrato.CreatedAt).Hours() / 24)

	notif := &model.Notificacion{
		UsuarioID:         contrato.UsuarioID,
		Titulo:            "Contrato pendiente de instalación",
		Mensaje:           fmt.Sprintf("El contrato de %s lleva %d días sin instalarse.", contrato.NombreCliente, edadDias),
		Tipo:              model.TipoNotifContratoPendiente,
		Prioridad:         model.PrioridadAlta,
		FechaNotificacion: ahora,
		CreatedAt:         ahora,
	}
	notif.RefEntidad(model.EntidadContrato, contrato.ContratoID)

	if err := s.repo.Notificacion.Create(ctx, notif); err != nil {
		return false, err
	}
	return true, nil
}

func (s *contratoService) notificarCreacion(ctx context.Context, contrato *model.Contrato, ahora time.Time) error {
	notif := &model.Notificacion{
		UsuarioID:         contrato.UsuarioID,
		Titulo:            "Contrato creado",
		Mensaje:           fmt.Sprintf("Se ha dado de alta el contrato de %s.", contrato.NombreCliente),
		Tipo:              model.TipoNotifContratoCreado,
		Prioridad:         model.PrioridadNormal,
		FechaNotificacion: ahora,
		CreatedAt:         ahora,
	}
	notif.RefEntidad(model.EntidadContrato, contrato.ContratoID)
	return s.repo.Notificacion.Create(ctx, notif)
}

func (s *contratoService) notificarInstalacion(ctx context.Context, contrato *model.Contrato, ahora time.Time) error {
	notif := &model.Notificacion{
		UsuarioID:         contrato.UsuarioID,
		Titulo:            "Contrato instalado",
		Mensaje:           fmt.Sprintf("El contrato de %s ha quedado instalado.", contrato.NombreCliente),
		Tipo:              model.TipoNotifContratoInstalado,
		Prioridad:         model.PrioridadNormal,
		FechaNotificacion: ahora,
		CreatedAt:         ahora,
	}
	notif.RefEntidad(model.EntidadContrato, contrato.ContratoID)
	return s.repo.Notificacion.Create(ctx, notif)
}

// ── Auxiliares ──

func toContratoResponse(c *model.Contrato) *dto.ContratoResponse {
	return &dto.ContratoResponse{
		ID:            c.ContratoID,
		UsuarioID:     c.UsuarioID,
		NombreCliente: c.NombreCliente,
		Estado:        c.Estado,
		CreatedAt:     c.CreatedAt,
	}
}
