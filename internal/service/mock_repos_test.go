package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/model"
	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/repository"
)

// ── Mock TxManager ──

// restaurable lo implementan los mocks cuyo estado debe poder revertirse.
type restaurable interface {
	snapshot() func()
}

// mockTxManager simula la semántica transaccional: toma una instantánea del
// estado de todos los mocks y la restaura si el cuerpo devuelve error.
type mockTxManager struct {
	repo  *repository.Repository
	mocks []restaurable
}

func (m *mockTxManager) Transaction(_ context.Context, fn func(txRepo *repository.Repository) error) error {
	restauraciones := make([]func(), 0, len(m.mocks))
	for _, mk := range m.mocks {
		restauraciones = append(restauraciones, mk.snapshot())
	}
	if err := fn(m.repo); err != nil {
		for _, restaurar := range restauraciones {
			restaurar()
		}
		return err
	}
	return nil
}

// ── Mock NotificacionRepository ──

type mockNotificacionRepo struct {
	notifs    map[uint]*model.Notificacion
	nextID    uint
	errCreate error // si no es nil, Create falla con este error
}

func newMockNotificacionRepo() *mockNotificacionRepo {
	return &mockNotificacionRepo{notifs: make(map[uint]*model.Notificacion), nextID: 1}
}

func (m *mockNotificacionRepo) snapshot() func() {
	copia := make(map[uint]*model.Notificacion, len(m.notifs))
	for id, n := range m.notifs {
		c := *n
		copia[id] = &c
	}
	siguiente := m.nextID
	return func() {
		m.notifs = copia
		m.nextID = siguiente
	}
}

func (m *mockNotificacionRepo) Create(_ context.Context, n *model.Notificacion) error {
	if m.errCreate != nil {
		return m.errCreate
	}
	if n.NotificacionID == 0 {
		n.NotificacionID = m.nextID
		m.nextID++
	}
	m.notifs[n.NotificacionID] = n
	return nil
}

func (m *mockNotificacionRepo) GetActiva(_ context.Context, id, usuarioID uint, ahora time.Time) (*model.Notificacion, error) {
	n, ok := m.notifs[id]
	if !ok || n.UsuarioID != usuarioID || n.DeletedAt.Valid || n.FechaNotificacion.After(ahora) {
		return nil, gorm.ErrRecordNotFound
	}
	return n, nil
}

func (m *mockNotificacionRepo) GetPropia(_ context.Context, id, usuarioID uint) (*model.Notificacion, error) {
	n, ok := m.notifs[id]
	if !ok || n.UsuarioID != usuarioID || n.DeletedAt.Valid {
		return nil, gorm.ErrRecordNotFound
	}
	return n, nil
}

func (m *mockNotificacionRepo) ExistePropia(_ context.Context, id, usuarioID uint) (bool, error) {
	n, ok := m.notifs[id]
	return ok && n.UsuarioID == usuarioID, nil
}

func (m *mockNotificacionRepo) Update(_ context.Context, n *model.Notificacion) error {
	m.notifs[n.NotificacionID] = n
	return nil
}

func (m *mockNotificacionRepo) MarcarTodasLeidas(_ context.Context, usuarioID uint, ahora time.Time) (int64, error) {
	var afectadas int64
	for _, n := range m.notifs {
		if n.UsuarioID != usuarioID || n.DeletedAt.Valid || n.Leida || n.FechaNotificacion.After(ahora) {
			continue
		}
		n.Leida = true
		lectura := ahora
		n.FechaLectura = &lectura
		afectadas++
	}
	return afectadas, nil
}

func (m *mockNotificacionRepo) SoftDelete(_ context.Context, id, usuarioID, eliminadaPor uint, ahora time.Time) (int64, error) {
	n, ok := m.notifs[id]
	if !ok || n.UsuarioID != usuarioID || n.DeletedAt.Valid {
		return 0, nil
	}
	n.DeletedAt = gorm.DeletedAt{Time: ahora, Valid: true}
	n.DeletedBy = &eliminadaPor
	return 1, nil
}

func (m *mockNotificacionRepo) ContarNoLeidas(_ context.Context, usuarioID uint, hasta time.Time) (int64, map[string]int64, error) {
	var total int64
	desglose := make(map[string]int64)
	for _, n := range m.notifs {
		if n.UsuarioID != usuarioID || n.DeletedAt.Valid || n.Leida || n.FechaNotificacion.After(hasta) {
			continue
		}
		total++
		desglose[n.Prioridad]++
	}
	return total, desglose, nil
}

func (m *mockNotificacionRepo) ListActivas(_ context.Context, usuarioID uint, f *repository.NotificacionFilters, ahora time.Time, offset, limit int) ([]model.Notificacion, int64, error) {
	var items []model.Notificacion
	for _, n := range m.notifs {
		if n.UsuarioID != usuarioID || n.DeletedAt.Valid || n.FechaNotificacion.After(ahora) {
			continue
		}
		if !cumpleFiltros(n, f) {
			continue
		}
		items = append(items, *n)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].FechaNotificacion.After(items[j].FechaNotificacion)
	})
	return paginar(items, offset, limit), int64(len(items)), nil
}

func (m *mockNotificacionRepo) ListProgramadas(_ context.Context, usuarioID uint, f *repository.NotificacionFilters, ahora time.Time, offset, limit int) ([]model.Notificacion, int64, error) {
	var items []model.Notificacion
	for _, n := range m.notifs {
		if n.UsuarioID != usuarioID || n.DeletedAt.Valid || !n.FechaNotificacion.After(ahora) {
			continue
		}
		if !cumpleFiltros(n, f) {
			continue
		}
		if f != nil && f.Buscar != "" {
			patron := strings.ToLower(f.Buscar)
			if !strings.Contains(strings.ToLower(n.Titulo), patron) &&
				!strings.Contains(strings.ToLower(n.Mensaje), patron) {
				continue
			}
		}
		items = append(items, *n)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].FechaNotificacion.Before(items[j].FechaNotificacion)
	})
	return paginar(items, offset, limit), int64(len(items)), nil
}

func (m *mockNotificacionRepo) ContarProgramadasVentanas(_ context.Context, usuarioID uint, ahora time.Time) (*repository.ProgramadasVentanas, error) {
	finHoy := time.Date(ahora.Year(), ahora.Month(), ahora.Day()+1, 0, 0, 0, 0, ahora.Location())
	v := &repository.ProgramadasVentanas{}
	for _, n := range m.notifs {
		if n.UsuarioID != usuarioID || n.DeletedAt.Valid || !n.FechaNotificacion.After(ahora) {
			continue
		}
		v.Total++
		if n.FechaNotificacion.Before(finHoy) {
			v.Hoy++
		}
		if n.FechaNotificacion.Before(ahora.AddDate(0, 0, 7)) {
			v.Proximos7Dias++
		}
		if n.FechaNotificacion.Before(ahora.AddDate(0, 0, 30)) {
			v.Proximos30Dias++
		}
	}
	return v, nil
}

func (m *mockNotificacionRepo) ExisteNoLeida(_ context.Context, usuarioID uint, entidadTipo string, entidadID uint, tipo string) (bool, error) {
	for _, n := range m.notifs {
		if n.UsuarioID != usuarioID || n.DeletedAt.Valid || n.Leida || n.Tipo != tipo {
			continue
		}
		if n.EntidadTipo == nil || n.EntidadID == nil {
			continue
		}
		if *n.EntidadTipo == entidadTipo && *n.EntidadID == entidadID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockNotificacionRepo) MarcarEntidadLeidas(_ context.Context, usuarioID uint, entidadTipo string, entidadID uint, ahora time.Time) (int64, error) {
	var afectadas int64
	for _, n := range m.notifs {
		if n.UsuarioID != usuarioID || n.DeletedAt.Valid || n.Leida {
			continue
		}
		if n.EntidadTipo == nil || n.EntidadID == nil || *n.EntidadTipo != entidadTipo || *n.EntidadID != entidadID {
			continue
		}
		n.Leida = true
		lectura := ahora
		n.FechaLectura = &lectura
		afectadas++
	}
	return afectadas, nil
}

func cumpleFiltros(n *model.Notificacion, f *repository.NotificacionFilters) bool {
	if f == nil {
		return true
	}
	if f.Tipo != "" && n.Tipo != f.Tipo {
		return false
	}
	if f.Prioridad != "" && n.Prioridad != f.Prioridad {
		return false
	}
	if f.Leida != nil && n.Leida != *f.Leida {
		return false
	}
	return true
}

func paginar(items []model.Notificacion, offset, limit int) []model.Notificacion {
	if offset >= len(items) {
		return nil
	}
	fin := offset + limit
	if fin > len(items) {
		fin = len(items)
	}
	return items[offset:fin]
}

// ── Mock LeadRepository ──

type mockLeadRepo struct {
	leads     map[uint]*model.Lead
	errUpdate error // si no es nil, Update falla con este error
}

func newMockLeadRepo() *mockLeadRepo {
	return &mockLeadRepo{leads: make(map[uint]*model.Lead)}
}

func (m *mockLeadRepo) snapshot() func() {
	copia := make(map[uint]*model.Lead, len(m.leads))
	for id, l := range m.leads {
		c := *l
		copia[id] = &c
	}
	return func() { m.leads = copia }
}

func (m *mockLeadRepo) GetByID(_ context.Context, id uint) (*model.Lead, error) {
	if l, ok := m.leads[id]; ok && !l.DeletedAt.Valid {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLeadRepo) GetByIDForUpdate(ctx context.Context, id uint) (*model.Lead, error) {
	return m.GetByID(ctx, id)
}

func (m *mockLeadRepo) Update(_ context.Context, lead *model.Lead) error {
	if m.errUpdate != nil {
		return m.errUpdate
	}
	m.leads[lead.LeadID] = lead
	return nil
}

// ── Mock EstadoLeadRepository ──

type mockEstadoLeadRepo struct {
	estados map[uint]*model.EstadoLead
}

func newMockEstadoLeadRepo() *mockEstadoLeadRepo {
	m := &mockEstadoLeadRepo{estados: make(map[uint]*model.EstadoLead)}
	// Catálogo con el que trabaja la migración inicial.
	for id, nombre := range map[uint]string{
		1: "Nuevo", 2: "Contactado", 3: "Calificado",
		4: "Propuesta enviada", 5: "Negociación", 6: "Ganado", 7: "Perdido",
	} {
		m.estados[id] = &model.EstadoLead{
			EstadoLeadID: id,
			Nombre:       nombre,
			Categoria:    model.CategoriaEstadoActivo,
			OrdenProceso: int(id),
			Activo:       true,
		}
	}
	return m
}

func (m *mockEstadoLeadRepo) GetByID(_ context.Context, id uint) (*model.EstadoLead, error) {
	if e, ok := m.estados[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEstadoLeadRepo) List(_ context.Context) ([]model.EstadoLead, error) {
	result := make([]model.EstadoLead, 0, len(m.estados))
	for _, e := range m.estados {
		result = append(result, *e)
	}
	return result, nil
}

// ── Mock ComentarioRepository ──

type mockComentarioRepo struct {
	comentarios map[uint]*model.Comentario
	nextID      uint
}

func newMockComentarioRepo() *mockComentarioRepo {
	return &mockComentarioRepo{comentarios: make(map[uint]*model.Comentario), nextID: 1}
}

func (m *mockComentarioRepo) snapshot() func() {
	copia := make(map[uint]*model.Comentario, len(m.comentarios))
	for id, c := range m.comentarios {
		cc := *c
		copia[id] = &cc
	}
	siguiente := m.nextID
	return func() {
		m.comentarios = copia
		m.nextID = siguiente
	}
}

func (m *mockComentarioRepo) Create(_ context.Context, c *model.Comentario) error {
	if c.ComentarioID == 0 {
		c.ComentarioID = m.nextID
		m.nextID++
	}
	m.comentarios[c.ComentarioID] = c
	return nil
}

func (m *mockComentarioRepo) ListPorLead(_ context.Context, leadID uint) ([]model.Comentario, error) {
	var result []model.Comentario
	for _, c := range m.comentarios {
		if c.LeadID == leadID {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// ── Mock TipoComentarioRepository ──

type mockTipoComentarioRepo struct {
	tipos map[uint]*model.TipoComentario
}

func newMockTipoComentarioRepo() *mockTipoComentarioRepo {
	m := &mockTipoComentarioRepo{tipos: make(map[uint]*model.TipoComentario)}
	for id, nombre := range map[uint]string{
		1: "Nota interna", 2: "Contacto inicial", 3: "Seguimiento lead",
		4: "Propuesta enviada", 5: "Negociación",
	} {
		m.tipos[id] = &model.TipoComentario{TipoComentarioID: id, Nombre: nombre, Activo: true}
	}
	return m
}

func (m *mockTipoComentarioRepo) GetByID(_ context.Context, id uint) (*model.TipoComentario, error) {
	if t, ok := m.tipos[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTipoComentarioRepo) List(_ context.Context) ([]model.TipoComentario, error) {
	result := make([]model.TipoComentario, 0, len(m.tipos))
	for _, t := range m.tipos {
		result = append(result, *t)
	}
	return result, nil
}

// ── Mock ContratoRepository ──

type mockContratoRepo struct {
	contratos map[uint]*model.Contrato
	nextID    uint
	errUpdate map[uint]error // fallos inyectados por contrato
}

func newMockContratoRepo() *mockContratoRepo {
	return &mockContratoRepo{
		contratos: make(map[uint]*model.Contrato),
		nextID:    1,
		errUpdate: make(map[uint]error),
	}
}

func (m *mockContratoRepo) Create(_ context.Context, c *model.Contrato) error {
	if c.ContratoID == 0 {
		c.ContratoID = m.nextID
		m.nextID++
	}
	m.contratos[c.ContratoID] = c
	return nil
}

func (m *mockContratoRepo) GetByID(_ context.Context, id uint) (*model.Contrato, error) {
	if c, ok := m.contratos[id]; ok && !c.DeletedAt.Valid {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockContratoRepo) Update(_ context.Context, c *model.Contrato) error {
	if err, ok := m.errUpdate[c.ContratoID]; ok {
		return err
	}
	m.contratos[c.ContratoID] = c
	return nil
}

func (m *mockContratoRepo) ListEstancados(_ context.Context, umbral time.Time) ([]model.Contrato, error) {
	var result []model.Contrato
	for _, c := range m.contratos {
		if c.DeletedAt.Valid || c.Estado != model.ContratoActivo {
			continue
		}
		if c.CreatedAt.Before(umbral) {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ContratoID < result[j].ContratoID
	})
	return result, nil
}

// ── Mock AuditLogRepository ──

type mockAuditLogRepo struct {
	entradas  []model.AuditLog
	nextID    uint
	errCreate error // si no es nil, Create falla con este error
}

func newMockAuditLogRepo() *mockAuditLogRepo {
	return &mockAuditLogRepo{nextID: 1}
}

func (m *mockAuditLogRepo) snapshot() func() {
	copia := make([]model.AuditLog, len(m.entradas))
	copy(copia, m.entradas)
	siguiente := m.nextID
	return func() {
		m.entradas = copia
		m.nextID = siguiente
	}
}

func (m *mockAuditLogRepo) Create(_ context.Context, entrada *model.AuditLog) error {
	if m.errCreate != nil {
		return m.errCreate
	}
	if entrada.AuditLogID == 0 {
		entrada.AuditLogID = m.nextID
		m.nextID++
	}
	if entrada.CreatedAt.IsZero() {
		entrada.CreatedAt = time.Now()
	}
	m.entradas = append(m.entradas, *entrada)
	return nil
}

func (m *mockAuditLogRepo) ListPorRegistro(_ context.Context, tabla string, registroID uint, accion string) ([]model.AuditLog, error) {
	var result []model.AuditLog
	for _, e := range m.entradas {
		if e.Tabla == tabla && e.RegistroID == registroID && e.Accion == accion {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// ── Entorno de pruebas compartido ──

// entornoPruebas agrupa el Repository de mocks y los mocks individuales para
// poder sembrar datos e inyectar fallos desde los tests.
type entornoPruebas struct {
	repo        *repository.Repository
	notifs      *mockNotificacionRepo
	leads       *mockLeadRepo
	estados     *mockEstadoLeadRepo
	comentarios *mockComentarioRepo
	tipos       *mockTipoComentarioRepo
	contratos   *mockContratoRepo
	auditoria   *mockAuditLogRepo
}

func nuevoEntornoPruebas() *entornoPruebas {
	e := &entornoPruebas{
		notifs:      newMockNotificacionRepo(),
		leads:       newMockLeadRepo(),
		estados:     newMockEstadoLeadRepo(),
		comentarios: newMockComentarioRepo(),
		tipos:       newMockTipoComentarioRepo(),
		contratos:   newMockContratoRepo(),
		auditoria:   newMockAuditLogRepo(),
	}
	e.repo = &repository.Repository{
		Notificacion:   e.notifs,
		Lead:           e.leads,
		EstadoLead:     e.estados,
		Comentario:     e.comentarios,
		TipoComentario: e.tipos,
		Contrato:       e.contratos,
		AuditLog:       e.auditoria,
	}
	e.repo.Tx = &mockTxManager{
		repo:  e.repo,
		mocks: []restaurable{e.notifs, e.leads, e.comentarios, e.auditoria},
	}
	return e
}
