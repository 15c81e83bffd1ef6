package dto

import "time"

// ── Módulo de notificaciones: peticiones ──

// ListarNotificacionesRequest filtros del listado de notificaciones activas
type ListarNotificacionesRequest struct {
	PaginationRequest
	Tipo      string `form:"tipo"      binding:"omitempty,max=50"`
	Prioridad string `form:"prioridad" binding:"omitempty,oneof=baja normal alta urgente"`
	Leida     *bool  `form:"leida"     binding:"omitempty"`
}

// ListarProgramadasRequest filtros del listado de notificaciones programadas
type ListarProgramadasRequest struct {
	PaginationRequest
	Tipo      string `form:"tipo"      binding:"omitempty,max=50"`
	Prioridad string `form:"prioridad" binding:"omitempty,oneof=baja normal alta urgente"`
	Buscar    string `form:"buscar"    binding:"omitempty,max=100"`
}

// ── Módulo de notificaciones: respuestas ──

// NotificacionResponse notificación serializada hacia el cliente
type NotificacionResponse struct {
	ID                uint       `json:"id"`
	Titulo            string     `json:"titulo"`
	Mensaje           string     `json:"mensaje"`
	Tipo              string     `json:"tipo"`
	EntidadTipo       *string    `json:"entidad_tipo,omitempty"`
	EntidadID         *uint      `json:"entidad_id,omitempty"`
	Leida             bool       `json:"leida"`
	FechaNotificacion time.Time  `json:"fecha_notificacion"`
	FechaLectura      *time.Time `json:"fecha_lectura,omitempty"`
	Prioridad         string     `json:"prioridad"`
	CreatedAt         time.Time  `json:"created_at"`
}

// NotificacionListMeta bloque meta que acompaña a los listados
type NotificacionListMeta struct {
	NoLeidas int64 `json:"no_leidas"`
}

// ProgramadasResumen recuento de programadas por ventana temporal
type ProgramadasResumen struct {
	Total          int64 `json:"total"`
	Hoy            int64 `json:"hoy"`
	Proximos7Dias  int64 `json:"proximos_7_dias"`
	Proximos30Dias int64 `json:"proximos_30_dias"`
}

// NoLeidasResponse recuento de no leídas con desglose por prioridad
type NoLeidasResponse struct {
	Total        int64            `json:"total"`
	PorPrioridad map[string]int64 `json:"por_prioridad"`
}

// MarcarLeidaResponse resultado de marcar una notificación como leída
type MarcarLeidaResponse struct {
	Notificacion NotificacionResponse `json:"notificacion"`
	NoLeidas     int64                `json:"no_leidas"`
}

// MarcarTodasResponse resultado de marcar todas como leídas
// Afectadas = 0 es un resultado válido, no un error.
type MarcarTodasResponse struct {
	Afectadas int64 `json:"afectadas"`
}

// EliminarNotificacionResponse resultado del borrado lógico
type EliminarNotificacionResponse struct {
	NoLeidas int64 `json:"no_leidas"`
}
