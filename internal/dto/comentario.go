package dto

import "time"

// ── Módulo de comentarios ──

// RegistrarComentarioRequest alta de comentario sobre un lead
//
// DiasRecordatorio fuera de (0, 90] no es un error: simplemente se omite la
// creación del recordatorio (recorte deliberado de rango, ver Service).
type RegistrarComentarioRequest struct {
	TipoComentarioID  uint   `json:"tipo_comentario_id" binding:"required"`
	Contenido         string `json:"contenido"          binding:"required,min=1,max=5000"`
	CrearRecordatorio bool   `json:"crear_recordatorio"`
	DiasRecordatorio  int    `json:"dias_recordatorio"  binding:"omitempty,min=0,max=365"`
	AvanzarEstado     bool   `json:"avanzar_estado"`
}

// ComentarioResponse comentario serializado hacia el cliente
type ComentarioResponse struct {
	ID               uint      `json:"id"`
	LeadID           uint      `json:"lead_id"`
	UsuarioID        uint      `json:"usuario_id"`
	TipoComentarioID uint      `json:"tipo_comentario_id"`
	TipoComentario   string    `json:"tipo_comentario,omitempty"`
	Contenido        string    `json:"contenido"`
	CreatedAt        time.Time `json:"created_at"`
}

// RegistrarComentarioResponse resultado de la orquestación de comentario
type RegistrarComentarioResponse struct {
	Comentario            ComentarioResponse     `json:"comentario"`
	NotificacionesCreadas []NotificacionResponse `json:"notificaciones_creadas"`
	EstadoNuevo           *EstadoLeadResponse    `json:"estado_nuevo,omitempty"`
}
