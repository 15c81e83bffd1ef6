package model

import (
	"time"

	"gorm.io/gorm"
)

// ── Tipos de notificación ──

const (
	TipoNotifRecordatorioComentario = "recordatorio_comentario"
	TipoNotifContratoCreado         = "contrato_creado"
	TipoNotifContratoPendiente      = "contrato_pendiente_instalacion"
	TipoNotifContratoInstalado      = "contrato_instalado"
)

// ── Prioridades ──

const (
	PrioridadBaja    = "baja"
	PrioridadNormal  = "normal"
	PrioridadAlta    = "alta"
	PrioridadUrgente = "urgente"
)

// ── Tipos de entidad relacionada (referencia polimórfica) ──

const (
	EntidadLead       = "lead"
	EntidadContrato   = "contrato"
	EntidadComentario = "comentario"
)

// Notificacion mensaje del centro de notificaciones — corresponde a notificaciones
//
// Una notificación está "activa" cuando no está borrada y fecha_notificacion <= ahora;
// está "programada" cuando fecha_notificacion > ahora. No hay columna de estado:
// la misma fila cambia de vista por el mero paso del tiempo.
type Notificacion struct {
	NotificacionID    uint           `gorm:"primaryKey"                             json:"notificacion_id"`
	UsuarioID         uint           `gorm:"not null;index"                         json:"usuario_id"`
	Titulo            string         `gorm:"type:varchar(200);not null"             json:"titulo"`
	Mensaje           string         `gorm:"type:text;not null"                     json:"mensaje"`
	Tipo              string         `gorm:"type:varchar(50);not null;index"        json:"tipo"`
	EntidadTipo       *string        `gorm:"type:varchar(20)"                       json:"entidad_tipo,omitempty"`
	EntidadID         *uint          `json:"entidad_id,omitempty"`
	Leida             bool           `gorm:"not null;default:false"                 json:"leida"`
	FechaNotificacion time.Time      `gorm:"not null;index"                         json:"fecha_notificacion"`
	FechaLectura      *time.Time     `json:"fecha_lectura,omitempty"`
	Prioridad         string         `gorm:"type:varchar(10);not null;default:'normal'" json:"prioridad"`
	CreatedAt         time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"     json:"created_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index"                                  json:"deleted_at,omitempty"`
	DeletedBy         *uint          `json:"deleted_by,omitempty"`
}

// TableName nombre de la tabla
func (Notificacion) TableName() string { return "notificaciones" }

// Activa indica si la notificación es visible en el instante dado.
func (n *Notificacion) Activa(ahora time.Time) bool {
	return !n.DeletedAt.Valid && !n.FechaNotificacion.After(ahora)
}

// RefEntidad rellena la referencia polimórfica a la entidad de negocio.
func (n *Notificacion) RefEntidad(tipo string, id uint) {
	n.EntidadTipo = &tipo
	n.EntidadID = &id
}
