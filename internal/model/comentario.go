package model

import "time"

// TipoComentario taxonomía de comentarios — corresponde a tipos_comentarios
// Tabla de referencia mantenida como configuración fuera de este núcleo.
type TipoComentario struct {
	TipoComentarioID uint   `gorm:"primaryKey"                 json:"tipo_comentario_id"`
	Nombre           string `gorm:"type:varchar(100);not null" json:"nombre"`
	Activo           bool   `gorm:"not null;default:true"      json:"activo"`
}

// TableName nombre de la tabla
func (TipoComentario) TableName() string { return "tipos_comentarios" }

// Comentario anotación sobre un lead — corresponde a comentarios
// Inmutable tras su inserción.
type Comentario struct {
	ComentarioID     uint            `gorm:"primaryKey"                         json:"comentario_id"`
	LeadID           uint            `gorm:"not null;index"                     json:"lead_id"`
	UsuarioID        uint            `gorm:"not null"                           json:"usuario_id"`
	TipoComentarioID uint            `gorm:"not null"                           json:"tipo_comentario_id"`
	TipoComentario   *TipoComentario `gorm:"foreignKey:TipoComentarioID"        json:"tipo_comentario,omitempty"`
	Contenido        string          `gorm:"type:text;not null"                 json:"contenido"`
	CreatedAt        time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName nombre de la tabla
func (Comentario) TableName() string { return "comentarios" }
