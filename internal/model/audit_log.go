package model

import "time"

// ── Acciones auditadas ──

const (
	AccionCreate = "CREATE"
	AccionUpdate = "UPDATE"
	AccionDelete = "DELETE"
)

// AuditLog entrada inmutable del registro de auditoría — corresponde a audit_logs
//
// Tabla de solo inserción: nunca se actualiza ni se borra. Los snapshots
// Antes/Despues son documentos JSONB opacos (el conjunto de campos varía
// según la entidad afectada); su lectura debe ser defensiva.
type AuditLog struct {
	AuditLogID uint      `gorm:"primaryKey"                         json:"audit_log_id"`
	Tabla      string    `gorm:"type:varchar(64);not null;index:idx_audit_registro" json:"tabla"`
	RegistroID uint      `gorm:"not null;index:idx_audit_registro"  json:"registro_id"`
	Accion     string    `gorm:"type:varchar(10);not null"          json:"accion"`
	UsuarioID  uint      `gorm:"not null"                           json:"usuario_id"`
	Antes      JSONMap   `gorm:"type:jsonb"                         json:"antes,omitempty"`
	Despues    JSONMap   `gorm:"type:jsonb"                         json:"despues,omitempty"`
	IP         string    `gorm:"type:varchar(45)"                   json:"ip,omitempty"`
	UserAgent  string    `gorm:"type:varchar(255)"                  json:"user_agent,omitempty"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
}

// TableName nombre de la tabla
func (AuditLog) TableName() string { return "audit_logs" }
