package model

// Usuario referencia mínima de usuario — corresponde a usuarios
//
// La autenticación y la sesión viven en la pasarela corporativa: este núcleo
// recibe siempre un usuario_id numérico ya resuelto. La tabla existe para
// integridad referencial y datos de siembra.
type Usuario struct {
	UsuarioID uint   `gorm:"primaryKey"                 json:"usuario_id"`
	Nombre    string `gorm:"type:varchar(100);not null" json:"nombre"`
	Email     string `gorm:"type:varchar(150);not null;uniqueIndex" json:"email"`
	BaseModel
}

// TableName nombre de la tabla
func (Usuario) TableName() string { return "usuarios" }
