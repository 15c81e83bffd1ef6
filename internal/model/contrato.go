package model

// ── Estados de contrato ──

const (
	ContratoActivo               = "activo"
	ContratoPendienteInstalacion = "pendiente_instalacion"
	ContratoInstalado            = "instalado"
	ContratoCancelado            = "cancelado"
)

// Contrato contrato comercial — corresponde a contratos
//
// Un contrato pasa de activo a pendiente_instalacion exactamente una vez,
// cuando el barrido diario detecta que lleva más de un mes sin instalarse.
type Contrato struct {
	ContratoID    uint   `gorm:"primaryKey"                               json:"contrato_id"`
	UsuarioID     uint   `gorm:"not null;index"                           json:"usuario_id"`
	NombreCliente string `gorm:"type:varchar(200);not null"               json:"nombre_cliente"`
	Estado        string `gorm:"type:varchar(30);not null;default:'activo';index" json:"estado"`
	SoftDeleteModel
}

// TableName nombre de la tabla
func (Contrato) TableName() string { return "contratos" }
