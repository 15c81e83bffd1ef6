package model

// ── Categorías de estado de lead ──

const (
	CategoriaEstadoNuevo         = "nuevo"
	CategoriaEstadoActivo        = "activo"
	CategoriaEstadoFinalPositivo = "final_positivo"
	CategoriaEstadoFinalNegativo = "final_negativo"
)

// EstadoLead catálogo de estados del embudo comercial — corresponde a estados_leads
//
// OrdenProceso define únicamente la ordenación por defecto en listados; no
// restringe qué transiciones son legales (las transiciones las dicta la
// taxonomía de tipos de comentario, ver service.transicionesPorTipoComentario).
type EstadoLead struct {
	EstadoLeadID uint   `gorm:"primaryKey"                      json:"estado_lead_id"`
	Nombre       string `gorm:"type:varchar(100);not null"      json:"nombre"`
	Categoria    string `gorm:"type:varchar(20);not null"       json:"categoria"`
	OrdenProceso int    `gorm:"not null;default:0"              json:"orden_proceso"`
	Color        string `gorm:"type:varchar(20)"                json:"color"`
	Activo       bool   `gorm:"not null;default:true"           json:"activo"`
}

// TableName nombre de la tabla
func (EstadoLead) TableName() string { return "estados_leads" }

// Lead oportunidad comercial — corresponde a leads
// Los campos puramente comerciales (origen, importe, etc.) viven fuera de este núcleo.
type Lead struct {
	LeadID       uint        `gorm:"primaryKey"                 json:"lead_id"`
	Nombre       string      `gorm:"type:varchar(200);not null" json:"nombre"`
	EstadoLeadID uint        `gorm:"not null;index"             json:"estado_lead_id"`
	EstadoLead   *EstadoLead `gorm:"foreignKey:EstadoLeadID"    json:"estado_lead,omitempty"`
	SoftDeleteModel
}

// TableName nombre de la tabla
func (Lead) TableName() string { return "leads" }
