package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ── Tipo JSONB para snapshots de auditoría ──

// JSONMap corresponde a una columna JSONB de PostgreSQL con estructura libre.
// Implementa las interfaces Scanner/Valuer de GORM.
type JSONMap map[string]interface{}

// Scan deserializa el JSONB devuelto por PostgreSQL.
func (m *JSONMap) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("JSONMap.Scan: tipo no soportado %T", src)
	}
	if len(data) == 0 {
		*m = JSONMap{}
		return nil
	}
	return json.Unmarshal(data, m)
}

// Value serializa el mapa como JSON para PostgreSQL.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// BaseModel campos de auditoría comunes (los modelos de negocio lo embeben)
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CreatedBy *uint     `json:"created_by,omitempty"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	UpdatedBy *uint     `json:"updated_by,omitempty"`
}

// SoftDeleteModel campos de auditoría con borrado lógico
// En este sistema no existe el borrado físico: se conserva todo el historial.
type SoftDeleteModel struct {
	BaseModel
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	DeletedBy *uint          `json:"deleted_by,omitempty"`
}
