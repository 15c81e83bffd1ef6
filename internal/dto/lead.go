package dto

import "time"

// ── Módulo de leads ──

// EstadoLeadResponse estado del embudo serializado hacia el cliente
type EstadoLeadResponse struct {
	ID           uint   `json:"id"`
	Nombre       string `json:"nombre"`
	Categoria    string `json:"categoria"`
	OrdenProceso int    `json:"orden_proceso"`
	Color        string `json:"color,omitempty"`
}

// TransicionEstado tramo del historial de estados de un lead
//
// Derivado en lectura a partir de pares consecutivos de entradas de auditoría;
// el primer cambio de estado no tiene predecesor y no emite tramo.
type TransicionEstado struct {
	DesdeEstado string    `json:"desde_estado"`
	HastaEstado string    `json:"hasta_estado"`
	Dias        int       `json:"dias"`
	Horas       int       `json:"horas"`
	Minutos     int       `json:"minutos"`
	Fecha       time.Time `json:"fecha"`
}

// HistorialEstadosResponse historial completo de transiciones de un lead
type HistorialEstadosResponse struct {
	LeadID       uint               `json:"lead_id"`
	Transiciones []TransicionEstado `json:"transiciones"`
}
