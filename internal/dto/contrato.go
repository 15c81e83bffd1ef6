package dto

import "time"

// ── Módulo de contratos ──

// CrearContratoRequest alta de contrato
type CrearContratoRequest struct {
	NombreCliente string `json:"nombre_cliente" binding:"required,min=2,max=200"`
}

// ContratoResponse contrato serializado hacia el cliente
type ContratoResponse struct {
	ID            uint      `json:"id"`
	UsuarioID     uint      `json:"usuario_id"`
	NombreCliente string    `json:"nombre_cliente"`
	Estado        string    `json:"estado"`
	CreatedAt     time.Time `json:"created_at"`
}

// BarridoResponse recuentos agregados del barrido de contratos estancados
// Solo se reportan agregados: los fallos individuales se registran en el log
// y no interrumpen el barrido.
type BarridoResponse struct {
	Procesados  int `json:"procesados"`
	Notificados int `json:"notificados"`
}
