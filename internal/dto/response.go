package dto

// ── Metadatos de petición ──

// RequestMeta metadatos de la petición HTTP para el registro de auditoría.
// Los rellena el Handler; el núcleo nunca accede a estado global de sesión.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// ── Paginación ──

// PaginationRequest parámetros comunes de paginación
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage página (con valor por defecto)
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize tamaño de página (con valor por defecto)
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset desplazamiento calculado
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}
