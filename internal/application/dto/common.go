package dto

// PageMeta metadatos de paginación 1-indexada en respuestas de listado.
type PageMeta struct {
	Page        int  `json:"page"`
	PageSize    int  `json:"page_size"`
	TotalItems  int  `json:"total_items"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// NewPageMeta deriva los totales a partir de page/pageSize y el total de filas.
func NewPageMeta(page, pageSize, totalItems int) PageMeta {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalItems + pageSize - 1) / pageSize
	}
	return PageMeta{
		Page:        page,
		PageSize:    pageSize,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// MessageResponse respuesta simple con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}
