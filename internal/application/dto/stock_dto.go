package dto

import (
	"time"

	"github.com/invorya/stock-api/internal/domain/entity"
)

// MovementRequest body para POST /api/stock/entry y /api/stock/exit.
type MovementRequest struct {
	Barcode  string `json:"barcode" validate:"required,min=1,max=50"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
	Notes    string `json:"notes" validate:"max=500"`
}

// MovementResponse una fila del histórico con datos de producto y usuario.
type MovementResponse struct {
	ID             int64     `json:"id"`
	ProductID      int64     `json:"product_id"`
	ProductName    string    `json:"product_name"`
	ProductBarcode string    `json:"product_barcode"`
	UserID         int64     `json:"user_id"`
	UserName       string    `json:"user_name"`
	Type           string    `json:"type"`
	Quantity       int       `json:"quantity"`
	PreviousStock  int       `json:"previous_stock"`
	NewStock       int       `json:"new_stock"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// HistoryResponse página del histórico de movimientos.
type HistoryResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageMeta           `json:"page"`
}

// ToMovementResponse mapea el modelo de lectura al DTO de salida.
func ToMovementResponse(m *entity.StockMovementDetail) MovementResponse {
	return MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		ProductName:    m.ProductName,
		ProductBarcode: m.ProductBarcode,
		UserID:         m.UserID,
		UserName:       m.UserName,
		Type:           m.Type,
		Quantity:       m.Quantity,
		PreviousStock:  m.PreviousStock,
		NewStock:       m.NewStock,
		Notes:          m.Notes,
		CreatedAt:      m.CreatedAt,
	}
}
