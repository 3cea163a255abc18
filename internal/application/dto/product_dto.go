package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/invorya/stock-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Barcode     string          `json:"barcode" validate:"required,min=1,max=50"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description" validate:"max=1000"`
	ImageURL    string          `json:"image_url" validate:"max=500"`
	Stock       int             `json:"stock" validate:"min=0"`
	MinStock    int             `json:"min_stock" validate:"min=0"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Category    string          `json:"category" validate:"max=100"`
	Location    string          `json:"location" validate:"max=100"`
}

// UpdateProductRequest entrada para actualización parcial (solo campos no nil).
// Stock no se toca aquí: cambia vía movimientos del ledger.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	ImageURL    *string          `json:"image_url" validate:"omitempty,max=500"`
	MinStock    *int             `json:"min_stock" validate:"omitempty,min=0"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Category    *string          `json:"category" validate:"omitempty,max=100"`
	Location    *string          `json:"location" validate:"omitempty,max=100"`
	Active      *bool            `json:"active"`
}

// ProductResponse salida de un producto. LowStock se deriva (stock <= min_stock).
type ProductResponse struct {
	ID          int64           `json:"id"`
	Barcode     string          `json:"barcode"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	Stock       int             `json:"stock"`
	MinStock    int             `json:"min_stock"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Category    string          `json:"category,omitempty"`
	Location    string          `json:"location,omitempty"`
	Active      bool            `json:"active"`
	LowStock    bool            `json:"low_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageMeta          `json:"page"`
}

// ToProductResponse mapea la entidad al DTO de salida.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Barcode:     p.Barcode,
		Name:        p.Name,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		UnitPrice:   p.UnitPrice,
		Category:    p.Category,
		Location:    p.Location,
		Active:      p.Active,
		LowStock:    p.IsLowStock(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
