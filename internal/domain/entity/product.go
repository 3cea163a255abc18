package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del almacén identificado por código de barras.
// Stock solo cambia a través del ledger de movimientos (o actualización administrativa).
// Active es soft-delete: un producto inactivo no acepta movimientos.
type Product struct {
	ID          int64
	Barcode     string // único, máx 50
	Name        string
	Description string
	ImageURL    string
	Stock       int // nunca negativo tras una salida aplicada por el ledger
	MinStock    int
	UnitPrice   decimal.Decimal
	Category    string
	Location    string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsLowStock indica si el stock está en o por debajo del mínimo.
// Dato derivado de presentación: se calcula, nunca se persiste.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}
