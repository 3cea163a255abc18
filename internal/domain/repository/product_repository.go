package repository

import "github.com/invorya/stock-api/internal/domain/entity"

// ProductFilter filtros de listado de productos.
type ProductFilter struct {
	Search   string // matchea nombre, código de barras o descripción
	Category string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	// GetByBarcodeForUpdate bloquea la fila del producto (SELECT FOR UPDATE)
	// para serializar el read-modify-write de stock dentro de una transacción.
	GetByBarcodeForUpdate(barcode string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock fija el stock absoluto y toca updated_at. Solo lo usa el ledger.
	UpdateStock(id int64, stock int) error
	// Deactivate marca el producto como inactivo (soft delete).
	Deactivate(id int64) error
	// List devuelve solo productos activos, ordenados por nombre, con el total.
	List(filter ProductFilter, limit, offset int) ([]*entity.Product, int, error)
	Categories() ([]string, error)
}
