package repository

import "github.com/invorya/stock-api/internal/domain/entity"

// StockMovementRepository define el puerto de persistencia para el ledger (DIP).
// Los movimientos son append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	// ListPage devuelve una página del histórico con el total de filas.
	// productID nil = ledger global. Orden: created_at DESC, id ASC
	// (desempate por id para que la paginación sea estable).
	ListPage(productID *int64, limit, offset int) ([]*entity.StockMovementDetail, int, error)
}
