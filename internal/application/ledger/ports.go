package ledger

import (
	"context"

	"github.com/invorya/stock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad del ledger: o se
// actualiza el stock y se inserta el movimiento, o ninguna de las dos cosas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
