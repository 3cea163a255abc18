package ledger

import (
	"context"
	"time"

	"github.com/invorya/stock-api/internal/domain"
	"github.com/invorya/stock-api/internal/domain/entity"
	"github.com/invorya/stock-api/internal/domain/repository"
)

// Tamaño de página por defecto del histórico cuando el caller no lo indica.
const defaultHistoryPageSize = 20

// LedgerUseCase aplica movimientos de stock (entrada/salida) de forma
// transaccional con bloqueo de fila (SELECT FOR UPDATE) y sirve el histórico
// paginado. Es el único dueño de la creación de filas en stock_movements.
type LedgerUseCase struct {
	txRunner  TxRunner
	movements repository.StockMovementRepository
}

// NewLedgerUseCase construye el caso de uso. movements se usa solo para
// lecturas del histórico (sin transacción); las escrituras pasan por txRunner.
func NewLedgerUseCase(txRunner TxRunner, movements repository.StockMovementRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, movements: movements}
}

// MovementInput entrada para aplicar un movimiento de stock.
// UserID llega ya validado por la capa de autenticación.
type MovementInput struct {
	Barcode  string
	Quantity int
	Type     string // entity.MovementTypeEntry | entity.MovementTypeExit
	Notes    string
	UserID   int64
}

// ApplyMovement aplica un movimiento dentro de una única transacción:
// bloquea la fila del producto, verifica que esté activo, calcula el nuevo
// stock (salida falla con InsufficientStockError si quedaría negativo),
// persiste el stock y guarda el movimiento con los snapshots antes/después.
// Cualquier error hace rollback completo. Devuelve el producto actualizado.
func (uc *LedgerUseCase) ApplyMovement(ctx context.Context, input MovementInput) (*entity.Product, error) {
	// Los handlers ya validan, pero el ledger re-valida como invariante propio.
	if input.Quantity <= 0 || input.UserID <= 0 || input.Barcode == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(input.Type) {
		return nil, domain.ErrInvalidInput
	}
	if len(input.Notes) > 500 {
		return nil, domain.ErrInvalidInput
	}

	var snapshot *entity.Product
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la fila del producto: dos movimientos concurrentes sobre el
		// mismo producto se serializan aquí y nunca leen el mismo stock obsoleto.
		product, err := productRepo.GetByBarcodeForUpdate(input.Barcode)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if !product.Active {
			return domain.ErrProductInactive
		}

		previous := product.Stock
		var newStock int
		switch input.Type {
		case entity.MovementTypeEntry:
			newStock = previous + input.Quantity
		case entity.MovementTypeExit:
			if previous < input.Quantity {
				return &domain.InsufficientStockError{Available: previous, Requested: input.Quantity}
			}
			newStock = previous - input.Quantity
		}

		if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
			return err
		}

		now := time.Now().UTC()
		mov := &entity.StockMovement{
			ProductID:     product.ID,
			UserID:        input.UserID,
			Type:          input.Type,
			Quantity:      input.Quantity,
			PreviousStock: previous,
			NewStock:      newStock,
			Notes:         input.Notes,
			CreatedAt:     now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}

		product.Stock = newStock
		product.UpdatedAt = now
		snapshot = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// HistoryPage página del histórico con el total para que el caller derive
// total_pages / has_next / has_previous.
type HistoryPage struct {
	Items      []*entity.StockMovementDetail
	Page       int
	PageSize   int
	TotalItems int
}

// GetHistory devuelve una página del histórico, del producto indicado o del
// ledger global si productID es nil. Lectura pura, sin bloqueo; el orden es
// created_at DESC con desempate por id para paginación estable. El máximo de
// pageSize lo acota el caller, no el ledger.
func (uc *LedgerUseCase) GetHistory(ctx context.Context, productID *int64, page, pageSize int) (*HistoryPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultHistoryPageSize
	}
	offset := (page - 1) * pageSize

	items, total, err := uc.movements.ListPage(productID, pageSize, offset)
	if err != nil {
		return nil, err
	}
	return &HistoryPage{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
	}, nil
}
