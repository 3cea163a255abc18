package postgres

import (
	"context"
	"fmt"

	"github.com/invorya/stock-api/internal/domain/entity"
	"github.com/invorya/stock-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del ledger sobre PostgreSQL (usable con pool o tx).
// Solo inserta y lee: las filas del ledger nunca se actualizan ni se borran.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento con sus snapshots y asigna el id monótono de la BD.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (product_id, user_id, type, quantity, previous_stock, new_stock, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		movement.ProductID, movement.UserID, movement.Type, movement.Quantity,
		movement.PreviousStock, movement.NewStock, movement.Notes, movement.CreatedAt,
	).Scan(&movement.ID)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListPage página del histórico con el total. productID nil = ledger global.
// Orden: created_at DESC con desempate por id ASC para paginación estable.
func (r *StockMovementRepo) ListPage(productID *int64, limit, offset int) ([]*entity.StockMovementDetail, int, error) {
	where := ""
	args := []any{}
	pos := 1
	if productID != nil {
		where = fmt.Sprintf(" WHERE m.product_id = $%d", pos)
		args = append(args, *productID)
		pos++
	}

	var total int
	countQuery := `SELECT count(*) FROM stock_movements m` + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	query := `
		SELECT m.id, m.product_id, m.user_id, m.type, m.quantity,
		       m.previous_stock, m.new_stock, m.notes, m.created_at,
		       p.name, p.barcode, u.name
		FROM stock_movements m
		JOIN products p ON p.id = m.product_id
		JOIN users u ON u.id = m.user_id` + where +
		fmt.Sprintf(" ORDER BY m.created_at DESC, m.id ASC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovementDetail
	for rows.Next() {
		var m entity.StockMovementDetail
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.UserID, &m.Type, &m.Quantity,
			&m.PreviousStock, &m.NewStock, &m.Notes, &m.CreatedAt,
			&m.ProductName, &m.ProductBarcode, &m.UserName,
		); err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, total, rows.Err()
}
