package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/invorya/stock-api/internal/domain"
	"github.com/invorya/stock-api/internal/domain/entity"
	"github.com/invorya/stock-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, barcode, name, description, image_url, stock, min_stock, unit_price, category, location, active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto nuevo y asigna el id generado por la BD.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (barcode, name, description, image_url, stock, min_stock, unit_price, category, location, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		product.Barcode, product.Name, product.Description, product.ImageURL,
		product.Stock, product.MinStock, product.UnitPrice,
		product.Category, product.Location, product.Active,
		product.CreatedAt, product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por id. nil si no existe.
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product")
}

// GetByBarcode obtiene un producto por código de barras. nil si no existe.
func (r *ProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE barcode = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, barcode), "get product by barcode")
}

// GetByBarcodeForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE).
// Usar solo dentro de una transacción: serializa el read-modify-write de stock.
func (r *ProductRepo) GetByBarcodeForUpdate(barcode string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE barcode = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, barcode), "get product for update")
}

// Update actualiza los atributos del producto. No toca stock (vía UpdateStock).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, image_url = $4, min_stock = $5,
		    unit_price = $6, category = $7, location = $8, active = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.ImageURL,
		product.MinStock, product.UnitPrice, product.Category, product.Location,
		product.Active, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock fija el stock absoluto y toca updated_at. Solo lo usa el ledger
// dentro de su transacción, con la fila ya bloqueada.
func (r *ProductRepo) UpdateStock(id int64, stock int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`,
		id, stock,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// Deactivate soft delete: marca el producto como inactivo.
func (r *ProductRepo) Deactivate(id int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET active = false, updated_at = now() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	return nil
}

// List productos activos con filtros, ordenados por nombre, más el total.
func (r *ProductRepo) List(filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int, error) {
	where := ` WHERE active`
	args := []any{}
	pos := 1
	if filter.Search != "" {
		where += fmt.Sprintf(" AND (name ILIKE $%d OR barcode ILIKE $%d OR description ILIKE $%d)", pos, pos, pos)
		args = append(args, "%"+filter.Search+"%")
		pos++
	}
	if filter.Category != "" {
		where += fmt.Sprintf(" AND category = $%d", pos)
		args = append(args, filter.Category)
		pos++
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := `SELECT ` + productColumns + ` FROM products` + where +
		fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, total, rows.Err()
}

// Categories categorías distintas de los productos activos.
func (r *ProductRepo) Categories() ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT DISTINCT category FROM products WHERE active AND category <> '' ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	if err := scanProduct(row, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

func scanProduct(row pgx.Row, p *entity.Product) error {
	return row.Scan(
		&p.ID, &p.Barcode, &p.Name, &p.Description, &p.ImageURL,
		&p.Stock, &p.MinStock, &p.UnitPrice, &p.Category, &p.Location,
		&p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
}
