package product_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/stock-api/internal/application/dto"
	"github.com/invorya/stock-api/internal/application/product"
	"github.com/invorya/stock-api/internal/domain"
	"github.com/invorya/stock-api/internal/domain/entity"
	"github.com/invorya/stock-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake en memoria del repositorio de productos
// ──────────────────────────────────────────────────────────────────────────────

type fakeRepo struct {
	byID   map[int64]*entity.Product
	nextID int64
}

func newFakeRepo(products ...*entity.Product) *fakeRepo {
	r := &fakeRepo{byID: make(map[int64]*entity.Product), nextID: 1}
	for _, p := range products {
		r.byID[p.ID] = p
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
	}
	return r
}

func (r *fakeRepo) Create(p *entity.Product) error {
	for _, existing := range r.byID {
		if existing.Barcode == p.Barcode {
			return domain.ErrDuplicate
		}
	}
	p.ID = r.nextID
	r.nextID++
	r.byID[p.ID] = p
	return nil
}

func (r *fakeRepo) GetByID(id int64) (*entity.Product, error) { return r.byID[id], nil }

func (r *fakeRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	for _, p := range r.byID {
		if p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) GetByBarcodeForUpdate(barcode string) (*entity.Product, error) {
	return r.GetByBarcode(barcode)
}

func (r *fakeRepo) Update(p *entity.Product) error {
	r.byID[p.ID] = p
	return nil
}

func (r *fakeRepo) UpdateStock(id int64, stock int) error {
	p, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	return nil
}

func (r *fakeRepo) Deactivate(id int64) error {
	p, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Active = false
	return nil
}

func (r *fakeRepo) List(filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int, error) {
	var active []*entity.Product
	for _, p := range r.byID {
		if !p.Active {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		active = append(active, p)
	}
	total := len(active)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return active[offset:end], total, nil
}

func (r *fakeRepo) Categories() ([]string, error) { return []string{"Fixação", "Ferramentas"}, nil }

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ProductoNuevoActivo(t *testing.T) {
	repo := newFakeRepo()
	uc := product.NewProductUseCase(repo)

	out, err := uc.Create(dto.CreateProductRequest{
		Barcode:   "  5601234567890  ",
		Name:      "Parafuso M8x50",
		Stock:     500,
		MinStock:  100,
		UnitPrice: decimal.NewFromFloat(0.15),
		Category:  "Fixação",
	})
	require.NoError(t, err)

	assert.Equal(t, "5601234567890", out.Barcode, "el código de barras debe guardarse sin espacios")
	assert.True(t, out.Active, "el producto nuevo debe nacer activo")
	assert.False(t, out.LowStock, "stock 500 con mínimo 100 no es stock bajo")
	assert.NotZero(t, out.ID)
}

func TestCreate_BarcodeDuplicado(t *testing.T) {
	repo := newFakeRepo(&entity.Product{ID: 1, Barcode: "5601234567890", Name: "Parafuso", Active: true})
	uc := product.NewProductUseCase(repo)

	_, err := uc.Create(dto.CreateProductRequest{Barcode: "5601234567890", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestGetByID_Inexistente(t *testing.T) {
	uc := product.NewProductUseCase(newFakeRepo())

	_, err := uc.GetByID(99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// LowStock es dato derivado, presente solo en la respuesta: stock <= mínimo.
func TestGetByBarcode_LowStockDerivado(t *testing.T) {
	repo := newFakeRepo(&entity.Product{
		ID: 1, Barcode: "5601234567890", Name: "Parafuso", Stock: 10, MinStock: 10, Active: true,
	})
	uc := product.NewProductUseCase(repo)

	out, err := uc.GetByBarcode("5601234567890")
	require.NoError(t, err)
	assert.True(t, out.LowStock, "stock igual al mínimo cuenta como stock bajo")
}

// Update es parcial: los campos nil del request no deben tocarse, y el stock
// nunca se modifica por esta vía.
func TestUpdate_ParcialSinTocarStock(t *testing.T) {
	repo := newFakeRepo(&entity.Product{
		ID: 1, Barcode: "5601234567890", Name: "Parafuso", Description: "M8x50",
		Stock: 500, MinStock: 100, Active: true,
	})
	uc := product.NewProductUseCase(repo)

	name := "Parafuso M8x50 zincado"
	minStock := 50
	out, err := uc.Update(1, dto.UpdateProductRequest{Name: &name, MinStock: &minStock})
	require.NoError(t, err)

	assert.Equal(t, "Parafuso M8x50 zincado", out.Name)
	assert.Equal(t, 50, out.MinStock)
	assert.Equal(t, "M8x50", out.Description, "los campos no enviados deben conservarse")
	assert.Equal(t, 500, out.Stock, "el stock solo cambia vía movimientos")
}

func TestDelete_SoftDelete(t *testing.T) {
	repo := newFakeRepo(&entity.Product{ID: 1, Barcode: "5601234567890", Name: "Parafuso", Active: true})
	uc := product.NewProductUseCase(repo)

	require.NoError(t, uc.Delete(1))

	p := repo.byID[1]
	require.NotNil(t, p, "el soft delete no debe borrar la fila")
	assert.False(t, p.Active, "el producto debe quedar inactivo")

	assert.ErrorIs(t, uc.Delete(99), domain.ErrNotFound)
}

func TestList_ExcluyeInactivosYPagina(t *testing.T) {
	repo := newFakeRepo(
		&entity.Product{ID: 1, Barcode: "a", Name: "Parafuso", Active: true},
		&entity.Product{ID: 2, Barcode: "b", Name: "Porca", Active: true},
		&entity.Product{ID: 3, Barcode: "c", Name: "Descatalogado", Active: false},
	)
	uc := product.NewProductUseCase(repo)

	out, err := uc.List(1, 10, "", "")
	require.NoError(t, err)
	assert.Len(t, out.Items, 2, "los productos inactivos no deben listarse")
	assert.Equal(t, 2, out.Page.TotalItems)
	assert.Equal(t, 1, out.Page.TotalPages)
}

func TestList_FiltroBusqueda(t *testing.T) {
	repo := newFakeRepo(
		&entity.Product{ID: 1, Barcode: "a", Name: "Parafuso M8", Active: true},
		&entity.Product{ID: 2, Barcode: "b", Name: "Porca M8", Active: true},
	)
	uc := product.NewProductUseCase(repo)

	out, err := uc.List(1, 10, "parafuso", "")
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Parafuso M8", out.Items[0].Name)
}
