package product

import (
	"strings"
	"time"

	"github.com/invorya/stock-api/internal/application/dto"
	"github.com/invorya/stock-api/internal/domain"
	"github.com/invorya/stock-api/internal/domain/entity"
	"github.com/invorya/stock-api/internal/domain/repository"
)

// ProductUseCase CRUD del catálogo de productos. El stock no se modifica
// aquí: cambia vía el ledger de movimientos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create persiste un producto nuevo. Código de barras duplicado -> ErrDuplicate.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	now := time.Now().UTC()
	p := &entity.Product{
		Barcode:     strings.TrimSpace(in.Barcode),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Stock:       in.Stock,
		MinStock:    in.MinStock,
		UnitPrice:   in.UnitPrice,
		Category:    strings.TrimSpace(in.Category),
		Location:    strings.TrimSpace(in.Location),
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.Barcode == "" || p.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	out := dto.ToProductResponse(p)
	return &out, nil
}

// GetByID obtiene un producto por id. nil si no existe.
func (uc *ProductUseCase) GetByID(id int64) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.ToProductResponse(p)
	return &out, nil
}

// GetByBarcode obtiene un producto por código de barras (lookup del scanner).
func (uc *ProductUseCase) GetByBarcode(barcode string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByBarcode(strings.TrimSpace(barcode))
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.ToProductResponse(p)
	return &out, nil
}

// Update actualización parcial; solo toca los campos no nil del request.
func (uc *ProductUseCase) Update(id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.ImageURL != nil {
		p.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.MinStock != nil {
		p.MinStock = *in.MinStock
	}
	if in.UnitPrice != nil {
		p.UnitPrice = *in.UnitPrice
	}
	if in.Category != nil {
		p.Category = strings.TrimSpace(*in.Category)
	}
	if in.Location != nil {
		p.Location = strings.TrimSpace(*in.Location)
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	p.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	out := dto.ToProductResponse(p)
	return &out, nil
}

// Delete soft delete: marca el producto como inactivo. El histórico de
// movimientos se conserva (FK restrictiva, nunca se borran filas del ledger).
func (uc *ProductUseCase) Delete(id int64) error {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Deactivate(id)
}

// List productos activos paginados con filtros de búsqueda y categoría.
func (uc *ProductUseCase) List(page, pageSize int, search, category string) (*dto.ProductListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	filter := repository.ProductFilter{
		Search:   strings.TrimSpace(search),
		Category: strings.TrimSpace(category),
	}
	items, total, err := uc.repo.List(filter, pageSize, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(items)),
		Page:  dto.NewPageMeta(page, pageSize, total),
	}
	for _, p := range items {
		out.Items = append(out.Items, dto.ToProductResponse(p))
	}
	return out, nil
}

// Categories categorías distintas de los productos activos.
func (uc *ProductUseCase) Categories() ([]string, error) {
	return uc.repo.Categories()
}
