package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adrianbura/copie-stok/internal/application/dto"
	"github.com/adrianbura/copie-stok/internal/domain"
	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/adrianbura/copie-stok/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Quantity se maneja vía movimientos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto con cantidad 0. Código duplicado → ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	cat, ok := entity.ParseCategory(in.Category)
	if !ok {
		return nil, fmt.Errorf("%w: categoría %q", domain.ErrInvalidInput, in.Category)
	}
	if in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: precio negativo", domain.ErrInvalidInput)
	}
	code := strings.TrimSpace(in.Code)
	existing, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	expiry, err := parseDate(in.ExpiryDate)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Code:        code,
		Name:        in.Name,
		Category:    cat,
		MinStock:    in.MinStock,
		UnitPrice:   in.UnitPrice,
		Supplier:    in.Supplier,
		Location:    in.Location,
		BatchNumber: in.BatchNumber,
		ExpiryDate:  expiry,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar Quantity (se maneja vía movimientos).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Category != nil {
		cat, ok := entity.ParseCategory(*in.Category)
		if !ok {
			return nil, fmt.Errorf("%w: categoría %q", domain.ErrInvalidInput, *in.Category)
		}
		product.Category = cat
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: precio negativo", domain.ErrInvalidInput)
		}
		product.UnitPrice = *in.UnitPrice
	}
	if in.Supplier != nil {
		product.Supplier = *in.Supplier
	}
	if in.Location != nil {
		product.Location = *in.Location
	}
	if in.BatchNumber != nil {
		product.BatchNumber = *in.BatchNumber
	}
	if in.ExpiryDate != nil {
		expiry, err := parseDate(*in.ExpiryDate)
		if err != nil {
			return nil, err
		}
		product.ExpiryDate = expiry
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con filtro de categoría y búsqueda por código o nombre.
func (uc *ProductUseCase) List(ctx context.Context, category, search string, limit, offset int) (*dto.ProductListResponse, error) {
	filter := repository.ProductFilter{Search: search, Limit: limit, Offset: offset}
	if category != "" {
		cat, ok := entity.ParseCategory(category)
		if !ok {
			return nil, fmt.Errorf("%w: categoría %q", domain.ErrInvalidInput, category)
		}
		filter.Category = cat
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto por ID. Con movimientos registrados → ErrConflict.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// parseDate acepta "" (sin fecha) o YYYY-MM-DD.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, s)
	}
	return &t, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Category:    string(p.Category),
		Quantity:    p.Quantity,
		MinStock:    p.MinStock,
		UnitPrice:   p.UnitPrice,
		Supplier:    p.Supplier,
		Location:    p.Location,
		BatchNumber: p.BatchNumber,
		ExpiryDate:  p.ExpiryDate,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
