package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/taskstore-api/internal/application/dto"
	"github.com/jhoicas/taskstore-api/internal/application/validation"
	"github.com/jhoicas/taskstore-api/internal/domain"
	"github.com/jhoicas/taskstore-api/internal/domain/entity"
	"github.com/jhoicas/taskstore-api/internal/domain/repository"
	"github.com/jhoicas/taskstore-api/pkg/sanitize"
)

// ProductUseCase CRUD de catálogo. El SKU se normaliza a mayúsculas y es único.
type ProductUseCase struct {
	repo repository.ProductRepository
	now  func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, now: time.Now}
}

// List lista productos con filtros.
func (uc *ProductUseCase) List(ctx context.Context, q dto.ProductListQuery) ([]dto.ProductResponse, error) {
	if err := validation.Struct(q); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, repository.ProductFilter{ActiveOnly: q.Active, Category: q.Category, Search: q.Search})
	if err != nil {
		return nil, err
	}
	return dto.ToProductResponses(list), nil
}

// LowStock productos activos en o por debajo de su umbral.
func (uc *ProductUseCase) LowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToProductResponses(list), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.ToProductResponse(p)
	return &out, nil
}

// Create crea un producto; createdBy es el usuario autenticado.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	now := uc.now()
	p := &entity.Product{
		ID:                uuid.NewString(),
		Name:              sanitize.Text(in.Name),
		Description:       sanitize.Text(in.Description),
		SKU:               entity.NormalizeSKU(in.SKU),
		Price:             in.Price,
		ComparePrice:      in.ComparePrice,
		CostPrice:         in.CostPrice,
		Stock:             in.Stock,
		LowStockThreshold: entity.DefaultLowStockThreshold,
		Category:          in.Category,
		Tags:              sanitize.Strings(in.Tags),
		Images:            dto.ToImages(in.Images),
		IsActive:          true,
		CreatedBy:         userID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if in.LowStockThreshold != nil {
		p.LowStockThreshold = *in.LowStockThreshold
	}
	if in.Ratings != nil {
		p.Ratings = entity.Ratings{Average: in.Ratings.Average, Count: in.Ratings.Count}
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if err := uc.ensureSKUFree(ctx, p.SKU, ""); err != nil {
		return nil, err
	}
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, p.ID)
}

// Update actualización parcial; el resultado se normaliza y revalida.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	p, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		p.Name = sanitize.Text(*in.Name)
	}
	if in.Description != nil {
		p.Description = sanitize.Text(*in.Description)
	}
	if in.SKU != nil {
		p.SKU = entity.NormalizeSKU(*in.SKU)
		if err := uc.ensureSKUFree(ctx, p.SKU, p.ID); err != nil {
			return nil, err
		}
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	in.ComparePrice.Apply(&p.ComparePrice)
	in.CostPrice.Apply(&p.CostPrice)
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.LowStockThreshold != nil {
		p.LowStockThreshold = *in.LowStockThreshold
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Tags != nil {
		p.Tags = sanitize.Strings(in.Tags)
	}
	if in.Images != nil {
		p.Images = dto.ToImages(*in.Images)
	}
	if in.Ratings != nil {
		p.Ratings = entity.Ratings{Average: in.Ratings.Average, Count: in.Ratings.Count}
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, p.ID)
}

// Delete elimina un producto.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return notFoundOnInvalidID(err, "Product")
	}
	if !ok {
		return domain.NotFound("Product")
	}
	return nil
}

func (uc *ProductUseCase) ensureSKUFree(ctx context.Context, sku, exceptID string) error {
	existing, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != exceptID {
		return &domain.DuplicateError{Field: "sku"}
	}
	return nil
}

func (uc *ProductUseCase) load(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOnInvalidID(err, "Product")
	}
	if p == nil {
		return nil, domain.NotFound("Product")
	}
	return p, nil
}
