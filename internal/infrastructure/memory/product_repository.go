package memory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/taskstore-api/internal/domain"
	"github.com/jhoicas/taskstore-api/internal/domain/entity"
	"github.com/jhoicas/taskstore-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct {
	s *Store
}

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	if p.ComparePrice != nil {
		v := *p.ComparePrice
		c.ComparePrice = &v
	}
	if p.CostPrice != nil {
		v := *p.CostPrice
		c.CostPrice = &v
	}
	c.Tags = append([]string{}, p.Tags...)
	c.Images = append([]entity.ProductImage{}, p.Images...)
	c.Creator = nil
	return &c
}

// expand requiere s.mu tomado.
func (r *ProductRepo) expand(p *entity.Product) *entity.Product {
	c := cloneProduct(p)
	c.Creator = r.s.userRef(c.CreatedBy)
	return c
}

// skuTaken requiere s.mu tomado.
func (r *ProductRepo) skuTaken(sku, exceptID string) bool {
	for id, p := range r.s.products {
		if id != exceptID && p.SKU == sku {
			return true
		}
	}
	return false
}

// Create persiste un producto; SKU duplicado = DuplicateError{sku}.
func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.skuTaken(p.SKU, p.ID) {
		return &domain.DuplicateError{Field: "sku"}
	}
	r.s.products[p.ID] = cloneProduct(p)
	return nil
}

// GetByID devuelve el producto expandido o (nil, nil).
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if p, ok := r.s.products[id]; ok {
		return r.expand(p), nil
	}
	return nil, nil
}

// GetBySKU busca por SKU normalizado.
func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	sku = entity.NormalizeSKU(sku)
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.SKU == sku {
			return r.expand(p), nil
		}
	}
	return nil, nil
}

// List aplica los filtros; más recientes primero.
func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Product, 0)
	for _, p := range r.s.products {
		if f.ActiveOnly && !p.IsActive {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) && !strings.Contains(strings.ToLower(p.SKU), search) {
			continue
		}
		out = append(out, r.expand(p))
	}
	sortNewestFirst(out, func(p *entity.Product) time.Time { return p.CreatedAt }, func(p *entity.Product) string { return p.ID })
	return out, nil
}

// ListLowStock activos con stock <= umbral.
func (r *ProductRepo) ListLowStock(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Product, 0)
	for _, p := range r.s.products {
		if p.IsActive && p.Stock <= p.LowStockThreshold {
			out = append(out, r.expand(p))
		}
	}
	sortNewestFirst(out, func(p *entity.Product) time.Time { return p.CreatedAt }, func(p *entity.Product) string { return p.ID })
	return out, nil
}

// Update reemplaza el producto completo.
func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.NotFound("Product")
	}
	if r.skuTaken(p.SKU, p.ID) {
		return &domain.DuplicateError{Field: "sku"}
	}
	r.s.products[p.ID] = cloneProduct(p)
	return nil
}

// Delete elimina por id.
func (r *ProductRepo) Delete(_ context.Context, id string) (bool, error) {
	if err := checkID(id); err != nil {
		return false, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return false, nil
	}
	delete(r.s.products, id)
	return true, nil
}
