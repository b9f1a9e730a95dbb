package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/taskstore-api/internal/domain"
	"github.com/jhoicas/taskstore-api/internal/domain/entity"
	"github.com/jhoicas/taskstore-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

type imageRow struct {
	URL       string `json:"url"`
	Alt       string `json:"alt"`
	IsPrimary bool   `json:"isPrimary"`
}

const productSelect = `
	SELECT p.id, p.name, p.description, p.sku, p.price, p.compare_price, p.cost_price, p.stock,
		p.low_stock_threshold, p.category, p.tags, p.images, p.rating_average, p.rating_count,
		p.is_active, p.created_by, p.created_at, p.updated_at,
		u.id, u.first_name, u.last_name, u.email
	FROM products p
	LEFT JOIN users u ON u.id = p.created_by`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p       entity.Product
		images  []imageRow
		creator refCols
	)
	dest := []any{
		&p.ID, &p.Name, &p.Description, &p.SKU, &p.Price, &p.ComparePrice, &p.CostPrice, &p.Stock,
		&p.LowStockThreshold, &p.Category, &p.Tags, &images, &p.Ratings.Average, &p.Ratings.Count,
		&p.IsActive, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	}
	if err := row.Scan(append(dest, creator.dest()...)...); err != nil {
		return nil, err
	}
	p.Images = make([]entity.ProductImage, 0, len(images))
	for _, img := range images {
		p.Images = append(p.Images, entity.ProductImage(img))
	}
	p.Creator = creator.ref()
	return &p, nil
}

func imageRows(in []entity.ProductImage) []imageRow {
	out := make([]imageRow, 0, len(in))
	for _, img := range in {
		out = append(out, imageRow(img))
	}
	return out
}

// Create persiste un nuevo producto. SKU duplicado → DuplicateError{sku}.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, description, sku, price, compare_price, cost_price, stock,
			low_stock_threshold, category, tags, images, rating_average, rating_count, is_active,
			created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.SKU, product.Price,
		product.ComparePrice, product.CostPrice, product.Stock, product.LowStockThreshold,
		product.Category, nonNilStrings(product.Tags), imageRows(product.Images),
		product.Ratings.Average, product.Ratings.Count, product.IsActive,
		product.CreatedBy, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", translateError(err))
	}
	return nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", translateError(err))
	}
	return p, nil
}

// GetBySKU obtiene un producto por SKU (se guarda en mayúsculas).
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.sku = $1`, entity.NormalizeSKU(sku)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// List lista productos filtrados, más recientes primero.
func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	var (
		where []string
		args  []any
	)
	if filter.ActiveOnly {
		where = append(where, "p.is_active")
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		where = append(where, fmt.Sprintf("p.category = $%d", len(args)))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		args = append(args, "%"+escapeLike(s)+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(p.name ILIKE $%d OR p.sku ILIKE $%d)", n, n))
	}
	query := productSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	return r.list(ctx, query+" ORDER BY p.created_at DESC", args...)
}

// ListLowStock productos activos con stock <= umbral, los más escasos primero.
func (r *ProductRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, productSelect+` WHERE p.is_active AND p.stock <= p.low_stock_threshold ORDER BY p.stock ASC, p.name ASC`)
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update reemplaza los campos editables del producto.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, sku = $4, price = $5, compare_price = $6,
			cost_price = $7, stock = $8, low_stock_threshold = $9, category = $10, tags = $11,
			images = $12, rating_average = $13, rating_count = $14, is_active = $15, updated_at = $16
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.SKU, product.Price,
		product.ComparePrice, product.CostPrice, product.Stock, product.LowStockThreshold,
		product.Category, nonNilStrings(product.Tags), imageRows(product.Images),
		product.Ratings.Average, product.Ratings.Count, product.IsActive, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", translateError(err))
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("Product")
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", translateError(err))
	}
	return cmd.RowsAffected() > 0, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
