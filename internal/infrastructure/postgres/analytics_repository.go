package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/taskstore-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// CountTasksByStatus agrupa tareas por estado.
func (r *AnalyticsRepo) CountTasksByStatus(ctx context.Context) (map[string]int, error) {
	return r.countBy(ctx, `SELECT status, COUNT(*) FROM tasks GROUP BY status`)
}

// CountUsersByRole agrupa cuentas activas por rol.
func (r *AnalyticsRepo) CountUsersByRole(ctx context.Context) (map[string]int, error) {
	return r.countBy(ctx, `SELECT role, COUNT(*) FROM users WHERE is_active GROUP BY role`)
}

func (r *AnalyticsRepo) countBy(ctx context.Context, query string) (map[string]int, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.countBy: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			key string
			n   int
		)
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("analytics.countBy scan: %w", err)
		}
		out[key] = n
	}
	return out, rows.Err()
}

// CountOverdueTasks tareas abiertas con due_date vencida.
func (r *AnalyticsRepo) CountOverdueTasks(ctx context.Context, now time.Time) (int, error) {
	const query = `
	SELECT COUNT(*)
	FROM tasks
	WHERE due_date IS NOT NULL
	  AND due_date < $1
	  AND status NOT IN ('completed', 'cancelled')`
	var n int
	if err := r.q.QueryRow(ctx, query, now).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.CountOverdueTasks: %w", err)
	}
	return n, nil
}

// GetInventorySummary agregados del catálogo. Bajo stock excluye los agotados.
func (r *AnalyticsRepo) GetInventorySummary(ctx context.Context) (repository.InventorySummary, error) {
	const query = `
	SELECT
	    COUNT(*)                                                                          AS total_products,
	    COUNT(*) FILTER (WHERE is_active)                                                 AS active_products,
	    COUNT(*) FILTER (WHERE is_active AND stock > 0 AND stock <= low_stock_threshold)  AS low_stock,
	    COUNT(*) FILTER (WHERE is_active AND stock = 0)                                   AS out_of_stock,
	    COALESCE(SUM(price * stock) FILTER (WHERE is_active), 0)                          AS inventory_value
	FROM products`

	var s repository.InventorySummary
	err := r.q.QueryRow(ctx, query).Scan(
		&s.TotalProducts, &s.ActiveProducts, &s.LowStock, &s.OutOfStock, &s.InventoryValue,
	)
	if err != nil {
		return repository.InventorySummary{}, fmt.Errorf("analytics.GetInventorySummary: %w", err)
	}
	return s, nil
}
