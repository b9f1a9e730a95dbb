package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/taskstore-api/internal/domain/entity"
	"github.com/jhoicas/taskstore-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo agregados del dashboard en memoria.
type AnalyticsRepo struct {
	s *Store
}

// CountTasksByStatus conteo por estado.
func (r *AnalyticsRepo) CountTasksByStatus(_ context.Context) (map[string]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]int)
	for _, t := range r.s.tasks {
		out[t.Status]++
	}
	return out, nil
}

// CountOverdueTasks tareas abiertas vencidas.
func (r *AnalyticsRepo) CountOverdueTasks(_ context.Context, now time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, t := range r.s.tasks {
		if t.IsOverdue(now) {
			n++
		}
	}
	return n, nil
}

// GetInventorySummary totales del catálogo.
func (r *AnalyticsRepo) GetInventorySummary(_ context.Context) (repository.InventorySummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sum := repository.InventorySummary{InventoryValue: decimal.Zero}
	for _, p := range r.s.products {
		sum.TotalProducts++
		if !p.IsActive {
			continue
		}
		sum.ActiveProducts++
		switch p.StockStatus() {
		case entity.StockOut:
			sum.OutOfStock++
		case entity.StockLow:
			sum.LowStock++
		}
		sum.InventoryValue = sum.InventoryValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock))))
	}
	return sum, nil
}

// CountUsersByRole cuentas activas por rol.
func (r *AnalyticsRepo) CountUsersByRole(_ context.Context) (map[string]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]int)
	for _, u := range r.s.users {
		if u.IsActive {
			out[u.Role]++
		}
	}
	return out, nil
}
