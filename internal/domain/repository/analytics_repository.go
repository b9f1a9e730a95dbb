package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// InventorySummary agregado crudo del catálogo.
type InventorySummary struct {
	TotalProducts  int
	ActiveProducts int
	LowStock       int             // activos con 0 < stock <= umbral
	OutOfStock     int             // activos con stock = 0
	InventoryValue decimal.Decimal // Σ price × stock de los activos
}

// AnalyticsRepository consultas de lectura para el dashboard. Read-only.
type AnalyticsRepository interface {
	// CountTasksByStatus devuelve el número de tareas por estado (solo estados con filas).
	CountTasksByStatus(ctx context.Context) (map[string]int, error)
	// CountOverdueTasks tareas abiertas con dueDate anterior a now.
	CountOverdueTasks(ctx context.Context, now time.Time) (int, error)
	GetInventorySummary(ctx context.Context) (InventorySummary, error)
	// CountUsersByRole solo cuentas activas.
	CountUsersByRole(ctx context.Context) (map[string]int, error)
}
