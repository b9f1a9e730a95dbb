package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	Tasks       TaskStatsDTO      `json:"tasks"`
	Inventory   InventoryStatsDTO `json:"inventory"`
	Users       map[string]int    `json:"users"` // cuentas activas por rol
	GeneratedAt time.Time         `json:"generatedAt"`
}

// TaskStatsDTO conteos de tareas.
type TaskStatsDTO struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"` // todos los estados, incluso en 0
	Overdue  int            `json:"overdue"`
}

// InventoryStatsDTO agregados del catálogo.
type InventoryStatsDTO struct {
	TotalProducts  int             `json:"totalProducts"`
	ActiveProducts int             `json:"activeProducts"`
	LowStock       int             `json:"lowStock"`
	OutOfStock     int             `json:"outOfStock"`
	InventoryValue decimal.Decimal `json:"inventoryValue"`
}
