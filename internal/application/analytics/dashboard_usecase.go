// Package analytics contiene el caso de uso del resumen del dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/taskstore-api/internal/application/dto"
	"github.com/jhoicas/taskstore-api/internal/domain/entity"
	"github.com/jhoicas/taskstore-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen de tareas, catálogo y usuarios.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cuatro lecturas en paralelo:
//  1. CountTasksByStatus
//  2. CountOverdueTasks(now)
//  3. GetInventorySummary
//  4. CountUsersByRole
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()

	type countsResult struct {
		counts map[string]int
		err    error
	}
	type overdueResult struct {
		n   int
		err error
	}
	type inventoryResult struct {
		sum repository.InventorySummary
		err error
	}

	statusCh := make(chan countsResult, 1)
	overdueCh := make(chan overdueResult, 1)
	invCh := make(chan inventoryResult, 1)
	rolesCh := make(chan countsResult, 1)

	go func() {
		c, err := uc.analyticsRepo.CountTasksByStatus(ctx)
		statusCh <- countsResult{c, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountOverdueTasks(ctx, now)
		overdueCh <- overdueResult{n, err}
	}()
	go func() {
		s, err := uc.analyticsRepo.GetInventorySummary(ctx)
		invCh <- inventoryResult{s, err}
	}()
	go func() {
		c, err := uc.analyticsRepo.CountUsersByRole(ctx)
		rolesCh <- countsResult{c, err}
	}()

	status := <-statusCh
	overdue := <-overdueCh
	inv := <-invCh
	roles := <-rolesCh

	if status.err != nil {
		return nil, fmt.Errorf("dashboard: tareas por estado: %w", status.err)
	}
	if overdue.err != nil {
		return nil, fmt.Errorf("dashboard: tareas vencidas: %w", overdue.err)
	}
	if inv.err != nil {
		return nil, fmt.Errorf("dashboard: inventario: %w", inv.err)
	}
	if roles.err != nil {
		return nil, fmt.Errorf("dashboard: usuarios por rol: %w", roles.err)
	}

	byStatus := map[string]int{
		entity.TaskPending:    0,
		entity.TaskInProgress: 0,
		entity.TaskCompleted:  0,
		entity.TaskCancelled:  0,
	}
	total := 0
	for s, n := range status.counts {
		byStatus[s] = n
		total += n
	}
	users := map[string]int{entity.RoleUser: 0, entity.RoleManager: 0, entity.RoleAdmin: 0}
	for r, n := range roles.counts {
		users[r] = n
	}

	return &dto.DashboardSummaryDTO{
		Tasks: dto.TaskStatsDTO{Total: total, ByStatus: byStatus, Overdue: overdue.n},
		Inventory: dto.InventoryStatsDTO{
			TotalProducts:  inv.sum.TotalProducts,
			ActiveProducts: inv.sum.ActiveProducts,
			LowStock:       inv.sum.LowStock,
			OutOfStock:     inv.sum.OutOfStock,
			InventoryValue: inv.sum.InventoryValue.Round(2),
		},
		Users:       users,
		GeneratedAt: now,
	}, nil
}
