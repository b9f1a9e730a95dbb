package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taskstore-api/internal/domain/repository"
)

type stubAnalytics struct {
	statusErr error
}

func (s stubAnalytics) CountTasksByStatus(context.Context) (map[string]int, error) {
	if s.statusErr != nil {
		return nil, s.statusErr
	}
	return map[string]int{"pending": 2, "completed": 3}, nil
}

func (stubAnalytics) CountOverdueTasks(context.Context, time.Time) (int, error) { return 1, nil }

func (stubAnalytics) GetInventorySummary(context.Context) (repository.InventorySummary, error) {
	return repository.InventorySummary{TotalProducts: 4, ActiveProducts: 3, LowStock: 1, OutOfStock: 1, InventoryValue: decimal.RequireFromString("10.005")}, nil
}

func (stubAnalytics) CountUsersByRole(context.Context) (map[string]int, error) {
	return map[string]int{"admin": 1}, nil
}

func TestGetSummary(t *testing.T) {
	uc := NewDashboardUseCase(stubAnalytics{})
	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, out.Tasks.Total)
	assert.Equal(t, 0, out.Tasks.ByStatus["in-progress"], "los estados sin filas aparecen en 0")
	assert.Equal(t, 3, out.Tasks.ByStatus["completed"])
	assert.Equal(t, 1, out.Tasks.Overdue)
	assert.Equal(t, "10.01", out.Inventory.InventoryValue.StringFixed(2))
	assert.Equal(t, 1, out.Users["admin"])
	assert.Equal(t, 0, out.Users["manager"])
}

func TestGetSummary_PropagaError(t *testing.T) {
	uc := NewDashboardUseCase(stubAnalytics{statusErr: errors.New("db caída")})
	_, err := uc.GetSummary(context.Background())
	assert.ErrorContains(t, err, "tareas por estado")
}
