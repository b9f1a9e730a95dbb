package entity

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taskstore-api/internal/domain"
)

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// ── Task ──────────────────────────────────────────────────────────────────────

func TestTaskNormalize_Progreso100Completa(t *testing.T) {
	task := &Task{Status: TaskPending, Progress: 100}
	task.Normalize(fixedNow)

	assert.Equal(t, TaskCompleted, task.Status)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, fixedNow, *task.CompletedAt)
}

func TestTaskNormalize_ProgresoParcialNuncaPending(t *testing.T) {
	for _, p := range []int{1, 50, 99} {
		task := &Task{Status: TaskPending, Progress: p}
		task.Normalize(fixedNow)
		assert.Equal(t, TaskInProgress, task.Status, "progress=%d", p)
		assert.Nil(t, task.CompletedAt)
	}
}

func TestTaskNormalize_ProgresoParcialRespetaOtrosEstados(t *testing.T) {
	task := &Task{Status: TaskCancelled, Progress: 40}
	task.Normalize(fixedNow)
	assert.Equal(t, TaskCancelled, task.Status)
}

func TestTaskNormalize_CompletedAtSigueAlEstado(t *testing.T) {
	earlier := fixedNow.Add(-time.Hour)
	task := &Task{Status: TaskCompleted, CompletedAt: &earlier}
	task.Normalize(fixedNow)
	assert.Equal(t, earlier, *task.CompletedAt, "no se sobrescribe un completedAt existente")

	task.Status = TaskInProgress
	task.Normalize(fixedNow)
	assert.Nil(t, task.CompletedAt, "al salir de completed se limpia")
}

func TestTaskStatusColor(t *testing.T) {
	cases := map[string]string{
		TaskPending:    "#ffc107",
		TaskInProgress: "#17a2b8",
		TaskCompleted:  "#28a745",
		TaskCancelled:  "#dc3545",
	}
	for status, color := range cases {
		assert.Equal(t, color, (&Task{Status: status}).StatusColor())
	}
}

func TestTaskIsOverdue(t *testing.T) {
	past := fixedNow.Add(-24 * time.Hour)
	future := fixedNow.Add(24 * time.Hour)

	assert.True(t, (&Task{Status: TaskPending, DueDate: &past}).IsOverdue(fixedNow))
	assert.False(t, (&Task{Status: TaskCompleted, DueDate: &past}).IsOverdue(fixedNow))
	assert.False(t, (&Task{Status: TaskCancelled, DueDate: &past}).IsOverdue(fixedNow))
	assert.False(t, (&Task{Status: TaskPending, DueDate: &future}).IsOverdue(fixedNow))
	assert.False(t, (&Task{Status: TaskPending}).IsOverdue(fixedNow))
}

func TestTaskValidate(t *testing.T) {
	task := &Task{Title: "Write docs"}
	task.ApplyDefaults()
	require.NoError(t, task.Validate())

	bad := &Task{Title: strings.Repeat("x", 101), Status: "done", Priority: "asap", Progress: 120}
	err := bad.Validate()
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))

	fields := make([]string, 0, len(verr.Errors))
	for _, fe := range verr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"title", "status", "priority", "progress"}, fields)
}

// ── Product ───────────────────────────────────────────────────────────────────

func TestProductNormalizeImages_UnaSolaPrincipal(t *testing.T) {
	p := &Product{Images: []ProductImage{
		{URL: "a", IsPrimary: false},
		{URL: "b", IsPrimary: true},
		{URL: "c", IsPrimary: true},
		{URL: "d", IsPrimary: true},
	}}
	p.NormalizeImages()

	primaries := 0
	for _, img := range p.Images {
		if img.IsPrimary {
			primaries++
		}
	}
	assert.Equal(t, 1, primaries)
	assert.Equal(t, "b", p.PrimaryImage().URL, "la primera marcada conserva el flag")
}

func TestProductNormalizeImages_SinPrincipalSigueSinPrincipal(t *testing.T) {
	p := &Product{Images: []ProductImage{{URL: "a"}, {URL: "b"}}}
	p.NormalizeImages()
	assert.Nil(t, p.PrimaryImage())
}

func TestProductNormalize_SKUMayusculas(t *testing.T) {
	p := &Product{SKU: "  abc-01 "}
	p.Normalize()
	assert.Equal(t, "ABC-01", p.SKU)
	assert.NotNil(t, p.Tags)
}

func TestProductDiscountPercentage(t *testing.T) {
	p := &Product{Price: decimal.RequireFromString("75"), ComparePrice: dec("100")}
	assert.Equal(t, 25, p.DiscountPercentage())

	p.ComparePrice = dec("50")
	assert.Equal(t, 0, p.DiscountPercentage(), "compare menor que price no es descuento")

	p.ComparePrice = nil
	assert.Equal(t, 0, p.DiscountPercentage())

	p = &Product{Price: decimal.RequireFromString("2"), ComparePrice: dec("3")}
	assert.Equal(t, 33, p.DiscountPercentage())
}

func TestProductProfitMargin(t *testing.T) {
	p := &Product{Price: decimal.RequireFromString("30"), CostPrice: dec("20")}
	m := p.ProfitMargin()
	require.NotNil(t, m)
	assert.True(t, decimal.RequireFromString("33.33").Equal(*m), m.String())

	p.Price = decimal.Zero
	assert.Nil(t, p.ProfitMargin())

	p = &Product{Price: decimal.RequireFromString("10")}
	assert.Nil(t, p.ProfitMargin())
}

func TestProductStockStatus(t *testing.T) {
	assert.Equal(t, StockOut, (&Product{Stock: 0, LowStockThreshold: 10}).StockStatus())
	assert.Equal(t, StockLow, (&Product{Stock: 10, LowStockThreshold: 10}).StockStatus())
	assert.Equal(t, StockIn, (&Product{Stock: 11, LowStockThreshold: 10}).StockStatus())
}

func TestProductValidate(t *testing.T) {
	p := &Product{Name: "Laptop", SKU: "LAP-1", Price: decimal.RequireFromString("999.99"), Category: "electronics", LowStockThreshold: 10}
	require.NoError(t, p.Validate())

	p.Category = "weapons"
	p.Price = decimal.RequireFromString("-1")
	p.Ratings.Average = 6
	err := p.Validate()
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Errors, 3)
}

func TestProductValidate_ImportesAcotadosADosDecimales(t *testing.T) {
	base := func() *Product {
		return &Product{Name: "Laptop", SKU: "LAP-1", Price: decimal.RequireFromString("10.50"), Category: "electronics"}
	}

	p := base()
	p.Price = decimal.RequireFromString("9999999999.99")
	p.CostPrice = dec("1.500")
	require.NoError(t, p.Validate(), "ceros finales no cuentan como decimales")

	cases := map[string]func(*Product){
		"price":        func(p *Product) { p.Price = decimal.RequireFromString("10000000000") },
		"comparePrice": func(p *Product) { p.ComparePrice = dec("1e12") },
		"costPrice":    func(p *Product) { p.CostPrice = dec("3.999") },
	}
	for field, mutate := range cases {
		p := base()
		mutate(p)
		var verr *domain.ValidationError
		require.True(t, errors.As(p.Validate(), &verr), field)
		require.Len(t, verr.Errors, 1, field)
		assert.Equal(t, field, verr.Errors[0].Field)
	}
}

// ── User ──────────────────────────────────────────────────────────────────────

func TestUserValidateYDerivados(t *testing.T) {
	u := &User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Role: RoleUser, Preferences: DefaultPreferences()}
	require.NoError(t, u.Validate())
	assert.Equal(t, "Ada Lovelace", u.FullName())

	u.FirstName = "A"
	u.Role = "root"
	err := u.Validate()
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Errors, 2)
}

func TestUserValidate_Email(t *testing.T) {
	for email, ok := range map[string]bool{
		"ada@example.com":       true,
		"ada.l+tag@mail.co":     true,
		"":                      false,
		"ada":                   false,
		"Ada <ada@example.com>": false,
	} {
		u := &User{FirstName: "Ada", LastName: "Lovelace", Email: email, Role: RoleUser, Preferences: DefaultPreferences()}
		if ok {
			assert.NoError(t, u.Validate(), email)
			continue
		}
		var verr *domain.ValidationError
		require.True(t, errors.As(u.Validate(), &verr), email)
		assert.Equal(t, "email", verr.Errors[0].Field)
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "demo@example.com", NormalizeEmail("  Demo@Example.COM "))
}
