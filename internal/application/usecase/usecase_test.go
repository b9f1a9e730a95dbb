package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taskstore-api/internal/application/dto"
	"github.com/jhoicas/taskstore-api/internal/application/usecase"
	"github.com/jhoicas/taskstore-api/internal/domain"
	"github.com/jhoicas/taskstore-api/internal/domain/entity"
	"github.com/jhoicas/taskstore-api/internal/infrastructure/memory"
	"github.com/jhoicas/taskstore-api/pkg/password"
)

func ptr[T any](v T) *T { return &v }

func seedUser(t *testing.T, store *memory.Store, email, role, plain string) *entity.User {
	t.Helper()
	hash, err := password.Hash(plain)
	require.NoError(t, err)
	now := time.Now()
	u := &entity.User{
		ID: uuid.NewString(), FirstName: "Test", LastName: "User", Email: email, PasswordHash: hash,
		Role: role, IsActive: true, Preferences: entity.DefaultPreferences(), CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return u
}

// ── Tareas ────────────────────────────────────────────────────────────────────

func TestTaskUseCase_CreateNormalizaYExpande(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := seedUser(t, store, "owner@example.com", entity.RoleUser, "secret1")
	uc := usecase.NewTaskUseCase(store.Tasks(), store.Users())

	out, err := uc.Create(ctx, owner.ID, dto.CreateTaskRequest{
		Title: "<b>Ship</b> release", Progress: 100, AssignedTo: &owner.ID, Tags: []string{" ops "},
	})
	require.NoError(t, err)

	assert.Equal(t, "Ship release", out.Title)
	assert.Equal(t, entity.TaskCompleted, out.Status)
	assert.NotNil(t, out.CompletedAt)
	assert.Equal(t, entity.PriorityMedium, out.Priority)
	assert.Equal(t, "#28a745", out.StatusColor)
	assert.Equal(t, []string{"ops"}, out.Tags)
	require.NotNil(t, out.CreatedBy)
	assert.Equal(t, "owner@example.com", out.CreatedBy.Email)
	require.NotNil(t, out.AssignedTo)
	assert.Equal(t, owner.ID, out.AssignedTo.ID)
}

func TestTaskUseCase_UpdateProgresoParcialSacaDePending(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := seedUser(t, store, "owner@example.com", entity.RoleUser, "secret1")
	uc := usecase.NewTaskUseCase(store.Tasks(), store.Users())

	created, err := uc.Create(ctx, owner.ID, dto.CreateTaskRequest{Title: "t"})
	require.NoError(t, err)
	require.Equal(t, entity.TaskPending, created.Status)

	updated, err := uc.Update(ctx, created.ID, dto.UpdateTaskRequest{Progress: ptr(30)})
	require.NoError(t, err)
	assert.Equal(t, entity.TaskInProgress, updated.Status)
	assert.Nil(t, updated.CompletedAt)

	reopened, err := uc.Update(ctx, created.ID, dto.UpdateTaskRequest{Progress: ptr(100)})
	require.NoError(t, err)
	assert.Equal(t, entity.TaskCompleted, reopened.Status)
	require.NotNil(t, reopened.CompletedAt)
}

func TestTaskUseCase_UpdateRevalidaEsquema(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := seedUser(t, store, "owner@example.com", entity.RoleUser, "secret1")
	uc := usecase.NewTaskUseCase(store.Tasks(), store.Users())

	created, err := uc.Create(ctx, owner.ID, dto.CreateTaskRequest{Title: "t"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, created.ID, dto.UpdateTaskRequest{Title: ptr("<p></p>")})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "un título que queda vacío tras sanitizar es inválido")
}

func TestTaskUseCase_AsignadoInexistente(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := seedUser(t, store, "owner@example.com", entity.RoleUser, "secret1")
	uc := usecase.NewTaskUseCase(store.Tasks(), store.Users())

	_, err := uc.Create(ctx, owner.ID, dto.CreateTaskRequest{Title: "t", AssignedTo: ptr(uuid.NewString())})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "assignedTo", verr.Errors[0].Field)
}

func TestTaskUseCase_NoEncontrada(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := usecase.NewTaskUseCase(store.Tasks(), store.Users())

	for _, id := range []string{uuid.NewString(), "malformed"} {
		_, err := uc.GetByID(ctx, id)
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.Equal(t, "Task not found", err.Error())

		assert.ErrorIs(t, uc.Delete(ctx, id), domain.ErrNotFound)
	}
}

func TestTaskUseCase_ComentariosYFiltroMine(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	alice := seedUser(t, store, "alice@example.com", entity.RoleUser, "secret1")
	bob := seedUser(t, store, "bob@example.com", entity.RoleUser, "secret1")
	uc := usecase.NewTaskUseCase(store.Tasks(), store.Users())

	mine, err := uc.Create(ctx, alice.ID, dto.CreateTaskRequest{Title: "alice"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, bob.ID, dto.CreateTaskRequest{Title: "bob"})
	require.NoError(t, err)

	withComment, err := uc.AddComment(ctx, mine.ID, bob.ID, dto.AddCommentRequest{Text: "looks good"})
	require.NoError(t, err)
	require.Len(t, withComment.Comments, 1)
	assert.Equal(t, "bob@example.com", withComment.Comments[0].User.Email)

	list, err := uc.List(ctx, alice.ID, dto.TaskListQuery{Mine: true})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "alice", list[0].Title)
}

// ── Productos ─────────────────────────────────────────────────────────────────

func TestProductUseCase_CreateDerivadosYSKU(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	admin := seedUser(t, store, "admin@example.com", entity.RoleAdmin, "secret1")
	uc := usecase.NewProductUseCase(store.Products())

	out, err := uc.Create(ctx, admin.ID, dto.CreateProductRequest{
		Name: "Headphones", SKU: "hp-01", Category: "electronics", Stock: 3,
		Price:        decimal.RequireFromString("80"),
		ComparePrice: ptr(decimal.RequireFromString("100")),
		CostPrice:    ptr(decimal.RequireFromString("60")),
		Images:       []dto.ImageDTO{{URL: "a", IsPrimary: true}, {URL: "b", IsPrimary: true}},
	})
	require.NoError(t, err)

	assert.Equal(t, "HP-01", out.SKU)
	assert.Equal(t, 20, out.DiscountPercentage)
	require.NotNil(t, out.ProfitMargin)
	assert.True(t, decimal.NewFromInt(25).Equal(*out.ProfitMargin))
	assert.Equal(t, entity.StockLow, out.StockStatus)
	assert.True(t, out.Images[0].IsPrimary)
	assert.False(t, out.Images[1].IsPrimary)
	assert.Equal(t, admin.ID, out.CreatedBy.ID)

	_, err = uc.Create(ctx, admin.ID, dto.CreateProductRequest{Name: "Dup", SKU: "HP-01", Category: "electronics"})
	var dup *domain.DuplicateError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "sku already exists", dup.Error())
}

func TestProductUseCase_UpdateParcial(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products())

	created, err := uc.Create(ctx, uuid.NewString(), dto.CreateProductRequest{Name: "Book", SKU: "bk-1", Category: "books", Stock: 50, Price: decimal.NewFromInt(10)})
	require.NoError(t, err)

	out, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{Stock: ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, entity.StockOut, out.StockStatus)
	assert.Equal(t, "Book", out.Name)

	_, err = uc.Update(ctx, created.ID, dto.UpdateProductRequest{Category: ptr("weapons")})
	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))

	_, err = uc.Update(ctx, uuid.NewString(), dto.UpdateProductRequest{})
	assert.EqualError(t, err, "Product not found")
}

func TestProductUseCase_UpdateBorraPreciosOpcionales(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products())

	created, err := uc.Create(ctx, uuid.NewString(), dto.CreateProductRequest{
		Name: "Lamp", SKU: "lmp-1", Category: "home", Stock: 20,
		Price:        decimal.NewFromInt(30),
		ComparePrice: ptr(decimal.NewFromInt(40)),
		CostPrice:    ptr(decimal.NewFromInt(10)),
	})
	require.NoError(t, err)
	require.Equal(t, 25, created.DiscountPercentage)

	out, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{Stock: ptr(19)})
	require.NoError(t, err)
	assert.NotNil(t, out.ComparePrice, "ausente conserva el valor")

	out, err = uc.Update(ctx, created.ID, dto.UpdateProductRequest{
		ComparePrice: dto.Null[decimal.Decimal](),
		CostPrice:    dto.NullableOf(decimal.NewFromInt(12)),
	})
	require.NoError(t, err)
	assert.Nil(t, out.ComparePrice)
	assert.Equal(t, 0, out.DiscountPercentage)
	require.NotNil(t, out.CostPrice)
	assert.True(t, decimal.NewFromInt(12).Equal(*out.CostPrice))

	out, err = uc.Update(ctx, created.ID, dto.UpdateProductRequest{CostPrice: dto.Null[decimal.Decimal]()})
	require.NoError(t, err)
	assert.Nil(t, out.ProfitMargin)

	_, err = uc.Update(ctx, created.ID, dto.UpdateProductRequest{Price: ptr(decimal.RequireFromString("1.234"))})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "price", verr.Errors[0].Field)
}

// ── Usuarios y ajustes ────────────────────────────────────────────────────────

func TestUserUseCase_CreateHasheaYUpdateValida(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := usecase.NewUserUseCase(store.Users())

	out, err := uc.Create(ctx, dto.CreateUserRequest{FirstName: "Mia", LastName: "Ruiz", Email: "MIA@example.com", Password: "hunter22", Role: entity.RoleManager})
	require.NoError(t, err)
	assert.Equal(t, "mia@example.com", out.Email)

	stored, _ := store.Users().GetByID(ctx, out.ID)
	assert.NotEqual(t, "hunter22", stored.PasswordHash)
	assert.True(t, password.Verify(stored.PasswordHash, "hunter22"))

	_, err = uc.Create(ctx, dto.CreateUserRequest{FirstName: "Mia", LastName: "Ruiz", Email: "mia@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	updated, err := uc.Update(ctx, out.ID, dto.UpdateUserRequest{IsActive: ptr(false)})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	active, err := uc.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestSettingsUseCase_PreferenciasYPassword(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	u := seedUser(t, store, "s@example.com", entity.RoleUser, "oldpass")
	uc := usecase.NewSettingsUseCase(store.Users())

	prefs, err := uc.UpdatePreferences(ctx, u.ID, dto.UpdatePreferencesRequest{
		Theme:         ptr("dark"),
		Notifications: &dto.UpdateNotificationsRequest{SMS: ptr(true)},
	})
	require.NoError(t, err)
	assert.Equal(t, "dark", prefs.Theme)
	assert.True(t, prefs.Notifications.SMS)
	assert.True(t, prefs.Notifications.Email, "los canales no enviados se conservan")
	assert.Equal(t, "en", prefs.Language)

	err = uc.ChangePassword(ctx, u.ID, dto.ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "newpass"})
	assert.ErrorIs(t, err, domain.ErrIncorrectPassword)

	require.NoError(t, uc.ChangePassword(ctx, u.ID, dto.ChangePasswordRequest{CurrentPassword: "oldpass", NewPassword: "newpass"}))
	stored, _ := store.Users().GetByID(ctx, u.ID)
	assert.True(t, password.Verify(stored.PasswordHash, "newpass"))
}

func TestSettingsUseCase_PerfilEmailUnico(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	u := seedUser(t, store, "one@example.com", entity.RoleUser, "secret1")
	seedUser(t, store, "two@example.com", entity.RoleUser, "secret1")
	uc := usecase.NewSettingsUseCase(store.Users())

	_, err := uc.UpdateProfile(ctx, u.ID, dto.UpdateProfileRequest{Email: ptr("TWO@example.com")})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	out, err := uc.UpdateProfile(ctx, u.ID, dto.UpdateProfileRequest{FirstName: ptr("Uno")})
	require.NoError(t, err)
	assert.Equal(t, "Uno User", out.FullName)
}
