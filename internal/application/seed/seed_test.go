package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taskstore-api/internal/application/seed"
	"github.com/jhoicas/taskstore-api/internal/domain/repository"
	"github.com/jhoicas/taskstore-api/internal/infrastructure/memory"
	"github.com/jhoicas/taskstore-api/pkg/password"
)

func TestEnsureDemoAdmin_Idempotente(t *testing.T) {
	ctx := context.Background()
	users := memory.NewStore().Users()
	in := seed.DemoAdmin{Email: "Demo@Example.com", Password: "password123"}

	created, err := seed.EnsureDemoAdmin(ctx, users, in)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = seed.EnsureDemoAdmin(ctx, users, in)
	require.NoError(t, err)
	assert.False(t, created)

	list, err := users.List(ctx, repository.UserFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)

	admin := list[0]
	assert.Equal(t, "demo@example.com", admin.Email)
	assert.Equal(t, "admin", admin.Role)
	assert.True(t, admin.IsActive)
	assert.True(t, password.Verify(admin.PasswordHash, "password123"))
}
