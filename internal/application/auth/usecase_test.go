package auth_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taskstore-api/internal/application/auth"
	"github.com/jhoicas/taskstore-api/internal/application/dto"
	"github.com/jhoicas/taskstore-api/internal/application/ports"
	"github.com/jhoicas/taskstore-api/internal/domain"
	"github.com/jhoicas/taskstore-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/taskstore-api/pkg/jwt"
	"github.com/jhoicas/taskstore-api/pkg/logger"
)

const testSecret = "test-secret-key-for-unit-tests"

type captureMailer struct {
	mu   sync.Mutex
	sent []ports.PasswordResetMessage
	err  error
}

func (m *captureMailer) SendPasswordReset(_ context.Context, msg ports.PasswordResetMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}

func newUseCase(t *testing.T) (*auth.AuthUseCase, *memory.Store, *captureMailer) {
	t.Helper()
	store := memory.NewStore()
	mailer := &captureMailer{}
	uc := auth.NewAuthUseCase(store.Users(), mailer, auth.JWTConfig{
		Secret: testSecret, ExpMinutes: 60, Issuer: "taskstore-test", ResetTokenMinutes: 60,
	}, logger.Nop())
	return uc, store, mailer
}

func register(t *testing.T, uc *auth.AuthUseCase, email, pass string) *dto.AuthResponse {
	t.Helper()
	out, err := uc.Register(context.Background(), dto.RegisterRequest{FirstName: "Demo", LastName: "User", Email: email, Password: pass})
	require.NoError(t, err)
	return out
}

func TestRegister_HasheaYDevuelveToken(t *testing.T) {
	uc, store, _ := newUseCase(t)
	out := register(t, uc, "New@Example.com", "password123")

	assert.Equal(t, "new@example.com", out.User.Email)
	assert.Equal(t, "user", out.User.Role)
	assert.NotNil(t, out.User.LastLogin)
	assert.NotEmpty(t, out.Token)

	stored, err := store.Users().GetByEmail(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.PasswordHash)

	claims, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, claims.UserID)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _, _ := newUseCase(t)
	register(t, uc, "dup@example.com", "password123")

	_, err := uc.Register(context.Background(), dto.RegisterRequest{FirstName: "Other", LastName: "User", Email: "DUP@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_ValidacionListaTodo(t *testing.T) {
	uc, _, _ := newUseCase(t)
	_, err := uc.Register(context.Background(), dto.RegisterRequest{Email: "bad"})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.GreaterOrEqual(t, len(verr.Errors), 4)
}

func TestLogin_MismoErrorParaEmailYPassword(t *testing.T) {
	uc, _, _ := newUseCase(t)
	register(t, uc, "login@example.com", "password123")

	_, errWrongPass := uc.Login(context.Background(), dto.LoginRequest{Email: "login@example.com", Password: "nope"})
	_, errUnknown := uc.Login(context.Background(), dto.LoginRequest{Email: "ghost@example.com", Password: "password123"})

	assert.ErrorIs(t, errWrongPass, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
	assert.Equal(t, errWrongPass.Error(), errUnknown.Error())
}

func TestLogin_OKYCuentaInactiva(t *testing.T) {
	uc, store, _ := newUseCase(t)
	reg := register(t, uc, "login@example.com", "password123")

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "LOGIN@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, out.User.ID)

	u, _ := store.Users().GetByID(context.Background(), reg.User.ID)
	u.IsActive = false
	require.NoError(t, store.Users().Update(context.Background(), u))

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "login@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthenticate(t *testing.T) {
	uc, store, _ := newUseCase(t)
	reg := register(t, uc, "me@example.com", "password123")
	ctx := context.Background()

	user, err := uc.Authenticate(ctx, reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, user.ID)

	expired, _ := pkgjwt.Generate(testSecret, reg.User.ID, "user", "x", -1)
	_, err = uc.Authenticate(ctx, expired)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)

	_, err = uc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	reset, _ := pkgjwt.GenerateWithPurpose(testSecret, reg.User.ID, pkgjwt.PurposePasswordReset, "x", 60)
	_, err = uc.Authenticate(ctx, reset)
	assert.ErrorIs(t, err, domain.ErrInvalidToken, "un token de reset no abre sesión")

	u, _ := store.Users().GetByID(ctx, reg.User.ID)
	u.IsActive = false
	require.NoError(t, store.Users().Update(ctx, u))
	_, err = uc.Authenticate(ctx, reg.Token)
	assert.ErrorIs(t, err, domain.ErrAccountInactive)

	_, _ = store.Users().Delete(ctx, reg.User.ID)
	_, err = uc.Authenticate(ctx, reg.Token)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestForgotYResetPassword(t *testing.T) {
	uc, _, mailer := newUseCase(t)
	reg := register(t, uc, "forgot@example.com", "password123")
	ctx := context.Background()

	require.NoError(t, uc.ForgotPassword(ctx, dto.ForgotPasswordRequest{Email: "ghost@example.com"}))
	assert.Empty(t, mailer.sent, "email desconocido no envía nada")

	require.NoError(t, uc.ForgotPassword(ctx, dto.ForgotPasswordRequest{Email: "forgot@example.com"}))
	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	assert.Equal(t, reg.User.ID, msg.UserID)

	err := uc.ResetPassword(ctx, dto.ResetPasswordRequest{Token: reg.Token, Password: "brandnew"})
	assert.ErrorIs(t, err, domain.ErrInvalidResetToken, "un token de sesión no sirve para reset")

	require.NoError(t, uc.ResetPassword(ctx, dto.ResetPasswordRequest{Token: msg.Token, Password: "brandnew"}))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "forgot@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "forgot@example.com", Password: "brandnew"})
	assert.NoError(t, err)
}

func TestForgotPassword_FalloDelMailerNoSeExpone(t *testing.T) {
	uc, _, mailer := newUseCase(t)
	register(t, uc, "forgot@example.com", "password123")
	mailer.err = errors.New("smtp down")

	assert.NoError(t, uc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{Email: "forgot@example.com"}))
}
