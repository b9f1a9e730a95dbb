package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/taskstore-api/internal/application/dto"
	"github.com/jhoicas/taskstore-api/internal/application/ports"
	"github.com/jhoicas/taskstore-api/internal/application/validation"
	"github.com/jhoicas/taskstore-api/internal/domain"
	"github.com/jhoicas/taskstore-api/internal/domain/entity"
	"github.com/jhoicas/taskstore-api/internal/domain/repository"
	"github.com/jhoicas/taskstore-api/pkg/jwt"
	"github.com/jhoicas/taskstore-api/pkg/logger"
	"github.com/jhoicas/taskstore-api/pkg/password"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret            string
	ExpMinutes        int
	Issuer            string
	ResetTokenMinutes int
}

// AuthUseCase casos de uso de autenticación: registro, login, sesión y reset de contraseña.
type AuthUseCase struct {
	userRepo repository.UserRepository
	mailer   ports.ResetMailer
	jwtCfg   JWTConfig
	log      *logger.Logger
	now      func() time.Time

	// hash contra el que se compara cuando el email no existe, para igualar tiempos.
	dummyHash string
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, mailer ports.ResetMailer, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if jwtCfg.ResetTokenMinutes <= 0 {
		jwtCfg.ResetTokenMinutes = 60
	}
	dummy, _ := password.Hash(uuid.NewString())
	return &AuthUseCase{
		userRepo:  userRepo,
		mailer:    mailer,
		jwtCfg:    jwtCfg,
		log:       log.WithComponent("auth"),
		now:       time.Now,
		dummyHash: dummy,
	}
}

// Register crea la cuenta, la deja con sesión iniciada y devuelve usuario + token.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	email := entity.NormalizeEmail(in.Email)
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("register: buscar email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash: %w", err)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.NewString(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		Preferences:  entity.DefaultPreferences(),
		LastLogin:    &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("usuario registrado")
	return uc.session(user)
}

// Login verifica credenciales. Email desconocido, cuenta inactiva y contraseña incorrecta
// devuelven el mismo ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByEmail(ctx, entity.NormalizeEmail(in.Email))
	if err != nil {
		return nil, fmt.Errorf("login: buscar email: %w", err)
	}
	if user == nil {
		password.Verify(uc.dummyHash, in.Password)
		uc.log.Warn().Msg("login fallido: email desconocido")
		return nil, domain.ErrInvalidCredentials
	}
	if !password.Verify(user.PasswordHash, in.Password) {
		uc.log.Warn().Str("user_id", user.ID).Msg("login fallido: contraseña incorrecta")
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		uc.log.Warn().Str("user_id", user.ID).Msg("login fallido: cuenta inactiva")
		return nil, domain.ErrInvalidCredentials
	}

	now := uc.now()
	if err := uc.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("login: lastLogin: %w", err)
	}
	user.LastLogin = &now
	return uc.session(user)
}

// Me devuelve el usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.MeResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFound("User")
	}
	return &dto.MeResponse{User: dto.ToUserResponse(user)}, nil
}

// Authenticate valida un token de sesión y carga el usuario actual.
// Tokens de propósito único (reset) no sirven como sesión.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		if errors.Is(err, jwt.ErrExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}
	if claims.Purpose != "" {
		return nil, domain.ErrInvalidToken
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidID) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !user.IsActive {
		return nil, domain.ErrAccountInactive
	}
	return user, nil
}

// ForgotPassword emite un token de reset de 1 hora y lo entrega por el ResetMailer.
// La respuesta al cliente no depende de si el email existe.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, in dto.ForgotPasswordRequest) error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	user, err := uc.userRepo.GetByEmail(ctx, entity.NormalizeEmail(in.Email))
	if err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil
	}
	token, err := jwt.GenerateWithPurpose(uc.jwtCfg.Secret, user.ID, jwt.PurposePasswordReset, uc.jwtCfg.Issuer, uc.jwtCfg.ResetTokenMinutes)
	if err != nil {
		return fmt.Errorf("forgot password: token: %w", err)
	}
	msg := ports.PasswordResetMessage{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		Token:     token,
		ExpiresAt: uc.now().Add(time.Duration(uc.jwtCfg.ResetTokenMinutes) * time.Minute),
	}
	if uc.mailer == nil {
		uc.log.Warn().Str("user_id", user.ID).Msg("reset solicitado sin mailer configurado")
		return nil
	}
	if err := uc.mailer.SendPasswordReset(ctx, msg); err != nil {
		// El cliente recibe la misma respuesta; el fallo queda en el log.
		uc.log.Error().Err(err).Str("user_id", user.ID).Msg("envío de reset fallido")
	}
	return nil
}

// ResetPassword valida el token de reset (firma, expiración y propósito) y fija la nueva contraseña.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	claims, err := jwt.ParseWithPurpose(uc.jwtCfg.Secret, in.Token, jwt.PurposePasswordReset)
	if err != nil {
		return domain.ErrInvalidResetToken
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil && !errors.Is(err, domain.ErrInvalidID) {
		return err
	}
	if user == nil {
		return domain.ErrInvalidResetToken
	}
	hash, err := password.Hash(in.Password)
	if err != nil {
		return fmt.Errorf("reset password: hash: %w", err)
	}
	if err := uc.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}
	uc.log.Info().Str("user_id", user.ID).Msg("contraseña restablecida")
	return nil
}

func (uc *AuthUseCase) session(user *entity.User) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{User: dto.ToUserResponse(user), Token: token}, nil
}
