package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/taskstore-api/internal/application/dto"
	"github.com/jhoicas/taskstore-api/internal/application/validation"
	"github.com/jhoicas/taskstore-api/internal/domain"
	"github.com/jhoicas/taskstore-api/internal/domain/entity"
	"github.com/jhoicas/taskstore-api/internal/domain/repository"
	"github.com/jhoicas/taskstore-api/pkg/password"
)

// SettingsUseCase preferencias, perfil y contraseña del propio usuario.
type SettingsUseCase struct {
	users repository.UserRepository
	now   func() time.Time
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(users repository.UserRepository) *SettingsUseCase {
	return &SettingsUseCase{users: users, now: time.Now}
}

// GetPreferences preferencias del usuario.
func (uc *SettingsUseCase) GetPreferences(ctx context.Context, userID string) (*dto.PreferencesDTO, error) {
	user, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := dto.ToPreferencesDTO(user.Preferences)
	return &out, nil
}

// UpdatePreferences actualización parcial de preferencias.
func (uc *SettingsUseCase) UpdatePreferences(ctx context.Context, userID string, in dto.UpdatePreferencesRequest) (*dto.PreferencesDTO, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	p := &user.Preferences
	if in.Theme != nil {
		p.Theme = *in.Theme
	}
	if in.Language != nil {
		p.Language = *in.Language
	}
	if n := in.Notifications; n != nil {
		if n.Email != nil {
			p.Notifications.Email = *n.Email
		}
		if n.Push != nil {
			p.Notifications.Push = *n.Push
		}
		if n.SMS != nil {
			p.Notifications.SMS = *n.SMS
		}
	}
	if err := uc.save(ctx, user); err != nil {
		return nil, err
	}
	out := dto.ToPreferencesDTO(user.Preferences)
	return &out, nil
}

// UpdateProfile nombre y email; el email sigue siendo único.
func (uc *SettingsUseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Email != nil {
		email := entity.NormalizeEmail(*in.Email)
		if email != user.Email {
			other, err := uc.users.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.ErrEmailAlreadyExists
			}
		}
		user.Email = email
	}
	if err := uc.save(ctx, user); err != nil {
		return nil, err
	}
	out := dto.ToUserResponse(user)
	return &out, nil
}

// ChangePassword exige la contraseña actual antes de fijar la nueva.
func (uc *SettingsUseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	user, err := uc.load(ctx, userID)
	if err != nil {
		return err
	}
	if !password.Verify(user.PasswordHash, in.CurrentPassword) {
		return domain.ErrIncorrectPassword
	}
	hash, err := password.Hash(in.NewPassword)
	if err != nil {
		return err
	}
	return uc.users.UpdatePassword(ctx, user.ID, hash)
}

func (uc *SettingsUseCase) save(ctx context.Context, user *entity.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	user.UpdatedAt = uc.now()
	return uc.users.Update(ctx, user)
}

func (uc *SettingsUseCase) load(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundOnInvalidID(err, "User")
	}
	if user == nil {
		return nil, domain.NotFound("User")
	}
	return user, nil
}
