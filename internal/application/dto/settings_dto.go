package dto

// UpdateNotificationsRequest actualización parcial de canales.
type UpdateNotificationsRequest struct {
	Email *bool `json:"email"`
	Push  *bool `json:"push"`
	SMS   *bool `json:"sms"`
}

// UpdatePreferencesRequest PUT /api/settings.
type UpdatePreferencesRequest struct {
	Theme         *string                     `json:"theme" validate:"omitempty,oneof=light dark auto"`
	Notifications *UpdateNotificationsRequest `json:"notifications"`
	Language      *string                     `json:"language" validate:"omitempty,min=2,max=5"`
}

// UpdateProfileRequest PUT /api/settings/profile.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=2,max=50"`
	LastName  *string `json:"lastName" validate:"omitempty,min=2,max=50"`
	Email     *string `json:"email" validate:"omitempty,email"`
}

// ChangePasswordRequest PUT /api/settings/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,bcryptmax"`
}
