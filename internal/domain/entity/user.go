package entity

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/taskstore-api/internal/domain"
)

// emailRule misma regla "email" que aplican los DTO.
var emailRule = validator.New()

// Roles válidos para User.
const (
	RoleUser    = "user"
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

// Temas de interfaz admitidos en las preferencias.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
	ThemeAuto  = "auto"
)

// ValidRole indica si r pertenece al enum de roles.
func ValidRole(r string) bool {
	switch r {
	case RoleUser, RoleAdmin, RoleManager:
		return true
	}
	return false
}

// NotificationPrefs canales de notificación activos.
type NotificationPrefs struct {
	Email bool
	Push  bool
	SMS   bool
}

// Preferences ajustes de interfaz por usuario.
type Preferences struct {
	Theme         string
	Notifications NotificationPrefs
	Language      string
}

// DefaultPreferences valores iniciales de una cuenta nueva.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:         ThemeLight,
		Notifications: NotificationPrefs{Email: true, Push: true, SMS: false},
		Language:      "en",
	}
}

// User representa una cuenta del sistema.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string // siempre en minúsculas
	PasswordHash string // bcrypt, nunca texto plano
	Role         string
	IsActive     bool
	Preferences  Preferences
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName nombre completo derivado.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Ref proyección pública usada al expandir referencias.
func (u *User) Ref() *UserRef {
	if u == nil {
		return nil
	}
	return &UserRef{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
}

// Validate revisa nombre, email, rol y preferencias tras un create o update parcial.
func (u *User) Validate() error {
	v := &domain.ValidationError{}
	checkName(v, "firstName", "First name", u.FirstName)
	checkName(v, "lastName", "Last name", u.LastName)
	if err := emailRule.Var(u.Email, "required,email"); err != nil {
		v.Add("email", "Please enter a valid email")
	}
	if !ValidRole(u.Role) {
		v.Add("role", "Role must be one of: user, admin, manager")
	}
	u.Preferences.validate(v)
	return v.OrNil()
}

func checkName(v *domain.ValidationError, field, label, value string) {
	switch n := utf8.RuneCountInString(strings.TrimSpace(value)); {
	case n == 0:
		v.Add(field, "%s is required", label)
	case n < 2:
		v.Add(field, "%s must be at least 2 characters", label)
	case n > 50:
		v.Add(field, "%s cannot exceed 50 characters", label)
	}
}

func (p Preferences) validate(v *domain.ValidationError) {
	switch p.Theme {
	case ThemeLight, ThemeDark, ThemeAuto:
	default:
		v.Add("preferences.theme", "Theme must be one of: light, dark, auto")
	}
	if n := utf8.RuneCountInString(p.Language); n < 2 || n > 5 {
		v.Add("preferences.language", "Language must be between 2 and 5 characters")
	}
}

// NormalizeEmail aplica trim + minúsculas.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserRef referencia expandida {id, firstName, lastName, email}.
type UserRef struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
}
