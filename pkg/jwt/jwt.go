package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// PurposePasswordReset marca los tokens de un solo propósito para restablecer contraseña.
const PurposePasswordReset = "password-reset"

var (
	// ErrEmptySecret el secreto de firma no está configurado.
	ErrEmptySecret = errors.New("jwt: secret vacío")
	// ErrExpired el token es válido pero ya expiró.
	ErrExpired = errors.New("jwt: token expirado")
	// ErrInvalid firma, formato o claims inválidos.
	ErrInvalid = errors.New("jwt: token inválido")
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Purpose vacío = token de sesión.
type Claims struct {
	jwt.RegisteredClaims
	UserID  string `json:"userId"`
	Role    string `json:"role,omitempty"`
	Purpose string `json:"purpose,omitempty"`
}

// Generate genera un token de sesión firmado (HS256) con userID y role.
func Generate(secret, userID, role, issuer string, expMinutes int) (string, error) {
	return sign(secret, Claims{UserID: userID, Role: role}, issuer, expMinutes)
}

// GenerateWithPurpose genera un token de propósito único (p.ej. reset de contraseña).
func GenerateWithPurpose(secret, userID, purpose, issuer string, expMinutes int) (string, error) {
	if purpose == "" {
		return "", fmt.Errorf("jwt: purpose vacío")
	}
	return sign(secret, Claims{UserID: userID, Purpose: purpose}, issuer, expMinutes)
}

func sign(secret string, claims Claims, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma y expiración y devuelve los claims.
// Un token expirado devuelve ErrExpired; cualquier otro fallo ErrInvalid.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalid
	}
	return claims, nil
}

// ParseWithPurpose exige además que el token tenga el propósito indicado.
func ParseWithPurpose(secret, tokenString, purpose string) (*Claims, error) {
	claims, err := Parse(secret, tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != purpose {
		return nil, ErrInvalid
	}
	return claims, nil
}
