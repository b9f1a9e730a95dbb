// Package password encapsula el hash bcrypt de contraseñas.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinLength longitud mínima aceptada para una contraseña.
const MinLength = 6

// MaxBytes límite de bcrypt; más allá la entrada se rechaza.
const MaxBytes = 72

// ErrTooLong la contraseña supera MaxBytes.
var ErrTooLong = errors.New("la contraseña supera 72 bytes")

// FitsBcrypt indica si la contraseña cabe en la entrada de bcrypt.
func FitsBcrypt(plain string) bool {
	return len(plain) <= MaxBytes
}

// Hash devuelve el hash bcrypt (DefaultCost) de la contraseña en claro.
func Hash(plain string) (string, error) {
	if !FitsBcrypt(plain) {
		return "", ErrTooLong
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrTooLong
		}
		return "", err
	}
	return string(h), nil
}

// Verify compara la contraseña en claro con el hash almacenado.
func Verify(hash, plain string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
