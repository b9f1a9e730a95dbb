package dto

import (
	"bytes"
	"encoding/json"
)

// Nullable campo de actualización parcial que distingue ausente, null y valor:
// ausente no toca el campo, null lo borra y un valor lo reemplaza.
type Nullable[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// UnmarshalJSON solo se invoca si la clave está presente en el cuerpo.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Valid = false
		var zero T
		n.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// Apply escribe el cambio sobre dst si la clave vino en el cuerpo.
func (n Nullable[T]) Apply(dst **T) {
	if !n.Set {
		return
	}
	if !n.Valid {
		*dst = nil
		return
	}
	v := n.Value
	*dst = &v
}

// NullableOf construye un Nullable con valor.
func NullableOf[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Valid: true, Value: v}
}

// Null construye un Nullable que borra el campo.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}
