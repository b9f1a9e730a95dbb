package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/taskstore-api/internal/domain"
)

func init() {
	// Los clientes esperan precios como número JSON, no como string.
	decimal.MarshalJSONWithoutQuotes = true
}

// Envelope forma uniforme de toda respuesta: { success, message?, data?, count?, errors? }.
type Envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    any                 `json:"data,omitempty"`
	Count   *int                `json:"count,omitempty"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
	Stack   string              `json:"stack,omitempty"` // solo fuera de producción
}

// OK envelope de éxito con datos.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// OKMessage envelope de éxito con mensaje y datos opcionales.
func OKMessage(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// List envelope de éxito para listados (incluye count).
func List[T any](items []T) Envelope {
	if items == nil {
		items = []T{}
	}
	n := len(items)
	return Envelope{Success: true, Count: &n, Data: items}
}

// Fail envelope de error.
func Fail(message string) Envelope {
	return Envelope{Success: false, Message: message}
}
