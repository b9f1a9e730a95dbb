package usecase

import (
	"errors"

	"github.com/jhoicas/taskstore-api/internal/domain"
)

// notFoundOnInvalidID un id mal formado se reporta como recurso inexistente.
func notFoundOnInvalidID(err error, resource string) error {
	if errors.Is(err, domain.ErrInvalidID) {
		return domain.NotFound(resource)
	}
	return err
}
