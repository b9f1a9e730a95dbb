// Package memory implementa los puertos de persistencia en memoria.
// Se usa con DB_DRIVER=memory y en los tests de casos de uso y HTTP.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/taskstore-api/internal/domain"
	"github.com/jhoicas/taskstore-api/internal/domain/entity"
)

// Store estado compartido por los repositorios en memoria.
type Store struct {
	mu       sync.RWMutex
	users    map[string]*entity.User
	tasks    map[string]*entity.Task
	products map[string]*entity.Product
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		users:    make(map[string]*entity.User),
		tasks:    make(map[string]*entity.Task),
		products: make(map[string]*entity.Product),
	}
}

// Users repositorio de usuarios sobre el store.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Tasks repositorio de tareas sobre el store.
func (s *Store) Tasks() *TaskRepo { return &TaskRepo{s: s} }

// Products repositorio de productos sobre el store.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Analytics consultas del dashboard sobre el store.
func (s *Store) Analytics() *AnalyticsRepo { return &AnalyticsRepo{s: s} }

// checkID imita el rechazo de PostgreSQL a ids que no son UUID.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrInvalidID
	}
	return nil
}

// userRef requiere s.mu tomado.
func (s *Store) userRef(id string) *entity.UserRef {
	if u, ok := s.users[id]; ok {
		return u.Ref()
	}
	return nil
}

func sortNewestFirst[T any](list []T, created func(T) time.Time, id func(T) string) {
	sort.SliceStable(list, func(i, j int) bool {
		ci, cj := created(list[i]), created(list[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return id(list[i]) > id(list[j])
	})
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
