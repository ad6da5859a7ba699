// Package memory implementa todos los puertos de persistencia en memoria, con transacciones
// por copia de estado. Se usa en desarrollo (STORAGE_DRIVER=memory) y en pruebas.
package memory

import (
	"context"
	"maps"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"golang.org/x/text/cases"
)

var _ stock.TxRunner = (*Store)(nil)

type data struct {
	products   map[string]entity.Product
	categories map[string]entity.Category
	storages   map[string]entity.SpecialStorage
	states     map[string]entity.PackageState
	packages   map[string]entity.Package
	items      map[string]entity.LineItem
	entries    map[string]entity.Entry
	exits      map[string]entity.Exit
	movements  map[string]entity.Movement
	users      map[string]entity.User
	roles      map[string]entity.Role
}

func newData() *data {
	return &data{
		products:   map[string]entity.Product{},
		categories: map[string]entity.Category{},
		storages:   map[string]entity.SpecialStorage{},
		states:     map[string]entity.PackageState{},
		packages:   map[string]entity.Package{},
		items:      map[string]entity.LineItem{},
		entries:    map[string]entity.Entry{},
		exits:      map[string]entity.Exit{},
		movements:  map[string]entity.Movement{},
		users:      map[string]entity.User{},
		roles:      map[string]entity.Role{},
	}
}

func (d *data) clone() *data {
	return &data{
		products:   maps.Clone(d.products),
		categories: maps.Clone(d.categories),
		storages:   maps.Clone(d.storages),
		states:     maps.Clone(d.states),
		packages:   maps.Clone(d.packages),
		items:      maps.Clone(d.items),
		entries:    maps.Clone(d.entries),
		exits:      maps.Clone(d.exits),
		movements:  maps.Clone(d.movements),
		users:      maps.Clone(d.users),
		roles:      maps.Clone(d.roles),
	}
}

// Store guarda todas las entidades. Las transacciones son serializables: Run toma el lock
// durante todo el callback y restaura la copia previa si fn devuelve error.
type Store struct {
	mu sync.Mutex
	d  *data
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{d: newData()}
}

// access enlaza un repositorio con el store. Dentro de Run el lock ya está tomado.
type access struct {
	s    *Store
	inTx bool
}

func (a access) do(fn func(d *data) error) error {
	if !a.inTx {
		a.s.mu.Lock()
		defer a.s.mu.Unlock()
	}
	return fn(a.s.d)
}

// Run ejecuta fn con repositorios atados a la transacción.
func (s *Store) Run(ctx context.Context, fn func(r stock.TxRepos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	snapshot := s.d.clone()
	a := access{s: s, inTx: true}
	err := fn(stock.TxRepos{
		Products:  &ProductRepo{a},
		Packages:  &PackageRepo{a},
		LineItems: &LineItemRepo{a},
		Entries:   &EntryRepo{a},
		Exits:     &ExitRepo{a},
		Movements: &MovementRepo{a},
	})
	if err != nil {
		s.d = snapshot
	}
	return err
}

func (s *Store) direct() access { return access{s: s} }

// Products devuelve el repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s.direct()} }

// Categories devuelve el repositorio de categorías.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s.direct()} }

// SpecialStorages devuelve el repositorio de almacenamientos especiales.
func (s *Store) SpecialStorages() *SpecialStorageRepo { return &SpecialStorageRepo{s.direct()} }

// PackageStates devuelve el repositorio de estados de bulto.
func (s *Store) PackageStates() *PackageStateRepo { return &PackageStateRepo{s.direct()} }

// Packages devuelve el repositorio de bultos.
func (s *Store) Packages() *PackageRepo { return &PackageRepo{s.direct()} }

// LineItems devuelve el repositorio de detalles de bulto.
func (s *Store) LineItems() *LineItemRepo { return &LineItemRepo{s.direct()} }

// Entries devuelve el repositorio de entradas.
func (s *Store) Entries() *EntryRepo { return &EntryRepo{s.direct()} }

// Exits devuelve el repositorio de salidas.
func (s *Store) Exits() *ExitRepo { return &ExitRepo{s.direct()} }

// Movements devuelve el repositorio de movimientos.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s.direct()} }

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s.direct()} }

// Roles devuelve el repositorio de roles.
func (s *Store) Roles() *RoleRepo { return &RoleRepo{s.direct()} }

// ── helpers ───────────────────────────────────────────────────────────────────

func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// containsFold: coincidencia parcial sin distinguir mayúsculas. Un filtro vacío acepta todo.
func containsFold(value, filter string) bool {
	if strings.TrimSpace(filter) == "" {
		return true
	}
	return strings.Contains(fold(value), fold(filter))
}

// equalFold: igualdad sin distinguir mayúsculas. Un filtro vacío acepta todo.
func equalFold(value, filter string) bool {
	if strings.TrimSpace(filter) == "" {
		return true
	}
	return fold(value) == fold(filter)
}

func sortByName[T any](items []T, name func(T) string, id func(T) string) {
	sort.Slice(items, func(i, j int) bool {
		a, b := fold(name(items[i])), fold(name(items[j]))
		if a != b {
			return a < b
		}
		return id(items[i]) < id(items[j])
	})
}

// page aplica limit/offset y devuelve la página junto al total sin paginar.
func page[T any](items []T, limit, offset int) ([]T, int) {
	total := len(items)
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []T{}, total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return items[offset:end], total
}
