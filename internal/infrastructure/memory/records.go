package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var (
	_ repository.EntryRepository    = (*EntryRepo)(nil)
	_ repository.ExitRepository     = (*ExitRepo)(nil)
	_ repository.MovementRepository = (*MovementRepo)(nil)
)

// EntryRepo implementa EntryRepository en memoria. Como máximo una entrada por bulto.
type EntryRepo struct{ a access }

func (r *EntryRepo) Create(ctx context.Context, e *entity.Entry) error {
	return r.a.do(func(d *data) error {
		if _, ok := d.entries[e.ID]; ok {
			return domain.ErrDuplicate
		}
		if err := recordRefs(d, e.PackageID); err != nil {
			return err
		}
		for _, other := range d.entries {
			if other.PackageID == e.PackageID {
				return domain.ErrDuplicate
			}
		}
		d.entries[e.ID] = *e
		return nil
	})
}

func (r *EntryRepo) GetByID(ctx context.Context, id string) (*entity.Entry, error) {
	var out *entity.Entry
	err := r.a.do(func(d *data) error {
		if e, ok := d.entries[id]; ok {
			out = &e
		}
		return nil
	})
	return out, err
}

func (r *EntryRepo) GetByPackage(ctx context.Context, packageID string) (*entity.Entry, error) {
	var out *entity.Entry
	err := r.a.do(func(d *data) error {
		for _, e := range d.entries {
			if e.PackageID == packageID {
				e := e
				out = &e
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *EntryRepo) Update(ctx context.Context, e *entity.Entry) error {
	return r.a.do(func(d *data) error {
		if _, ok := d.entries[e.ID]; !ok {
			return domain.NewNotFound("entrada", e.ID)
		}
		if err := recordRefs(d, e.PackageID); err != nil {
			return err
		}
		for id, other := range d.entries {
			if id != e.ID && other.PackageID == e.PackageID {
				return domain.ErrDuplicate
			}
		}
		d.entries[e.ID] = *e
		return nil
	})
}

func (r *EntryRepo) Delete(ctx context.Context, id string) error {
	return r.a.do(func(d *data) error {
		if _, ok := d.entries[id]; !ok {
			return domain.NewNotFound("entrada", id)
		}
		delete(d.entries, id)
		return nil
	})
}

func (r *EntryRepo) List(ctx context.Context, f repository.RecordFilter, limit, offset int) ([]*entity.Entry, int, error) {
	var out []*entity.Entry
	var total int
	err := r.a.do(func(d *data) error {
		all := make([]*entity.Entry, 0, len(d.entries))
		for _, e := range d.entries {
			if !matchRecord(f, e.UserID, e.PackageID) {
				continue
			}
			e := e
			all = append(all, &e)
		}
		sortByDate(all, func(e *entity.Entry) (time.Time, string) { return e.Date, e.ID })
		out, total = page(all, limit, offset)
		return nil
	})
	return out, total, err
}

// ExitRepo implementa ExitRepository en memoria. Como máximo una salida por bulto.
type ExitRepo struct{ a access }

func (r *ExitRepo) Create(ctx context.Context, e *entity.Exit) error {
	return r.a.do(func(d *data) error {
		if _, ok := d.exits[e.ID]; ok {
			return domain.ErrDuplicate
		}
		if err := recordRefs(d, e.PackageID); err != nil {
			return err
		}
		for _, other := range d.exits {
			if other.PackageID == e.PackageID {
				return domain.ErrDuplicate
			}
		}
		d.exits[e.ID] = *e
		return nil
	})
}

func (r *ExitRepo) GetByID(ctx context.Context, id string) (*entity.Exit, error) {
	var out *entity.Exit
	err := r.a.do(func(d *data) error {
		if e, ok := d.exits[id]; ok {
			out = &e
		}
		return nil
	})
	return out, err
}

func (r *ExitRepo) GetByPackage(ctx context.Context, packageID string) (*entity.Exit, error) {
	var out *entity.Exit
	err := r.a.do(func(d *data) error {
		for _, e := range d.exits {
			if e.PackageID == packageID {
				e := e
				out = &e
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ExitRepo) Update(ctx context.Context, e *entity.Exit) error {
	return r.a.do(func(d *data) error {
		if _, ok := d.exits[e.ID]; !ok {
			return domain.NewNotFound("salida", e.ID)
		}
		if err := recordRefs(d, e.PackageID); err != nil {
			return err
		}
		for id, other := range d.exits {
			if id != e.ID && other.PackageID == e.PackageID {
				return domain.ErrDuplicate
			}
		}
		d.exits[e.ID] = *e
		return nil
	})
}

func (r *ExitRepo) Delete(ctx context.Context, id string) error {
	return r.a.do(func(d *data) error {
		if _, ok := d.exits[id]; !ok {
			return domain.NewNotFound("salida", id)
		}
		delete(d.exits, id)
		return nil
	})
}

func (r *ExitRepo) List(ctx context.Context, f repository.RecordFilter, limit, offset int) ([]*entity.Exit, int, error) {
	var out []*entity.Exit
	var total int
	err := r.a.do(func(d *data) error {
		all := make([]*entity.Exit, 0, len(d.exits))
		for _, e := range d.exits {
			if !matchRecord(f, e.UserID, e.PackageID) {
				continue
			}
			e := e
			all = append(all, &e)
		}
		sortByDate(all, func(e *entity.Exit) (time.Time, string) { return e.Date, e.ID })
		out, total = page(all, limit, offset)
		return nil
	})
	return out, total, err
}

// MovementRepo implementa MovementRepository en memoria.
type MovementRepo struct{ a access }

func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	return r.a.do(func(d *data) error {
		if _, ok := d.movements[m.ID]; ok {
			return domain.ErrDuplicate
		}
		if err := recordRefs(d, m.PackageID); err != nil {
			return err
		}
		d.movements[m.ID] = *m
		return nil
	})
}

func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	var out *entity.Movement
	err := r.a.do(func(d *data) error {
		if m, ok := d.movements[id]; ok {
			out = &m
		}
		return nil
	})
	return out, err
}

func (r *MovementRepo) Update(ctx context.Context, m *entity.Movement) error {
	return r.a.do(func(d *data) error {
		if _, ok := d.movements[m.ID]; !ok {
			return domain.NewNotFound("movimiento", m.ID)
		}
		if err := recordRefs(d, m.PackageID); err != nil {
			return err
		}
		d.movements[m.ID] = *m
		return nil
	})
}

func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	return r.a.do(func(d *data) error {
		if _, ok := d.movements[id]; !ok {
			return domain.NewNotFound("movimiento", id)
		}
		delete(d.movements, id)
		return nil
	})
}

func (r *MovementRepo) DeleteByPackage(ctx context.Context, packageID string) error {
	return r.a.do(func(d *data) error {
		for id, m := range d.movements {
			if m.PackageID == packageID {
				delete(d.movements, id)
			}
		}
		return nil
	})
}

func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter, limit, offset int) ([]*entity.Movement, int, error) {
	var out []*entity.Movement
	var total int
	err := r.a.do(func(d *data) error {
		all := make([]*entity.Movement, 0, len(d.movements))
		for _, m := range d.movements {
			if !matchRecord(repository.RecordFilter{UserID: f.UserID, PackageID: f.PackageID}, m.UserID, m.PackageID) ||
				!containsFold(m.FromLocation, f.FromLocation) || !containsFold(m.ToLocation, f.ToLocation) {
				continue
			}
			m := m
			all = append(all, &m)
		}
		sortByDate(all, func(m *entity.Movement) (time.Time, string) { return m.Date, m.ID })
		out, total = page(all, limit, offset)
		return nil
	})
	return out, total, err
}

func recordRefs(d *data, packageID string) error {
	if _, ok := d.packages[packageID]; !ok {
		return domain.ErrConflict
	}
	return nil
}

func matchRecord(f repository.RecordFilter, userID, packageID string) bool {
	return (f.UserID == "" || f.UserID == userID) && (f.PackageID == "" || f.PackageID == packageID)
}

// sortByDate ordena del más reciente al más antiguo.
func sortByDate[T any](items []T, key func(T) (time.Time, string)) {
	sort.Slice(items, func(i, j int) bool {
		di, idi := key(items[i])
		dj, idj := key(items[j])
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return idi < idj
	})
}
