package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var (
	_ repository.PackageRepository  = (*PackageRepo)(nil)
	_ repository.LineItemRepository = (*LineItemRepo)(nil)
)

// PackageRepo implementa PackageRepository en memoria.
type PackageRepo struct{ a access }

func (r *PackageRepo) Create(ctx context.Context, p *entity.Package) error {
	return r.a.do(func(d *data) error {
		if _, ok := d.packages[p.ID]; ok {
			return domain.ErrDuplicate
		}
		d.packages[p.ID] = *p
		return nil
	})
}

func (r *PackageRepo) GetByID(ctx context.Context, id string) (*entity.Package, error) {
	var out *entity.Package
	err := r.a.do(func(d *data) error {
		if p, ok := d.packages[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *PackageRepo) Update(ctx context.Context, p *entity.Package) error {
	return r.a.do(func(d *data) error {
		if _, ok := d.packages[p.ID]; !ok {
			return domain.NewNotFound("bulto", p.ID)
		}
		d.packages[p.ID] = *p
		return nil
	})
}

func (r *PackageRepo) UpdateLocation(ctx context.Context, id, location string) error {
	return r.a.do(func(d *data) error {
		p, ok := d.packages[id]
		if !ok {
			return domain.NewNotFound("bulto", id)
		}
		p.CurrentLocation = location
		d.packages[id] = p
		return nil
	})
}

func (r *PackageRepo) List(ctx context.Context, f repository.PackageFilter, limit, offset int) ([]*entity.Package, int, error) {
	var out []*entity.Package
	var total int
	err := r.a.do(func(d *data) error {
		all := make([]*entity.Package, 0, len(d.packages))
		for _, p := range d.packages {
			if !equalFold(p.CurrentLocation, f.Location) || (f.StateID != "" && p.StateID != f.StateID) {
				continue
			}
			p := p
			all = append(all, &p)
		}
		sortPackages(all)
		out, total = page(all, limit, offset)
		return nil
	})
	return out, total, err
}

func (r *PackageRepo) ListAll(ctx context.Context) ([]*entity.Package, error) {
	var out []*entity.Package
	err := r.a.do(func(d *data) error {
		out = make([]*entity.Package, 0, len(d.packages))
		for _, p := range d.packages {
			p := p
			out = append(out, &p)
		}
		sortPackages(out)
		return nil
	})
	return out, err
}

// Delete falla con ErrConflict si el bulto aún tiene detalles, entrada, salida o movimientos.
func (r *PackageRepo) Delete(ctx context.Context, id string) error {
	return r.a.do(func(d *data) error {
		if _, ok := d.packages[id]; !ok {
			return domain.NewNotFound("bulto", id)
		}
		for _, it := range d.items {
			if it.PackageID == id {
				return domain.ErrConflict
			}
		}
		for _, e := range d.entries {
			if e.PackageID == id {
				return domain.ErrConflict
			}
		}
		for _, e := range d.exits {
			if e.PackageID == id {
				return domain.ErrConflict
			}
		}
		for _, m := range d.movements {
			if m.PackageID == id {
				return domain.ErrConflict
			}
		}
		delete(d.packages, id)
		return nil
	})
}

func sortPackages(ps []*entity.Package) {
	sort.Slice(ps, func(i, j int) bool {
		if !ps[i].CreatedAt.Equal(ps[j].CreatedAt) {
			return ps[i].CreatedAt.After(ps[j].CreatedAt)
		}
		return ps[i].ID < ps[j].ID
	})
}

// LineItemRepo implementa LineItemRepository en memoria.
type LineItemRepo struct{ a access }

func (r *LineItemRepo) Create(ctx context.Context, it *entity.LineItem) error {
	return r.a.do(func(d *data) error {
		if _, ok := d.items[it.ID]; ok {
			return domain.ErrDuplicate
		}
		if err := itemRefs(d, it); err != nil {
			return err
		}
		d.items[it.ID] = *it
		return nil
	})
}

func (r *LineItemRepo) GetByID(ctx context.Context, id string) (*entity.LineItem, error) {
	var out *entity.LineItem
	err := r.a.do(func(d *data) error {
		if it, ok := d.items[id]; ok {
			out = &it
		}
		return nil
	})
	return out, err
}

func (r *LineItemRepo) Update(ctx context.Context, it *entity.LineItem) error {
	return r.a.do(func(d *data) error {
		if _, ok := d.items[it.ID]; !ok {
			return domain.NewNotFound("detalle de bulto", it.ID)
		}
		if err := itemRefs(d, it); err != nil {
			return err
		}
		d.items[it.ID] = *it
		return nil
	})
}

func (r *LineItemRepo) Delete(ctx context.Context, id string) error {
	return r.a.do(func(d *data) error {
		if _, ok := d.items[id]; !ok {
			return domain.NewNotFound("detalle de bulto", id)
		}
		delete(d.items, id)
		return nil
	})
}

func (r *LineItemRepo) DeleteByPackage(ctx context.Context, packageID string) error {
	return r.a.do(func(d *data) error {
		for id, it := range d.items {
			if it.PackageID == packageID {
				delete(d.items, id)
			}
		}
		return nil
	})
}

func (r *LineItemRepo) ListByPackage(ctx context.Context, packageID string) ([]*entity.LineItem, error) {
	var out []*entity.LineItem
	err := r.a.do(func(d *data) error {
		out = []*entity.LineItem{}
		for _, it := range d.items {
			if it.PackageID == packageID {
				it := it
				out = append(out, &it)
			}
		}
		sortItems(out)
		return nil
	})
	return out, err
}

func (r *LineItemRepo) PackageIDsWithItems(ctx context.Context) ([]string, error) {
	var out []string
	err := r.a.do(func(d *data) error {
		seen := map[string]bool{}
		for _, it := range d.items {
			if !seen[it.PackageID] {
				seen[it.PackageID] = true
				out = append(out, it.PackageID)
			}
		}
		sort.Strings(out)
		return nil
	})
	return out, err
}

func (r *LineItemRepo) List(ctx context.Context, f repository.LineItemFilter, limit, offset int) ([]*entity.LineItem, int, error) {
	var out []*entity.LineItem
	var total int
	err := r.a.do(func(d *data) error {
		all := make([]*entity.LineItem, 0, len(d.items))
		for _, it := range d.items {
			if !containsFold(d.products[it.ProductID].Name, f.ProductName) || !containsFold(it.Lot, f.Lot) {
				continue
			}
			it := it
			all = append(all, &it)
		}
		sortItems(all)
		out, total = page(all, limit, offset)
		return nil
	})
	return out, total, err
}

// itemRefs replica las llaves foráneas de line_items y el CHECK de cantidad.
func itemRefs(d *data, it *entity.LineItem) error {
	if it.Quantity <= 0 {
		return domain.NewValidationError("cantidad", "debe ser mayor que cero")
	}
	if _, ok := d.packages[it.PackageID]; !ok {
		return domain.ErrConflict
	}
	if _, ok := d.products[it.ProductID]; !ok {
		return domain.ErrConflict
	}
	return nil
}

func sortItems(items []*entity.LineItem) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
}
