package memory

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository        = (*ProductRepo)(nil)
	_ repository.CategoryRepository       = (*CategoryRepo)(nil)
	_ repository.SpecialStorageRepository = (*SpecialStorageRepo)(nil)
	_ repository.PackageStateRepository   = (*PackageStateRepo)(nil)
)

// ProductRepo implementa ProductRepository en memoria.
type ProductRepo struct{ a access }

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	return r.a.do(func(d *data) error {
		if _, ok := d.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		if p.QuantityOnHand < 0 {
			return domain.NewValidationError("cantidad", "no puede ser negativa")
		}
		d.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.a.do(func(d *data) error {
		if p, ok := d.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: el lock del store ya serializa las transacciones.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	return r.a.do(func(d *data) error {
		cur, ok := d.products[p.ID]
		if !ok {
			return domain.NewNotFound("producto", p.ID)
		}
		next := *p
		next.QuantityOnHand = cur.QuantityOnHand
		next.CreatedAt = cur.CreatedAt
		d.products[p.ID] = next
		return nil
	})
}

func (r *ProductRepo) ApplyDelta(ctx context.Context, id string, delta int) (int, error) {
	var qty int
	err := r.a.do(func(d *data) error {
		p, ok := d.products[id]
		if !ok {
			return domain.NewNotFound("producto", id)
		}
		if p.QuantityOnHand+delta < 0 {
			return &domain.StockError{ProductID: id, ProductName: p.Name, Available: p.QuantityOnHand, Requested: -delta}
		}
		p.QuantityOnHand += delta
		d.products[id] = p
		qty = p.QuantityOnHand
		return nil
	})
	return qty, err
}

func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter, limit, offset int) ([]*entity.Product, int, error) {
	var out []*entity.Product
	var total int
	err := r.a.do(func(d *data) error {
		all := make([]*entity.Product, 0, len(d.products))
		for _, p := range d.products {
			if !containsFold(p.Name, f.Name) || (f.CategoryID != "" && p.CategoryID != f.CategoryID) {
				continue
			}
			p := p
			all = append(all, &p)
		}
		sortByName(all, func(p *entity.Product) string { return p.Name }, func(p *entity.Product) string { return p.ID })
		out, total = page(all, limit, offset)
		return nil
	})
	return out, total, err
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return r.a.do(func(d *data) error {
		if _, ok := d.products[id]; !ok {
			return domain.NewNotFound("producto", id)
		}
		for _, it := range d.items {
			if it.ProductID == id {
				return domain.ErrConflict
			}
		}
		delete(d.products, id)
		return nil
	})
}

// CategoryRepo implementa CategoryRepository en memoria.
type CategoryRepo struct{ a access }

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	return r.a.do(func(d *data) error {
		if _, ok := d.categories[c.ID]; ok {
			return domain.ErrDuplicate
		}
		d.categories[c.ID] = *c
		return nil
	})
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.a.do(func(d *data) error {
		if c, ok := d.categories[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	return r.a.do(func(d *data) error {
		if _, ok := d.categories[c.ID]; !ok {
			return domain.NewNotFound("categoría", c.ID)
		}
		d.categories[c.ID] = *c
		return nil
	})
}

func (r *CategoryRepo) List(ctx context.Context, limit, offset int) ([]*entity.Category, int, error) {
	var out []*entity.Category
	var total int
	err := r.a.do(func(d *data) error {
		all := make([]*entity.Category, 0, len(d.categories))
		for _, c := range d.categories {
			c := c
			all = append(all, &c)
		}
		sortByName(all, func(c *entity.Category) string { return c.Name }, func(c *entity.Category) string { return c.ID })
		out, total = page(all, limit, offset)
		return nil
	})
	return out, total, err
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	return r.a.do(func(d *data) error {
		if _, ok := d.categories[id]; !ok {
			return domain.NewNotFound("categoría", id)
		}
		for _, p := range d.products {
			if p.CategoryID == id {
				return domain.ErrConflict
			}
		}
		delete(d.categories, id)
		return nil
	})
}

// SpecialStorageRepo implementa SpecialStorageRepository en memoria.
type SpecialStorageRepo struct{ a access }

func (r *SpecialStorageRepo) Create(ctx context.Context, s *entity.SpecialStorage) error {
	return r.a.do(func(d *data) error {
		if _, ok := d.storages[s.ID]; ok {
			return domain.ErrDuplicate
		}
		d.storages[s.ID] = *s
		return nil
	})
}

func (r *SpecialStorageRepo) GetByID(ctx context.Context, id string) (*entity.SpecialStorage, error) {
	var out *entity.SpecialStorage
	err := r.a.do(func(d *data) error {
		if s, ok := d.storages[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SpecialStorageRepo) Update(ctx context.Context, s *entity.SpecialStorage) error {
	return r.a.do(func(d *data) error {
		if _, ok := d.storages[s.ID]; !ok {
			return domain.NewNotFound("almacenamiento especial", s.ID)
		}
		d.storages[s.ID] = *s
		return nil
	})
}

func (r *SpecialStorageRepo) List(ctx context.Context, limit, offset int) ([]*entity.SpecialStorage, int, error) {
	var out []*entity.SpecialStorage
	var total int
	err := r.a.do(func(d *data) error {
		all := make([]*entity.SpecialStorage, 0, len(d.storages))
		for _, s := range d.storages {
			s := s
			all = append(all, &s)
		}
		sortByName(all, func(s *entity.SpecialStorage) string { return s.Name }, func(s *entity.SpecialStorage) string { return s.ID })
		out, total = page(all, limit, offset)
		return nil
	})
	return out, total, err
}

func (r *SpecialStorageRepo) Delete(ctx context.Context, id string) error {
	return r.a.do(func(d *data) error {
		if _, ok := d.storages[id]; !ok {
			return domain.NewNotFound("almacenamiento especial", id)
		}
		for _, p := range d.products {
			if p.SpecialStorageID == id {
				return domain.ErrConflict
			}
		}
		delete(d.storages, id)
		return nil
	})
}

// PackageStateRepo implementa PackageStateRepository en memoria.
type PackageStateRepo struct{ a access }

func (r *PackageStateRepo) Create(ctx context.Context, s *entity.PackageState) error {
	return r.a.do(func(d *data) error {
		if _, ok := d.states[s.ID]; ok {
			return domain.ErrDuplicate
		}
		d.states[s.ID] = *s
		return nil
	})
}

func (r *PackageStateRepo) GetByID(ctx context.Context, id string) (*entity.PackageState, error) {
	var out *entity.PackageState
	err := r.a.do(func(d *data) error {
		if s, ok := d.states[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *PackageStateRepo) Update(ctx context.Context, s *entity.PackageState) error {
	return r.a.do(func(d *data) error {
		if _, ok := d.states[s.ID]; !ok {
			return domain.NewNotFound("estado de bulto", s.ID)
		}
		d.states[s.ID] = *s
		return nil
	})
}

func (r *PackageStateRepo) List(ctx context.Context, limit, offset int) ([]*entity.PackageState, int, error) {
	var out []*entity.PackageState
	var total int
	err := r.a.do(func(d *data) error {
		all := make([]*entity.PackageState, 0, len(d.states))
		for _, s := range d.states {
			s := s
			all = append(all, &s)
		}
		sortByName(all, func(s *entity.PackageState) string { return s.Name }, func(s *entity.PackageState) string { return s.ID })
		out, total = page(all, limit, offset)
		return nil
	})
	return out, total, err
}

func (r *PackageStateRepo) Delete(ctx context.Context, id string) error {
	return r.a.do(func(d *data) error {
		if _, ok := d.states[id]; !ok {
			return domain.NewNotFound("estado de bulto", id)
		}
		for _, p := range d.packages {
			if p.StateID == id {
				return domain.ErrConflict
			}
		}
		delete(d.states, id)
		return nil
	})
}
