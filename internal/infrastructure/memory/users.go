package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var (
	_ repository.UserRepository = (*UserRepo)(nil)
	_ repository.RoleRepository = (*RoleRepo)(nil)
)

// UserRepo implementa UserRepository en memoria. El email es único sin distinguir mayúsculas.
type UserRepo struct{ a access }

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	return r.a.do(func(d *data) error {
		for _, other := range d.users {
			if fold(other.Email) == fold(u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		if !hasRole(d, u.Role) {
			return domain.ErrConflict
		}
		d.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.a.do(func(d *data) error {
		if u, ok := d.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.a.do(func(d *data) error {
		for _, u := range d.users {
			if fold(u.Email) == fold(email) {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	return r.a.do(func(d *data) error {
		if _, ok := d.users[u.ID]; !ok {
			return domain.ErrUserNotFound
		}
		for id, other := range d.users {
			if id != u.ID && fold(other.Email) == fold(u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		if !hasRole(d, u.Role) {
			return domain.ErrConflict
		}
		d.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, int, error) {
	var out []*entity.User
	var total int
	err := r.a.do(func(d *data) error {
		all := make([]*entity.User, 0, len(d.users))
		for _, u := range d.users {
			u := u
			all = append(all, &u)
		}
		sortByName(all, func(u *entity.User) string { return u.Email }, func(u *entity.User) string { return u.ID })
		out, total = page(all, limit, offset)
		return nil
	})
	return out, total, err
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	return r.a.do(func(d *data) error {
		if _, ok := d.users[id]; !ok {
			return domain.ErrUserNotFound
		}
		delete(d.users, id)
		return nil
	})
}

// RoleRepo implementa RoleRepository en memoria. El nombre es único.
type RoleRepo struct{ a access }

func (r *RoleRepo) Create(ctx context.Context, role *entity.Role) error {
	return r.a.do(func(d *data) error {
		for _, other := range d.roles {
			if fold(other.Name) == fold(role.Name) {
				return domain.ErrDuplicate
			}
		}
		d.roles[role.ID] = *role
		return nil
	})
}

func (r *RoleRepo) GetByID(ctx context.Context, id string) (*entity.Role, error) {
	var out *entity.Role
	err := r.a.do(func(d *data) error {
		if role, ok := d.roles[id]; ok {
			out = &role
		}
		return nil
	})
	return out, err
}

func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	var out *entity.Role
	err := r.a.do(func(d *data) error {
		for _, role := range d.roles {
			if fold(role.Name) == fold(name) {
				role := role
				out = &role
				return nil
			}
		}
		return nil
	})
	return out, err
}

// Update renombra el rol y actualiza a los usuarios que lo tienen asignado.
func (r *RoleRepo) Update(ctx context.Context, role *entity.Role) error {
	return r.a.do(func(d *data) error {
		cur, ok := d.roles[role.ID]
		if !ok {
			return domain.NewNotFound("rol", role.ID)
		}
		for id, other := range d.roles {
			if id != role.ID && fold(other.Name) == fold(role.Name) {
				return domain.ErrDuplicate
			}
		}
		for id, u := range d.users {
			if u.Role == cur.Name {
				u.Role = role.Name
				d.users[id] = u
			}
		}
		d.roles[role.ID] = *role
		return nil
	})
}

func (r *RoleRepo) List(ctx context.Context) ([]*entity.Role, error) {
	var out []*entity.Role
	err := r.a.do(func(d *data) error {
		out = make([]*entity.Role, 0, len(d.roles))
		for _, role := range d.roles {
			role := role
			out = append(out, &role)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

// Delete falla con ErrConflict si algún usuario tiene el rol asignado.
func (r *RoleRepo) Delete(ctx context.Context, id string) error {
	return r.a.do(func(d *data) error {
		role, ok := d.roles[id]
		if !ok {
			return domain.NewNotFound("rol", id)
		}
		for _, u := range d.users {
			if u.Role == role.Name {
				return domain.ErrConflict
			}
		}
		delete(d.roles, id)
		return nil
	})
}

// hasRole replica la FK users.role -> roles.name.
func hasRole(d *data, name string) bool {
	for _, role := range d.roles {
		if role.Name == name {
			return true
		}
	}
	return false
}
