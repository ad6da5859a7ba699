package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var (
	_ repository.UserRepository = (*UserRepo)(nil)
	_ repository.RoleRepository = (*RoleRepo)(nil)
)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, email, password_hash, name, role, status, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Role, user.Status, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return mapWriteError("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, "get user by id", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email (sin distinguir mayúsculas).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "get user by email", `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1) LIMIT 1`, email)
}

func (r *UserRepo) findOne(ctx context.Context, op, query string, arg string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// Update actualiza un usuario.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE users SET email = $2, password_hash = $3, name = $4, role = $5, status = $6, updated_at = $7 WHERE id = $1`,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Role, user.Status, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return mapWriteError("update user", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List lista usuarios por email con paginación.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY email, id LIMIT $1 OFFSET $2`, limitOrAll(limit), offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, total, rows.Err()
}

// Delete elimina un usuario por ID. Falla con ErrConflict si tiene entradas, salidas o movimientos.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapWriteError("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// RoleRepo implementación del puerto RoleRepository sobre PostgreSQL.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador de persistencia para roles.
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

func scanRole(row pgx.Row) (*entity.Role, error) {
	var role entity.Role
	if err := row.Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt); err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepo) Create(ctx context.Context, role *entity.Role) error {
	_, err := r.q.Exec(ctx, `INSERT INTO roles (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		role.ID, role.Name, role.CreatedAt, role.UpdatedAt)
	if err != nil {
		return mapWriteError("insert role", err)
	}
	return nil
}

func (r *RoleRepo) GetByID(ctx context.Context, id string) (*entity.Role, error) {
	return r.findOne(ctx, `SELECT id, name, created_at, updated_at FROM roles WHERE id = $1`, id)
}

func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	return r.findOne(ctx, `SELECT id, name, created_at, updated_at FROM roles WHERE LOWER(name) = LOWER($1)`, name)
}

func (r *RoleRepo) findOne(ctx context.Context, query, arg string) (*entity.Role, error) {
	role, err := scanRole(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return role, nil
}

// Update renombra el rol y actualiza a los usuarios que lo tienen asignado.
func (r *RoleRepo) Update(ctx context.Context, role *entity.Role) error {
	tag, err := r.q.Exec(ctx, `UPDATE roles SET name = $2, updated_at = $3 WHERE id = $1`, role.ID, role.Name, role.UpdatedAt)
	if err != nil {
		return mapWriteError("update role", err)
	}
	return expectOne(tag, "rol", role.ID)
}

func (r *RoleRepo) List(ctx context.Context) ([]*entity.Role, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, created_at, updated_at FROM roles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, role)
	}
	return list, rows.Err()
}

// Delete falla con ErrConflict si algún usuario tiene el rol asignado.
func (r *RoleRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return mapWriteError("delete role", err)
	}
	return expectOne(tag, "rol", id)
}
