package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository       = (*CategoryRepo)(nil)
	_ repository.SpecialStorageRepository = (*SpecialStorageRepo)(nil)
	_ repository.PackageStateRepository   = (*PackageStateRepo)(nil)
)

// catalogRow columnas comunes de las tablas de catálogo (id, name, created_at, updated_at).
type catalogRow struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// catalogTable CRUD genérico sobre una tabla de catálogo.
type catalogTable struct {
	q      Querier
	table  string
	entity string // nombre para NotFoundError
}

func (t catalogTable) create(ctx context.Context, row catalogRow) error {
	query := fmt.Sprintf(`INSERT INTO %s (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`, t.table)
	if _, err := t.q.Exec(ctx, query, row.ID, row.Name, row.CreatedAt, row.UpdatedAt); err != nil {
		return mapWriteError("insert "+t.table, err)
	}
	return nil
}

func (t catalogTable) get(ctx context.Context, id string) (*catalogRow, error) {
	query := fmt.Sprintf(`SELECT id, name, created_at, updated_at FROM %s WHERE id = $1`, t.table)
	var row catalogRow
	err := t.q.QueryRow(ctx, query, id).Scan(&row.ID, &row.Name, &row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", t.table, err)
	}
	return &row, nil
}

func (t catalogTable) update(ctx context.Context, row catalogRow) error {
	query := fmt.Sprintf(`UPDATE %s SET name = $2, updated_at = $3 WHERE id = $1`, t.table)
	tag, err := t.q.Exec(ctx, query, row.ID, row.Name, row.UpdatedAt)
	if err != nil {
		return mapWriteError("update "+t.table, err)
	}
	return expectOne(tag, t.entity, row.ID)
}

func (t catalogTable) list(ctx context.Context, limit, offset int) ([]catalogRow, int, error) {
	var total int
	if err := t.q.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, t.table)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", t.table, err)
	}
	query := fmt.Sprintf(`SELECT id, name, created_at, updated_at FROM %s ORDER BY name, id LIMIT $1 OFFSET $2`, t.table)
	rows, err := t.q.Query(ctx, query, limitOrAll(limit), offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", t.table, err)
	}
	defer rows.Close()
	var list []catalogRow
	for rows.Next() {
		var row catalogRow
		if err := rows.Scan(&row.ID, &row.Name, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan %s: %w", t.table, err)
		}
		list = append(list, row)
	}
	return list, total, rows.Err()
}

func (t catalogTable) delete(ctx context.Context, id string) error {
	tag, err := t.q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, t.table), id)
	if err != nil {
		return mapWriteError("delete "+t.table, err)
	}
	return expectOne(tag, t.entity, id)
}

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct{ t catalogTable }

// NewCategoryRepository construye el adaptador de categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{t: catalogTable{q: q, table: "categories", entity: "categoría"}}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	return r.t.create(ctx, catalogRow(*c))
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	row, err := r.t.get(ctx, id)
	if row == nil || err != nil {
		return nil, err
	}
	c := entity.Category(*row)
	return &c, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	return r.t.update(ctx, catalogRow(*c))
}

func (r *CategoryRepo) List(ctx context.Context, limit, offset int) ([]*entity.Category, int, error) {
	rows, total, err := r.t.list(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	list := make([]*entity.Category, 0, len(rows))
	for _, row := range rows {
		c := entity.Category(row)
		list = append(list, &c)
	}
	return list, total, nil
}

// Delete falla con ErrConflict si algún producto usa la categoría.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}

// SpecialStorageRepo implementación del puerto SpecialStorageRepository sobre PostgreSQL.
type SpecialStorageRepo struct{ t catalogTable }

// NewSpecialStorageRepository construye el adaptador de almacenamientos especiales.
func NewSpecialStorageRepository(q Querier) *SpecialStorageRepo {
	return &SpecialStorageRepo{t: catalogTable{q: q, table: "special_storages", entity: "almacenamiento especial"}}
}

func (r *SpecialStorageRepo) Create(ctx context.Context, s *entity.SpecialStorage) error {
	return r.t.create(ctx, catalogRow(*s))
}

func (r *SpecialStorageRepo) GetByID(ctx context.Context, id string) (*entity.SpecialStorage, error) {
	row, err := r.t.get(ctx, id)
	if row == nil || err != nil {
		return nil, err
	}
	s := entity.SpecialStorage(*row)
	return &s, nil
}

func (r *SpecialStorageRepo) Update(ctx context.Context, s *entity.SpecialStorage) error {
	return r.t.update(ctx, catalogRow(*s))
}

func (r *SpecialStorageRepo) List(ctx context.Context, limit, offset int) ([]*entity.SpecialStorage, int, error) {
	rows, total, err := r.t.list(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	list := make([]*entity.SpecialStorage, 0, len(rows))
	for _, row := range rows {
		s := entity.SpecialStorage(row)
		list = append(list, &s)
	}
	return list, total, nil
}

func (r *SpecialStorageRepo) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}

// PackageStateRepo implementación del puerto PackageStateRepository sobre PostgreSQL.
type PackageStateRepo struct{ t catalogTable }

// NewPackageStateRepository construye el adaptador de estados de bulto.
func NewPackageStateRepository(q Querier) *PackageStateRepo {
	return &PackageStateRepo{t: catalogTable{q: q, table: "package_states", entity: "estado de bulto"}}
}

func (r *PackageStateRepo) Create(ctx context.Context, s *entity.PackageState) error {
	return r.t.create(ctx, catalogRow(*s))
}

func (r *PackageStateRepo) GetByID(ctx context.Context, id string) (*entity.PackageState, error) {
	row, err := r.t.get(ctx, id)
	if row == nil || err != nil {
		return nil, err
	}
	s := entity.PackageState(*row)
	return &s, nil
}

func (r *PackageStateRepo) Update(ctx context.Context, s *entity.PackageState) error {
	return r.t.update(ctx, catalogRow(*s))
}

func (r *PackageStateRepo) List(ctx context.Context, limit, offset int) ([]*entity.PackageState, int, error) {
	rows, total, err := r.t.list(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	list := make([]*entity.PackageState, 0, len(rows))
	for _, row := range rows {
		s := entity.PackageState(row)
		list = append(list, &s)
	}
	return list, total, nil
}

func (r *PackageStateRepo) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}
