package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var (
	_ repository.EntryRepository = (*EntryRepo)(nil)
	_ repository.ExitRepository  = (*ExitRepo)(nil)
)

// recordRow columnas comunes de entries y exits.
type recordRow struct {
	ID        string
	PackageID string
	UserID    string
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// recordTable CRUD de entries / exits (mismas columnas; package_id único).
type recordTable struct {
	q      Querier
	table  string
	entity string
}

const recordColumns = `id, package_id, user_id, date, created_at, updated_at`

func (t recordTable) scan(row pgx.Row) (*recordRow, error) {
	var r recordRow
	if err := row.Scan(&r.ID, &r.PackageID, &r.UserID, &r.Date, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

func (t recordTable) create(ctx context.Context, r recordRow) error {
	_, err := t.q.Exec(ctx,
		fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6)`, t.table, recordColumns),
		r.ID, r.PackageID, r.UserID, r.Date, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return mapWriteError("insert "+t.table, err)
	}
	return nil
}

func (t recordTable) getBy(ctx context.Context, column, value string) (*recordRow, error) {
	r, err := t.scan(t.q.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, recordColumns, t.table, column), value))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s by %s: %w", t.table, column, err)
	}
	return r, nil
}

func (t recordTable) update(ctx context.Context, r recordRow) error {
	tag, err := t.q.Exec(ctx,
		fmt.Sprintf(`UPDATE %s SET package_id = $2, user_id = $3, date = $4, updated_at = $5 WHERE id = $1`, t.table),
		r.ID, r.PackageID, r.UserID, r.Date, r.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("update "+t.table, err)
	}
	return expectOne(tag, t.entity, r.ID)
}

func (t recordTable) delete(ctx context.Context, id string) error {
	tag, err := t.q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, t.table), id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", t.table, err)
	}
	return expectOne(tag, t.entity, id)
}

func (t recordTable) list(ctx context.Context, f repository.RecordFilter, limit, offset int) ([]recordRow, int, error) {
	where := `WHERE ($1 = '' OR user_id::text = $1) AND ($2 = '' OR package_id::text = $2)`
	var total int
	if err := t.q.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, t.table, where), f.UserID, f.PackageID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", t.table, err)
	}
	rows, err := t.q.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM %s %s ORDER BY date DESC, id LIMIT $3 OFFSET $4`, recordColumns, t.table, where),
		f.UserID, f.PackageID, limitOrAll(limit), offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", t.table, err)
	}
	defer rows.Close()
	var list []recordRow
	for rows.Next() {
		r, err := t.scan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan %s: %w", t.table, err)
		}
		list = append(list, *r)
	}
	return list, total, rows.Err()
}

// EntryRepo implementación del puerto EntryRepository sobre PostgreSQL.
type EntryRepo struct{ t recordTable }

// NewEntryRepository construye el adaptador de entradas.
func NewEntryRepository(q Querier) *EntryRepo {
	return &EntryRepo{t: recordTable{q: q, table: "entries", entity: "entrada"}}
}

func (r *EntryRepo) Create(ctx context.Context, e *entity.Entry) error {
	return r.t.create(ctx, recordRow(*e))
}

func (r *EntryRepo) GetByID(ctx context.Context, id string) (*entity.Entry, error) {
	return toEntry(r.t.getBy(ctx, "id", id))
}

func (r *EntryRepo) GetByPackage(ctx context.Context, packageID string) (*entity.Entry, error) {
	return toEntry(r.t.getBy(ctx, "package_id", packageID))
}

func (r *EntryRepo) Update(ctx context.Context, e *entity.Entry) error {
	return r.t.update(ctx, recordRow(*e))
}

func (r *EntryRepo) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}

func (r *EntryRepo) List(ctx context.Context, f repository.RecordFilter, limit, offset int) ([]*entity.Entry, int, error) {
	rows, total, err := r.t.list(ctx, f, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	list := make([]*entity.Entry, 0, len(rows))
	for _, row := range rows {
		e := entity.Entry(row)
		list = append(list, &e)
	}
	return list, total, nil
}

func toEntry(row *recordRow, err error) (*entity.Entry, error) {
	if row == nil || err != nil {
		return nil, err
	}
	e := entity.Entry(*row)
	return &e, nil
}

// ExitRepo implementación del puerto ExitRepository sobre PostgreSQL.
type ExitRepo struct{ t recordTable }

// NewExitRepository construye el adaptador de salidas.
func NewExitRepository(q Querier) *ExitRepo {
	return &ExitRepo{t: recordTable{q: q, table: "exits", entity: "salida"}}
}

func (r *ExitRepo) Create(ctx context.Context, e *entity.Exit) error {
	return r.t.create(ctx, recordRow(*e))
}

func (r *ExitRepo) GetByID(ctx context.Context, id string) (*entity.Exit, error) {
	return toExit(r.t.getBy(ctx, "id", id))
}

func (r *ExitRepo) GetByPackage(ctx context.Context, packageID string) (*entity.Exit, error) {
	return toExit(r.t.getBy(ctx, "package_id", packageID))
}

func (r *ExitRepo) Update(ctx context.Context, e *entity.Exit) error {
	return r.t.update(ctx, recordRow(*e))
}

func (r *ExitRepo) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}

func (r *ExitRepo) List(ctx context.Context, f repository.RecordFilter, limit, offset int) ([]*entity.Exit, int, error) {
	rows, total, err := r.t.list(ctx, f, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	list := make([]*entity.Exit, 0, len(rows))
	for _, row := range rows {
		e := entity.Exit(row)
		list = append(list, &e)
	}
	return list, total, nil
}

func toExit(row *recordRow, err error) (*entity.Exit, error) {
	if row == nil || err != nil {
		return nil, err
	}
	e := entity.Exit(*row)
	return &e, nil
}
