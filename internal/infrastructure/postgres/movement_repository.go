package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de persistencia para movimientos.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, package_id, user_id, date, from_location, to_location, created_at, updated_at`

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	if err := row.Scan(&m.ID, &m.PackageID, &m.UserID, &m.Date, &m.FromLocation, &m.ToLocation, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste un movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO movements (`+movementColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.PackageID, m.UserID, m.Date, m.FromLocation, m.ToLocation, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("insert movement", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID. Devuelve nil, nil si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM movements WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// Update actualiza todos los campos editables del movimiento.
func (r *MovementRepo) Update(ctx context.Context, m *entity.Movement) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE movements SET package_id = $2, user_id = $3, date = $4, from_location = $5, to_location = $6, updated_at = $7
		WHERE id = $1`,
		m.ID, m.PackageID, m.UserID, m.Date, m.FromLocation, m.ToLocation, m.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("update movement", err)
	}
	return expectOne(tag, "movimiento", m.ID)
}

// Delete elimina un movimiento.
func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	return expectOne(tag, "movimiento", id)
}

// DeleteByPackage elimina todos los movimientos del bulto.
func (r *MovementRepo) DeleteByPackage(ctx context.Context, packageID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM movements WHERE package_id = $1`, packageID); err != nil {
		return fmt.Errorf("delete movements by package: %w", err)
	}
	return nil
}

// List lista movimientos (más recientes primero) con filtros de usuario, bulto, origen y destino.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter, limit, offset int) ([]*entity.Movement, int, error) {
	where := `WHERE ($1 = '' OR user_id::text = $1) AND ($2 = '' OR package_id::text = $2)
		AND ($3 = '' OR from_location ILIKE $4) AND ($5 = '' OR to_location ILIKE $6)`
	args := []any{f.UserID, f.PackageID, f.FromLocation, likePattern(f.FromLocation), f.ToLocation, likePattern(f.ToLocation)}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM movements `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+movementColumns+` FROM movements `+where+` ORDER BY date DESC, id LIMIT $7 OFFSET $8`,
		append(args, limitOrAll(limit), offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, total, rows.Err()
}
