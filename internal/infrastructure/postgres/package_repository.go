package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var (
	_ repository.PackageRepository  = (*PackageRepo)(nil)
	_ repository.LineItemRepository = (*LineItemRepo)(nil)
)

// PackageRepo implementación del puerto PackageRepository sobre PostgreSQL (usable con pool o tx).
type PackageRepo struct {
	q Querier
}

// NewPackageRepository construye el adaptador de persistencia para bultos.
func NewPackageRepository(q Querier) *PackageRepo {
	return &PackageRepo{q: q}
}

const packageColumns = `id, description, current_location, state_id, created_at, updated_at`

func scanPackage(row pgx.Row) (*entity.Package, error) {
	var p entity.Package
	var stateID *string
	if err := row.Scan(&p.ID, &p.Description, &p.CurrentLocation, &stateID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.StateID = emptyIfNull(stateID)
	return &p, nil
}

// Create persiste un nuevo bulto.
func (r *PackageRepo) Create(ctx context.Context, pkg *entity.Package) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO packages (`+packageColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		pkg.ID, pkg.Description, pkg.CurrentLocation, nullIfEmpty(pkg.StateID), pkg.CreatedAt, pkg.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("insert package", err)
	}
	return nil
}

// GetByID obtiene un bulto por ID. Devuelve nil, nil si no existe.
func (r *PackageRepo) GetByID(ctx context.Context, id string) (*entity.Package, error) {
	p, err := scanPackage(r.q.QueryRow(ctx, `SELECT `+packageColumns+` FROM packages WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get package: %w", err)
	}
	return p, nil
}

// Update actualiza descripción, ubicación y estado.
func (r *PackageRepo) Update(ctx context.Context, pkg *entity.Package) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE packages SET description = $2, current_location = $3, state_id = $4, updated_at = $5 WHERE id = $1`,
		pkg.ID, pkg.Description, pkg.CurrentLocation, nullIfEmpty(pkg.StateID), pkg.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("update package", err)
	}
	return expectOne(tag, "bulto", pkg.ID)
}

// UpdateLocation solo cambia la ubicación actual.
func (r *PackageRepo) UpdateLocation(ctx context.Context, id, location string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE packages SET current_location = $2, updated_at = NOW() WHERE id = $1`, id, location)
	if err != nil {
		return fmt.Errorf("update package location: %w", err)
	}
	return expectOne(tag, "bulto", id)
}

// List lista bultos (más recientes primero) filtrando por ubicación y estado.
func (r *PackageRepo) List(ctx context.Context, f repository.PackageFilter, limit, offset int) ([]*entity.Package, int, error) {
	where := `WHERE ($1 = '' OR LOWER(current_location) = LOWER($1)) AND ($2 = '' OR state_id::text = $2)`
	args := []any{f.Location, f.StateID}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM packages `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count packages: %w", err)
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+packageColumns+` FROM packages `+where+` ORDER BY created_at DESC, id LIMIT $3 OFFSET $4`,
		append(args, limitOrAll(limit), offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list packages: %w", err)
	}
	list, err := collectPackages(rows)
	return list, total, err
}

// ListAll devuelve todos los bultos (opciones de formularios y exportación).
func (r *PackageRepo) ListAll(ctx context.Context) ([]*entity.Package, error) {
	rows, err := r.q.Query(ctx, `SELECT `+packageColumns+` FROM packages ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list all packages: %w", err)
	}
	return collectPackages(rows)
}

func collectPackages(rows pgx.Rows) ([]*entity.Package, error) {
	defer rows.Close()
	var list []*entity.Package
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan package: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina el bulto. Los detalles, entrada, salida y movimientos deben eliminarse antes.
func (r *PackageRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM packages WHERE id = $1`, id)
	if err != nil {
		return mapWriteError("delete package", err)
	}
	return expectOne(tag, "bulto", id)
}

// LineItemRepo implementación del puerto LineItemRepository sobre PostgreSQL.
type LineItemRepo struct {
	q Querier
}

// NewLineItemRepository construye el adaptador de persistencia para detalles de bulto.
func NewLineItemRepository(q Querier) *LineItemRepo {
	return &LineItemRepo{q: q}
}

const lineItemColumns = `id, package_id, product_id, quantity, lot, expires_at, created_at, updated_at`

func scanLineItem(row pgx.Row) (*entity.LineItem, error) {
	var it entity.LineItem
	if err := row.Scan(&it.ID, &it.PackageID, &it.ProductID, &it.Quantity, &it.Lot, &it.ExpiresAt, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, err
	}
	return &it, nil
}

// Create persiste un detalle.
func (r *LineItemRepo) Create(ctx context.Context, it *entity.LineItem) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO line_items (`+lineItemColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		it.ID, it.PackageID, it.ProductID, it.Quantity, it.Lot, it.ExpiresAt, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("insert line item", err)
	}
	return nil
}

// GetByID obtiene un detalle por ID. Devuelve nil, nil si no existe.
func (r *LineItemRepo) GetByID(ctx context.Context, id string) (*entity.LineItem, error) {
	it, err := scanLineItem(r.q.QueryRow(ctx, `SELECT `+lineItemColumns+` FROM line_items WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get line item: %w", err)
	}
	return it, nil
}

// Update actualiza bulto, producto, cantidad, lote y vencimiento.
func (r *LineItemRepo) Update(ctx context.Context, it *entity.LineItem) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE line_items SET package_id = $2, product_id = $3, quantity = $4, lot = $5, expires_at = $6, updated_at = $7
		WHERE id = $1`,
		it.ID, it.PackageID, it.ProductID, it.Quantity, it.Lot, it.ExpiresAt, it.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("update line item", err)
	}
	return expectOne(tag, "detalle de bulto", it.ID)
}

// Delete elimina un detalle.
func (r *LineItemRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM line_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete line item: %w", err)
	}
	return expectOne(tag, "detalle de bulto", id)
}

// DeleteByPackage elimina todos los detalles del bulto.
func (r *LineItemRepo) DeleteByPackage(ctx context.Context, packageID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM line_items WHERE package_id = $1`, packageID); err != nil {
		return fmt.Errorf("delete line items by package: %w", err)
	}
	return nil
}

// ListByPackage devuelve los detalles del bulto en orden de creación.
func (r *LineItemRepo) ListByPackage(ctx context.Context, packageID string) ([]*entity.LineItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+lineItemColumns+` FROM line_items WHERE package_id = $1 ORDER BY created_at, id`, packageID)
	if err != nil {
		return nil, fmt.Errorf("list line items by package: %w", err)
	}
	return collectLineItems(rows)
}

// PackageIDsWithItems devuelve los bultos que tienen al menos un detalle.
func (r *LineItemRepo) PackageIDsWithItems(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT package_id::text FROM line_items ORDER BY 1`)
	if err != nil {
		return nil, fmt.Errorf("list packages with items: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan package id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// List lista los detalles paginados, filtrando por nombre de producto y lote.
func (r *LineItemRepo) List(ctx context.Context, f repository.LineItemFilter, limit, offset int) ([]*entity.LineItem, int, error) {
	where := `WHERE ($1 = '' OR product_id IN (SELECT id FROM products WHERE name ILIKE $2)) AND ($3 = '' OR lot ILIKE $4)`
	args := []any{f.ProductName, likePattern(f.ProductName), f.Lot, likePattern(f.Lot)}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM line_items `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count line items: %w", err)
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+lineItemColumns+` FROM line_items `+where+` ORDER BY created_at, id LIMIT $5 OFFSET $6`,
		append(args, limitOrAll(limit), offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list line items: %w", err)
	}
	list, err := collectLineItems(rows)
	return list, total, err
}

func collectLineItems(rows pgx.Rows) ([]*entity.LineItem, error) {
	defer rows.Close()
	list := []*entity.LineItem{}
	for rows.Next() {
		it, err := scanLineItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
