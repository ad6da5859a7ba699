package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, price, quantity_on_hand, category_id, special_storage_id, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var storageID *string
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.QuantityOnHand, &p.CategoryID, &storageID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.SpecialStorageID = emptyIfNull(storageID)
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Price, product.QuantityOnHand, product.CategoryID,
		nullIfEmpty(product.SpecialStorageID), product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve nil, nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene el producto con SELECT ... FOR UPDATE. Solo tiene efecto dentro de una tx.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock product: %w", err)
	}
	return p, nil
}

// Update actualiza nombre, precio y referencias. quantity_on_hand no se toca aquí.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, price = $3, category_id = $4, special_storage_id = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Price, product.CategoryID, nullIfEmpty(product.SpecialStorageID), product.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("update product", err)
	}
	return expectOne(tag, "producto", product.ID)
}

// ApplyDelta suma delta al stock solo si el saldo resultante no es negativo.
func (r *ProductRepo) ApplyDelta(ctx context.Context, id string, delta int) (int, error) {
	query := `
		UPDATE products SET quantity_on_hand = quantity_on_hand + $2, updated_at = NOW()
		WHERE id = $1 AND quantity_on_hand + $2 >= 0
		RETURNING quantity_on_hand`
	var qty int
	err := r.q.QueryRow(ctx, query, id, delta).Scan(&qty)
	if err == nil {
		return qty, nil
	}
	if !isNoRows(err) {
		return 0, fmt.Errorf("apply stock delta: %w", err)
	}

	// Sin filas: o el producto no existe o el saldo quedaría negativo.
	var name string
	var current int
	err = r.q.QueryRow(ctx, `SELECT name, quantity_on_hand FROM products WHERE id = $1`, id).Scan(&name, &current)
	if err != nil {
		if isNoRows(err) {
			return 0, domain.NewNotFound("producto", id)
		}
		return 0, fmt.Errorf("get product stock: %w", err)
	}
	return 0, &domain.StockError{ProductID: id, ProductName: name, Available: current, Requested: -delta}
}

// List lista productos por nombre con filtros opcionales (ILIKE) y paginación.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter, limit, offset int) ([]*entity.Product, int, error) {
	where := `WHERE ($1 = '' OR name ILIKE $2) AND ($3 = '' OR category_id::text = $3)`
	args := []any{f.Name, likePattern(f.Name), f.CategoryID}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	rows, err := r.q.Query(ctx,
		`SELECT `+productColumns+` FROM products `+where+` ORDER BY name, id LIMIT $4 OFFSET $5`,
		append(args, limitOrAll(limit), offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// Delete elimina un producto. Falla con ErrConflict si algún detalle de bulto lo referencia.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return mapWriteError("delete product", err)
	}
	return expectOne(tag, "producto", id)
}

// limitOrAll: 0 o negativo = sin límite (LIMIT NULL).
func limitOrAll(limit int) *int {
	if limit <= 0 {
		return nil
	}
	return &limit
}
