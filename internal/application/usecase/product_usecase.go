package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock solo lo cambia el motor de stock.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	storages   repository.SpecialStorageRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository, storages repository.SpecialStorageRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories, storages: storages}
}

// Create crea un nuevo producto con stock 0.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "es requerido")
	}
	if in.Price.IsNegative() {
		return nil, domain.NewValidationError("price", "no puede ser negativo")
	}
	if err := uc.checkRefs(ctx, in.CategoryID, in.SpecialStorageID); err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:               uuid.New().String(),
		Name:             name,
		Price:            in.Price,
		QuantityOnHand:   0,
		CategoryID:       in.CategoryID,
		SpecialStorageID: in.SpecialStorageID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewNotFound("producto", id)
	}
	return uc.toResponse(ctx, product), nil
}

// Update actualiza nombre, precio y referencias. QuantityOnHand no es editable.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewNotFound("producto", id)
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "es requerido")
		}
		product.Name = name
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.NewValidationError("price", "no puede ser negativo")
		}
		product.Price = *in.Price
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.SpecialStorageID != nil {
		product.SpecialStorageID = *in.SpecialStorageID
	}
	if err := uc.checkRefs(ctx, product.CategoryID, product.SpecialStorageID); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, product), nil
}

// List lista productos por nombre con filtros de nombre y categoría.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductFilterRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.ProductFilter{Name: in.Name, CategoryID: in.CategoryID}, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	names := newNameCache(ctx, uc.categories, uc.storages)
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toProductResponse(p, names))
	}
	return &dto.ProductListResponse{Items: items, Page: dto.NewPageResponse(in.Limit, in.Offset, total)}, nil
}

// Delete elimina un producto. Falla con ErrConflict si algún bulto lo contiene.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *ProductUseCase) checkRefs(ctx context.Context, categoryID, storageID string) error {
	if categoryID == "" {
		return domain.NewValidationError("category_id", "es requerido")
	}
	c, err := uc.categories.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.NewNotFound("categoría", categoryID)
	}
	if storageID == "" {
		return nil
	}
	s, err := uc.storages.GetByID(ctx, storageID)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.NewNotFound("almacenamiento especial", storageID)
	}
	return nil
}

func (uc *ProductUseCase) toResponse(ctx context.Context, p *entity.Product) *dto.ProductResponse {
	out := toProductResponse(p, newNameCache(ctx, uc.categories, uc.storages))
	return &out
}

func toProductResponse(p *entity.Product, names *nameCache) dto.ProductResponse {
	return dto.ProductResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Price:              p.Price.Round(2),
		QuantityOnHand:     p.QuantityOnHand,
		StockValue:         inventory.StockValue(p.QuantityOnHand, p.Price),
		CategoryID:         p.CategoryID,
		CategoryName:       names.category(p.CategoryID),
		SpecialStorageID:   p.SpecialStorageID,
		SpecialStorageName: names.storage(p.SpecialStorageID),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

// nameCache resuelve nombres de categorías y almacenamientos una sola vez por listado.
// Los errores de lectura dejan el nombre vacío.
type nameCache struct {
	ctx        context.Context
	categories repository.CategoryRepository
	storages   repository.SpecialStorageRepository
	cache      map[string]string
}

func newNameCache(ctx context.Context, categories repository.CategoryRepository, storages repository.SpecialStorageRepository) *nameCache {
	return &nameCache{ctx: ctx, categories: categories, storages: storages, cache: map[string]string{}}
}

func (n *nameCache) category(id string) string {
	if id == "" {
		return ""
	}
	if v, ok := n.cache["c:"+id]; ok {
		return v
	}
	var name string
	if c, err := n.categories.GetByID(n.ctx, id); err == nil && c != nil {
		name = c.Name
	}
	n.cache["c:"+id] = name
	return name
}

func (n *nameCache) storage(id string) string {
	if id == "" {
		return ""
	}
	if v, ok := n.cache["s:"+id]; ok {
		return v
	}
	var name string
	if s, err := n.storages.GetByID(n.ctx, id); err == nil && s != nil {
		name = s.Name
	}
	n.cache["s:"+id] = name
	return name
}
