package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// catalogRepo operaciones comunes de los repositorios de catálogo.
type catalogRepo[T any] interface {
	Create(ctx context.Context, item *T) error
	GetByID(ctx context.Context, id string) (*T, error)
	Update(ctx context.Context, item *T) error
	List(ctx context.Context, limit, offset int) ([]*T, int, error)
	Delete(ctx context.Context, id string) error
}

// CatalogUseCase CRUD de catálogos simples (categorías, almacenamientos especiales, estados de bulto).
type CatalogUseCase[T any] struct {
	repo   catalogRepo[T]
	entity string
	build  func(id, name string, now time.Time) *T
	rename func(item *T, name string, now time.Time)
	toDTO  func(item *T) dto.CatalogItemResponse
}

// NewCategoryUseCase construye el CRUD de categorías.
func NewCategoryUseCase(repo repository.CategoryRepository) *CatalogUseCase[entity.Category] {
	return &CatalogUseCase[entity.Category]{
		repo:   repo,
		entity: "categoría",
		build: func(id, name string, now time.Time) *entity.Category {
			return &entity.Category{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}
		},
		rename: func(c *entity.Category, name string, now time.Time) { c.Name, c.UpdatedAt = name, now },
		toDTO: func(c *entity.Category) dto.CatalogItemResponse {
			return dto.CatalogItemResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
		},
	}
}

// NewSpecialStorageUseCase construye el CRUD de almacenamientos especiales.
func NewSpecialStorageUseCase(repo repository.SpecialStorageRepository) *CatalogUseCase[entity.SpecialStorage] {
	return &CatalogUseCase[entity.SpecialStorage]{
		repo:   repo,
		entity: "almacenamiento especial",
		build: func(id, name string, now time.Time) *entity.SpecialStorage {
			return &entity.SpecialStorage{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}
		},
		rename: func(s *entity.SpecialStorage, name string, now time.Time) { s.Name, s.UpdatedAt = name, now },
		toDTO: func(s *entity.SpecialStorage) dto.CatalogItemResponse {
			return dto.CatalogItemResponse{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt}
		},
	}
}

// NewPackageStateUseCase construye el CRUD de estados de bulto.
func NewPackageStateUseCase(repo repository.PackageStateRepository) *CatalogUseCase[entity.PackageState] {
	return &CatalogUseCase[entity.PackageState]{
		repo:   repo,
		entity: "estado de bulto",
		build: func(id, name string, now time.Time) *entity.PackageState {
			return &entity.PackageState{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}
		},
		rename: func(s *entity.PackageState, name string, now time.Time) { s.Name, s.UpdatedAt = name, now },
		toDTO: func(s *entity.PackageState) dto.CatalogItemResponse {
			return dto.CatalogItemResponse{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt}
		},
	}
}

// Create crea un elemento con el nombre dado.
func (uc *CatalogUseCase[T]) Create(ctx context.Context, in dto.CatalogRequest) (*dto.CatalogItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "es requerido")
	}
	item := uc.build(uuid.New().String(), name, time.Now())
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	out := uc.toDTO(item)
	return &out, nil
}

// GetByID obtiene un elemento o NotFound.
func (uc *CatalogUseCase[T]) GetByID(ctx context.Context, id string) (*dto.CatalogItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NewNotFound(uc.entity, id)
	}
	out := uc.toDTO(item)
	return &out, nil
}

// Update renombra un elemento.
func (uc *CatalogUseCase[T]) Update(ctx context.Context, id string, in dto.CatalogRequest) (*dto.CatalogItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "es requerido")
	}
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NewNotFound(uc.entity, id)
	}
	uc.rename(item, name, time.Now())
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	out := uc.toDTO(item)
	return &out, nil
}

// List lista con paginación, ordenado por nombre.
func (uc *CatalogUseCase[T]) List(ctx context.Context, page dto.PageRequest) (*dto.CatalogListResponse, error) {
	page.DefaultPage()
	items, total, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CatalogItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, uc.toDTO(it))
	}
	return &dto.CatalogListResponse{Items: out, Page: dto.NewPageResponse(page.Limit, page.Offset, total)}, nil
}

// Delete elimina un elemento. Devuelve ErrConflict si está en uso.
func (uc *CatalogUseCase[T]) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}
