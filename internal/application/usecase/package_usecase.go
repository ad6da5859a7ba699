package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// PackageRepos repositorios que usa PackageUseCase fuera de transacción.
type PackageRepos struct {
	Packages  repository.PackageRepository
	States    repository.PackageStateRepository
	LineItems repository.LineItemRepository
	Products  repository.ProductRepository
	Entries   repository.EntryRepository
	Exits     repository.ExitRepository
	Movements repository.MovementRepository
}

// PackageUseCase casos de uso de bultos. La eliminación pasa por el motor de stock
// porque revierte el efecto de su entrada o salida.
type PackageUseCase struct {
	r      PackageRepos
	engine *stock.Engine
}

// NewPackageUseCase construye el caso de uso.
func NewPackageUseCase(r PackageRepos, engine *stock.Engine) *PackageUseCase {
	return &PackageUseCase{r: r, engine: engine}
}

// Create crea un bulto sin detalles.
func (uc *PackageUseCase) Create(ctx context.Context, in dto.CreatePackageRequest) (*dto.PackageResponse, error) {
	location := strings.TrimSpace(in.CurrentLocation)
	if location == "" {
		return nil, domain.NewValidationError("current_location", "es requerido")
	}
	if err := uc.checkState(ctx, in.StateID); err != nil {
		return nil, err
	}
	now := time.Now()
	pkg := &entity.Package{
		ID:              uuid.New().String(),
		Description:     strings.TrimSpace(in.Description),
		CurrentLocation: location,
		StateID:         in.StateID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.r.Packages.Create(ctx, pkg); err != nil {
		return nil, err
	}
	out := uc.toResponse(ctx, pkg, inventory.Classification{}, map[string]string{})
	return &out, nil
}

// GetByID devuelve el bulto con sus detalles, entrada, salida y movimientos.
func (uc *PackageUseCase) GetByID(ctx context.Context, id string) (*dto.PackageDetailResponse, error) {
	pkg, err := uc.r.Packages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, domain.NewNotFound("bulto", id)
	}
	entry, err := uc.r.Entries.GetByPackage(ctx, id)
	if err != nil {
		return nil, err
	}
	exit, err := uc.r.Exits.GetByPackage(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := uc.r.LineItems.ListByPackage(ctx, id)
	if err != nil {
		return nil, err
	}
	movements, _, err := uc.r.Movements.List(ctx, repository.MovementFilter{PackageID: id}, 0, 0)
	if err != nil {
		return nil, err
	}

	cls := inventory.Classification{HasEntry: entry != nil, HasExit: exit != nil}
	out := &dto.PackageDetailResponse{
		PackageResponse: uc.toResponse(ctx, pkg, cls, map[string]string{}),
		Lines:           make([]dto.LineItemResponse, 0, len(items)),
		Movements:       make([]dto.MovementResponse, 0, len(movements)),
	}
	products := map[string]string{}
	for _, it := range items {
		out.Lines = append(out.Lines, toLineItemResponse(it, productName(ctx, uc.r.Products, products, it.ProductID)))
	}
	if entry != nil {
		rec := entryResponse(entry)
		rec.PackageDescription = pkg.Description
		out.Entry = &rec
	}
	if exit != nil {
		rec := exitResponse(exit)
		rec.PackageDescription = pkg.Description
		out.Exit = &rec
	}
	for _, m := range movements {
		out.Movements = append(out.Movements, toMovementResponse(m))
	}
	return out, nil
}

// Update cambia descripción, ubicación o estado. No afecta stock.
func (uc *PackageUseCase) Update(ctx context.Context, id string, in dto.UpdatePackageRequest) (*dto.PackageResponse, error) {
	pkg, err := uc.r.Packages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, domain.NewNotFound("bulto", id)
	}
	if in.Description != nil {
		pkg.Description = strings.TrimSpace(*in.Description)
	}
	if in.CurrentLocation != nil {
		location := strings.TrimSpace(*in.CurrentLocation)
		if location == "" {
			return nil, domain.NewValidationError("current_location", "es requerido")
		}
		pkg.CurrentLocation = location
	}
	if in.StateID != nil {
		if err := uc.checkState(ctx, *in.StateID); err != nil {
			return nil, err
		}
		pkg.StateID = *in.StateID
	}
	pkg.UpdatedAt = time.Now()
	if err := uc.r.Packages.Update(ctx, pkg); err != nil {
		return nil, err
	}
	cls, err := uc.classify(ctx, id)
	if err != nil {
		return nil, err
	}
	out := uc.toResponse(ctx, pkg, cls, map[string]string{})
	return &out, nil
}

// List lista bultos por ubicación y estado. has_entry / has_exit filtran por clasificación;
// en ese caso la paginación se aplica después de clasificar.
func (uc *PackageUseCase) List(ctx context.Context, in dto.PackageFilterRequest) (*dto.PackageListResponse, error) {
	in.DefaultPage()
	f := repository.PackageFilter{Location: in.Location, StateID: in.StateID}
	byFlags := in.HasEntry != nil || in.HasExit != nil

	limit, offset := in.Limit, in.Offset
	if byFlags {
		limit, offset = 0, 0
	}
	list, total, err := uc.r.Packages.List(ctx, f, limit, offset)
	if err != nil {
		return nil, err
	}

	states := map[string]string{}
	items := make([]dto.PackageResponse, 0, len(list))
	for _, p := range list {
		cls, err := uc.classify(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		if in.HasEntry != nil && cls.HasEntry != *in.HasEntry {
			continue
		}
		if in.HasExit != nil && cls.HasExit != *in.HasExit {
			continue
		}
		items = append(items, uc.toResponse(ctx, p, cls, states))
	}
	if byFlags {
		items, total = pageOf(items, in.Limit, in.Offset)
	}
	return &dto.PackageListResponse{Items: items, Page: dto.NewPageResponse(in.Limit, in.Offset, total)}, nil
}

// EntryOptions bultos que pueden recibir una entrada: con detalles y sin entrada.
func (uc *PackageUseCase) EntryOptions(ctx context.Context) (*dto.PackageOptionsResponse, error) {
	return uc.options(ctx, func(c inventory.Classification) bool { return !c.HasEntry })
}

// ExitOptions bultos que pueden recibir una salida: con detalles, sin salida y sin entrada.
func (uc *PackageUseCase) ExitOptions(ctx context.Context) (*dto.PackageOptionsResponse, error) {
	return uc.options(ctx, func(c inventory.Classification) bool { return !c.HasExit && !c.HasEntry })
}

func (uc *PackageUseCase) options(ctx context.Context, eligible func(inventory.Classification) bool) (*dto.PackageOptionsResponse, error) {
	withItems, err := uc.r.LineItems.PackageIDsWithItems(ctx)
	if err != nil {
		return nil, err
	}
	filled := make(map[string]bool, len(withItems))
	for _, id := range withItems {
		filled[id] = true
	}
	all, err := uc.r.Packages.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.PackageOptionsResponse{Items: []dto.PackageOption{}}
	for _, p := range all {
		if !filled[p.ID] {
			continue
		}
		cls, err := uc.classify(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		if !eligible(cls) {
			continue
		}
		out.Items = append(out.Items, dto.PackageOption{ID: p.ID, Description: p.Description, CurrentLocation: p.CurrentLocation})
	}
	return out, nil
}

// Delete elimina el bulto revirtiendo su efecto en stock.
func (uc *PackageUseCase) Delete(ctx context.Context, id string) error {
	return uc.engine.DeletePackage(ctx, id)
}

func (uc *PackageUseCase) classify(ctx context.Context, packageID string) (inventory.Classification, error) {
	entry, err := uc.r.Entries.GetByPackage(ctx, packageID)
	if err != nil {
		return inventory.Classification{}, err
	}
	exit, err := uc.r.Exits.GetByPackage(ctx, packageID)
	if err != nil {
		return inventory.Classification{}, err
	}
	return inventory.Classification{HasEntry: entry != nil, HasExit: exit != nil}, nil
}

func (uc *PackageUseCase) checkState(ctx context.Context, stateID string) error {
	if stateID == "" {
		return nil
	}
	st, err := uc.r.States.GetByID(ctx, stateID)
	if err != nil {
		return err
	}
	if st == nil {
		return domain.NewNotFound("estado de bulto", stateID)
	}
	return nil
}

func (uc *PackageUseCase) toResponse(ctx context.Context, p *entity.Package, cls inventory.Classification, states map[string]string) dto.PackageResponse {
	name, ok := states[p.StateID]
	if !ok && p.StateID != "" {
		if st, err := uc.r.States.GetByID(ctx, p.StateID); err == nil && st != nil {
			name = st.Name
		}
		states[p.StateID] = name
	}
	return dto.PackageResponse{
		ID:              p.ID,
		Description:     p.Description,
		CurrentLocation: p.CurrentLocation,
		StateID:         p.StateID,
		StateName:       name,
		HasEntry:        cls.HasEntry,
		HasExit:         cls.HasExit,
		StockStatus:     string(cls.State()),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// pageOf pagina una lista ya filtrada en memoria.
func pageOf[T any](items []T, limit, offset int) ([]T, int) {
	total := len(items)
	if offset >= total {
		return []T{}, total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return items[offset:end], total
}

// productName resuelve y cachea el nombre de un producto; vacío si no se puede leer.
func productName(ctx context.Context, products repository.ProductRepository, cache map[string]string, id string) string {
	if name, ok := cache[id]; ok {
		return name
	}
	var name string
	if p, err := products.GetByID(ctx, id); err == nil && p != nil {
		name = p.Name
	}
	cache[id] = name
	return name
}

func toLineItemResponse(it *entity.LineItem, productName string) dto.LineItemResponse {
	return dto.LineItemResponse{
		ID:          it.ID,
		PackageID:   it.PackageID,
		ProductID:   it.ProductID,
		ProductName: productName,
		Quantity:    it.Quantity,
		Lot:         it.Lot,
		ExpiresAt:   it.ExpiresAt,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

func entryResponse(e *entity.Entry) dto.RecordResponse {
	return dto.RecordResponse{ID: e.ID, PackageID: e.PackageID, UserID: e.UserID, Date: e.Date, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt}
}

func exitResponse(e *entity.Exit) dto.RecordResponse {
	return dto.RecordResponse{ID: e.ID, PackageID: e.PackageID, UserID: e.UserID, Date: e.Date, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt}
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:           m.ID,
		PackageID:    m.PackageID,
		UserID:       m.UserID,
		Date:         m.Date,
		FromLocation: m.FromLocation,
		ToLocation:   m.ToLocation,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
