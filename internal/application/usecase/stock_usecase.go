package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// StockRepos repositorios de lectura de detalles, entradas y salidas.
type StockRepos struct {
	LineItems repository.LineItemRepository
	Entries   repository.EntryRepository
	Exits     repository.ExitRepository
	Packages  repository.PackageRepository
	Products  repository.ProductRepository
	Users     repository.UserRepository
}

// StockUseCase expone las operaciones del motor de stock con DTOs. Las escrituras
// van siempre por el motor; las lecturas van directo a los repositorios.
type StockUseCase struct {
	engine *stock.Engine
	r      StockRepos
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(engine *stock.Engine, r StockRepos) *StockUseCase {
	return &StockUseCase{engine: engine, r: r}
}

// ── Detalles de bulto ─────────────────────────────────────────────────────────

// CreateLineItem agrega un detalle al bulto.
func (uc *StockUseCase) CreateLineItem(ctx context.Context, in dto.CreateLineItemRequest) (*dto.LineItemResponse, error) {
	it, err := uc.engine.CreateLineItem(ctx, stock.LineItemInput{
		PackageID: in.PackageID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Lot:       in.Lot,
		ExpiresAt: in.ExpiresAt,
	})
	if err != nil {
		return nil, err
	}
	out := toLineItemResponse(it, productName(ctx, uc.r.Products, map[string]string{}, it.ProductID))
	return &out, nil
}

// UpdateLineItem edita un detalle (producto, cantidad, bulto, lote, vencimiento).
func (uc *StockUseCase) UpdateLineItem(ctx context.Context, id string, in dto.UpdateLineItemRequest) (*dto.LineItemResponse, error) {
	it, err := uc.engine.EditLineItem(ctx, id, stock.LineItemInput{
		PackageID: in.PackageID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Lot:       in.Lot,
		ExpiresAt: in.ExpiresAt,
	})
	if err != nil {
		return nil, err
	}
	out := toLineItemResponse(it, productName(ctx, uc.r.Products, map[string]string{}, it.ProductID))
	return &out, nil
}

// DeleteLineItem elimina un detalle.
func (uc *StockUseCase) DeleteLineItem(ctx context.Context, id string) error {
	return uc.engine.DeleteLineItem(ctx, id)
}

// GetLineItem obtiene un detalle.
func (uc *StockUseCase) GetLineItem(ctx context.Context, id string) (*dto.LineItemResponse, error) {
	it, err := uc.r.LineItems.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, domain.NewNotFound("detalle", id)
	}
	out := toLineItemResponse(it, productName(ctx, uc.r.Products, map[string]string{}, it.ProductID))
	return &out, nil
}

// ListLineItems lista los detalles con paginación y filtros opcionales.
func (uc *StockUseCase) ListLineItems(ctx context.Context, in dto.LineItemFilterRequest) (*dto.LineItemListResponse, error) {
	in.DefaultPage()
	list, total, err := uc.r.LineItems.List(ctx, repository.LineItemFilter{
		ProductName: strings.TrimSpace(in.Name),
		Lot:         strings.TrimSpace(in.Lot),
	}, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	names := map[string]string{}
	items := make([]dto.LineItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, toLineItemResponse(it, productName(ctx, uc.r.Products, names, it.ProductID)))
	}
	return &dto.LineItemListResponse{Items: items, Page: dto.NewPageResponse(in.Limit, in.Offset, total)}, nil
}

// ── Entradas ──────────────────────────────────────────────────────────────────

// CreateEntry registra la entrada del bulto a nombre de userID.
func (uc *StockUseCase) CreateEntry(ctx context.Context, userID string, in dto.CreateRecordRequest) (*dto.RecordResponse, error) {
	e, err := uc.engine.CreateEntry(ctx, stock.RecordInput{PackageID: in.PackageID, UserID: userID, Date: timeOrZero(in.Date)})
	if err != nil {
		return nil, err
	}
	out := uc.describe(ctx, entryResponse(e), newLookups())
	return &out, nil
}

// UpdateEntry cambia fecha o bulto de una entrada. userID queda como responsable.
func (uc *StockUseCase) UpdateEntry(ctx context.Context, id, userID string, in dto.UpdateRecordRequest) (*dto.RecordResponse, error) {
	e, err := uc.engine.EditEntry(ctx, id, stock.RecordInput{PackageID: in.PackageID, UserID: userID, Date: timeOrZero(in.Date)})
	if err != nil {
		return nil, err
	}
	out := uc.describe(ctx, entryResponse(e), newLookups())
	return &out, nil
}

// DeleteEntry elimina una entrada y revierte su stock.
func (uc *StockUseCase) DeleteEntry(ctx context.Context, id string) error {
	return uc.engine.DeleteEntry(ctx, id)
}

// GetEntry obtiene una entrada.
func (uc *StockUseCase) GetEntry(ctx context.Context, id string) (*dto.RecordResponse, error) {
	e, err := uc.r.Entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.NewNotFound("entrada", id)
	}
	out := uc.describe(ctx, entryResponse(e), newLookups())
	return &out, nil
}

// ListEntries lista entradas por usuario y bulto, más recientes primero.
func (uc *StockUseCase) ListEntries(ctx context.Context, in dto.RecordFilterRequest) (*dto.RecordListResponse, error) {
	in.DefaultPage()
	list, total, err := uc.r.Entries.List(ctx, repository.RecordFilter{UserID: in.UserID, PackageID: in.PackageID}, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	l := newLookups()
	items := make([]dto.RecordResponse, 0, len(list))
	for _, e := range list {
		items = append(items, uc.describe(ctx, entryResponse(e), l))
	}
	return &dto.RecordListResponse{Items: items, Page: dto.NewPageResponse(in.Limit, in.Offset, total)}, nil
}

// ── Salidas ───────────────────────────────────────────────────────────────────

// CreateExit registra la salida del bulto a nombre de userID.
func (uc *StockUseCase) CreateExit(ctx context.Context, userID string, in dto.CreateRecordRequest) (*dto.RecordResponse, error) {
	e, err := uc.engine.CreateExit(ctx, stock.RecordInput{PackageID: in.PackageID, UserID: userID, Date: timeOrZero(in.Date)})
	if err != nil {
		return nil, err
	}
	out := uc.describe(ctx, exitResponse(e), newLookups())
	return &out, nil
}

// UpdateExit cambia fecha o bulto de una salida.
func (uc *StockUseCase) UpdateExit(ctx context.Context, id, userID string, in dto.UpdateRecordRequest) (*dto.RecordResponse, error) {
	e, err := uc.engine.EditExit(ctx, id, stock.RecordInput{PackageID: in.PackageID, UserID: userID, Date: timeOrZero(in.Date)})
	if err != nil {
		return nil, err
	}
	out := uc.describe(ctx, exitResponse(e), newLookups())
	return &out, nil
}

// DeleteExit elimina una salida y devuelve el stock.
func (uc *StockUseCase) DeleteExit(ctx context.Context, id string) error {
	return uc.engine.DeleteExit(ctx, id)
}

// GetExit obtiene una salida.
func (uc *StockUseCase) GetExit(ctx context.Context, id string) (*dto.RecordResponse, error) {
	e, err := uc.r.Exits.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.NewNotFound("salida", id)
	}
	out := uc.describe(ctx, exitResponse(e), newLookups())
	return &out, nil
}

// ListExits lista salidas por usuario y bulto, más recientes primero.
func (uc *StockUseCase) ListExits(ctx context.Context, in dto.RecordFilterRequest) (*dto.RecordListResponse, error) {
	in.DefaultPage()
	list, total, err := uc.r.Exits.List(ctx, repository.RecordFilter{UserID: in.UserID, PackageID: in.PackageID}, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	l := newLookups()
	items := make([]dto.RecordResponse, 0, len(list))
	for _, e := range list {
		items = append(items, uc.describe(ctx, exitResponse(e), l))
	}
	return &dto.RecordListResponse{Items: items, Page: dto.NewPageResponse(in.Limit, in.Offset, total)}, nil
}

type lookups struct {
	packages map[string]string
	users    map[string]string
}

func newLookups() lookups {
	return lookups{packages: map[string]string{}, users: map[string]string{}}
}

// describe completa la descripción del bulto y el nombre del usuario.
func (uc *StockUseCase) describe(ctx context.Context, rec dto.RecordResponse, l lookups) dto.RecordResponse {
	desc, ok := l.packages[rec.PackageID]
	if !ok {
		if p, err := uc.r.Packages.GetByID(ctx, rec.PackageID); err == nil && p != nil {
			desc = p.Description
		}
		l.packages[rec.PackageID] = desc
	}
	name, ok := l.users[rec.UserID]
	if !ok && uc.r.Users != nil {
		if u, err := uc.r.Users.GetByID(ctx, rec.UserID); err == nil && u != nil {
			name = u.Name
		}
		l.users[rec.UserID] = name
	}
	rec.PackageDescription = desc
	rec.UserName = name
	return rec
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
