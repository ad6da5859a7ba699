// Package export genera archivos descargables: hojas de cálculo por entidad y el albarán
// en PDF de un bulto. El formato concreto vive en infrastructure (xlsx, pdf).
package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Entidades exportables.
const (
	Products  = "products"
	Packages  = "packages"
	LineItems = "line_items"
	Entries   = "entries"
	Exits     = "exits"
	Movements = "movements"
)

// Table una hoja: encabezados y filas con valores simples (string, int, time.Time, decimal).
type Table struct {
	Sheet  string
	Header []string
	Rows   [][]any
}

// WorkbookWriter escribe tablas como libro de cálculo.
type WorkbookWriter interface {
	Write(ctx context.Context, w io.Writer, tables ...Table) error
}

// ManifestRenderer genera el albarán de un bulto.
type ManifestRenderer interface {
	RenderManifest(ctx context.Context, pkg *dto.PackageDetailResponse) ([]byte, error)
}

// PackageDetails fuente del detalle de un bulto (PackageUseCase).
type PackageDetails interface {
	GetByID(ctx context.Context, id string) (*dto.PackageDetailResponse, error)
}

// Repos repositorios leídos para armar las tablas.
type Repos struct {
	Products        repository.ProductRepository
	Categories      repository.CategoryRepository
	SpecialStorages repository.SpecialStorageRepository
	States          repository.PackageStateRepository
	Packages        repository.PackageRepository
	LineItems       repository.LineItemRepository
	Entries         repository.EntryRepository
	Exits           repository.ExitRepository
	Movements       repository.MovementRepository
	Users           repository.UserRepository
}

// UseCase casos de uso de exportación.
type UseCase struct {
	r        Repos
	details  PackageDetails
	workbook WorkbookWriter
	manifest ManifestRenderer
}

// NewUseCase construye el caso de uso.
func NewUseCase(r Repos, details PackageDetails, workbook WorkbookWriter, manifest ManifestRenderer) *UseCase {
	return &UseCase{r: r, details: details, workbook: workbook, manifest: manifest}
}

// Filename nombre sugerido del archivo exportado.
func Filename(entity string, at time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", entity, at.Format("20060102_150405"))
}

// Workbook escribe en w la hoja de la entidad pedida.
func (uc *UseCase) Workbook(ctx context.Context, entity string, w io.Writer) error {
	var (
		t   Table
		err error
	)
	switch entity {
	case Products:
		t, err = uc.products(ctx)
	case Packages:
		t, err = uc.packages(ctx)
	case LineItems:
		t, err = uc.lineItems(ctx)
	case Entries:
		t, err = uc.entries(ctx)
	case Exits:
		t, err = uc.exits(ctx)
	case Movements:
		t, err = uc.movements(ctx)
	default:
		return domain.NewValidationError("entity", "no exportable: "+entity)
	}
	if err != nil {
		return err
	}
	return uc.workbook.Write(ctx, w, t)
}

// Manifest genera el albarán PDF del bulto.
func (uc *UseCase) Manifest(ctx context.Context, packageID string) ([]byte, error) {
	detail, err := uc.details.GetByID(ctx, packageID)
	if err != nil {
		return nil, err
	}
	return uc.manifest.RenderManifest(ctx, detail)
}

func (uc *UseCase) products(ctx context.Context) (Table, error) {
	list, _, err := uc.r.Products.List(ctx, repository.ProductFilter{}, 0, 0)
	if err != nil {
		return Table{}, err
	}
	cats, _, err := uc.r.Categories.List(ctx, 0, 0)
	if err != nil {
		return Table{}, err
	}
	storages, _, err := uc.r.SpecialStorages.List(ctx, 0, 0)
	if err != nil {
		return Table{}, err
	}
	catNames := make(map[string]string, len(cats))
	for _, c := range cats {
		catNames[c.ID] = c.Name
	}
	storageNames := make(map[string]string, len(storages))
	for _, s := range storages {
		storageNames[s.ID] = s.Name
	}
	t := Table{Sheet: "Productos", Header: []string{"ID", "Nombre", "Precio", "Stock", "Categoría", "Almacenamiento especial", "Valor en stock"}}
	for _, p := range list {
		t.Rows = append(t.Rows, []any{p.ID, p.Name, p.Price.StringFixed(2), p.QuantityOnHand, catNames[p.CategoryID], storageNames[p.SpecialStorageID], inventory.StockValue(p.QuantityOnHand, p.Price).StringFixed(2)})
	}
	return t, nil
}

func (uc *UseCase) packages(ctx context.Context) (Table, error) {
	list, err := uc.r.Packages.ListAll(ctx)
	if err != nil {
		return Table{}, err
	}
	states, _, err := uc.r.States.List(ctx, 0, 0)
	if err != nil {
		return Table{}, err
	}
	stateNames := make(map[string]string, len(states))
	for _, s := range states {
		stateNames[s.ID] = s.Name
	}
	entries, _, err := uc.r.Entries.List(ctx, repository.RecordFilter{}, 0, 0)
	if err != nil {
		return Table{}, err
	}
	exits, _, err := uc.r.Exits.List(ctx, repository.RecordFilter{}, 0, 0)
	if err != nil {
		return Table{}, err
	}
	entered := make(map[string]bool, len(entries))
	for _, e := range entries {
		entered[e.PackageID] = true
	}
	exited := make(map[string]bool, len(exits))
	for _, e := range exits {
		exited[e.PackageID] = true
	}
	t := Table{Sheet: "Bultos", Header: []string{"ID", "Descripción", "Ubicación", "Estado", "Entrada", "Salida", "Creado"}}
	for _, p := range list {
		t.Rows = append(t.Rows, []any{p.ID, p.Description, p.CurrentLocation, stateNames[p.StateID], yesNo(entered[p.ID]), yesNo(exited[p.ID]), p.CreatedAt})
	}
	return t, nil
}

func (uc *UseCase) lineItems(ctx context.Context) (Table, error) {
	list, _, err := uc.r.LineItems.List(ctx, repository.LineItemFilter{}, 0, 0)
	if err != nil {
		return Table{}, err
	}
	names, err := uc.productNames(ctx)
	if err != nil {
		return Table{}, err
	}
	t := Table{Sheet: "Detalles", Header: []string{"ID", "Bulto", "Producto", "Cantidad", "Lote", "Vencimiento"}}
	for _, it := range list {
		expires := ""
		if it.ExpiresAt != nil {
			expires = it.ExpiresAt.Format("2006-01-02")
		}
		t.Rows = append(t.Rows, []any{it.ID, it.PackageID, names[it.ProductID], it.Quantity, it.Lot, expires})
	}
	return t, nil
}

func (uc *UseCase) entries(ctx context.Context) (Table, error) {
	list, _, err := uc.r.Entries.List(ctx, repository.RecordFilter{}, 0, 0)
	if err != nil {
		return Table{}, err
	}
	users, err := uc.userNames(ctx)
	if err != nil {
		return Table{}, err
	}
	t := Table{Sheet: "Entradas", Header: []string{"ID", "Bulto", "Usuario", "Fecha"}}
	for _, e := range list {
		t.Rows = append(t.Rows, []any{e.ID, e.PackageID, nameOr(users, e.UserID), e.Date})
	}
	return t, nil
}

func (uc *UseCase) exits(ctx context.Context) (Table, error) {
	list, _, err := uc.r.Exits.List(ctx, repository.RecordFilter{}, 0, 0)
	if err != nil {
		return Table{}, err
	}
	users, err := uc.userNames(ctx)
	if err != nil {
		return Table{}, err
	}
	t := Table{Sheet: "Salidas", Header: []string{"ID", "Bulto", "Usuario", "Fecha"}}
	for _, e := range list {
		t.Rows = append(t.Rows, []any{e.ID, e.PackageID, nameOr(users, e.UserID), e.Date})
	}
	return t, nil
}

func (uc *UseCase) movements(ctx context.Context) (Table, error) {
	list, _, err := uc.r.Movements.List(ctx, repository.MovementFilter{}, 0, 0)
	if err != nil {
		return Table{}, err
	}
	users, err := uc.userNames(ctx)
	if err != nil {
		return Table{}, err
	}
	t := Table{Sheet: "Movimientos", Header: []string{"ID", "Bulto", "Usuario", "Fecha", "Origen", "Destino"}}
	for _, m := range list {
		t.Rows = append(t.Rows, []any{m.ID, m.PackageID, nameOr(users, m.UserID), m.Date, m.FromLocation, m.ToLocation})
	}
	return t, nil
}

func (uc *UseCase) productNames(ctx context.Context) (map[string]string, error) {
	list, _, err := uc.r.Products.List(ctx, repository.ProductFilter{}, 0, 0)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(list))
	for _, p := range list {
		names[p.ID] = p.Name
	}
	return names, nil
}

func (uc *UseCase) userNames(ctx context.Context) (map[string]string, error) {
	list, _, err := uc.r.Users.List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(list))
	for _, u := range list {
		names[u.ID] = u.Name
	}
	return names, nil
}

func nameOr(names map[string]string, id string) string {
	if n := names[id]; n != "" {
		return n
	}
	return id
}

func yesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}
