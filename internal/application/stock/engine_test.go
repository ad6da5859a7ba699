package stock_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testUser = "00000000-0000-0000-0000-000000000001"

type fixture struct {
	t      *testing.T
	ctx    context.Context
	store  *memory.Store
	engine *stock.Engine
	rec    *recorder
}

type recorder struct {
	ops  []string
	errs []error
}

func (r *recorder) Record(op string, err error) {
	r.ops = append(r.ops, op)
	r.errs = append(r.errs, err)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	rec := &recorder{}
	return &fixture{t: t, ctx: context.Background(), store: store, engine: stock.NewEngine(store, rec), rec: rec}
}

func (f *fixture) product(id string, qty int) {
	f.t.Helper()
	now := time.Now()
	require.NoError(f.t, f.store.Products().Create(f.ctx, &entity.Product{
		ID: id, Name: "Producto " + id, Price: decimal.NewFromInt(1000), QuantityOnHand: qty, CreatedAt: now, UpdatedAt: now,
	}))
}

func (f *fixture) pkg(id string) {
	f.t.Helper()
	now := time.Now()
	require.NoError(f.t, f.store.Packages().Create(f.ctx, &entity.Package{
		ID: id, Description: "Bulto " + id, CurrentLocation: "Recepción", CreatedAt: now, UpdatedAt: now,
	}))
}

func (f *fixture) line(pkgID, productID string, qty int) *entity.LineItem {
	f.t.Helper()
	item, err := f.engine.CreateLineItem(f.ctx, stock.LineItemInput{PackageID: pkgID, ProductID: productID, Quantity: qty})
	require.NoError(f.t, err)
	return item
}

func (f *fixture) qty(productID string) int {
	f.t.Helper()
	p, err := f.store.Products().GetByID(f.ctx, productID)
	require.NoError(f.t, err)
	require.NotNil(f.t, p)
	return p.QuantityOnHand
}

func (f *fixture) entry(pkgID string) *entity.Entry {
	f.t.Helper()
	e, err := f.engine.CreateEntry(f.ctx, stock.RecordInput{PackageID: pkgID, UserID: testUser})
	require.NoError(f.t, err)
	return e
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios de punta a punta
// ──────────────────────────────────────────────────────────────────────────────

func TestEngine_EntradaLuegoSalida(t *testing.T) {
	f := newFixture(t)
	f.product("A", 0)
	f.pkg("P1")
	f.line("P1", "A", 10)
	assert.Equal(t, 0, f.qty("A"), "un detalle en un bulto sin movimientos no afecta el stock")

	f.entry("P1")
	assert.Equal(t, 10, f.qty("A"))

	f.pkg("P2")
	f.line("P2", "A", 5)
	exit, err := f.engine.CreateExit(f.ctx, stock.RecordInput{PackageID: "P2", UserID: testUser})
	require.NoError(t, err)
	assert.Equal(t, "P2", exit.PackageID)
	assert.Equal(t, 5, f.qty("A"))
}

func TestEngine_CreateExit_StockInsuficiente(t *testing.T) {
	f := newFixture(t)
	f.product("A", 5)
	f.pkg("P3")
	f.line("P3", "A", 100)

	_, err := f.engine.CreateExit(f.ctx, stock.RecordInput{PackageID: "P3", UserID: testUser})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var stockErrs domain.StockErrors
	require.True(t, errors.As(err, &stockErrs))
	require.Len(t, stockErrs, 1)
	assert.Equal(t, "A", stockErrs[0].ProductID)
	assert.Equal(t, 5, stockErrs[0].Available)
	assert.Equal(t, 100, stockErrs[0].Requested)

	assert.Equal(t, 5, f.qty("A"))
	exit, err := f.store.Exits().GetByPackage(f.ctx, "P3")
	require.NoError(t, err)
	assert.Nil(t, exit, "no debe quedar salida registrada")
}

func TestEngine_CreateExit_ReportaCadaProductoFaltante(t *testing.T) {
	f := newFixture(t)
	f.product("A", 1)
	f.product("B", 2)
	f.product("C", 50)
	f.pkg("P")
	f.line("P", "A", 3)
	f.line("P", "B", 4)
	f.line("P", "C", 5)

	_, err := f.engine.CreateExit(f.ctx, stock.RecordInput{PackageID: "P", UserID: testUser})
	var stockErrs domain.StockErrors
	require.True(t, errors.As(err, &stockErrs))
	require.Len(t, stockErrs, 2)
	assert.Equal(t, "A", stockErrs[0].ProductID)
	assert.Equal(t, "B", stockErrs[1].ProductID)
	assert.Equal(t, 50, f.qty("C"), "ningún producto se descuenta si otro falla")
}

func TestEngine_EditLineItem_EnBultoConEntrada(t *testing.T) {
	f := newFixture(t)
	f.product("A", 0)
	f.pkg("P1")
	item := f.line("P1", "A", 10)
	f.entry("P1")

	_, err := f.engine.EditLineItem(f.ctx, item.ID, stock.LineItemInput{ProductID: "A", Quantity: 20})
	require.NoError(t, err)
	assert.Equal(t, 20, f.qty("A"))

	require.NoError(t, f.engine.DeletePackage(f.ctx, "P1"))
	assert.Equal(t, 0, f.qty("A"))

	p, err := f.store.Packages().GetByID(f.ctx, "P1")
	require.NoError(t, err)
	assert.Nil(t, p)
	items, err := f.store.LineItems().ListByPackage(f.ctx, "P1")
	require.NoError(t, err)
	assert.Empty(t, items)
	e, err := f.store.Entries().GetByPackage(f.ctx, "P1")
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestEngine_EditEntry_AOtroBulto(t *testing.T) {
	f := newFixture(t)
	f.product("A", 0)
	f.pkg("P1")
	f.pkg("P4")
	f.line("P1", "A", 10)
	f.line("P4", "A", 20)
	e := f.entry("P1")
	require.Equal(t, 10, f.qty("A"))

	edited, err := f.engine.EditEntry(f.ctx, e.ID, stock.RecordInput{PackageID: "P4"})
	require.NoError(t, err)
	assert.Equal(t, "P4", edited.PackageID)
	assert.Equal(t, testUser, edited.UserID)
	assert.Equal(t, 20, f.qty("A"))
}

func TestEngine_EditEntry_MismoBultoNoCambiaStock(t *testing.T) {
	f := newFixture(t)
	f.product("A", 0)
	f.pkg("P1")
	f.line("P1", "A", 7)
	e := f.entry("P1")

	newDate := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	edited, err := f.engine.EditEntry(f.ctx, e.ID, stock.RecordInput{PackageID: "P1", Date: newDate})
	require.NoError(t, err)
	assert.True(t, edited.Date.Equal(newDate))
	assert.Equal(t, 7, f.qty("A"))
}

func TestEngine_EditEntry_VerificaSaldoRevertido(t *testing.T) {
	f := newFixture(t)
	f.product("A", 0)
	f.pkg("P1")
	f.pkg("P2")
	f.pkg("P4")
	f.line("P1", "A", 10)
	f.line("P2", "A", 8)
	f.line("P4", "A", 2)
	e := f.entry("P1")
	_, err := f.engine.CreateExit(f.ctx, stock.RecordInput{PackageID: "P2", UserID: testUser})
	require.NoError(t, err)
	require.Equal(t, 2, f.qty("A"))

	// revertir P1 (-10) y aplicar P4 (+2) dejaría A en -6.
	_, err = f.engine.EditEntry(f.ctx, e.ID, stock.RecordInput{PackageID: "P4"})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, 2, f.qty("A"))
	got, err := f.store.Entries().GetByID(f.ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "P1", got.PackageID)
}

// salidaEnP2 deja A=5: entrada de 10 en P1 y salida de 5 en P2.
func salidaEnP2(t *testing.T) (*fixture, *entity.Exit) {
	t.Helper()
	f := newFixture(t)
	f.product("A", 0)
	f.pkg("P1")
	f.pkg("P2")
	f.line("P1", "A", 10)
	f.line("P2", "A", 5)
	f.entry("P1")
	x, err := f.engine.CreateExit(f.ctx, stock.RecordInput{PackageID: "P2", UserID: testUser})
	require.NoError(t, err)
	require.Equal(t, 5, f.qty("A"))
	return f, x
}

func TestEngine_EditExit_AOtroBulto(t *testing.T) {
	f, x := salidaEnP2(t)
	f.pkg("P4")
	f.line("P4", "A", 7)

	edited, err := f.engine.EditExit(f.ctx, x.ID, stock.RecordInput{PackageID: "P4"})
	require.NoError(t, err)
	assert.Equal(t, "P4", edited.PackageID)
	assert.Equal(t, testUser, edited.UserID)
	// 5 + 5 (reversión de P2) - 7 (P4)
	assert.Equal(t, 3, f.qty("A"))

	got, err := f.store.Exits().GetByPackage(f.ctx, "P2")
	require.NoError(t, err)
	assert.Nil(t, got, "P2 queda libre de salida")
}

func TestEngine_EditExit_StockInsuficienteNoCambiaNada(t *testing.T) {
	f, x := salidaEnP2(t)
	f.pkg("P3")
	f.line("P3", "A", 100)

	_, err := f.engine.EditExit(f.ctx, x.ID, stock.RecordInput{PackageID: "P3"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var stockErrs domain.StockErrors
	require.True(t, errors.As(err, &stockErrs))
	require.Len(t, stockErrs, 1)
	assert.Equal(t, "A", stockErrs[0].ProductID)
	assert.Equal(t, 5, stockErrs[0].Available)
	assert.Equal(t, 95, stockErrs[0].Requested)

	assert.Equal(t, 5, f.qty("A"))
	got, err := f.store.Exits().GetByID(f.ctx, x.ID)
	require.NoError(t, err)
	assert.Equal(t, "P2", got.PackageID)
}

func TestEngine_EditExit_MismoBultoNoCambiaStock(t *testing.T) {
	f, x := salidaEnP2(t)

	newDate := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	edited, err := f.engine.EditExit(f.ctx, x.ID, stock.RecordInput{PackageID: "P2", Date: newDate})
	require.NoError(t, err)
	assert.Equal(t, "P2", edited.PackageID)
	assert.True(t, edited.Date.Equal(newDate))
	assert.Equal(t, 5, f.qty("A"))

	// sin bulto destino se mantiene el actual
	_, err = f.engine.EditExit(f.ctx, x.ID, stock.RecordInput{})
	require.NoError(t, err)
	assert.Equal(t, 5, f.qty("A"))
}

func TestEngine_EditExit_ABultoConEntrada(t *testing.T) {
	f, x := salidaEnP2(t)

	_, err := f.engine.EditExit(f.ctx, x.ID, stock.RecordInput{PackageID: "P1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMovementConflict))
	assert.Equal(t, 5, f.qty("A"))

	got, err := f.store.Exits().GetByID(f.ctx, x.ID)
	require.NoError(t, err)
	assert.Equal(t, "P2", got.PackageID)
}

func TestEngine_CreateEntry_BultoVacio(t *testing.T) {
	f := newFixture(t)
	f.pkg("P0")

	_, err := f.engine.CreateEntry(f.ctx, stock.RecordInput{PackageID: "P0", UserID: testUser})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrEmptyPackage))
	assert.Equal(t, "No se puede crear una entrada sin detalles.", err.Error())

	e, err := f.store.Entries().GetByPackage(f.ctx, "P0")
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestEngine_MovimientoDuplicado(t *testing.T) {
	f := newFixture(t)
	f.product("A", 0)
	f.pkg("P1")
	f.line("P1", "A", 3)
	f.entry("P1")

	_, err := f.engine.CreateEntry(f.ctx, stock.RecordInput{PackageID: "P1", UserID: testUser})
	assert.True(t, errors.Is(err, domain.ErrDuplicateMovement))
	assert.Equal(t, 3, f.qty("A"))

	f.pkg("P2")
	f.line("P2", "A", 1)
	f.entry("P2")
	entries, total, err := f.store.Entries().List(f.ctx, repository.RecordFilter{PackageID: "P2"}, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)

	_, err = f.engine.EditEntry(f.ctx, entries[0].ID, stock.RecordInput{PackageID: "P1"})
	assert.True(t, errors.Is(err, domain.ErrDuplicateMovement))
	assert.Equal(t, 4, f.qty("A"))
}

func TestEngine_MovimientoContrario(t *testing.T) {
	f := newFixture(t)
	f.product("A", 10)
	f.pkg("P1")
	f.line("P1", "A", 3)
	f.entry("P1")

	_, err := f.engine.CreateExit(f.ctx, stock.RecordInput{PackageID: "P1", UserID: testUser})
	assert.True(t, errors.Is(err, domain.ErrMovementConflict))
	assert.Equal(t, 13, f.qty("A"))
}

func TestEngine_EntradaSalidaIdaYVuelta(t *testing.T) {
	f := newFixture(t)
	f.product("A", 4)
	f.product("B", 9)
	f.pkg("P")
	f.line("P", "A", 2)
	f.line("P", "B", 3)

	e := f.entry("P")
	assert.Equal(t, 6, f.qty("A"))
	assert.Equal(t, 12, f.qty("B"))

	require.NoError(t, f.engine.DeleteEntry(f.ctx, e.ID))
	assert.Equal(t, 4, f.qty("A"))
	assert.Equal(t, 9, f.qty("B"))

	x, err := f.engine.CreateExit(f.ctx, stock.RecordInput{PackageID: "P", UserID: testUser})
	require.NoError(t, err)
	assert.Equal(t, 2, f.qty("A"))
	assert.Equal(t, 6, f.qty("B"))

	require.NoError(t, f.engine.DeleteExit(f.ctx, x.ID))
	assert.Equal(t, 4, f.qty("A"))
	assert.Equal(t, 9, f.qty("B"))
}

func TestEngine_DetallesSiguenClasificacionDelBulto(t *testing.T) {
	f := newFixture(t)
	f.product("A", 10)
	f.pkg("PX")
	f.line("PX", "A", 1)
	_, err := f.engine.CreateExit(f.ctx, stock.RecordInput{PackageID: "PX", UserID: testUser})
	require.NoError(t, err)
	require.Equal(t, 9, f.qty("A"))

	item := f.line("PX", "A", 4)
	assert.Equal(t, 5, f.qty("A"), "un detalle nuevo en un bulto con salida descuenta stock")

	_, err = f.engine.CreateLineItem(f.ctx, stock.LineItemInput{PackageID: "PX", ProductID: "A", Quantity: 6})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, 5, f.qty("A"))

	require.NoError(t, f.engine.DeleteLineItem(f.ctx, item.ID))
	assert.Equal(t, 9, f.qty("A"), "eliminar el detalle devuelve la cantidad")
}

func TestEngine_EditLineItem_MueveEntreBultos(t *testing.T) {
	f := newFixture(t)
	f.product("A", 0)
	f.product("B", 0)
	f.pkg("IN")
	f.pkg("FREE")
	item := f.line("IN", "A", 5)
	f.line("IN", "B", 1)
	f.entry("IN")
	require.Equal(t, 5, f.qty("A"))

	moved, err := f.engine.EditLineItem(f.ctx, item.ID, stock.LineItemInput{PackageID: "FREE", ProductID: "B", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, "FREE", moved.PackageID)
	assert.Equal(t, 0, f.qty("A"))
	assert.Equal(t, 1, f.qty("B"), "el bulto destino no tiene movimientos")
}

func TestEngine_DeletePackage_RechazaSiReversionQuedaNegativa(t *testing.T) {
	f := newFixture(t)
	f.product("A", 0)
	f.pkg("P1")
	f.pkg("P2")
	f.line("P1", "A", 10)
	f.line("P2", "A", 8)
	f.entry("P1")
	_, err := f.engine.CreateExit(f.ctx, stock.RecordInput{PackageID: "P2", UserID: testUser})
	require.NoError(t, err)

	err = f.engine.DeletePackage(f.ctx, "P1")
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, 2, f.qty("A"))
	p, err := f.store.Packages().GetByID(f.ctx, "P1")
	require.NoError(t, err)
	assert.NotNil(t, p, "el bulto no se elimina si la reversión falla")
}

func TestEngine_DeletePackage_EliminaMovimientos(t *testing.T) {
	f := newFixture(t)
	f.pkg("P")
	now := time.Now()
	require.NoError(t, f.store.Movements().Create(f.ctx, &entity.Movement{
		ID: "M1", PackageID: "P", UserID: testUser, Date: now, FromLocation: "A1", ToLocation: "B2", CreatedAt: now, UpdatedAt: now,
	}))

	require.NoError(t, f.engine.DeletePackage(f.ctx, "P"))
	m, err := f.store.Movements().GetByID(f.ctx, "M1")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestEngine_NoEncontradoYValidacion(t *testing.T) {
	f := newFixture(t)
	f.product("A", 0)
	f.pkg("P")

	_, err := f.engine.CreateLineItem(f.ctx, stock.LineItemInput{PackageID: "P", ProductID: "A", Quantity: 0})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = f.engine.CreateLineItem(f.ctx, stock.LineItemInput{PackageID: "nope", ProductID: "A", Quantity: 1})
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "bulto", nf.Entity)

	_, err = f.engine.CreateLineItem(f.ctx, stock.LineItemInput{PackageID: "P", ProductID: "ghost", Quantity: 1})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = f.engine.CreateEntry(f.ctx, stock.RecordInput{PackageID: "P"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	assert.True(t, errors.Is(f.engine.DeleteEntry(f.ctx, "missing"), domain.ErrNotFound))
	assert.True(t, errors.Is(f.engine.DeleteExit(f.ctx, "missing"), domain.ErrNotFound))
	assert.True(t, errors.Is(f.engine.DeleteLineItem(f.ctx, "missing"), domain.ErrNotFound))
	assert.True(t, errors.Is(f.engine.DeletePackage(f.ctx, "missing"), domain.ErrNotFound))
	_, err = f.engine.EditExit(f.ctx, "missing", stock.RecordInput{})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestEngine_BultoConAmbasMarcasNetoCero(t *testing.T) {
	f := newFixture(t)
	f.product("A", 5)
	f.pkg("P")
	f.line("P", "A", 2)
	now := time.Now()
	// datos heredados: el bulto tiene entrada y salida a la vez.
	require.NoError(t, f.store.Entries().Create(f.ctx, &entity.Entry{ID: "E", PackageID: "P", UserID: testUser, Date: now}))
	require.NoError(t, f.store.Exits().Create(f.ctx, &entity.Exit{ID: "X", PackageID: "P", UserID: testUser, Date: now}))

	f.line("P", "A", 3)
	assert.Equal(t, 5, f.qty("A"))

	require.NoError(t, f.engine.DeletePackage(f.ctx, "P"))
	assert.Equal(t, 5, f.qty("A"))
}

func TestEngine_RegistraResultados(t *testing.T) {
	f := newFixture(t)
	f.pkg("P")
	_, _ = f.engine.CreateEntry(f.ctx, stock.RecordInput{PackageID: "P", UserID: testUser})

	require.Len(t, f.rec.ops, 1)
	assert.Equal(t, stock.OpCreateEntry, f.rec.ops[0])
	assert.True(t, errors.Is(f.rec.errs[0], domain.ErrEmptyPackage))
}

// failingTx simula una caída del almacenamiento.
type failingTx struct{}

func (failingTx) Run(ctx context.Context, fn func(r stock.TxRepos) error) error {
	return errors.New("connection reset")
}

func TestEngine_EnvuelveErroresDeInfraestructura(t *testing.T) {
	e := stock.NewEngine(failingTx{}, nil)
	err := e.DeleteEntry(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPersistence))
	var pe *domain.PersistenceError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, stock.OpDeleteEntry, pe.Op)
}
