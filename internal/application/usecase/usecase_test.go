package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
)

const operator = "00000000-0000-0000-0000-0000000000aa"

type app struct {
	store      *memory.Store
	categories *usecase.CatalogUseCase[entity.Category]
	products   *usecase.ProductUseCase
	packages   *usecase.PackageUseCase
	stock      *usecase.StockUseCase
	movements  *usecase.MovementUseCase
	users      *usecase.UserUseCase
	roles      *usecase.RoleUseCase
}

func newApp(t *testing.T) *app {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, memory.Seed(context.Background(), store))
	engine := stock.NewEngine(store, nil)
	return &app{
		store:      store,
		categories: usecase.NewCategoryUseCase(store.Categories()),
		products:   usecase.NewProductUseCase(store.Products(), store.Categories(), store.SpecialStorages()),
		packages: usecase.NewPackageUseCase(usecase.PackageRepos{
			Packages:  store.Packages(),
			States:    store.PackageStates(),
			LineItems: store.LineItems(),
			Products:  store.Products(),
			Entries:   store.Entries(),
			Exits:     store.Exits(),
			Movements: store.Movements(),
		}, engine),
		stock: usecase.NewStockUseCase(engine, usecase.StockRepos{
			LineItems: store.LineItems(),
			Entries:   store.Entries(),
			Exits:     store.Exits(),
			Packages:  store.Packages(),
			Products:  store.Products(),
			Users:     store.Users(),
		}),
		movements: usecase.NewMovementUseCase(store, store.Movements()),
		users:     usecase.NewUserUseCase(store.Users(), store.Roles()),
		roles:     usecase.NewRoleUseCase(store.Roles()),
	}
}

func (a *app) product(t *testing.T, name string) *dto.ProductResponse {
	t.Helper()
	ctx := context.Background()
	cat, err := a.categories.Create(ctx, dto.CatalogRequest{Name: "Cat " + name})
	require.NoError(t, err)
	p, err := a.products.Create(ctx, dto.CreateProductRequest{Name: name, Price: decimal.RequireFromString("10.50"), CategoryID: cat.ID})
	require.NoError(t, err)
	return p
}

func (a *app) pkg(t *testing.T, location string) *dto.PackageResponse {
	t.Helper()
	p, err := a.packages.Create(context.Background(), dto.CreatePackageRequest{Description: "Bulto " + location, CurrentLocation: location})
	require.NoError(t, err)
	return p
}

func (a *app) line(t *testing.T, pkgID, productID string, qty int) *dto.LineItemResponse {
	t.Helper()
	it, err := a.stock.CreateLineItem(context.Background(), dto.CreateLineItemRequest{PackageID: pkgID, ProductID: productID, Quantity: qty})
	require.NoError(t, err)
	return it
}

func (a *app) qty(t *testing.T, productID string) int {
	t.Helper()
	p, err := a.products.GetByID(context.Background(), productID)
	require.NoError(t, err)
	return p.QuantityOnHand
}

func TestProductUseCase(t *testing.T) {
	ctx := context.Background()
	a := newApp(t)

	_, err := a.products.Create(ctx, dto.CreateProductRequest{Name: "Tornillo", CategoryID: "00000000-0000-0000-0000-00000000dead"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	cat, err := a.categories.Create(ctx, dto.CatalogRequest{Name: "Ferretería"})
	require.NoError(t, err)
	_, err = a.products.Create(ctx, dto.CreateProductRequest{Name: "Tornillo", Price: decimal.NewFromInt(-1), CategoryID: cat.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := a.products.Create(ctx, dto.CreateProductRequest{Name: "Tornillo", Price: decimal.RequireFromString("0.25"), CategoryID: cat.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, p.QuantityOnHand)
	assert.Equal(t, "Ferretería", p.CategoryName)

	name := "Tornillo 3/8"
	updated, err := a.products.Update(ctx, p.ID, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.True(t, decimal.RequireFromString("0.25").Equal(updated.Price))

	list, err := a.products.List(ctx, dto.ProductFilterRequest{Name: "TORNILLO"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, 1, list.Page.Total)

	pkg := a.pkg(t, "A-1")
	a.line(t, pkg.ID, p.ID, 3)
	assert.ErrorIs(t, a.products.Delete(ctx, p.ID), domain.ErrConflict)
	assert.ErrorIs(t, a.categories.Delete(ctx, cat.ID), domain.ErrConflict)
}

func TestPackageUseCase_ClassificationAndOptions(t *testing.T) {
	ctx := context.Background()
	a := newApp(t)
	prod := a.product(t, "Guantes")

	empty := a.pkg(t, "A-1")
	ready := a.pkg(t, "A-2")
	entered := a.pkg(t, "B-1")
	a.line(t, ready.ID, prod.ID, 4)
	a.line(t, entered.ID, prod.ID, 6)
	_, err := a.stock.CreateEntry(ctx, operator, dto.CreateRecordRequest{PackageID: entered.ID})
	require.NoError(t, err)
	assert.Equal(t, 6, a.qty(t, prod.ID))

	entryOpts, err := a.packages.EntryOptions(ctx)
	require.NoError(t, err)
	require.Len(t, entryOpts.Items, 1)
	assert.Equal(t, ready.ID, entryOpts.Items[0].ID)

	exitOpts, err := a.packages.ExitOptions(ctx)
	require.NoError(t, err)
	require.Len(t, exitOpts.Items, 1)
	assert.Equal(t, ready.ID, exitOpts.Items[0].ID)

	yes, no := true, false
	withEntry, err := a.packages.List(ctx, dto.PackageFilterRequest{HasEntry: &yes})
	require.NoError(t, err)
	require.Len(t, withEntry.Items, 1)
	assert.Equal(t, entered.ID, withEntry.Items[0].ID)
	assert.Equal(t, "con_entrada", withEntry.Items[0].StockStatus)

	withoutEntry, err := a.packages.List(ctx, dto.PackageFilterRequest{HasEntry: &no, PageRequest: dto.PageRequest{Limit: 1}})
	require.NoError(t, err)
	assert.Len(t, withoutEntry.Items, 1)
	assert.Equal(t, 2, withoutEntry.Page.Total)
	assert.Equal(t, 2, withoutEntry.Page.Pages)

	byLocation, err := a.packages.List(ctx, dto.PackageFilterRequest{Location: "a-1"})
	require.NoError(t, err)
	require.Len(t, byLocation.Items, 1)
	assert.Equal(t, empty.ID, byLocation.Items[0].ID)

	detail, err := a.packages.GetByID(ctx, entered.ID)
	require.NoError(t, err)
	require.Len(t, detail.Lines, 1)
	assert.Equal(t, "Guantes", detail.Lines[0].ProductName)
	require.NotNil(t, detail.Entry)
	assert.Nil(t, detail.Exit)
	assert.True(t, detail.HasEntry)
}

func TestPackageUseCase_DeleteRevertsStock(t *testing.T) {
	ctx := context.Background()
	a := newApp(t)
	prod := a.product(t, "Cajas")
	pkg := a.pkg(t, "C-1")
	a.line(t, pkg.ID, prod.ID, 9)
	_, err := a.stock.CreateEntry(ctx, operator, dto.CreateRecordRequest{PackageID: pkg.ID})
	require.NoError(t, err)
	require.Equal(t, 9, a.qty(t, prod.ID))

	require.NoError(t, a.packages.Delete(ctx, pkg.ID))
	assert.Equal(t, 0, a.qty(t, prod.ID))

	_, err = a.packages.GetByID(ctx, pkg.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPackageUseCase_StateMustExist(t *testing.T) {
	ctx := context.Background()
	a := newApp(t)

	_, err := a.packages.Create(ctx, dto.CreatePackageRequest{CurrentLocation: "A-1", StateID: "00000000-0000-0000-0000-00000000beef"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	states, err := usecase.NewPackageStateUseCase(a.store.PackageStates()).List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, states.Items, 3)

	p, err := a.packages.Create(ctx, dto.CreatePackageRequest{CurrentLocation: "A-1", StateID: states.Items[0].ID})
	require.NoError(t, err)
	assert.Equal(t, states.Items[0].Name, p.StateName)
	assert.Equal(t, "sin_movimiento", p.StockStatus)
}

func TestStockUseCase_EntryAndExit(t *testing.T) {
	ctx := context.Background()
	a := newApp(t)
	user, err := a.users.Create(ctx, dto.CreateUserRequest{Email: "bodega@almacen.test", Password: "secreto123", Name: "Bodega", Role: entity.RoleBodeguero})
	require.NoError(t, err)

	prod := a.product(t, "Cinta")
	in := a.pkg(t, "D-1")
	out := a.pkg(t, "D-2")
	a.line(t, in.ID, prod.ID, 10)
	a.line(t, out.ID, prod.ID, 4)

	entry, err := a.stock.CreateEntry(ctx, user.ID, dto.CreateRecordRequest{PackageID: in.ID})
	require.NoError(t, err)
	assert.Equal(t, "Bodega", entry.UserName)
	assert.Equal(t, "Bulto D-1", entry.PackageDescription)

	_, err = a.stock.CreateExit(ctx, user.ID, dto.CreateRecordRequest{PackageID: out.ID})
	require.NoError(t, err)
	assert.Equal(t, 6, a.qty(t, prod.ID))

	entries, err := a.stock.ListEntries(ctx, dto.RecordFilterRequest{UserID: user.ID})
	require.NoError(t, err)
	assert.Len(t, entries.Items, 1)

	exits, err := a.stock.ListExits(ctx, dto.RecordFilterRequest{PackageID: in.ID})
	require.NoError(t, err)
	assert.Empty(t, exits.Items)

	err = a.stock.DeleteEntry(ctx, entry.ID)
	var shortage domain.StockErrors
	require.ErrorAs(t, err, &shortage)
	assert.Equal(t, 6, a.qty(t, prod.ID))

	outExit, err := a.stock.ListExits(ctx, dto.RecordFilterRequest{PackageID: out.ID})
	require.NoError(t, err)
	require.Len(t, outExit.Items, 1)
	require.NoError(t, a.stock.DeleteExit(ctx, outExit.Items[0].ID))
	require.NoError(t, a.stock.DeleteEntry(ctx, entry.ID))
	assert.Equal(t, 0, a.qty(t, prod.ID))

	_, err = a.stock.GetEntry(ctx, entry.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockUseCase_ListLineItemsFiltraPorProductoYLote(t *testing.T) {
	ctx := context.Background()
	a := newApp(t)
	cinta := a.product(t, "Cinta Adhesiva")
	caja := a.product(t, "Caja Grande")
	p := a.pkg(t, "D-9")
	_, err := a.stock.CreateLineItem(ctx, dto.CreateLineItemRequest{PackageID: p.ID, ProductID: cinta.ID, Quantity: 3, Lot: "L-2024-01"})
	require.NoError(t, err)
	_, err = a.stock.CreateLineItem(ctx, dto.CreateLineItemRequest{PackageID: p.ID, ProductID: caja.ID, Quantity: 2, Lot: "L-2024-02"})
	require.NoError(t, err)
	a.line(t, p.ID, caja.ID, 1)

	all, err := a.stock.ListLineItems(ctx, dto.LineItemFilterRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Page.Total)

	byName, err := a.stock.ListLineItems(ctx, dto.LineItemFilterRequest{Name: "  adhesiva "})
	require.NoError(t, err)
	require.Len(t, byName.Items, 1)
	assert.Equal(t, "Cinta Adhesiva", byName.Items[0].ProductName)
	assert.Equal(t, 1, byName.Page.Total)

	byLot, err := a.stock.ListLineItems(ctx, dto.LineItemFilterRequest{Lot: "l-2024"})
	require.NoError(t, err)
	assert.Len(t, byLot.Items, 2)

	both, err := a.stock.ListLineItems(ctx, dto.LineItemFilterRequest{Name: "CAJA", Lot: "02"})
	require.NoError(t, err)
	require.Len(t, both.Items, 1)
	assert.Equal(t, 2, both.Items[0].Quantity)

	none, err := a.stock.ListLineItems(ctx, dto.LineItemFilterRequest{Name: "cinta", Lot: "02"})
	require.NoError(t, err)
	assert.Empty(t, none.Items)
	assert.Equal(t, 0, none.Page.Total)
}

func TestMovementUseCase_UpdatesLocation(t *testing.T) {
	ctx := context.Background()
	a := newApp(t)
	pkg := a.pkg(t, "Muelle 1")

	m, err := a.movements.Create(ctx, operator, dto.CreateMovementRequest{PackageID: pkg.ID, ToLocation: "Rack 4"})
	require.NoError(t, err)
	assert.Equal(t, "Muelle 1", m.FromLocation)
	assert.Equal(t, "Rack 4", m.ToLocation)

	detail, err := a.packages.GetByID(ctx, pkg.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rack 4", detail.CurrentLocation)
	require.Len(t, detail.Movements, 1)

	to := "Rack 5"
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err = a.movements.Update(ctx, m.ID, dto.UpdateMovementRequest{ToLocation: &to, Date: &date})
	require.NoError(t, err)
	detail, err = a.packages.GetByID(ctx, pkg.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rack 5", detail.CurrentLocation)

	list, err := a.movements.List(ctx, dto.MovementFilterRequest{ToLocation: "rack"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.True(t, date.Equal(list.Items[0].Date))

	_, err = a.movements.Create(ctx, operator, dto.CreateMovementRequest{PackageID: "00000000-0000-0000-0000-00000000dead", ToLocation: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, a.movements.Delete(ctx, m.ID))
	_, err = a.movements.GetByID(ctx, m.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserAndRoleUseCase(t *testing.T) {
	ctx := context.Background()
	a := newApp(t)

	_, err := a.users.Create(ctx, dto.CreateUserRequest{Email: "x@almacen.test", Password: "secreto123", Name: "X", Role: "inexistente"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	role, err := a.roles.Create(ctx, dto.CatalogRequest{Name: "auditor"})
	require.NoError(t, err)
	_, err = a.roles.Create(ctx, dto.CatalogRequest{Name: "Auditor"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	u, err := a.users.Create(ctx, dto.CreateUserRequest{Email: "X@Almacen.test", Password: "secreto123", Name: "X", Role: "auditor"})
	require.NoError(t, err)
	assert.Equal(t, "x@almacen.test", u.Email)
	assert.Equal(t, entity.UserStatusActive, u.Status)

	_, err = a.users.Create(ctx, dto.CreateUserRequest{Email: "x@almacen.test", Password: "secreto123", Name: "Y", Role: "auditor"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = a.roles.Update(ctx, role.ID, dto.CatalogRequest{Name: "revisor"})
	require.NoError(t, err)
	got, err := a.users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "revisor", got.Role)

	assert.ErrorIs(t, a.roles.Delete(ctx, role.ID), domain.ErrConflict)

	inactive := entity.UserStatusInactive
	got, err = a.users.Update(ctx, u.ID, dto.UpdateUserRequest{Status: &inactive})
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusInactive, got.Status)

	require.NoError(t, a.users.Delete(ctx, u.ID))
	require.NoError(t, a.roles.Delete(ctx, role.ID))

	roles, err := a.roles.List(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 3)
}
