package export_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/export"
	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/almacen-api/internal/infrastructure/xlsx"
)

func setup(t *testing.T) (*export.UseCase, string) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, memory.Seed(ctx, store))
	engine := stock.NewEngine(store, nil)

	cat, err := usecase.NewCategoryUseCase(store.Categories()).Create(ctx, dto.CatalogRequest{Name: "Aseo"})
	require.NoError(t, err)
	prod, err := usecase.NewProductUseCase(store.Products(), store.Categories(), store.SpecialStorages()).
		Create(ctx, dto.CreateProductRequest{Name: "Guantes", Price: decimal.RequireFromString("1200"), CategoryID: cat.ID})
	require.NoError(t, err)

	packages := usecase.NewPackageUseCase(usecase.PackageRepos{
		Packages:  store.Packages(),
		States:    store.PackageStates(),
		LineItems: store.LineItems(),
		Products:  store.Products(),
		Entries:   store.Entries(),
		Exits:     store.Exits(),
		Movements: store.Movements(),
	}, engine)
	pkg, err := packages.Create(ctx, dto.CreatePackageRequest{Description: "Caja 1", CurrentLocation: "Muelle"})
	require.NoError(t, err)
	_, err = engine.CreateLineItem(ctx, stock.LineItemInput{PackageID: pkg.ID, ProductID: prod.ID, Quantity: 5})
	require.NoError(t, err)
	_, err = engine.CreateEntry(ctx, stock.RecordInput{PackageID: pkg.ID, UserID: "00000000-0000-0000-0000-0000000000aa"})
	require.NoError(t, err)

	uc := export.NewUseCase(export.Repos{
		Products:        store.Products(),
		Categories:      store.Categories(),
		SpecialStorages: store.SpecialStorages(),
		States:          store.PackageStates(),
		Packages:        store.Packages(),
		LineItems:       store.LineItems(),
		Entries:         store.Entries(),
		Exits:           store.Exits(),
		Movements:       store.Movements(),
		Users:           store.Users(),
	}, packages, xlsx.NewWriter(), pdf.NewManifestGenerator())
	return uc, pkg.ID
}

func readSheet(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetList()[0])
	require.NoError(t, err)
	return rows
}

func TestWorkbook_Products(t *testing.T) {
	uc, _ := setup(t)
	var buf bytes.Buffer
	require.NoError(t, uc.Workbook(context.Background(), export.Products, &buf))

	rows := readSheet(t, &buf)
	require.Len(t, rows, 2)
	assert.Equal(t, "Nombre", rows[0][1])
	assert.Equal(t, []string{"Guantes", "1200.00", "5", "Aseo"}, rows[1][1:5])
	assert.Equal(t, "6000.00", rows[1][6])
}

func TestWorkbook_Packages(t *testing.T) {
	uc, _ := setup(t)
	var buf bytes.Buffer
	require.NoError(t, uc.Workbook(context.Background(), export.Packages, &buf))

	rows := readSheet(t, &buf)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Caja 1", "Muelle", "", "Sí", "No"}, rows[1][1:6])
}

func TestWorkbook_UnknownEntity(t *testing.T) {
	uc, _ := setup(t)
	err := uc.Workbook(context.Background(), "facturas", &bytes.Buffer{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestManifest(t *testing.T) {
	uc, pkgID := setup(t)
	out, err := uc.Manifest(context.Background(), pkgID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	_, err = uc.Manifest(context.Background(), "00000000-0000-0000-0000-00000000dead")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
