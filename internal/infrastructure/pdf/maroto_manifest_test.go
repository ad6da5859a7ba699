package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/infrastructure/pdf"
)

func TestManifestGenerator_RenderManifest(t *testing.T) {
	date := time.Date(2025, 4, 10, 9, 0, 0, 0, time.UTC)
	detail := &dto.PackageDetailResponse{
		PackageResponse: dto.PackageResponse{
			ID:              "5b7c1d2e-0000-4000-8000-000000000001",
			Description:     "Insumos de limpieza",
			CurrentLocation: "Rack 4",
			HasEntry:        true,
			StockStatus:     "con_entrada",
		},
		Lines: []dto.LineItemResponse{
			{ProductName: "Guantes", Quantity: 12, Lot: "L-01", ExpiresAt: &date},
			{ProductName: "Cinta", Quantity: 3},
		},
		Entry:     &dto.RecordResponse{UserName: "Ana", Date: date},
		Movements: []dto.MovementResponse{{Date: date, FromLocation: "Muelle 1", ToLocation: "Rack 4"}},
	}

	out, err := pdf.NewManifestGenerator().RenderManifest(context.Background(), detail)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestManifestGenerator_EmptyPackage(t *testing.T) {
	out, err := pdf.NewManifestGenerator().RenderManifest(context.Background(), &dto.PackageDetailResponse{
		PackageResponse: dto.PackageResponse{ID: "5b7c1d2e-0000-4000-8000-000000000002", StockStatus: "sin_movimiento"},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
