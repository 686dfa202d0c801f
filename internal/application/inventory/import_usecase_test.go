package inventory_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrianbura/copie-stok/internal/application/inventory"
	"github.com/adrianbura/copie-stok/internal/domain"
	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/adrianbura/copie-stok/internal/domain/importer"
	"github.com/adrianbura/copie-stok/internal/infrastructure/memory"
)

const csvHeader = "code,quantity,unit_price,reference,notes,name,category,supplier\n"

func newImport(f *fixture) *inventory.ImportUseCase {
	return inventory.NewImportUseCase(f.uc, f.products, memory.NewWarehouseRepository(f.store))
}

func TestImport_CreaProductosYRegistraUnaEntrada(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	in := csvHeader +
		"BAT-100,10,12,AV-1,,,,\n" +
		"NEW-1,5,3.5,AV-1,,Bengala,F1,Pirotecnia Sur\n" +
		"NEW-1,2,,AV-1,,Bengala,F1,\n" +
		"GHOST,4,1,,,,,\n" +
		"BAT-100,-1,,,,,,\n"

	res, err := newImport(f).Import(ctx, "wh-1", "ana", strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, 3, res.Imported)
	assert.Equal(t, []string{"NEW-1"}, res.CreatedProducts)
	require.NotNil(t, res.Document)
	assert.Equal(t, entity.MovementEntry, res.Document.Type)
	assert.Len(t, res.Document.Items, 3)

	require.Len(t, res.Skipped, 2)
	reasons := map[int]string{}
	for _, s := range res.Skipped {
		reasons[s.Line] = s.Reason
	}
	assert.Equal(t, importer.ReasonNonPositive, reasons[6])
	assert.Equal(t, inventory.ReasonUnknownProduct, reasons[5])

	created, err := f.products.GetByCode(ctx, "NEW-1")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, entity.CategoryF1, created.Category)
	assert.Equal(t, 7, created.Quantity)
	assert.True(t, created.UnitPrice.Equal(decimal.RequireFromString("3.5")))

	wh, _ := f.qty(t, "p-1")
	assert.Equal(t, 10, wh)
}

func TestImport_CodigoNuevoRepetidoConOtrasMayusculasCreaUnSoloProducto(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	in := csvHeader +
		"new-9,2,1,,,Bengala,F1,\n" +
		"NEW-9,3,1,,,Bengala,F1,\n" +
		"bat-100,4,,,,,,\n"

	res, err := newImport(f).Import(ctx, "wh-1", "ana", strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, 3, res.Imported)
	assert.Equal(t, []string{"new-9"}, res.CreatedProducts)
	assert.Empty(t, res.Skipped)

	created, err := f.products.GetByCode(ctx, "NEW-9")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, 5, created.Quantity)

	wh, _ := f.qty(t, "p-1")
	assert.Equal(t, 4, wh)
}

func TestImport_SinFilasAceptadasNoCreaDocumento(t *testing.T) {
	f := newFixture(t, nil)
	res, err := newImport(f).Import(context.Background(), "wh-1", "ana", strings.NewReader(csvHeader+"GHOST,1,,,,,,\n"))
	require.NoError(t, err)
	assert.Zero(t, res.Imported)
	assert.Nil(t, res.Document)
	assert.Len(t, res.Skipped, 1)
}

func TestImport_ArchivoVacioEsEntradaInvalida(t *testing.T) {
	f := newFixture(t, nil)
	_, err := newImport(f).Import(context.Background(), "wh-1", "ana", strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImport_BodegaInexistente(t *testing.T) {
	f := newFixture(t, nil)
	_, err := newImport(f).Import(context.Background(), "wh-x", "ana", strings.NewReader(csvHeader))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
