package importer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/adrianbura/copie-stok/internal/domain/importer"
)

const header = "code,quantity,unit_price,reference,notes,name,category,supplier\n"

func TestParseCSV_FilaMinimaYCantidadNegativa(t *testing.T) {
	in := header + "PYRO001,10,25.50,DOC-1,,,,\nPYRO002,-3\n"

	res, err := importer.ParseCSV(strings.NewReader(in))
	require.NoError(t, err)

	require.Len(t, res.Rows, 1)
	row := res.Rows[0]
	assert.Equal(t, "PYRO001", row.ProductCode)
	assert.Equal(t, 10, row.Quantity)
	assert.True(t, decimal.RequireFromString("25.50").Equal(row.UnitPrice))
	assert.Equal(t, "DOC-1", row.Reference)
	assert.Equal(t, 2, row.Line)

	require.Len(t, res.Skipped, 1)
	assert.Equal(t, 3, res.Skipped[0].Line)
	assert.Equal(t, importer.ReasonNonPositive, res.Skipped[0].Reason)
}

func TestParseCSV_PuntoYComaConComaDecimal(t *testing.T) {
	in := "code;quantity;unit_price;reference;notes;name;category;supplier\r\n" +
		"PYRO010;4;12,75;AV-77;lote nuevo;Volcán 25 tiros;f3;Pirotecnia Sur\r\n"

	res, err := importer.ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	row := res.Rows[0]
	assert.True(t, decimal.RequireFromString("12.75").Equal(row.UnitPrice))
	assert.Equal(t, "Volcán 25 tiros", row.Name)
	assert.Equal(t, entity.CategoryF3, row.Category)
	assert.Equal(t, "Pirotecnia Sur", row.Supplier)
	assert.Equal(t, "lote nuevo", row.Notes)
}

func TestParseCSV_MotivosDeDescarte(t *testing.T) {
	in := header +
		",5\n" +
		"PYRO003\n" +
		"PYRO004,2.5\n" +
		"PYRO005,0\n" +
		"PYRO006,3,abc\n" +
		"PYRO007,3,1,,,Bengala,Z9\n" +
		"\n" +
		"PYRO008,1\n"

	res, err := importer.ParseCSV(strings.NewReader(in))
	require.NoError(t, err)

	require.Len(t, res.Rows, 1)
	assert.Equal(t, "PYRO008", res.Rows[0].ProductCode)
	assert.True(t, res.Rows[0].UnitPrice.IsZero())

	reasons := make([]string, 0, len(res.Skipped))
	for _, s := range res.Skipped {
		reasons = append(reasons, s.Reason)
	}
	assert.Equal(t, []string{
		importer.ReasonMissingCode,
		importer.ReasonMissingQuantity,
		importer.ReasonInvalidQuantity,
		importer.ReasonNonPositive,
		importer.ReasonInvalidUnitPrice,
		importer.ReasonInvalidCategory,
	}, reasons)
}

func TestParseCSV_Windows1252(t *testing.T) {
	utf := header + "PYRO020,6,3.10,,,Cohete señal,F2,Pirotecnia Ibérica\n"
	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(utf))
	require.NoError(t, err)

	res, err := importer.ParseCSV(bytes.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Cohete señal", res.Rows[0].Name)
	assert.Equal(t, "Pirotecnia Ibérica", res.Rows[0].Supplier)
}

func TestParseCSV_BOMYCampoEntreComillas(t *testing.T) {
	in := "\xEF\xBB\xBF" + header + "PYRO030,2,1.00,,\"nota, con coma\",,,\n"
	res, err := importer.ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "nota, con coma", res.Rows[0].Notes)
}

func TestParseCSV_Vacio(t *testing.T) {
	_, err := importer.ParseCSV(strings.NewReader("\n\n"))
	assert.ErrorIs(t, err, importer.ErrEmpty)
}

func TestParseCSV_NotaEntreComillasConSaltoDeLinea(t *testing.T) {
	in := header +
		"PYRO040,3,2.00,AV-9,\"revisar caja\nantes de abrir\",,,\n" +
		"PYRO041,1\n" +
		"PYRO042,x\n"

	res, err := importer.ParseCSV(strings.NewReader(in))
	require.NoError(t, err)

	require.Len(t, res.Rows, 2)
	assert.Equal(t, "PYRO040", res.Rows[0].ProductCode)
	assert.Equal(t, "revisar caja\nantes de abrir", res.Rows[0].Notes)
	assert.Equal(t, 2, res.Rows[0].Line)
	assert.Equal(t, "PYRO041", res.Rows[1].ProductCode)
	assert.Equal(t, 4, res.Rows[1].Line)

	require.Len(t, res.Skipped, 1)
	assert.Equal(t, 5, res.Skipped[0].Line)
	assert.Equal(t, importer.ReasonInvalidQuantity, res.Skipped[0].Reason)
	assert.Equal(t, "PYRO042,x", res.Skipped[0].Raw)
}
