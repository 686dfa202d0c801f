package printhtml_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrianbura/copie-stok/internal/application/dto"
	"github.com/adrianbura/copie-stok/internal/infrastructure/printhtml"
)

func newComposer(t *testing.T) *printhtml.Composer {
	t.Helper()
	c, err := printhtml.NewComposer("Pirotecnia Sur")
	require.NoError(t, err)
	return c
}

func TestRenderStock_ResaltaBajoMinimoYEscapa(t *testing.T) {
	c := newComposer(t)
	assert.Equal(t, "text/html; charset=utf-8", c.ContentType())

	out, err := c.RenderStock(&dto.StockReport{
		WarehouseName: "Depósito <central>",
		Rows: []dto.StockRowDTO{
			{Code: "A-01", Name: "Bengala", Quantity: 0, MinStock: 10, LowStock: true, Value: decimal.Zero},
			{Code: "B-01", Name: "Batería", Quantity: 80, Value: decimal.RequireFromString("800.5")},
		},
		TotalValue:  decimal.RequireFromString("800.5"),
		GeneratedAt: time.Date(2024, 6, 30, 18, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, "Pirotecnia Sur")
	assert.Contains(t, html, `class="low"`)
	assert.Equal(t, 1, strings.Count(html, `class="low"`))
	assert.Contains(t, html, "800,50")
	assert.Contains(t, html, "Depósito &lt;central&gt;")
}

func TestRenderLedger_SinProductos(t *testing.T) {
	out, err := newComposer(t).RenderLedger(&dto.LedgerReport{WarehouseName: "Tienda"})
	require.NoError(t, err)
	assert.Contains(t, string(out), "Sin movimientos en el período.")
	assert.Contains(t, string(out), "inicio")
}

func TestRenderDocumentYSnapshot(t *testing.T) {
	c := newComposer(t)
	out, err := c.RenderDocument(&dto.DocumentResponse{
		Number: "SAL-20240630-ABC123", Type: "exit",
		Items:      []dto.DocumentItemResponse{{ProductCode: "B-01", Quantity: 3, UnitPrice: decimal.NewFromInt(10), LineTotal: decimal.NewFromInt(30)}},
		TotalValue: decimal.NewFromInt(30),
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), "Nota de salida N° SAL-20240630-ABC123")
	assert.Contains(t, string(out), "30,00")

	out, err = c.RenderSnapshot(&dto.SnapshotReport{
		Date:       time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		Rows:       []dto.SnapshotRowDTO{{Code: "A-01", Quantity: 5, UnitPrice: decimal.NewFromInt(2), Value: decimal.NewFromInt(10)}},
		TotalValue: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), "Todas las bodegas")
	assert.Contains(t, string(out), "30/06/2024")
}
