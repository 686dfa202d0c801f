package ledger

import (
	"sort"
	"time"

	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SnapshotRow stock reconstruido de un producto a una fecha.
type SnapshotRow struct {
	ProductID string
	Code      string
	Name      string
	Category  entity.Category
	Quantity  int
	UnitPrice decimal.Decimal
	Value     decimal.Decimal
}

// SnapshotSummary totales de una foto histórica.
type SnapshotSummary struct {
	Products   int
	TotalUnits int
	TotalValue decimal.Decimal
}

// Snapshot reproduce todos los movimientos con fecha <= fin del día de cutoff (en la zona
// horaria de cutoff) para cada producto de la lista. Los productos cuyo saldo neto es
// exactamente 0 no forman parte del resultado, aunque hayan tenido actividad.
// Las filas se ordenan por código de producto.
func Snapshot(products []*entity.Product, movements []entity.StockMovement, cutoff time.Time) []SnapshotRow {
	limit := EndOfDay(cutoff, cutoff.Location())

	net := make(map[string]int, len(products))
	for _, p := range products {
		net[p.ID] = 0
	}
	for _, m := range movements {
		if m.Quantity <= 0 || m.Date.After(limit) {
			continue
		}
		if _, ok := net[m.ProductID]; !ok {
			continue
		}
		net[m.ProductID] += m.Signed()
	}

	rows := make([]SnapshotRow, 0, len(products))
	for _, p := range products {
		qty := net[p.ID]
		if qty == 0 {
			continue
		}
		rows = append(rows, SnapshotRow{
			ProductID: p.ID,
			Code:      p.Code,
			Name:      p.Name,
			Category:  p.Category,
			Quantity:  qty,
			UnitPrice: p.UnitPrice,
			Value:     p.UnitPrice.Mul(decimal.NewFromInt(int64(qty))),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Code < rows[j].Code })
	return rows
}

// SnapshotTotals suma unidades y valor de las filas.
func SnapshotTotals(rows []SnapshotRow) SnapshotSummary {
	s := SnapshotSummary{Products: len(rows), TotalValue: decimal.Zero}
	for _, r := range rows {
		s.TotalUnits += r.Quantity
		s.TotalValue = s.TotalValue.Add(r.Value)
	}
	return s
}

// Drift diferencia entre el stock materializado y el reconstruido desde el libro.
type Drift struct {
	ProductID  string
	Stored     int
	FromLedger int
	Difference int // Stored - FromLedger
}

// Reconcile compara warehouse_stock con la suma de movimientos por producto y devuelve
// los productos con diferencia distinta de cero, ordenados por ProductID.
// Los movimientos deben pertenecer a la misma bodega que las filas de stock.
func Reconcile(stock []*entity.WarehouseStock, movements []entity.StockMovement) []Drift {
	fromLedger := make(map[string]int)
	for _, m := range movements {
		if m.Quantity <= 0 {
			continue
		}
		fromLedger[m.ProductID] += m.Signed()
	}
	stored := make(map[string]int, len(stock))
	for _, s := range stock {
		stored[s.ProductID] += s.Quantity
	}

	seen := make(map[string]struct{}, len(stored)+len(fromLedger))
	var out []Drift
	check := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		if d := stored[id] - fromLedger[id]; d != 0 {
			out = append(out, Drift{ProductID: id, Stored: stored[id], FromLedger: fromLedger[id], Difference: d})
		}
	}
	for id := range stored {
		check(id)
	}
	for id := range fromLedger {
		check(id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}
