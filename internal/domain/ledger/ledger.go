// Package ledger reconstruye el libro de movimientos por producto: saldo de apertura,
// saldos corrientes (stock antes/después) y totales del período, y el stock histórico
// a una fecha dada. Todas las funciones son puras y trabajan sobre datos ya cargados.
package ledger

import (
	"sort"
	"time"

	"github.com/adrianbura/copie-stok/internal/domain/entity"
)

// Window rango de fechas inclusivo. Un extremo nil no limita.
type Window struct {
	Start *time.Time
	End   *time.Time
}

// Entry movimiento anotado con el saldo corriente.
type Entry struct {
	Movement    entity.StockMovement
	StockBefore int
	StockAfter  int
}

// ProductLedger libro de un producto dentro de la ventana.
type ProductLedger struct {
	ProductID      string
	OpeningBalance int
	Entries        []Entry
	TotalEntries   int
	TotalExits     int
	FinalStock     int
}

// Report resultado de Build. Ignored contiene los movimientos descartados
// (cantidad no positiva o tipo desconocido).
type Report struct {
	Products []ProductLedger
	Ignored  []entity.StockMovement
}

// Build agrupa los movimientos por producto, los ordena por fecha y calcula el saldo
// corriente de cada uno. El orden es estable: los movimientos con la misma fecha
// conservan el orden de entrada. Los productos sin movimientos en la ventana se omiten.
func Build(movements []entity.StockMovement, w Window) Report {
	var rep Report
	byProduct := make(map[string][]entity.StockMovement)
	for _, m := range movements {
		if m.Quantity <= 0 || !m.Type.Valid() {
			rep.Ignored = append(rep.Ignored, m)
			continue
		}
		byProduct[m.ProductID] = append(byProduct[m.ProductID], m)
	}

	ids := make([]string, 0, len(byProduct))
	for id := range byProduct {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if pl, ok := buildProduct(id, byProduct[id], w); ok {
			rep.Products = append(rep.Products, pl)
		}
	}
	return rep
}

func buildProduct(productID string, movs []entity.StockMovement, w Window) (ProductLedger, bool) {
	sort.SliceStable(movs, func(i, j int) bool {
		return movs[i].Date.Before(movs[j].Date)
	})

	pl := ProductLedger{ProductID: productID}
	running := 0
	for _, m := range movs {
		if w.Start != nil && m.Date.Before(*w.Start) {
			pl.OpeningBalance += m.Signed()
			running = pl.OpeningBalance
			continue
		}
		if w.End != nil && m.Date.After(*w.End) {
			// ordenados: nada posterior entra en la ventana
			break
		}
		e := Entry{Movement: m, StockBefore: running}
		running += m.Signed()
		e.StockAfter = running
		pl.Entries = append(pl.Entries, e)

		switch m.Type {
		case entity.MovementEntry:
			pl.TotalEntries += m.Quantity
		case entity.MovementExit:
			pl.TotalExits += m.Quantity
		}
	}
	if len(pl.Entries) == 0 {
		return pl, false
	}
	pl.FinalStock = pl.Entries[len(pl.Entries)-1].StockAfter
	return pl, true
}

// Balance suma con signo de todos los movimientos válidos de la lista.
func Balance(movements []entity.StockMovement) int {
	total := 0
	for _, m := range movements {
		if m.Quantity <= 0 {
			continue
		}
		total += m.Signed()
	}
	return total
}

// StartOfDay devuelve 00:00:00 del día de t en loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = t.Location()
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// EndOfDay devuelve el último instante representable del día de t en loc.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	return StartOfDay(t, loc).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
