package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/adrianbura/copie-stok/internal/application/dto"
	"github.com/adrianbura/copie-stok/internal/domain"
	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/adrianbura/copie-stok/internal/domain/ledger"
	"github.com/adrianbura/copie-stok/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// UseCase reportes de solo lectura: ficha de movimientos, foto histórica, stock actual y
// conciliación. Las fechas de consulta se interpretan en loc.
type UseCase struct {
	productRepo   repository.ProductRepository
	movRepo       repository.StockMovementRepository
	stockRepo     repository.WarehouseStockRepository
	warehouseRepo repository.WarehouseRepository
	loc           *time.Location
	now           func() time.Time
}

// NewUseCase construye el caso de uso. loc nil equivale a time.Local.
func NewUseCase(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	stockRepo repository.WarehouseStockRepository,
	warehouseRepo repository.WarehouseRepository,
	loc *time.Location,
) *UseCase {
	if loc == nil {
		loc = time.Local
	}
	return &UseCase{
		productRepo:   productRepo,
		movRepo:       movRepo,
		stockRepo:     stockRepo,
		warehouseRepo: warehouseRepo,
		loc:           loc,
		now:           time.Now,
	}
}

// Location zona horaria de los reportes.
func (uc *UseCase) Location() *time.Location { return uc.loc }

// LedgerQuery parámetros de la ficha. From y To son días (inclusivos); nil no limita.
// ProductID vacío incluye todos los productos con movimientos en la ventana.
type LedgerQuery struct {
	WarehouseID string
	ProductID   string
	From        *time.Time
	To          *time.Time
}

// Ledger construye la ficha de movimientos con saldo corriente.
func (uc *UseCase) Ledger(ctx context.Context, q LedgerQuery) (*dto.LedgerReport, error) {
	wh, err := uc.warehouse(ctx, q.WarehouseID)
	if err != nil {
		return nil, err
	}
	if q.ProductID != "" {
		p, err := uc.productRepo.GetByID(ctx, q.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("producto %s: %w", q.ProductID, domain.ErrNotFound)
		}
	}

	var w ledger.Window
	if q.From != nil {
		start := ledger.StartOfDay(*q.From, uc.loc)
		w.Start = &start
	}
	if q.To != nil {
		end := ledger.EndOfDay(*q.To, uc.loc)
		w.End = &end
	}
	if w.Start != nil && w.End != nil && w.End.Before(*w.Start) {
		return nil, fmt.Errorf("%w: rango de fechas invertido", domain.ErrInvalidInput)
	}

	// Sin límite inferior: los movimientos anteriores a From forman el saldo de apertura.
	movs, err := uc.movRepo.List(ctx, repository.MovementFilter{
		WarehouseID: q.WarehouseID,
		ProductID:   q.ProductID,
		To:          w.End,
	})
	if err != nil {
		return nil, err
	}
	rep := ledger.Build(values(movs), w)

	ids := make([]string, 0, len(rep.Products))
	for _, pl := range rep.Products {
		ids = append(ids, pl.ProductID)
	}
	products, err := uc.productsByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := &dto.LedgerReport{
		WarehouseID:   wh.ID,
		WarehouseName: wh.Name,
		From:          w.Start,
		To:            w.End,
		Products:      make([]dto.ProductLedgerDTO, 0, len(rep.Products)),
		Ignored:       len(rep.Ignored),
		GeneratedAt:   uc.now().In(uc.loc),
	}
	for _, pl := range rep.Products {
		item := dto.ProductLedgerDTO{
			ProductID:      pl.ProductID,
			OpeningBalance: pl.OpeningBalance,
			Entries:        make([]dto.LedgerEntryDTO, 0, len(pl.Entries)),
			TotalEntries:   pl.TotalEntries,
			TotalExits:     pl.TotalExits,
			FinalStock:     pl.FinalStock,
		}
		if p := products[pl.ProductID]; p != nil {
			item.ProductCode = p.Code
			item.ProductName = p.Name
		}
		for _, e := range pl.Entries {
			item.Entries = append(item.Entries, dto.LedgerEntryDTO{
				MovementID:  e.Movement.ID,
				Date:        e.Movement.Date.In(uc.loc),
				Type:        string(e.Movement.Type),
				Quantity:    e.Movement.Quantity,
				StockBefore: e.StockBefore,
				StockAfter:  e.StockAfter,
				Reference:   e.Movement.Reference,
				Notes:       e.Movement.Notes,
				Operator:    e.Movement.Operator,
			})
		}
		out.Products = append(out.Products, item)
	}
	sort.SliceStable(out.Products, func(i, j int) bool {
		return out.Products[i].ProductCode < out.Products[j].ProductCode
	})
	return out, nil
}

// Snapshot stock reconstruido al final del día cutoff. warehouseID vacío abarca todas las
// bodegas: todos los productos y todos los movimientos.
func (uc *UseCase) Snapshot(ctx context.Context, warehouseID string, cutoff time.Time) (*dto.SnapshotReport, error) {
	var (
		products []*entity.Product
		movs     []*entity.StockMovement
		whName   string
		err      error
	)
	day := ledger.StartOfDay(cutoff, uc.loc)
	end := ledger.EndOfDay(day, uc.loc)

	if warehouseID != "" {
		wh, err := uc.warehouse(ctx, warehouseID)
		if err != nil {
			return nil, err
		}
		whName = wh.Name
		rows, err := uc.stockRepo.ListByWarehouse(ctx, warehouseID)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(rows))
		for _, r := range rows {
			ids = append(ids, r.ProductID)
		}
		if products, err = uc.productRepo.ListByIDs(ctx, ids); err != nil {
			return nil, err
		}
	} else if products, err = uc.productRepo.List(ctx, repository.ProductFilter{}); err != nil {
		return nil, err
	}

	movs, err = uc.movRepo.List(ctx, repository.MovementFilter{WarehouseID: warehouseID, To: &end})
	if err != nil {
		return nil, err
	}

	rows := ledger.Snapshot(products, values(movs), day)
	totals := ledger.SnapshotTotals(rows)
	out := &dto.SnapshotReport{
		WarehouseID:   warehouseID,
		WarehouseName: whName,
		Date:          day,
		Rows:          make([]dto.SnapshotRowDTO, 0, len(rows)),
		TotalProducts: totals.Products,
		TotalUnits:    totals.TotalUnits,
		TotalValue:    totals.TotalValue,
		GeneratedAt:   uc.now().In(uc.loc),
	}
	for _, r := range rows {
		out.Rows = append(out.Rows, dto.SnapshotRowDTO{
			ProductID: r.ProductID,
			Code:      r.Code,
			Name:      r.Name,
			Category:  string(r.Category),
			Quantity:  r.Quantity,
			UnitPrice: r.UnitPrice,
			Value:     r.Value,
		})
	}
	return out, nil
}

// StockList stock actual de la bodega con indicador de stock bajo.
// El mínimo de la bodega tiene prioridad sobre el del producto.
func (uc *UseCase) StockList(ctx context.Context, warehouseID string) (*dto.StockReport, error) {
	wh, err := uc.warehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	rows, err := uc.stockRepo.ListByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ProductID)
	}
	products, err := uc.productsByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := &dto.StockReport{
		WarehouseID:   wh.ID,
		WarehouseName: wh.Name,
		Rows:          make([]dto.StockRowDTO, 0, len(rows)),
		TotalValue:    decimal.Zero,
		GeneratedAt:   uc.now().In(uc.loc),
	}
	for _, r := range rows {
		p := products[r.ProductID]
		if p == nil {
			continue
		}
		minStock := p.MinStock
		if r.MinStock > 0 {
			minStock = r.MinStock
		}
		value := p.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity)))
		low := minStock > 0 && r.Quantity <= minStock
		out.Rows = append(out.Rows, dto.StockRowDTO{
			ProductID: p.ID,
			Code:      p.Code,
			Name:      p.Name,
			Category:  string(p.Category),
			Quantity:  r.Quantity,
			MinStock:  minStock,
			UnitPrice: p.UnitPrice,
			Value:     value,
			LowStock:  low,
			Location:  p.Location,
		})
		out.TotalUnits += r.Quantity
		out.TotalValue = out.TotalValue.Add(value)
		if low {
			out.LowStockCount++
		}
	}
	sort.SliceStable(out.Rows, func(i, j int) bool { return out.Rows[i].Code < out.Rows[j].Code })
	return out, nil
}

// Consistency compara warehouse_stock con el libro de la bodega.
func (uc *UseCase) Consistency(ctx context.Context, warehouseID string) (*dto.ConsistencyReport, error) {
	if _, err := uc.warehouse(ctx, warehouseID); err != nil {
		return nil, err
	}
	rows, err := uc.stockRepo.ListByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	movs, err := uc.movRepo.List(ctx, repository.MovementFilter{WarehouseID: warehouseID})
	if err != nil {
		return nil, err
	}
	drift := ledger.Reconcile(rows, values(movs))

	ids := make([]string, 0, len(drift))
	for _, d := range drift {
		ids = append(ids, d.ProductID)
	}
	products, err := uc.productsByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := &dto.ConsistencyReport{
		WarehouseID: warehouseID,
		Consistent:  len(drift) == 0,
		Drift:       make([]dto.DriftDTO, 0, len(drift)),
		CheckedAt:   uc.now().In(uc.loc),
	}
	for _, d := range drift {
		item := dto.DriftDTO{
			ProductID:  d.ProductID,
			Stored:     d.Stored,
			FromLedger: d.FromLedger,
			Difference: d.Difference,
		}
		if p := products[d.ProductID]; p != nil {
			item.ProductCode = p.Code
		}
		out.Drift = append(out.Drift, item)
	}
	return out, nil
}

func (uc *UseCase) warehouse(ctx context.Context, id string) (*entity.Warehouse, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: bodega requerida", domain.ErrInvalidInput)
	}
	wh, err := uc.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, fmt.Errorf("bodega %s: %w", id, domain.ErrNotFound)
	}
	return wh, nil
}

func (uc *UseCase) productsByID(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	list, err := uc.productRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*entity.Product, len(list))
	for _, p := range list {
		out[p.ID] = p
	}
	return out, nil
}

func values(movs []*entity.StockMovement) []entity.StockMovement {
	out := make([]entity.StockMovement, 0, len(movs))
	for _, m := range movs {
		out = append(out, *m)
	}
	return out
}
