package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/adrianbura/copie-stok/internal/application/dto"
	"github.com/adrianbura/copie-stok/internal/domain"
	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/adrianbura/copie-stok/internal/domain/inventory"
	"github.com/adrianbura/copie-stok/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// RegisterTransactionUseCase registra entradas y salidas de una bodega. Cada llamada genera
// un documento (ENT-/SAL-) y un movimiento por línea, todo en una transacción con bloqueo
// de fila (SELECT FOR UPDATE) sobre warehouse_stock.
type RegisterTransactionUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	alerts        AlertEvaluator
	now           func() time.Time
	loc           *time.Location
}

// NewRegisterTransactionUseCase construye el caso de uso. alerts puede ser nil.
func NewRegisterTransactionUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	alerts AlertEvaluator,
) *RegisterTransactionUseCase {
	return &RegisterTransactionUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		alerts:        alerts,
		now:           time.Now,
		loc:           time.Local,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *RegisterTransactionUseCase) WithClock(now func() time.Time) *RegisterTransactionUseCase {
	uc.now = now
	return uc
}

// WithLocation zona en la que se interpretan las fechas "2006-01-02" de los requests.
func (uc *RegisterTransactionUseCase) WithLocation(loc *time.Location) *RegisterTransactionUseCase {
	if loc != nil {
		uc.loc = loc
	}
	return uc
}

// ItemInput línea de la transacción. UnitPrice nil usa el precio actual del producto.
// Reference y Notes vacíos heredan los del documento.
type ItemInput struct {
	ProductID string
	Quantity  int
	UnitPrice *decimal.Decimal
	Reference string
	Notes     string
}

// TransactionInput entrada para registrar una entrada o salida.
type TransactionInput struct {
	WarehouseID string
	Type        entity.MovementType
	Date        time.Time // cero = ahora
	Reference   string
	Notes       string
	Operator    string
	Items       []ItemInput
}

// Validate comprueba la entrada sin tocar repositorios.
func (in TransactionInput) Validate() error {
	if strings.TrimSpace(in.WarehouseID) == "" {
		return fmt.Errorf("%w: bodega requerida", domain.ErrInvalidInput)
	}
	if !in.Type.Valid() {
		return fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, in.Type)
	}
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: al menos una línea", domain.ErrInvalidInput)
	}
	for i, it := range in.Items {
		if strings.TrimSpace(it.ProductID) == "" {
			return fmt.Errorf("%w: línea %d sin producto", domain.ErrInvalidInput, i+1)
		}
		if it.Quantity <= 0 {
			return fmt.Errorf("%w: línea %d cantidad debe ser mayor que cero", domain.ErrInvalidInput, i+1)
		}
		if it.UnitPrice != nil && it.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: línea %d precio negativo", domain.ErrInvalidInput, i+1)
		}
	}
	return nil
}

// Register valida, verifica bodega y productos, y aplica la transacción.
// Las alertas se evalúan después del commit; sus fallos solo se registran en el log.
func (uc *RegisterTransactionUseCase) Register(ctx context.Context, in TransactionInput) (*entity.InventoryDocument, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	wh, err := uc.warehouseRepo.GetByID(ctx, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, fmt.Errorf("bodega %s: %w", in.WarehouseID, domain.ErrNotFound)
	}
	for _, it := range in.Items {
		p, err := uc.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("producto %s: %w", it.ProductID, domain.ErrNotFound)
		}
	}

	var doc *entity.InventoryDocument
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.WarehouseStockRepository,
		productRepo repository.ProductRepository,
		docRepo repository.InventoryDocumentRepository,
	) error {
		var err error
		doc, err = uc.apply(ctx, movRepo, stockRepo, productRepo, docRepo, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.evaluateAlerts(ctx, doc)
	return doc, nil
}

// RegisterFromRequest adapta el request HTTP al caso de uso.
func (uc *RegisterTransactionUseCase) RegisterFromRequest(
	ctx context.Context,
	warehouseID, operator string,
	movType entity.MovementType,
	req dto.RegisterTransactionRequest,
) (*dto.DocumentResponse, error) {
	in := TransactionInput{
		WarehouseID: warehouseID,
		Type:        movType,
		Reference:   req.Reference,
		Notes:       req.Notes,
		Operator:    operator,
	}
	if req.Date != "" {
		d, err := time.ParseInLocation("2006-01-02", req.Date, uc.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, req.Date)
		}
		in.Date = d
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, ItemInput{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	doc, err := uc.Register(ctx, in)
	if err != nil {
		return nil, err
	}
	return ToDocumentResponse(doc), nil
}

// apply escribe stock, producto, documento y movimientos con los repositorios de la tx.
func (uc *RegisterTransactionUseCase) apply(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	stockRepo repository.WarehouseStockRepository,
	productRepo repository.ProductRepository,
	docRepo repository.InventoryDocumentRepository,
	in TransactionInput,
) (*entity.InventoryDocument, error) {
	now := uc.now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	doc := &entity.InventoryDocument{
		ID:          uuid.New().String(),
		Number:      DocumentNumber(in.Type, date),
		Type:        in.Type,
		WarehouseID: in.WarehouseID,
		Date:        date,
		Reference:   in.Reference,
		Notes:       in.Notes,
		Operator:    in.Operator,
		CreatedAt:   now,
	}
	movs := make([]*entity.StockMovement, 0, len(in.Items))

	for _, it := range in.Items {
		// Releer dentro de la tx: cantidad y precio pueden haber cambiado por una línea anterior.
		product, err := productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("producto %s: %w", it.ProductID, domain.ErrNotFound)
		}
		stock, err := stockRepo.GetForUpdate(ctx, in.WarehouseID, it.ProductID)
		if err != nil {
			return nil, err
		}

		price := product.UnitPrice
		delta := it.Quantity
		switch in.Type {
		case entity.MovementEntry:
			if it.UnitPrice != nil {
				price = *it.UnitPrice
				avg := inventory.WeightedAveragePrice(product.Quantity, product.UnitPrice, it.Quantity, price)
				if !avg.Equal(product.UnitPrice) {
					if err := productRepo.UpdatePrice(ctx, product.ID, avg); err != nil {
						return nil, err
					}
				}
			}
		case entity.MovementExit:
			if stock.Quantity < it.Quantity {
				return nil, fmt.Errorf("%w: %s disponible %d, solicitado %d",
					domain.ErrInsufficientStock, product.Code, stock.Quantity, it.Quantity)
			}
			delta = -it.Quantity
		}

		stock.Quantity += delta
		stock.UpdatedAt = now
		if err := stockRepo.Upsert(ctx, stock); err != nil {
			return nil, err
		}
		if err := productRepo.AdjustQuantity(ctx, product.ID, delta); err != nil {
			return nil, err
		}

		ref, notes := it.Reference, it.Notes
		if ref == "" {
			ref = in.Reference
		}
		if notes == "" {
			notes = in.Notes
		}
		movs = append(movs, &entity.StockMovement{
			ID:          uuid.New().String(),
			ProductID:   product.ID,
			WarehouseID: in.WarehouseID,
			DocumentID:  doc.ID,
			Type:        in.Type,
			Quantity:    it.Quantity,
			UnitPrice:   price,
			Date:        date,
			Reference:   ref,
			Notes:       notes,
			Operator:    in.Operator,
			CreatedAt:   now,
		})
		doc.Items = append(doc.Items, entity.DocumentItem{
			ProductID:   product.ID,
			ProductCode: product.Code,
			ProductName: product.Name,
			Quantity:    it.Quantity,
			UnitPrice:   price,
			LineTotal:   inventory.LineTotal(it.Quantity, price),
		})
	}
	doc.TotalValue = inventory.DocumentTotal(doc.Items)

	// El documento va primero: los movimientos lo referencian.
	if err := docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}
	for _, m := range movs {
		if err := movRepo.Create(ctx, m); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func (uc *RegisterTransactionUseCase) evaluateAlerts(ctx context.Context, doc *entity.InventoryDocument) {
	if uc.alerts == nil || doc == nil {
		return
	}
	ids := make([]string, 0, len(doc.Items))
	seen := make(map[string]bool, len(doc.Items))
	for _, it := range doc.Items {
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			ids = append(ids, it.ProductID)
		}
	}
	if _, err := uc.alerts.Evaluate(ctx, doc.WarehouseID, ids); err != nil {
		log.Warn().Err(err).
			Str("warehouse_id", doc.WarehouseID).
			Str("document", doc.Number).
			Msg("evaluación de alertas fallida")
	}
}

// DocumentNumber genera ENT-YYYYMMDD-XXXXXX o SAL-YYYYMMDD-XXXXXX.
func DocumentNumber(t entity.MovementType, date time.Time) string {
	prefix := "ENT"
	if t == entity.MovementExit {
		prefix = "SAL"
	}
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return fmt.Sprintf("%s-%s-%s", prefix, date.Format("20060102"), suffix)
}

// ToDocumentResponse convierte el documento al DTO de salida.
func ToDocumentResponse(d *entity.InventoryDocument) *dto.DocumentResponse {
	if d == nil {
		return nil
	}
	items := make([]dto.DocumentItemResponse, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, dto.DocumentItemResponse{
			ProductID:   it.ProductID,
			ProductCode: it.ProductCode,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		})
	}
	return &dto.DocumentResponse{
		ID:          d.ID,
		Number:      d.Number,
		Type:        string(d.Type),
		WarehouseID: d.WarehouseID,
		Date:        d.Date,
		Items:       items,
		TotalValue:  d.TotalValue,
		Reference:   d.Reference,
		Notes:       d.Notes,
		Operator:    d.Operator,
		CreatedAt:   d.CreatedAt,
	}
}
