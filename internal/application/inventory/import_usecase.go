package inventory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/adrianbura/copie-stok/internal/application/dto"
	"github.com/adrianbura/copie-stok/internal/domain"
	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/adrianbura/copie-stok/internal/domain/importer"
	"github.com/adrianbura/copie-stok/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ReasonUnknownProduct código sin producto y sin nombre + categoría para crearlo.
const ReasonUnknownProduct = "producto desconocido"

// ImportResult resultado de una importación CSV.
type ImportResult struct {
	Imported        int
	CreatedProducts []string // códigos creados
	Skipped         []importer.Skip
	Document        *entity.InventoryDocument // nil si no se aceptó ninguna fila
}

// ImportUseCase importa una entrada desde CSV: resuelve productos por código, crea los
// desconocidos cuando la fila trae nombre y categoría, y registra todas las filas aceptadas
// como un único documento de entrada.
type ImportUseCase struct {
	register      *RegisterTransactionUseCase
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(
	register *RegisterTransactionUseCase,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *ImportUseCase {
	return &ImportUseCase{register: register, productRepo: productRepo, warehouseRepo: warehouseRepo}
}

// Import lee r y registra la entrada en warehouseID.
func (uc *ImportUseCase) Import(ctx context.Context, warehouseID, operator string, r io.Reader) (*ImportResult, error) {
	if strings.TrimSpace(warehouseID) == "" {
		return nil, fmt.Errorf("%w: bodega requerida", domain.ErrInvalidInput)
	}
	wh, err := uc.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, fmt.Errorf("bodega %s: %w", warehouseID, domain.ErrNotFound)
	}
	parsed, err := importer.ParseCSV(r)
	if err != nil {
		if errors.Is(err, importer.ErrEmpty) {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return nil, err
	}

	res := &ImportResult{Skipped: append([]importer.Skip(nil), parsed.Skipped...)}
	now := uc.register.now()
	known := make(map[string]*entity.Product)
	var toCreate []*entity.Product
	var items []ItemInput

	for _, row := range parsed.Rows {
		// Los códigos se comparan sin distinguir mayúsculas, como en los repositorios.
		key := strings.ToLower(row.ProductCode)
		p, ok := known[key]
		if !ok {
			p, err = uc.productRepo.GetByCode(ctx, row.ProductCode)
			if err != nil {
				return nil, err
			}
			if p == nil && row.Name != "" && row.Category.Valid() {
				p = &entity.Product{
					ID:        uuid.New().String(),
					Code:      row.ProductCode,
					Name:      row.Name,
					Category:  row.Category,
					UnitPrice: decimal.Zero,
					Supplier:  row.Supplier,
					CreatedAt: now,
					UpdatedAt: now,
				}
				toCreate = append(toCreate, p)
			}
			if p != nil {
				known[key] = p
			}
		}
		if p == nil {
			res.Skipped = append(res.Skipped, importer.Skip{
				Line:   row.Line,
				Raw:    row.ProductCode,
				Reason: ReasonUnknownProduct,
			})
			continue
		}
		item := ItemInput{
			ProductID: p.ID,
			Quantity:  row.Quantity,
			Reference: row.Reference,
			Notes:     row.Notes,
		}
		// Precio vacío o cero: se valora al precio actual del producto.
		if row.UnitPrice.IsPositive() {
			price := row.UnitPrice
			item.UnitPrice = &price
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return res, nil
	}

	in := TransactionInput{
		WarehouseID: warehouseID,
		Type:        entity.MovementEntry,
		Reference:   "import " + now.Format(time.DateOnly),
		Operator:    operator,
		Items:       items,
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	err = uc.register.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.WarehouseStockRepository,
		productRepo repository.ProductRepository,
		docRepo repository.InventoryDocumentRepository,
	) error {
		for _, p := range toCreate {
			if err := productRepo.Create(ctx, p); err != nil {
				return fmt.Errorf("crear producto %s: %w", p.Code, err)
			}
		}
		doc, err := uc.register.apply(ctx, movRepo, stockRepo, productRepo, docRepo, in)
		if err != nil {
			return err
		}
		res.Document = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	res.Imported = len(items)
	for _, p := range toCreate {
		res.CreatedProducts = append(res.CreatedProducts, p.Code)
	}
	log.Info().
		Str("warehouse_id", warehouseID).
		Int("imported", res.Imported).
		Int("created", len(res.CreatedProducts)).
		Int("skipped", len(res.Skipped)).
		Msg("importación CSV")
	uc.register.evaluateAlerts(ctx, res.Document)
	return res, nil
}

// ToImportResultResponse convierte el resultado al DTO de salida.
func ToImportResultResponse(r *ImportResult) *dto.ImportResultResponse {
	out := &dto.ImportResultResponse{
		Imported:        r.Imported,
		CreatedProducts: append([]string{}, r.CreatedProducts...),
		Skipped:         make([]dto.ImportSkipDTO, 0, len(r.Skipped)),
		Document:        ToDocumentResponse(r.Document),
	}
	for _, s := range r.Skipped {
		out.Skipped = append(out.Skipped, dto.ImportSkipDTO{Line: s.Line, Raw: s.Raw, Reason: s.Reason})
	}
	return out
}
