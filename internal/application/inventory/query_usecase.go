package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/adrianbura/copie-stok/internal/application/dto"
	"github.com/adrianbura/copie-stok/internal/domain"
	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/adrianbura/copie-stok/internal/domain/repository"
)

// QueryUseCase consultas de solo lectura sobre documentos y movimientos de una bodega.
type QueryUseCase struct {
	docRepo repository.InventoryDocumentRepository
	movRepo repository.StockMovementRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(docRepo repository.InventoryDocumentRepository, movRepo repository.StockMovementRepository) *QueryUseCase {
	return &QueryUseCase{docRepo: docRepo, movRepo: movRepo}
}

// ListDocuments documentos de la bodega, opcionalmente por tipo y rango de fechas.
func (uc *QueryUseCase) ListDocuments(
	ctx context.Context,
	warehouseID string,
	movType entity.MovementType,
	from, to *time.Time,
	limit, offset int,
) (*dto.DocumentListResponse, error) {
	list, err := uc.docRepo.List(ctx, repository.DocumentFilter{
		WarehouseID: warehouseID,
		Type:        movType,
		From:        from,
		To:          to,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.DocumentResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *ToDocumentResponse(d))
	}
	return &dto.DocumentListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// GetDocument devuelve un documento de la bodega; ErrNotFound si pertenece a otra.
func (uc *QueryUseCase) GetDocument(ctx context.Context, warehouseID, id string) (*dto.DocumentResponse, error) {
	d, err := uc.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil || d.WarehouseID != warehouseID {
		return nil, fmt.Errorf("documento %s: %w", id, domain.ErrNotFound)
	}
	return ToDocumentResponse(d), nil
}

// ListMovements movimientos de la bodega en orden cronológico.
func (uc *QueryUseCase) ListMovements(
	ctx context.Context,
	warehouseID, productID string,
	from, to *time.Time,
	limit, offset int,
) (*dto.MovementListResponse, error) {
	list, err := uc.movRepo.List(ctx, repository.MovementFilter{
		WarehouseID: warehouseID,
		ProductID:   productID,
		From:        from,
		To:          to,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.MovementResponse{
			ID:          m.ID,
			ProductID:   m.ProductID,
			WarehouseID: m.WarehouseID,
			DocumentID:  m.DocumentID,
			Type:        string(m.Type),
			Quantity:    m.Quantity,
			UnitPrice:   m.UnitPrice,
			Date:        m.Date,
			Reference:   m.Reference,
			Notes:       m.Notes,
			Operator:    m.Operator,
		})
	}
	return &dto.MovementListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}
