// Package alerts contiene las reglas que derivan alertas del stock de una bodega.
package alerts

import (
	"fmt"
	"time"

	"github.com/adrianbura/copie-stok/internal/domain/entity"
)

// Finding resultado de una regla para un producto.
type Finding struct {
	ProductID string
	Type      entity.AlertType
	Severity  entity.AlertSeverity
	Message   string
}

// Evaluate aplica las reglas de stock bajo, caducidad y cumplimiento a un producto en una bodega.
// stock puede ser nil (producto sin fila en la bodega). expiryWindow es la antelación del aviso de caducidad.
func Evaluate(p *entity.Product, stock *entity.WarehouseStock, now time.Time, expiryWindow time.Duration) []Finding {
	qty := 0
	minStock := p.MinStock
	if stock != nil {
		qty = stock.Quantity
		if stock.MinStock > 0 {
			minStock = stock.MinStock
		}
	}

	var out []Finding
	if minStock > 0 && qty <= minStock {
		sev := entity.SeverityWarning
		if qty <= 0 {
			sev = entity.SeverityCritical
		}
		out = append(out, Finding{
			ProductID: p.ID,
			Type:      entity.AlertLowStock,
			Severity:  sev,
			Message:   fmt.Sprintf("%s (%s): stock %d por debajo del mínimo %d", p.Name, p.Code, qty, minStock),
		})
	}

	if qty > 0 && p.ExpiryDate != nil {
		switch {
		case !p.ExpiryDate.After(now):
			out = append(out, Finding{
				ProductID: p.ID,
				Type:      entity.AlertExpiry,
				Severity:  entity.SeverityCritical,
				Message:   fmt.Sprintf("%s (%s): caducado el %s", p.Name, p.Code, p.ExpiryDate.Format("2006-01-02")),
			})
		case p.ExpiryDate.Sub(now) <= expiryWindow:
			out = append(out, Finding{
				ProductID: p.ID,
				Type:      entity.AlertExpiry,
				Severity:  entity.SeverityWarning,
				Message:   fmt.Sprintf("%s (%s): caduca el %s", p.Name, p.Code, p.ExpiryDate.Format("2006-01-02")),
			})
		}
	}

	if qty > 0 && p.Category.Professional() && p.BatchNumber == "" {
		out = append(out, Finding{
			ProductID: p.ID,
			Type:      entity.AlertCompliance,
			Severity:  entity.SeverityWarning,
			Message:   fmt.Sprintf("%s (%s): categoría %s sin número de lote", p.Name, p.Code, p.Category),
		})
	}
	return out
}
