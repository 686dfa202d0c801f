package reports

import "github.com/adrianbura/copie-stok/internal/application/dto"

// Renderer convierte los reportes ya calculados a un formato descargable (PDF, XLSX, HTML).
// No contiene lógica de negocio: recibe los DTOs tal como los devuelve el caso de uso.
type Renderer interface {
	ContentType() string
	Extension() string
	RenderLedger(r *dto.LedgerReport) ([]byte, error)
	RenderSnapshot(r *dto.SnapshotReport) ([]byte, error)
	RenderStock(r *dto.StockReport) ([]byte, error)
	RenderDocument(d *dto.DocumentResponse) ([]byte, error)
}
