// Package excel exporta los reportes de inventario a XLSX con excelize.
// Cada reporte es una hoja con una fila de cabecera y filas planas.
package excel

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/adrianbura/copie-stok/internal/application/dto"
	"github.com/adrianbura/copie-stok/internal/application/reports"
)

const (
	dateFmt     = "2006-01-02"
	dateTimeFmt = "2006-01-02 15:04"
)

// Exporter implementa reports.Renderer en XLSX.
type Exporter struct{}

var _ reports.Renderer = (*Exporter)(nil)

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

func (e *Exporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *Exporter) Extension() string { return "xlsx" }

// RenderLedger una fila por movimiento, con el producto repetido en cada fila.
func (e *Exporter) RenderLedger(r *dto.LedgerReport) ([]byte, error) {
	rows := make([][]interface{}, 0)
	for _, p := range r.Products {
		for _, en := range p.Entries {
			rows = append(rows, []interface{}{
				p.ProductCode, p.ProductName, en.Date.Format(dateTimeFmt), en.Type,
				en.Quantity, en.StockBefore, en.StockAfter, en.Reference, en.Notes, en.Operator,
			})
		}
	}
	return write("Ficha", []string{
		"Código", "Producto", "Fecha", "Tipo", "Cantidad", "Stock antes", "Stock después",
		"Referencia", "Observaciones", "Operador",
	}, rows)
}

// RenderSnapshot una fila por producto con stock a la fecha.
func (e *Exporter) RenderSnapshot(r *dto.SnapshotReport) ([]byte, error) {
	rows := make([][]interface{}, 0, len(r.Rows)+1)
	for _, s := range r.Rows {
		rows = append(rows, []interface{}{
			s.Code, s.Name, s.Category, s.Quantity, money(s.UnitPrice), money(s.Value),
		})
	}
	rows = append(rows, []interface{}{"TOTAL " + r.Date.Format(dateFmt), "", "", r.TotalUnits, "", money(r.TotalValue)})
	return write("Stock a fecha", []string{"Código", "Producto", "Categoría", "Cantidad", "Precio unitario", "Valor"}, rows)
}

// RenderStock stock actual de la bodega.
func (e *Exporter) RenderStock(r *dto.StockReport) ([]byte, error) {
	rows := make([][]interface{}, 0, len(r.Rows)+1)
	for _, s := range r.Rows {
		low := ""
		if s.LowStock {
			low = "SÍ"
		}
		rows = append(rows, []interface{}{
			s.Code, s.Name, s.Category, s.Quantity, s.MinStock, low, s.Location, money(s.UnitPrice), money(s.Value),
		})
	}
	rows = append(rows, []interface{}{"TOTAL", "", "", r.TotalUnits, "", r.LowStockCount, "", "", money(r.TotalValue)})
	return write("Stock", []string{
		"Código", "Producto", "Categoría", "Cantidad", "Mínimo", "Bajo mínimo", "Ubicación", "Precio unitario", "Valor",
	}, rows)
}

// RenderDocument líneas del documento.
func (e *Exporter) RenderDocument(d *dto.DocumentResponse) ([]byte, error) {
	rows := make([][]interface{}, 0, len(d.Items)+1)
	for _, it := range d.Items {
		rows = append(rows, []interface{}{
			d.Number, d.Date.Format(dateFmt), it.ProductCode, it.ProductName, it.Quantity, money(it.UnitPrice), money(it.LineTotal),
		})
	}
	rows = append(rows, []interface{}{d.Number, "", "", "TOTAL", "", "", money(d.TotalValue)})
	return write(d.Number, []string{"Documento", "Fecha", "Código", "Producto", "Cantidad", "Precio unitario", "Total"}, rows)
}

// write crea un libro con una sola hoja: cabecera en negrita y filas a partir de A2.
func write(sheet string, headers []string, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("excel: hoja: %w", err)
	}
	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("excel: cabecera: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := r
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

// money valor numérico para la celda (dos decimales).
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
