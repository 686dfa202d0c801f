// Package pdf genera los reportes de inventario en PDF con Maroto v2.
//
// Layout común de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + Bodega       │  Período / Fecha de corte   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: columnas del reporte (cabecera con fondo)            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES                                                     │
//	│  FOOTER: fecha de generación                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/adrianbura/copie-stok/internal/application/dto"
	"github.com/adrianbura/copie-stok/internal/application/reports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 120, Green: 20, Blue: 20}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorAlert   = &props.Color{Red: 200, Green: 40, Blue: 40}
)

const dateFmt = "02/01/2006"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa reports.Renderer en PDF.
type MarotoReportGenerator struct {
	author string
}

var _ reports.Renderer = (*MarotoReportGenerator)(nil)

// NewMarotoReportGenerator construye el generador; author aparece en los metadatos del PDF.
func NewMarotoReportGenerator(author string) *MarotoReportGenerator {
	return &MarotoReportGenerator{author: author}
}

func (g *MarotoReportGenerator) ContentType() string { return "application/pdf" }

func (g *MarotoReportGenerator) Extension() string { return "pdf" }

func (g *MarotoReportGenerator) newDoc(title string, landscape bool) core.Maroto {
	b := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(title, true).
		WithAuthor(g.author, true)
	if landscape {
		b = b.WithOrientation(orientation.Horizontal)
	}
	return maroto.New(b.Build())
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// RenderLedger ficha de movimientos: un bloque por producto con saldo corriente.
func (g *MarotoReportGenerator) RenderLedger(r *dto.LedgerReport) ([]byte, error) {
	m := g.newDoc("Ficha de movimientos", true)
	m.AddRows(headerRow("FICHA DE MOVIMIENTOS", r.WarehouseName, "Período: "+period(r.From, r.To)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if len(r.Products) == 0 {
		m.AddRows(emptyRow("Sin movimientos en el período."))
	}
	for _, p := range r.Products {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%s  %s", p.ProductCode, p.ProductName), props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
			}),
		)))
		m.AddRows(row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Saldo inicial: %d", p.OpeningBalance), props.Text{Size: 8, Color: colorGray}),
		)))
		m.AddRows(tableHeaderRow([]column{
			{"Fecha", 2, align.Left}, {"Tipo", 1, align.Center}, {"Cant.", 1, align.Right},
			{"Antes", 1, align.Right}, {"Después", 1, align.Right}, {"Referencia", 2, align.Left},
			{"Observaciones", 2, align.Left}, {"Operador", 2, align.Left},
		}))
		for _, e := range p.Entries {
			m.AddRows(tableRow([]cell{
				{e.Date.Format("02/01/2006 15:04"), 2, align.Left},
				{movementLabel(e.Type), 1, align.Center},
				{strconv.Itoa(e.Quantity), 1, align.Right},
				{strconv.Itoa(e.StockBefore), 1, align.Right},
				{strconv.Itoa(e.StockAfter), 1, align.Right},
				{e.Reference, 2, align.Left},
				{e.Notes, 2, align.Left},
				{e.Operator, 2, align.Left},
			}))
		}
		m.AddRows(totalsRow(
			[2]string{"Entradas:", strconv.Itoa(p.TotalEntries)},
			[2]string{"Salidas:", strconv.Itoa(p.TotalExits)},
			[2]string{"Stock final:", strconv.Itoa(p.FinalStock)},
		))
	}
	m.AddRows(footerRow(r.GeneratedAt))
	return generate(m)
}

// RenderSnapshot stock a una fecha con valor.
func (g *MarotoReportGenerator) RenderSnapshot(r *dto.SnapshotReport) ([]byte, error) {
	m := g.newDoc("Stock a fecha", false)
	m.AddRows(headerRow("STOCK A FECHA", nonEmpty(r.WarehouseName, "Todas las bodegas"), "Corte: "+r.Date.Format(dateFmt)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow([]column{
		{"Código", 2, align.Left}, {"Producto", 4, align.Left}, {"Cat.", 1, align.Center},
		{"Cant.", 1, align.Right}, {"P. Unit.", 2, align.Right}, {"Valor", 2, align.Right},
	}))
	if len(r.Rows) == 0 {
		m.AddRows(emptyRow("Sin stock a la fecha indicada."))
	}
	for _, s := range r.Rows {
		m.AddRows(tableRow([]cell{
			{s.Code, 2, align.Left},
			{s.Name, 4, align.Left},
			{s.Category, 1, align.Center},
			{strconv.Itoa(s.Quantity), 1, align.Right},
			{formatMoney(s.UnitPrice), 2, align.Right},
			{formatMoney(s.Value), 2, align.Right},
		}))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(
		[2]string{"Productos:", strconv.Itoa(r.TotalProducts)},
		[2]string{"Unidades:", strconv.Itoa(r.TotalUnits)},
		[2]string{"VALOR TOTAL:", formatMoney(r.TotalValue)},
	))
	m.AddRows(footerRow(r.GeneratedAt))
	return generate(m)
}

// RenderStock stock actual de una bodega; las filas bajo mínimo se resaltan.
func (g *MarotoReportGenerator) RenderStock(r *dto.StockReport) ([]byte, error) {
	m := g.newDoc("Stock actual", false)
	m.AddRows(headerRow("STOCK ACTUAL", r.WarehouseName, "Fecha: "+r.GeneratedAt.Format(dateFmt)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow([]column{
		{"Código", 2, align.Left}, {"Producto", 3, align.Left}, {"Cat.", 1, align.Center},
		{"Cant.", 1, align.Right}, {"Mín.", 1, align.Right}, {"Ubicación", 2, align.Left},
		{"Valor", 2, align.Right},
	}))
	for _, s := range r.Rows {
		cells := []cell{
			{s.Code, 2, align.Left},
			{s.Name, 3, align.Left},
			{s.Category, 1, align.Center},
			{strconv.Itoa(s.Quantity), 1, align.Right},
			{strconv.Itoa(s.MinStock), 1, align.Right},
			{s.Location, 2, align.Left},
			{formatMoney(s.Value), 2, align.Right},
		}
		if s.LowStock {
			m.AddRows(tableRowColor(cells, colorAlert))
			continue
		}
		m.AddRows(tableRow(cells))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(
		[2]string{"Unidades:", strconv.Itoa(r.TotalUnits)},
		[2]string{"Bajo mínimo:", strconv.Itoa(r.LowStockCount)},
		[2]string{"VALOR TOTAL:", formatMoney(r.TotalValue)},
	))
	m.AddRows(footerRow(r.GeneratedAt))
	return generate(m)
}

// RenderDocument documento de entrada o salida con firmas.
func (g *MarotoReportGenerator) RenderDocument(d *dto.DocumentResponse) ([]byte, error) {
	title := "NOTA DE ENTRADA"
	if d.Type == "exit" {
		title = "NOTA DE SALIDA"
	}
	m := g.newDoc(title, false)
	m.AddRows(headerRow(title, "N° "+d.Number, "Fecha: "+d.Date.Format(dateFmt)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Referencia: %s   |   Operador: %s", nonEmpty(d.Reference, "—"), nonEmpty(d.Operator, "—")),
			props.Text{Size: 8, Top: 2, Color: colorGray}),
		text.New("Observaciones: "+nonEmpty(d.Notes, "—"), props.Text{Size: 8, Top: 6, Color: colorGray}),
	)))
	m.AddRows(tableHeaderRow([]column{
		{"Código", 2, align.Left}, {"Producto", 5, align.Left}, {"Cant.", 1, align.Right},
		{"P. Unit.", 2, align.Right}, {"Total", 2, align.Right},
	}))
	for _, it := range d.Items {
		m.AddRows(tableRow([]cell{
			{it.ProductCode, 2, align.Left},
			{it.ProductName, 5, align.Left},
			{strconv.Itoa(it.Quantity), 1, align.Right},
			{formatMoney(it.UnitPrice), 2, align.Right},
			{formatMoney(it.LineTotal), 2, align.Right},
		}))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow([2]string{"TOTAL:", formatMoney(d.TotalValue)}))
	m.AddRows(row.New(20))
	m.AddRows(row.New(10).Add(
		col.New(6).Add(text.New("Entregó: ____________________", props.Text{Size: 9, Align: align.Center})),
		col.New(6).Add(text.New("Recibió: ____________________", props.Text{Size: 9, Align: align.Center})),
	))
	m.AddRows(footerRow(d.CreatedAt))
	return generate(m)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

type column struct {
	label string
	size  int
	align align.Type
}

type cell = column

// headerRow: título y subtítulo (izq), dato de período o fecha (der).
func headerRow(title, subtitle, right string) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(subtitle, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New(right, props.Text{Size: 9, Align: align.Right, Top: 9, Color: colorGray}),
		),
	)
}

func tableHeaderRow(cols []column) core.Row {
	r := row.New(7)
	for _, c := range cols {
		r.Add(col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorWhite, Top: 1.5, Left: 1, Right: 1,
		})))
	}
	return r.WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableRow(cells []cell) core.Row {
	return tableRowColor(cells, nil)
}

func tableRowColor(cells []cell, color *props.Color) core.Row {
	r := row.New(6)
	for _, c := range cells {
		r.Add(col.New(c.size).Add(text.New(c.label, props.Text{
			Size: 8, Align: c.align, Top: 1, Left: 1, Right: 1, Color: color,
		})))
	}
	return r
}

// totalsRow: pares etiqueta/valor alineados a la derecha.
func totalsRow(pairs ...[2]string) core.Row {
	labels := col.New(3)
	values := col.New(3)
	for i, p := range pairs {
		top := float64(i) * 5
		labels.Add(text.New(p[0], props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top}))
		values.Add(text.New(p[1], props.Text{Size: 9, Align: align.Right, Right: 1, Top: top}))
	}
	return row.New(float64(len(pairs))*5+3).Add(col.New(6), labels, values)
}

func emptyRow(msg string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 9, Align: align.Center, Top: 3, Color: colorGray}),
	))
}

func footerRow(at time.Time) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Generado el "+at.Format("02/01/2006 15:04"), props.Text{
			Size: 7, Align: align.Right, Top: 4, Color: colorGray,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func movementLabel(t string) string {
	if t == "exit" {
		return "Salida"
	}
	return "Entrada"
}

func period(from, to *time.Time) string {
	f, t := "inicio", "hoy"
	if from != nil {
		f = from.Format(dateFmt)
	}
	if to != nil {
		t = to.Format(dateFmt)
	}
	return f + " – " + t
}

// formatMoney dos decimales con puntos de miles y coma decimal.
// Ej: 1234567.5 → "1.234.567,50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3+4)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	buf = append(buf, ',')
	buf = append(buf, frac...)
	return string(buf)
}
