// Package printhtml compone los reportes como HTML listo para imprimir desde el navegador.
package printhtml

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/shopspring/decimal"

	"github.com/adrianbura/copie-stok/internal/application/dto"
	"github.com/adrianbura/copie-stok/internal/application/reports"
)

//go:embed templates/*.html
var templateFS embed.FS

// Composer implementa reports.Renderer en HTML imprimible.
type Composer struct {
	tpl   *template.Template
	title string
}

var _ reports.Renderer = (*Composer)(nil)

// NewComposer parsea las plantillas embebidas. title aparece en la cabecera de cada página.
func NewComposer(title string) (*Composer, error) {
	tpl, err := template.New("print").Funcs(template.FuncMap{
		"money":    formatMoney,
		"date":     func(t time.Time) string { return t.Format("02/01/2006") },
		"datetime": func(t time.Time) string { return t.Format("02/01/2006 15:04") },
		"dateptr": func(t *time.Time, fallback string) string {
			if t == nil {
				return fallback
			}
			return t.Format("02/01/2006")
		},
		"movement": func(t string) string {
			if t == "exit" {
				return "Salida"
			}
			return "Entrada"
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("printhtml: plantillas: %w", err)
	}
	return &Composer{tpl: tpl, title: title}, nil
}

func (c *Composer) ContentType() string { return "text/html; charset=utf-8" }

func (c *Composer) Extension() string { return "html" }

func (c *Composer) RenderLedger(r *dto.LedgerReport) ([]byte, error) {
	return c.render("ledger", r)
}

func (c *Composer) RenderSnapshot(r *dto.SnapshotReport) ([]byte, error) {
	return c.render("snapshot", r)
}

func (c *Composer) RenderStock(r *dto.StockReport) ([]byte, error) {
	return c.render("stock", r)
}

func (c *Composer) RenderDocument(d *dto.DocumentResponse) ([]byte, error) {
	return c.render("document", d)
}

type page struct {
	Title string
	Data  interface{}
}

func (c *Composer) render(name string, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.tpl.ExecuteTemplate(&buf, name, page{Title: c.title, Data: data}); err != nil {
		return nil, fmt.Errorf("printhtml: %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// formatMoney dos decimales con coma decimal.
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	out := []byte(s)
	for i := range out {
		if out[i] == '.' {
			out[i] = ','
		}
	}
	return string(out)
}
