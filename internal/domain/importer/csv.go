// Package importer interpreta archivos CSV de entradas de stock.
//
// Columnas (orden fijo): code, quantity, unit_price, reference, notes, name, category, supplier.
// Separador coma o punto y coma; la primera línea no vacía es la cabecera y se descarta.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"

	"github.com/adrianbura/copie-stok/internal/domain/entity"
)

// Índices de columna.
const (
	colCode = iota
	colQuantity
	colUnitPrice
	colReference
	colNotes
	colName
	colCategory
	colSupplier
)

// Motivos de descarte de una fila.
const (
	ReasonMissingCode      = "código vacío"
	ReasonMissingQuantity  = "cantidad vacía"
	ReasonInvalidQuantity  = "cantidad no es un entero"
	ReasonNonPositive      = "cantidad no positiva"
	ReasonInvalidUnitPrice = "precio unitario inválido"
	ReasonInvalidCategory  = "categoría desconocida"
	ReasonMalformed        = "fila mal formada"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Row fila aceptada.
type Row struct {
	Line        int
	ProductCode string
	Quantity    int
	UnitPrice   decimal.Decimal
	Reference   string
	Notes       string
	Name        string
	Category    entity.Category // vacío si la columna no viene informada
	Supplier    string
}

// Skip fila descartada con su motivo.
type Skip struct {
	Line   int
	Raw    string
	Reason string
}

// Result filas aceptadas y descartadas, en orden de aparición.
type Result struct {
	Rows    []Row
	Skipped []Skip
}

// ErrEmpty el archivo no contiene ni siquiera cabecera.
var ErrEmpty = errors.New("importer: archivo vacío")

// ParseCSV lee todo r y devuelve las filas. Solo falla si no se puede leer la entrada
// o si está vacía; las filas mal formadas se descartan con su motivo.
func ParseCSV(r io.Reader) (*Result, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("importer: leer entrada: %w", err)
	}
	text, err := decodeText(raw)
	if err != nil {
		return nil, err
	}

	header, ok := firstLine(text)
	if !ok {
		return nil, ErrEmpty
	}
	sep := detectSeparator(header)

	// Un único lector para todo el texto: los campos entre comillas pueden contener saltos de línea.
	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	res := &Result{}
	headerSeen := false
	for {
		start := cr.InputOffset()
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		record := strings.TrimSpace(text[start:cr.InputOffset()])
		if err != nil {
			var pe *csv.ParseError
			if !errors.As(err, &pe) {
				return nil, fmt.Errorf("importer: leer csv: %w", err)
			}
			res.Skipped = append(res.Skipped, Skip{Line: pe.StartLine, Raw: record, Reason: ReasonMalformed})
			continue
		}
		if len(fields) == 1 && strings.TrimSpace(fields[0]) == "" {
			continue
		}
		if !headerSeen {
			headerSeen = true
			continue
		}
		lineNo, _ := cr.FieldPos(0)
		row, reason := parseRow(fields, sep)
		if reason != "" {
			res.Skipped = append(res.Skipped, Skip{Line: lineNo, Raw: record, Reason: reason})
			continue
		}
		row.Line = lineNo
		res.Rows = append(res.Rows, row)
	}
	return res, nil
}

// decodeText quita el BOM y, si los bytes no son UTF-8 válido, los interpreta como
// Windows-1252 (exportaciones de hojas de cálculo antiguas).
func decodeText(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("importer: decodificar windows-1252: %w", err)
	}
	return string(out), nil
}

func detectSeparator(header string) rune {
	if strings.Count(header, ";") > strings.Count(header, ",") {
		return ';'
	}
	return ','
}

// firstLine primera línea no vacía (la cabecera).
func firstLine(text string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			return line, true
		}
	}
	return "", false
}

func field(fields []string, i int) string {
	if i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}

func parseRow(fields []string, sep rune) (Row, string) {
	row := Row{
		ProductCode: field(fields, colCode),
		Reference:   field(fields, colReference),
		Notes:       field(fields, colNotes),
		Name:        field(fields, colName),
		Supplier:    field(fields, colSupplier),
		UnitPrice:   decimal.Zero,
	}
	if row.ProductCode == "" {
		return row, ReasonMissingCode
	}

	qtyStr := field(fields, colQuantity)
	if qtyStr == "" {
		return row, ReasonMissingQuantity
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		return row, ReasonInvalidQuantity
	}
	if qty <= 0 {
		return row, ReasonNonPositive
	}
	row.Quantity = qty

	if priceStr := field(fields, colUnitPrice); priceStr != "" {
		if sep == ';' {
			priceStr = strings.ReplaceAll(priceStr, ",", ".")
		}
		price, err := decimal.NewFromString(priceStr)
		if err != nil || price.IsNegative() {
			return row, ReasonInvalidUnitPrice
		}
		row.UnitPrice = price
	}

	if catStr := field(fields, colCategory); catStr != "" {
		cat, ok := entity.ParseCategory(catStr)
		if !ok {
			return row, ReasonInvalidCategory
		}
		row.Category = cat
	}
	return row, ""
}
