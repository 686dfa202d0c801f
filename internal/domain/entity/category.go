package entity

import "strings"

// Category clase de artículo pirotécnico (EN 15947 / EN 16263).
type Category string

// Categorías admitidas. F = artificios de entretenimiento, T = pirotecnia teatral.
const (
	CategoryF1 Category = "F1" // riesgo muy bajo, uso en interiores
	CategoryF2 Category = "F2" // riesgo bajo, uso al aire libre
	CategoryF3 Category = "F3" // riesgo medio, grandes espacios abiertos
	CategoryF4 Category = "F4" // riesgo alto, solo profesionales
	CategoryT1 Category = "T1" // teatral de riesgo bajo
	CategoryT2 Category = "T2" // teatral, solo profesionales
)

// Categories devuelve todas las categorías en orden de presentación.
func Categories() []Category {
	return []Category{CategoryF1, CategoryF2, CategoryF3, CategoryF4, CategoryT1, CategoryT2}
}

// Valid indica si la categoría es una de las seis admitidas.
func (c Category) Valid() bool {
	switch c {
	case CategoryF1, CategoryF2, CategoryF3, CategoryF4, CategoryT1, CategoryT2:
		return true
	}
	return false
}

// Professional indica si la categoría solo puede manipularla personal con formación.
func (c Category) Professional() bool {
	return c == CategoryF4 || c == CategoryT2
}

// ParseCategory normaliza la entrada (mayúsculas, sin espacios) y valida.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	return c, c.Valid()
}
