package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/adrianbura/copie-stok/internal/domain/entity"
)

// WeightedAveragePrice implementa el precio promedio ponderado tras una entrada (servicio de dominio).
// NuevoPrecio = ((StockActual * PrecioActual) + (CantEntrada * PrecioEntrada)) / (StockActual + CantEntrada)
// Un stock actual negativo o nulo deja el precio de la entrada.
func WeightedAveragePrice(stock int, price decimal.Decimal, inQty int, inPrice decimal.Decimal) decimal.Decimal {
	if stock <= 0 {
		return inPrice
	}
	sum := decimal.NewFromInt(int64(stock + inQty))
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := decimal.NewFromInt(int64(stock)).Mul(price).Add(decimal.NewFromInt(int64(inQty)).Mul(inPrice))
	return num.Div(sum).Round(4)
}

// LineTotal cantidad × precio unitario.
func LineTotal(qty int, price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(qty)))
}

// DocumentTotal suma de los totales de línea.
func DocumentTotal(items []entity.DocumentItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal)
	}
	return total
}
