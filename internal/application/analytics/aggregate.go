// Package analytics deriva los agregados del dashboard a partir de la lista
// de productos en memoria. Todas las funciones son puras y recalculan desde
// cero en cada llamada: no hay estado incremental que invalidar.
package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/inventory-panel/internal/domain/entity"
)

// DashboardTopProducts número de productos en el widget de más valiosos.
const DashboardTopProducts = 5

// Nombres de los buckets del histograma de estado de stock.
const (
	StatusInStock    = "In Stock"
	StatusLowStock   = "Low Stock"
	StatusOutOfStock = "Out of Stock"
)

// Summary totales del dashboard.
type Summary struct {
	TotalProducts  int
	ActiveProducts int
	LowStockCount  int             // in_stock <= reorder_level
	TotalValue     decimal.Decimal // Σ price × in_stock
}

// Summarize calcula los totales. El resultado es independiente del orden de
// la lista.
func Summarize(products []entity.Product) Summary {
	s := Summary{
		TotalProducts: len(products),
		TotalValue:    decimal.Zero,
	}
	for _, p := range products {
		if p.IsActive {
			s.ActiveProducts++
		}
		if p.LowStock() {
			s.LowStockCount++
		}
		s.TotalValue = s.TotalValue.Add(p.Value())
	}
	return s
}

// CategoryRollup stock y valor acumulados de una categoría.
type CategoryRollup struct {
	Category string
	Stock    int
	Value    decimal.Decimal
}

// RollupByCategory agrupa por igualdad exacta del string category (sin
// normalizar mayúsculas ni espacios) y conserva el orden de primera
// aparición.
func RollupByCategory(products []entity.Product) []CategoryRollup {
	index := make(map[string]int)
	rollups := make([]CategoryRollup, 0)
	for _, p := range products {
		i, ok := index[p.Category]
		if !ok {
			i = len(rollups)
			index[p.Category] = i
			rollups = append(rollups, CategoryRollup{Category: p.Category, Value: decimal.Zero})
		}
		rollups[i].Stock += p.InStock
		rollups[i].Value = rollups[i].Value.Add(p.Value())
	}
	return rollups
}

// StatusBucket un bucket del histograma de estado de stock.
type StatusBucket struct {
	Name  string
	Count int
}

// StockStatusBuckets histograma de tres buckets. Los filtros son los del
// dashboard: un producto agotado cuenta también como stock bajo (los buckets
// no son disjuntos). Los buckets con conteo cero se omiten del resultado.
func StockStatusBuckets(products []entity.Product) []StatusBucket {
	var inStock, low, out int
	for _, p := range products {
		if !p.LowStock() {
			inStock++
		} else {
			low++
		}
		if p.OutOfStock() {
			out++
		}
	}
	buckets := make([]StatusBucket, 0, 3)
	for _, b := range []StatusBucket{
		{Name: StatusInStock, Count: inStock},
		{Name: StatusLowStock, Count: low},
		{Name: StatusOutOfStock, Count: out},
	} {
		if b.Count > 0 {
			buckets = append(buckets, b)
		}
	}
	return buckets
}

// TopByValue devuelve los n productos de mayor valor (price × in_stock) en
// orden descendente. El sort es estable: ante empate se conserva el orden
// relativo original de la lista.
func TopByValue(products []entity.Product, n int) []entity.Product {
	ranked := make([]entity.Product, len(products))
	copy(ranked, products)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value().GreaterThan(ranked[j].Value())
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// Recent devuelve los primeros n productos en el orden que entregó el
// backend (el widget de "recientes" del dashboard).
func Recent(products []entity.Product, n int) []entity.Product {
	if n > len(products) {
		n = len(products)
	}
	return products[:n]
}

// Categories devuelve las categorías distintas no vacías, en orden de
// primera aparición (para el selector del formulario de producto).
func Categories(products []entity.Product) []string {
	seen := make(map[string]bool)
	cats := make([]string, 0)
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		cats = append(cats, p.Category)
	}
	return cats
}
