package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product es la proyección local de un producto del backend.
// El backend es el único dueño de los datos: esta copia es efímera,
// se refresca completa en cada fetch y no se reconcilia localmente.
type Product struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"` // inmutable después de creado
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Supplier     string          `json:"supplier"`
	Price        decimal.Decimal `json:"price"`
	ReorderLevel int             `json:"reorder_level"`
	InStock      int             `json:"in_stock"` // el backend garantiza >= 0
	Description  string          `json:"description"`
	IsActive     bool            `json:"is_active"`
	ImageURL     *string         `json:"image_url"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Movements    []Movement      `json:"movements,omitempty"`
}

// LowStock indica stock bajo: derivado, nunca almacenado.
func (p Product) LowStock() bool {
	return p.InStock <= p.ReorderLevel
}

// OutOfStock indica stock agotado.
func (p Product) OutOfStock() bool {
	return p.InStock == 0
}

// Value es el valor de inventario del producto: precio × stock.
func (p Product) Value() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.InStock)))
}
