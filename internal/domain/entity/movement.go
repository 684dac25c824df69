package entity

import "github.com/shopspring/decimal"

// Tipos de movimiento de stock.
const (
	MovementIn  = "IN"  // entrada: incrementa stock
	MovementOut = "OUT" // salida: decrementa stock
)

// Movement es un delta de stock fechado, anexado a un producto.
// El historial es append-only y lo mantiene el backend; el stock actual
// (in_stock) NUNCA se recalcula localmente desde los movimientos.
type Movement struct {
	MovementDate string           `json:"movement_date"` // YYYY-MM-DD
	Type         string           `json:"type"`          // IN | OUT
	Quantity     int              `json:"quantity"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	Note         *string          `json:"note,omitempty"`
	Source       *string          `json:"source,omitempty"`
	ReferenceID  *string          `json:"reference_id,omitempty"`
}
