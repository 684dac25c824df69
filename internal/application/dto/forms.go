// Package dto define los formularios tal como llegan del navegador: strings
// sin parsear. El caso de uso valida presencia y parseabilidad numérica; las
// reglas de negocio (unicidad de SKU, consistencia stock/movimientos, etc.)
// son del backend.
package dto

// ProductForm borrador local del formulario de producto.
type ProductForm struct {
	Name         string
	SKU          string
	Category     string
	Supplier     string
	Price        string
	ReorderLevel string
	InStock      string
	Description  string
	ImageURL     string // opcional, solo al crear
	IsActive     bool
}

// MovementForm una fila del bloque de movimientos del formulario de
// creación. UnitCost y Note son opcionales.
type MovementForm struct {
	Date     string // YYYY-MM-DD
	Type     string // IN | OUT
	Quantity string
	UnitCost string
	Note     string
}
