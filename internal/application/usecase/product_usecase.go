package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/inventory-panel/internal/application/dto"
	"github.com/tu-usuario/inventory-panel/internal/domain"
	"github.com/tu-usuario/inventory-panel/internal/domain/entity"
	"github.com/tu-usuario/inventory-panel/internal/infrastructure/backend"
)

// movementDateLayout formato de fecha del formulario de movimientos.
const movementDateLayout = "2006-01-02"

// ProductAPI puerto hacia el cliente del backend para productos.
type ProductAPI interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
	GetProduct(ctx context.Context, id string, days int) (*entity.Product, error)
	CreateProduct(ctx context.Context, in backend.CreateProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id string, in backend.UpdateProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// ProductUseCase valida formularios y delega en el cliente API. Tras una
// mutación exitosa el caller vuelve a pedir la lista completa: no hay
// actualización optimista.
type ProductUseCase struct {
	api ProductAPI
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(api ProductAPI) *ProductUseCase {
	return &ProductUseCase{api: api}
}

// List obtiene la lista completa de productos del backend.
func (uc *ProductUseCase) List(ctx context.Context) ([]entity.Product, error) {
	return uc.api.ListProducts(ctx)
}

// Get obtiene un producto con su historial de movimientos (days > 0 acota la ventana).
func (uc *ProductUseCase) Get(ctx context.Context, id string, days int) (*entity.Product, error) {
	return uc.api.GetProduct(ctx, id, days)
}

// Search filtra por substring case-insensitive sobre nombre, SKU o categoría.
func (uc *ProductUseCase) Search(products []entity.Product, query string) []entity.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return products
	}
	matched := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.SKU), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			matched = append(matched, p)
		}
	}
	return matched
}

// Create valida el formulario (presencia + parseo numérico) y crea el
// producto con sus movimientos opcionales. Una validación fallida bloquea
// el submit sin contactar al backend.
func (uc *ProductUseCase) Create(ctx context.Context, form dto.ProductForm, movementForms []dto.MovementForm) (*entity.Product, error) {
	if err := requireFields(map[string]string{
		"name": form.Name, "sku": form.SKU, "category": form.Category,
		"supplier": form.Supplier, "description": form.Description,
	}); err != nil {
		return nil, err
	}
	price, reorder, inStock, err := parseNumerics(form)
	if err != nil {
		return nil, err
	}
	movements, err := parseMovements(movementForms)
	if err != nil {
		return nil, err
	}

	return uc.api.CreateProduct(ctx, backend.CreateProductInput{
		Name:         form.Name,
		SKU:          form.SKU,
		Category:     form.Category,
		Supplier:     form.Supplier,
		Price:        json.Number(price.String()),
		ReorderLevel: reorder,
		InStock:      inStock,
		Description:  form.Description,
		IsActive:     form.IsActive,
		ImageURL:     form.ImageURL,
		Movements:    movements,
	})
}

// Update valida y actualiza los campos editables (sin SKU, imagen ni movimientos).
func (uc *ProductUseCase) Update(ctx context.Context, id string, form dto.ProductForm) (*entity.Product, error) {
	if err := requireFields(map[string]string{
		"name": form.Name, "category": form.Category,
		"supplier": form.Supplier, "description": form.Description,
	}); err != nil {
		return nil, err
	}
	price, reorder, inStock, err := parseNumerics(form)
	if err != nil {
		return nil, err
	}

	return uc.api.UpdateProduct(ctx, id, backend.UpdateProductInput{
		Name:         form.Name,
		Category:     form.Category,
		Supplier:     form.Supplier,
		Price:        json.Number(price.String()),
		ReorderLevel: reorder,
		InStock:      inStock,
		Description:  form.Description,
		IsActive:     form.IsActive,
	})
}

// Delete elimina un producto. El paso de confirmación ocurre en la capa de
// vistas; llegar aquí ya implica confirmación.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.api.DeleteProduct(ctx, id)
}

// ── Validación de formulario ──────────────────────────────────────────────────

func requireFields(fields map[string]string) error {
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s es requerido", domain.ErrValidation, name)
		}
	}
	return nil
}

func parseNumerics(form dto.ProductForm) (price decimal.Decimal, reorder, inStock int, err error) {
	price, err = parsePrice("price", form.Price)
	if err != nil {
		return
	}
	reorder, err = parseCount("reorder_level", form.ReorderLevel)
	if err != nil {
		return
	}
	inStock, err = parseCount("in_stock", form.InStock)
	return
}

func parsePrice(field, value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, fmt.Errorf("%w: %s es requerido", domain.ErrValidation, field)
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s debe ser numérico", domain.ErrValidation, field)
	}
	return d, nil
}

func parseCount(field, value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("%w: %s es requerido", domain.ErrValidation, field)
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s debe ser un entero", domain.ErrValidation, field)
	}
	return n, nil
}

func parseMovements(forms []dto.MovementForm) ([]entity.Movement, error) {
	if len(forms) == 0 {
		return nil, nil
	}
	movements := make([]entity.Movement, 0, len(forms))
	for i, f := range forms {
		// Filas sin fecha son filas vacías del formulario, no errores.
		if strings.TrimSpace(f.Date) == "" {
			continue
		}
		if _, err := time.Parse(movementDateLayout, f.Date); err != nil {
			return nil, fmt.Errorf("%w: movimiento %d: fecha inválida", domain.ErrValidation, i+1)
		}
		if f.Type != entity.MovementIn && f.Type != entity.MovementOut {
			return nil, fmt.Errorf("%w: movimiento %d: tipo debe ser IN u OUT", domain.ErrValidation, i+1)
		}
		qty, err := parseCount("quantity", f.Quantity)
		if err != nil {
			return nil, fmt.Errorf("%w: movimiento %d: cantidad debe ser un entero", domain.ErrValidation, i+1)
		}

		m := entity.Movement{MovementDate: f.Date, Type: f.Type, Quantity: qty}
		if strings.TrimSpace(f.UnitCost) != "" {
			cost, err := decimal.NewFromString(strings.TrimSpace(f.UnitCost))
			if err != nil {
				return nil, fmt.Errorf("%w: movimiento %d: costo unitario debe ser numérico", domain.ErrValidation, i+1)
			}
			m.UnitCost = &cost
		}
		if f.Note != "" {
			note := f.Note
			m.Note = &note
		}
		movements = append(movements, m)
	}
	return movements, nil
}
