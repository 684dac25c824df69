package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/inventory-panel/internal/application/analytics"
	"github.com/tu-usuario/inventory-panel/internal/application/dto"
	"github.com/tu-usuario/inventory-panel/internal/application/session"
	"github.com/tu-usuario/inventory-panel/internal/application/usecase"
	"github.com/tu-usuario/inventory-panel/internal/infrastructure/pdf"
	"github.com/tu-usuario/inventory-panel/pkg/logger"
)

// ProductHandler páginas y acciones de productos: tabla con búsqueda,
// formularios de alta/edición, detalle con historial, borrado con
// confirmación y export PDF.
type ProductHandler struct {
	sess    *session.Session
	uc      *usecase.ProductUseCase
	report  *pdf.InventoryReportGenerator
	appName string
	log     *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(sess *session.Session, uc *usecase.ProductUseCase, report *pdf.InventoryReportGenerator, appName string, log *logger.Logger) *ProductHandler {
	return &ProductHandler{sess: sess, uc: uc, report: report, appName: appName, log: log}
}

// List renderiza la tabla de productos, filtrada por ?q= (substring
// case-insensitive sobre nombre, SKU o categoría).
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.uc.List(c.UserContext())
	if err != nil {
		return failAndRedirect(c, h.sess, err, "/")
	}
	query := c.Query("q")
	return c.Render("products", fiber.Map{
		"Title":    "Productos",
		"User":     h.sess.User(),
		"Flash":    PopFlash(c),
		"Query":    query,
		"Products": h.uc.Search(products, query),
		"Total":    len(products),
	}, "layouts/main")
}

// NewForm renderiza el formulario de alta. Las categorías existentes salen
// de la lista actual para el selector.
func (h *ProductHandler) NewForm(c *fiber.Ctx) error {
	products, err := h.uc.List(c.UserContext())
	if err != nil {
		return failAndRedirect(c, h.sess, err, "/products")
	}
	return c.Render("product_form", fiber.Map{
		"Title":      "Nuevo producto",
		"User":       h.sess.User(),
		"Flash":      PopFlash(c),
		"Editing":    false,
		"Action":     "/products",
		"Categories": analytics.Categories(products),
	}, "layouts/main")
}

// Create procesa el alta. La validación local (presencia + parseo numérico)
// bloquea el submit sin tocar la red; tras el éxito se recarga la lista
// completa desde el backend.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	form, movements := productFormFromRequest(c, true)
	if _, err := h.uc.Create(c.UserContext(), form, movements); err != nil {
		return failAndRedirect(c, h.sess, err, "/products/new")
	}
	SetFlash(c, FlashSuccess, "producto creado")
	return c.Redirect("/products", fiber.StatusFound)
}

// Detail renderiza el detalle de un producto con su historial de
// movimientos; ?days= acota la ventana del historial.
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	product, err := h.uc.Get(c.UserContext(), c.Params("id"), c.QueryInt("days", 0))
	if err != nil {
		return failAndRedirect(c, h.sess, err, "/products")
	}
	return c.Render("product_detail", fiber.Map{
		"Title":   product.Name,
		"User":    h.sess.User(),
		"Flash":   PopFlash(c),
		"Product": product,
		"Days":    c.QueryInt("days", 0),
	}, "layouts/main")
}

// EditForm renderiza el formulario de edición prellenado. El SKU se muestra
// pero no es editable; los movimientos solo existen en el alta.
func (h *ProductHandler) EditForm(c *fiber.Ctx) error {
	product, err := h.uc.Get(c.UserContext(), c.Params("id"), 0)
	if err != nil {
		return failAndRedirect(c, h.sess, err, "/products")
	}
	products, err := h.uc.List(c.UserContext())
	if err != nil {
		return failAndRedirect(c, h.sess, err, "/products")
	}
	return c.Render("product_form", fiber.Map{
		"Title":      "Editar " + product.Name,
		"User":       h.sess.User(),
		"Flash":      PopFlash(c),
		"Editing":    true,
		"Action":     "/products/" + product.ID,
		"Product":    product,
		"Categories": analytics.Categories(products),
	}, "layouts/main")
}

// Update procesa la edición.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	form, _ := productFormFromRequest(c, false)
	if _, err := h.uc.Update(c.UserContext(), id, form); err != nil {
		return failAndRedirect(c, h.sess, err, "/products/"+id+"/edit")
	}
	SetFlash(c, FlashSuccess, "producto actualizado")
	return c.Redirect("/products", fiber.StatusFound)
}

// ConfirmDelete renderiza la página de confirmación. Cancelar es un link de
// vuelta a la tabla: no genera ningún request de borrado.
func (h *ProductHandler) ConfirmDelete(c *fiber.Ctx) error {
	product, err := h.uc.Get(c.UserContext(), c.Params("id"), 0)
	if err != nil {
		return failAndRedirect(c, h.sess, err, "/products")
	}
	return c.Render("product_delete", fiber.Map{
		"Title":   "Eliminar producto",
		"User":    h.sess.User(),
		"Product": product,
	}, "layouts/main")
}

// Delete ejecuta el borrado ya confirmado y recarga la lista.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return failAndRedirect(c, h.sess, err, "/products")
	}
	SetFlash(c, FlashSuccess, "producto eliminado")
	return c.Redirect("/products", fiber.StatusFound)
}

// Report exporta el inventario actual como PDF.
func (h *ProductHandler) Report(c *fiber.Ctx) error {
	products, err := h.uc.List(c.UserContext())
	if err != nil {
		return failAndRedirect(c, h.sess, err, "/products")
	}
	raw, err := h.report.Generate(c.UserContext(), h.appName, products, analytics.Summarize(products), time.Now())
	if err != nil {
		h.log.Error().Err(err).Msg("generar reporte PDF")
		return failAndRedirect(c, h.sess, err, "/products")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventario.pdf"`)
	return c.Send(raw)
}

// productFormFromRequest arma el borrador desde los valores del formulario.
// withMovements solo aplica en el alta: las filas llegan como arrays
// paralelos movement_date/movement_type/movement_quantity/....
func productFormFromRequest(c *fiber.Ctx, withMovements bool) (dto.ProductForm, []dto.MovementForm) {
	form := dto.ProductForm{
		Name:         c.FormValue("name"),
		SKU:          c.FormValue("sku"),
		Category:     resolveCategory(c),
		Supplier:     c.FormValue("supplier"),
		Price:        c.FormValue("price"),
		ReorderLevel: c.FormValue("reorder_level"),
		InStock:      c.FormValue("in_stock"),
		Description:  c.FormValue("description"),
		ImageURL:     c.FormValue("image_url"),
		IsActive:     c.FormValue("is_active") == "on" || c.FormValue("is_active") == "true",
	}
	if !withMovements {
		return form, nil
	}

	dates := formValues(c, "movement_date")
	types := formValues(c, "movement_type")
	quantities := formValues(c, "movement_quantity")
	costs := formValues(c, "movement_unit_cost")
	notes := formValues(c, "movement_note")

	movements := make([]dto.MovementForm, 0, len(dates))
	for i := range dates {
		m := dto.MovementForm{Date: dates[i]}
		if i < len(types) {
			m.Type = types[i]
		}
		if i < len(quantities) {
			m.Quantity = quantities[i]
		}
		if i < len(costs) {
			m.UnitCost = costs[i]
		}
		if i < len(notes) {
			m.Note = notes[i]
		}
		movements = append(movements, m)
	}
	return form, movements
}

// resolveCategory soporta el selector con opción "custom": si se eligió
// "custom", vale el texto libre.
func resolveCategory(c *fiber.Ctx) string {
	category := c.FormValue("category")
	if category == "custom" {
		return c.FormValue("custom_category")
	}
	return category
}

// formValues devuelve todos los valores repetidos de una clave del form.
func formValues(c *fiber.Ctx, key string) []string {
	raw := c.Context().PostArgs().PeekMulti(key)
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		values = append(values, string(v))
	}
	return values
}
