package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/inventory-panel/internal/application/analytics"
	"github.com/tu-usuario/inventory-panel/internal/application/dto"
	"github.com/tu-usuario/inventory-panel/internal/application/session"
	"github.com/tu-usuario/inventory-panel/internal/application/usecase"
	"github.com/tu-usuario/inventory-panel/internal/domain"
)

// APIHandler endpoints JSON que alimentan los gráficos del dashboard. Cada
// endpoint recalcula sus agregados desde la lista recién traída del backend.
type APIHandler struct {
	sess *session.Session
	uc   *usecase.ProductUseCase
}

// NewAPIHandler construye el handler.
func NewAPIHandler(sess *session.Session, uc *usecase.ProductUseCase) *APIHandler {
	return &APIHandler{sess: sess, uc: uc}
}

// Summary godoc
// @Summary      Totales del dashboard
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *APIHandler) Summary(c *fiber.Ctx) error {
	products, err := h.uc.List(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	s := analytics.Summarize(products)
	return c.JSON(dto.DashboardSummaryResponse{
		TotalProducts:  s.TotalProducts,
		ActiveProducts: s.ActiveProducts,
		LowStockCount:  s.LowStockCount,
		TotalValue:     s.TotalValue.StringFixed(2),
	})
}

// Categories godoc
// @Summary      Stock y valor por categoría
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}  dto.CategoryRollupResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/dashboard/categories [get]
func (h *APIHandler) Categories(c *fiber.Ctx) error {
	products, err := h.uc.List(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	rollups := analytics.RollupByCategory(products)
	out := make([]dto.CategoryRollupResponse, 0, len(rollups))
	for _, r := range rollups {
		out = append(out, dto.CategoryRollupResponse{
			Category: r.Category,
			Stock:    r.Stock,
			Value:    r.Value.StringFixed(2),
		})
	}
	return c.JSON(out)
}

// StockStatus godoc
// @Summary      Histograma de estado de stock
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}  dto.StatusBucketResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stock-status [get]
func (h *APIHandler) StockStatus(c *fiber.Ctx) error {
	products, err := h.uc.List(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	buckets := analytics.StockStatusBuckets(products)
	out := make([]dto.StatusBucketResponse, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, dto.StatusBucketResponse{Name: b.Name, Count: b.Count})
	}
	return c.JSON(out)
}

// TopProducts godoc
// @Summary      Top 5 productos por valor de inventario
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}  dto.TopProductResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/dashboard/top-products [get]
func (h *APIHandler) TopProducts(c *fiber.Ctx) error {
	products, err := h.uc.List(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	top := analytics.TopByValue(products, analytics.DashboardTopProducts)
	out := make([]dto.TopProductResponse, 0, len(top))
	for _, p := range top {
		out = append(out, dto.TopProductResponse{
			ID:      p.ID,
			Name:    p.Name,
			Price:   p.Price.StringFixed(2),
			InStock: p.InStock,
			Value:   p.Value().StringFixed(2),
		})
	}
	return c.JSON(out)
}

// fail traduce errores al contrato JSON: sesión inválida → 401, el resto →
// 502 con el mensaje del backend.
func (h *APIHandler) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotAuthenticated) {
		h.sess.Invalidate()
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autenticado"})
	}
	return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "BACKEND", Message: userMessage(err)})
}
