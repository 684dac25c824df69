package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/inventory-panel/internal/application/analytics"
	"github.com/tu-usuario/inventory-panel/internal/application/session"
	"github.com/tu-usuario/inventory-panel/internal/application/usecase"
	"github.com/tu-usuario/inventory-panel/internal/domain"
	"github.com/tu-usuario/inventory-panel/pkg/logger"
)

// DashboardHandler página principal: totales, gráficos y productos recientes.
type DashboardHandler struct {
	sess *session.Session
	uc   *usecase.ProductUseCase
	log  *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(sess *session.Session, uc *usecase.ProductUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{sess: sess, uc: uc, log: log}
}

// Index renderiza el dashboard. Los agregados se recalculan desde cero con
// la lista recién traída del backend; si el fetch falla se muestra el
// dashboard vacío con la notificación del error.
func (h *DashboardHandler) Index(c *fiber.Ctx) error {
	flash := PopFlash(c)

	products, err := h.uc.List(c.UserContext())
	if err != nil {
		if errors.Is(err, domain.ErrNotAuthenticated) {
			h.sess.Invalidate()
			return c.Redirect("/login", fiber.StatusFound)
		}
		h.log.Error().Err(err).Msg("cargar productos para el dashboard")
		flash = &Flash{Kind: FlashError, Message: userMessage(err)}
		products = nil
	}

	summary := analytics.Summarize(products)
	return c.Render("dashboard", fiber.Map{
		"Title":      "Dashboard",
		"User":       h.sess.User(),
		"Flash":      flash,
		"Summary":    summary,
		"Categories": analytics.RollupByCategory(products),
		"Buckets":    analytics.StockStatusBuckets(products),
		"TopValue":   analytics.TopByValue(products, analytics.DashboardTopProducts),
		"Recent":     analytics.Recent(products, 5),
		"HasData":    len(products) > 0,
	}, "layouts/main")
}
