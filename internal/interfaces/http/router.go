package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/inventory-panel/internal/application/session"
	"github.com/tu-usuario/inventory-panel/internal/application/usecase"
	"github.com/tu-usuario/inventory-panel/internal/infrastructure/pdf"
	"github.com/tu-usuario/inventory-panel/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Session   *session.Session
	Profiles  ProfileAPI
	ProductUC *usecase.ProductUseCase
	FileUC    *usecase.FileUseCase
	Report    *pdf.InventoryReportGenerator
	AppName   string
	Log       *logger.Logger
}

// Router registra las rutas del panel.
func Router(app *fiber.App, deps RouterDeps) {
	authHandler := NewAuthHandler(deps.Session, deps.Profiles, deps.Log)
	dashboardHandler := NewDashboardHandler(deps.Session, deps.ProductUC, deps.Log)
	productHandler := NewProductHandler(deps.Session, deps.ProductUC, deps.Report, deps.AppName, deps.Log)
	fileHandler := NewFileHandler(deps.Session, deps.FileUC, deps.Log)
	apiHandler := NewAPIHandler(deps.Session, deps.ProductUC)

	// Auth (público)
	app.Get("/login", authHandler.LoginPage)
	app.Post("/login", authHandler.Login)
	app.Get("/signup", authHandler.SignupPage)
	app.Post("/signup", authHandler.Signup)
	app.Post("/logout", authHandler.Logout)

	// Rutas protegidas por la guarda de sesión
	guard := RequireSession(deps.Session)

	app.Get("/", guard, dashboardHandler.Index)

	app.Get("/profile", guard, authHandler.ProfilePage)
	app.Post("/profile", guard, authHandler.UpdateProfile)

	products := app.Group("/products", guard)
	products.Get("/", productHandler.List)
	products.Get("/new", productHandler.NewForm)
	products.Post("/", productHandler.Create)
	products.Get("/report.pdf", productHandler.Report)
	products.Get("/:id", productHandler.Detail)
	products.Get("/:id/edit", productHandler.EditForm)
	products.Post("/:id", productHandler.Update)
	products.Get("/:id/delete", productHandler.ConfirmDelete)
	products.Post("/:id/delete", productHandler.Delete)

	files := app.Group("/files", guard)
	files.Get("/", fileHandler.List)
	files.Post("/upload", fileHandler.Upload)
	files.Get("/download", fileHandler.Download)
	files.Get("/delete", fileHandler.ConfirmDelete)
	files.Post("/delete", fileHandler.Delete)

	// API JSON de los gráficos (protegida)
	api := app.Group("/api", guard)
	api.Get("/dashboard/summary", apiHandler.Summary)
	api.Get("/dashboard/categories", apiHandler.Categories)
	api.Get("/dashboard/stock-status", apiHandler.StockStatus)
	api.Get("/dashboard/top-products", apiHandler.TopProducts)
}
