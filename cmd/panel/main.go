package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/inventory-panel/internal/application/session"
	"github.com/tu-usuario/inventory-panel/internal/application/usecase"
	"github.com/tu-usuario/inventory-panel/internal/infrastructure/backend"
	infrapdf "github.com/tu-usuario/inventory-panel/internal/infrastructure/pdf"
	"github.com/tu-usuario/inventory-panel/internal/infrastructure/tokenstore"
	httpRouter "github.com/tu-usuario/inventory-panel/internal/interfaces/http"
	"github.com/tu-usuario/inventory-panel/pkg/config"
	"github.com/tu-usuario/inventory-panel/pkg/logger"

	_ "github.com/tu-usuario/inventory-panel/docs"
)

// @title        Inventory Panel API
// @version      1.0
// @description  Endpoints JSON que alimentan los gráficos del panel de inventario.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend.APIURL).
		Msg("iniciando panel")

	tokens := tokenstore.NewFileStore(cfg.Session.TokenFile)
	apiClient := backend.New(cfg.Backend.APIURL, tokens, cfg.Backend.Timeout(), log)

	sess := session.New(apiClient, log)
	// Validación del token persistido en segundo plano: mientras tanto la
	// guarda sirve la página de carga.
	go func() {
		initCtx, cancel := context.WithTimeout(context.Background(), cfg.Backend.Timeout())
		defer cancel()
		sess.Initialize(initCtx)
	}()

	productUC := usecase.NewProductUseCase(apiClient)
	fileUC := usecase.NewFileUseCase(apiClient)
	reportGen := infrapdf.NewInventoryReportGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Views:        httpRouter.NewEngine(cfg.HTTP.TemplatesDir),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventory Panel API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		body := fiber.Map{"status": "ok", "service": cfg.App.Name, "session": sess.State().String()}
		if exp, ok := sess.ExpiresAt(); ok {
			body["session_expires_at"] = exp.Format(time.RFC3339)
		}
		return c.JSON(body)
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Session:   sess,
		Profiles:  apiClient,
		ProductUC: productUC,
		FileUC:    fileUC,
		Report:    reportGen,
		AppName:   cfg.App.Name,
		Log:       log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("panel detenido")
}
