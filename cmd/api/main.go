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
	"github.com/jcastellanos/pos-ventas-api/internal/application/alertas"
	"github.com/jcastellanos/pos-ventas-api/internal/application/auth"
	"github.com/jcastellanos/pos-ventas-api/internal/application/ventas"
	"github.com/jcastellanos/pos-ventas-api/internal/infrastructure/postgres"
	httpRouter "github.com/jcastellanos/pos-ventas-api/internal/interfaces/http"
	"github.com/jcastellanos/pos-ventas-api/pkg/config"
	"github.com/jcastellanos/pos-ventas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productoRepo := postgres.NewProductoRepository(pool)
	ventaRepo := postgres.NewVentaRepository(pool)
	detalleRepo := postgres.NewDetalleVentaRepository(pool)
	movRepo := postgres.NewMovimientoStockRepository(pool)
	alertaRepo := postgres.NewAlertaRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ventaUC := ventas.NewVentaUseCase(txRunner, ventaRepo, detalleRepo, usuarioRepo, cfg.Ventas.TasaIVA, log)
	detalleUC := ventas.NewDetalleVentaUseCase(txRunner, cfg.Ventas.TasaIVA, log)
	alertaUC := alertas.NewAlertaUseCase(txRunner, alertaRepo, productoRepo, cfg.Alertas.UmbralStock, cfg.Alertas.DiasCaducidad, log)
	authUC := auth.NewAuthUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "POS Ventas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		VentaUC:      ventaUC,
		DetalleUC:    detalleUC,
		AlertaUC:     alertaUC,
		AuthUC:       authUC,
		ProductoRepo: productoRepo,
		MovRepo:      movRepo,
		JWTSecret:    cfg.JWT.Secret,
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

	log.Info().Msg("aplicación detenida")
}
