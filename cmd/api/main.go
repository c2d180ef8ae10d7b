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

	_ "github.com/jhoicas/xsig-pdf/docs"
	"github.com/jhoicas/xsig-pdf/internal/application/conversion"
	"github.com/jhoicas/xsig-pdf/internal/domain/repository"
	"github.com/jhoicas/xsig-pdf/internal/infrastructure/facturae"
	"github.com/jhoicas/xsig-pdf/internal/infrastructure/facturae/signature"
	"github.com/jhoicas/xsig-pdf/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/xsig-pdf/internal/infrastructure/pdf"
	"github.com/jhoicas/xsig-pdf/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/xsig-pdf/internal/interfaces/http"
	"github.com/jhoicas/xsig-pdf/pkg/config"
	"github.com/jhoicas/xsig-pdf/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	registryLoc, err := cfg.Registry.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria del registro")
	}

	// Registro de auditoría: PostgreSQL si está configurado, si no se descarta.
	ctx := context.Background()
	var auditLog repository.ConversionLogRepository = postgres.NoopConversionLog{}
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		repo := postgres.NewConversionLogRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("esquema conversion_log")
		}
		auditLog = repo
	} else {
		log.Warn().Msg("sin base de datos: el registro de conversiones queda desactivado")
	}

	conversionMetrics := metrics.NewConversionMetrics(cfg.App.Name)

	// Pipeline: contenedor .xsig → modelo Facturae → PDF
	reader := facturae.NewReader(facturae.NewMapper(signature.NewInterpreter(nil)))
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(infrapdf.WithCompression(cfg.PDF.Compression))
	conversionUC := conversion.NewUseCase(reader, pdfGenerator,
		conversion.WithMetrics(conversionMetrics),
		conversion.WithAuditLog(auditLog),
		conversion.WithLogger(log.Component("conversion")),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.MaxUploadBytes() + 1024*1024, // margen para los campos del formulario
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "xsig-pdf API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName:      cfg.App.Name,
		Conversion:       conversionUC,
		Metrics:          conversionMetrics.Handler(),
		JWTSecret:        cfg.JWT.Secret,
		RegistryLocation: registryLoc,
		MaxUploadBytes:   cfg.HTTP.MaxUploadBytes(),
		Logger:           log.Component("http"),
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
