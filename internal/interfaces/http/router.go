package http

import (
	nethttp "net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/rs/zerolog"

	"github.com/jhoicas/xsig-pdf/internal/application/conversion"
	"github.com/jhoicas/xsig-pdf/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName      string
	Conversion       *conversion.UseCase
	Metrics          nethttp.Handler // nil: sin /metrics
	JWTSecret        string          // vacío: /api sin autenticación
	RegistryLocation *time.Location
	MaxUploadBytes   int
	Now              func() time.Time
	Logger           zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")
	if deps.JWTSecret != "" {
		api.Use(AuthMiddleware(deps.JWTSecret), RequireScope(jwt.ScopeConvert))
	}

	handler := NewInvoiceHandler(deps.Conversion, deps.RegistryLocation, deps.MaxUploadBytes, deps.Now, deps.Logger)

	invoices := api.Group("/invoices")
	invoices.Post("/pdf", handler.RenderPDF)
	invoices.Post("/inspect", handler.Inspect)

	api.Get("/conversions", handler.History)
}
