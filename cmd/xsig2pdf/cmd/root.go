package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/xsig-pdf/internal/application/conversion"
	"github.com/jhoicas/xsig-pdf/internal/infrastructure/facturae"
	"github.com/jhoicas/xsig-pdf/internal/infrastructure/facturae/signature"
	infrapdf "github.com/jhoicas/xsig-pdf/internal/infrastructure/pdf"
	"github.com/jhoicas/xsig-pdf/pkg/config"
	"github.com/jhoicas/xsig-pdf/pkg/logger"
)

var (
	version = "1.0.0"

	// Flags globales
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "xsig2pdf",
	Short: "Convierte facturas Facturae firmadas (.xsig) a PDF",
	Long: `xsig2pdf genera la representación en PDF de una factura electrónica
Facturae firmada, con los datos del Registro Contable de Facturas.

Ejemplos:
  # Generar el PDF
  xsig2pdf convert factura.xsig --registry-number REG-2025/001 --entry-point FACe

  # Ver los datos extraídos en JSON
  xsig2pdf inspect factura.xsig

  # Número de páginas de un PDF generado
  xsig2pdf info Factura_REG-2025_001_20250301_1000.pdf

  # Firmar un XML Facturae de prueba
  xsig2pdf sign factura.xml --cert pruebas.p12 --password secreto`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute ejecuta el comando raíz.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log detallado por stderr")
}

// loadConfig lee la configuración compartida con la API (REGISTRY_TIMEZONE, PDF_COMPRESSION, …).
func loadConfig() (*config.Config, error) {
	return config.Load()
}

func newLogger(cfg *config.Config) *logger.Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}
	return logger.New(logger.Config{
		Env:     "development",
		Level:   level,
		Service: cfg.App.Name,
		Output:  os.Stderr,
	})
}

// newUseCase arma la misma cadena que la API, sin métricas ni auditoría.
func newUseCase(cfg *config.Config, log *logger.Logger) *conversion.UseCase {
	reader := facturae.NewReader(facturae.NewMapper(signature.NewInterpreter(nil)))
	generator := infrapdf.NewMarotoPDFGenerator(infrapdf.WithCompression(cfg.PDF.Compression))
	return conversion.NewUseCase(reader, generator, conversion.WithLogger(log.Component("conversion")))
}
