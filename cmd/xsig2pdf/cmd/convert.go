package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/xsig-pdf/internal/application/conversion"
	"github.com/jhoicas/xsig-pdf/internal/application/dto"
)

var (
	convertRegistryNumber string
	convertEntryPoint     string
	convertRCF            string
	convertRegisteredAt   string
	convertOutput         string
)

var convertCmd = &cobra.Command{
	Use:   "convert <factura.xsig>",
	Short: "Genera el PDF de una factura firmada",
	Long: `Genera el PDF de una factura firmada con los datos del registro.

Si no se indica --output, el PDF se escribe en el directorio actual con el
nombre Factura_{rcf}_{aaaammdd_hhmm}.pdf.

Ejemplos:
  xsig2pdf convert factura.xsig --registry-number REG-1 --entry-point FACe
  xsig2pdf convert factura.xsig --registry-number REG-1 --entry-point FACe \
      --rcf RCF-9 --registered-at 2025-03-01T10:00 -o factura.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertRegistryNumber, "registry-number", "", "Número de registro (obligatorio)")
	convertCmd.Flags().StringVar(&convertEntryPoint, "entry-point", "", "Punto de entrada (obligatorio)")
	convertCmd.Flags().StringVar(&convertRCF, "rcf", "", "Número de factura en el RCF (por defecto, el número de registro)")
	convertCmd.Flags().StringVar(&convertRegisteredAt, "registered-at", "", "Fecha y hora de registro aaaa-mm-ddThh:mm (por defecto, ahora)")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Fichero PDF de salida")
	_ = convertCmd.MarkFlagRequired("registry-number")
	_ = convertCmd.MarkFlagRequired("entry-point")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	loc, err := cfg.Registry.Location()
	if err != nil {
		return err
	}
	req := dto.RenderRequest{
		RegistryNumber:         convertRegistryNumber,
		EntryPoint:             convertEntryPoint,
		AccountingRecordNumber: convertRCF,
		RegisteredAt:           convertRegisteredAt,
	}
	if err := req.Validate(); err != nil {
		return err
	}
	meta, err := req.Metadata(loc, time.Now())
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("leer %s: %w", args[0], err)
	}

	res, err := newUseCase(cfg, log).Convert(cmd.Context(), conversion.Request{Raw: raw, Meta: meta})
	if err != nil {
		return err
	}

	out := convertOutput
	if out == "" {
		out = filepath.Join(".", res.Filename)
	}
	if err := os.WriteFile(out, res.PDF, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", out, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes, factura %s)\n", out, len(res.PDF), res.Invoice.Number)
	return nil
}
