package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/xsig-pdf/internal/application/dto"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <factura.xsig>",
	Short: "Muestra en JSON los datos extraídos de una factura firmada",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("leer %s: %w", args[0], err)
	}
	invoice, err := newUseCase(cfg, newLogger(cfg)).Inspect(cmd.Context(), raw)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(dto.NewInvoiceResponse(invoice))
}
