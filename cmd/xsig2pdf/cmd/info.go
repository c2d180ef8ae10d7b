package cmd

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [ficheros.pdf...]",
	Short: "Valida PDFs generados y muestra su número de páginas",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	api.DisableConfigDir()
	out := cmd.OutOrStdout()
	var failed int
	for _, path := range args {
		fmt.Fprintf(out, "Fichero: %s\n", path)
		st, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(out, "  Error: %v\n", err)
			failed++
			continue
		}
		fmt.Fprintf(out, "  Tamaño: %d bytes\n", st.Size())
		if err := api.ValidateFile(path, nil); err != nil {
			fmt.Fprintf(out, "  PDF inválido: %v\n", err)
			failed++
			continue
		}
		pages, err := api.PageCountFile(path)
		if err != nil {
			fmt.Fprintf(out, "  Error: %v\n", err)
			failed++
			continue
		}
		fmt.Fprintf(out, "  Páginas: %d\n", pages)
	}
	if failed > 0 {
		return fmt.Errorf("%d de %d ficheros con errores", failed, len(args))
	}
	return nil
}
