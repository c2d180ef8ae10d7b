package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/xsig-pdf/pkg/jwt"
)

var (
	tokenSubject string
	tokenMinutes int
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Emite un token de acceso a la API (usa JWT_SECRET)",
	Args:  cobra.NoArgs,
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "Sistema cliente al que se emite el token (obligatorio)")
	tokenCmd.Flags().IntVar(&tokenMinutes, "minutes", 0, "Validez en minutos (por defecto JWT_EXPIRATION_MINUTES)")
	_ = tokenCmd.MarkFlagRequired("subject")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	minutes := tokenMinutes
	if minutes <= 0 {
		minutes = cfg.JWT.Expiration
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, tokenSubject, jwt.ScopeConvert, cfg.JWT.Issuer, minutes)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), tok)
	return nil
}
