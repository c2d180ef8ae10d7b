package cmd

import (
	"crypto/tls"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/xsig-pdf/internal/infrastructure/facturae/signer"
)

var (
	signCert     string
	signKey      string
	signPassword string
	signOutput   string
)

var signCmd = &cobra.Command{
	Use:   "sign <factura.xml>",
	Short: "Firma un XML Facturae y genera un .xsig de prueba",
	Long: `Añade una firma XAdES-EPES enveloped al XML Facturae.

Pensado para preparar ficheros de prueba: admite certificados .p12/.pfx o
un par PEM (--cert y --key).

Ejemplos:
  xsig2pdf sign factura.xml --cert pruebas.p12 --password secreto
  xsig2pdf sign factura.xml --cert cert.pem --key key.pem -o factura.xsig`,
	Args: cobra.ExactArgs(1),
	RunE: runSign,
}

func init() {
	signCmd.Flags().StringVar(&signCert, "cert", "", "Certificado .p12/.pfx o .pem (obligatorio)")
	signCmd.Flags().StringVar(&signKey, "key", "", "Llave privada PEM (si --cert es PEM sin llave)")
	signCmd.Flags().StringVar(&signPassword, "password", "", "Contraseña del .p12")
	signCmd.Flags().StringVarP(&signOutput, "output", "o", "", "Fichero de salida (por defecto <entrada>.xsig)")
	_ = signCmd.MarkFlagRequired("cert")
	rootCmd.AddCommand(signCmd)
}

func runSign(cmd *cobra.Command, args []string) error {
	xmlBytes, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("leer %s: %w", args[0], err)
	}
	cert, err := loadCertificate(signCert, signKey, signPassword)
	if err != nil {
		return err
	}
	signed, err := signer.NewService().Sign(xmlBytes, cert)
	if err != nil {
		return err
	}
	out := signOutput
	if out == "" {
		out = strings.TrimSuffix(args[0], ".xml") + ".xsig"
	}
	if err := os.WriteFile(out, signed, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", out, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func loadCertificate(certPath, keyPath, password string) (tls.Certificate, error) {
	lower := strings.ToLower(certPath)
	if strings.HasSuffix(lower, ".p12") || strings.HasSuffix(lower, ".pfx") {
		return signer.LoadFromP12(certPath, password)
	}
	return signer.LoadFromPEM(certPath, keyPath)
}
