package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/catalog-api/pkg/config"
	"github.com/jhoicas/catalog-api/pkg/jwt"
)

func newTokenCmd() *cobra.Command {
	var (
		subject string
		minutes int
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un JWT con rol admin firmado con JWT_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.JWT.Enabled() {
				return fmt.Errorf("JWT_SECRET no está configurado")
			}
			if minutes <= 0 {
				minutes = cfg.JWT.Expiration
			}
			token, err := jwt.Generate(cfg.JWT.Secret, subject, jwt.RoleAdmin, cfg.JWT.Issuer, minutes)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "catalogctl", "sujeto (sub) del token")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "validez en minutos (por defecto JWT_EXPIRATION_MINUTES)")
	return cmd
}
