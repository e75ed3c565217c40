package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/catalog-api/internal/bootstrap"
	"github.com/jhoicas/catalog-api/internal/infrastructure/postgres"
	"github.com/jhoicas/catalog-api/pkg/config"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

// bootStores carga la configuración y abre el store configurado.
func bootStores(ctx context.Context) (*config.Config, *bootstrap.Stores, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	stores, err := bootstrap.OpenStores(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, stores, nil
}

// catalogctl migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica las migraciones pendientes en PostgreSQL",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, stores, err := bootStores(ctx)
		if err != nil {
			return err
		}
		defer stores.Close()
		if stores.Pool == nil {
			return errors.New("migrate requiere STORE_DRIVER=postgres")
		}

		applied, err := postgres.Migrate(ctx, stores.Pool)
		if err != nil {
			return err
		}
		if len(applied) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Sin migraciones pendientes.")
			return nil
		}
		for _, name := range applied {
			fmt.Fprintf(cmd.OutOrStdout(), "  ✔ %s\n", name)
		}
		return nil
	},
}

// catalogctl seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Carga un catálogo de ejemplo a través de los casos de uso",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, stores, err := bootStores(ctx)
		if err != nil {
			return err
		}
		defer stores.Close()

		log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
		ctx = log.WithContext(ctx)

		// El seed no convierte precios ni genera fichas.
		categories, products := bootstrap.Catalog(stores, nil, nil)
		res, err := seedCatalog(ctx, categories, products)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Catálogo cargado: %d categorías, %d productos.\n", res.Categories, res.Products)
		return nil
	},
}
