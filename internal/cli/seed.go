package cli

import (
	"github.com/spf13/cobra"

	venueRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueBookingService/pkg/dbmetrics"
)

func newSeedCatalogCmd(configPath *string) *cobra.Command {
	var (
		file      string
		migrateUp bool
	)

	cmd := &cobra.Command{
		Use:   "seed-catalog",
		Short: "Load the venue catalog from a TOML file into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			defer log.Close()

			if file == "" {
				file = cfg.Catalog.File
			}
			venues, err := loadCatalogFile(file)
			if err != nil {
				return err
			}

			db, err := openDatabase(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			if migrateUp {
				if err := runMigrations(cmd.Context(), db, log); err != nil {
					return err
				}
			}

			repo := venueRepo.NewRepository(dbmetrics.Wrap(db, nil))
			if err := repo.Seed(cmd.Context(), venues); err != nil {
				return err
			}

			log.Info("Catalog seeded from %s: %d venues", file, len(venues))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "catalog file (default: catalog.file from config)")
	cmd.Flags().BoolVar(&migrateUp, "migrate", false, "run database migrations before seeding")

	return cmd
}
