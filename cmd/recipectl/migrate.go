package main

import (
	"fmt"

	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/infrastructure/database"
	"recipe-finder/internal/pkg/common"

	"github.com/spf13/cobra"
)

func migrateCMD() *cobra.Command {
	var migDir string
	var dsn string
	var steps int

	var migrate = &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Run database migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := "up"
			if len(args) == 1 {
				direction = args[0]
			}

			if dsn == "" {
				cfg, err := config.LoadConfig()
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := common.InitLogger(cfg.LogLevel); err != nil {
					return err
				}
				dsn = cfg.Database.URL
				if !cmd.Flags().Changed("dir") {
					migDir = cfg.Database.MigrationsDir
				}
			}
			return database.Migrate(migDir, dsn, direction, steps)
		},
	}
	migrate.Flags().StringVar(&migDir, "dir", "file://migrations", "migrations source (file://migrations)")
	migrate.Flags().StringVar(&dsn, "dsn", "", "database url (default DATABASE_URL or NEON_DATABASE_URL)")
	migrate.Flags().IntVar(&steps, "steps", 0, "number of steps (0 = all)")

	return migrate
}
