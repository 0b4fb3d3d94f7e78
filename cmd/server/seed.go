package main

import (
	"fmt"
	"os"

	"offsite/internal/config"
	"offsite/internal/lib/logger"
	"offsite/internal/repository/sqlite"
	"offsite/internal/seed"

	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo regions, ads, activities and settings into the local store",
	Long: `Loads YAML fixtures into the local SQLite store. Without --file the
built-in demo fixtures are used. Run with backend.driver=sqlite to serve them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		log := logger.New(cfg.Env, os.Stdout)

		var data []byte
		if seedFile != "" {
			data, err = os.ReadFile(seedFile)
			if err != nil {
				return fmt.Errorf("read fixtures: %w", err)
			}
		}

		fixtures, err := seed.Parse(data)
		if err != nil {
			return err
		}

		db, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		_, err = seed.Load(cmd.Context(), fixtures, sqlite.NewContentRepo(db), sqlite.NewSettingsRepo(db), log)
		return err
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML fixtures file (defaults to the built-in demo content)")
}
