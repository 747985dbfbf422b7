package main

import (
	"fmt"
	"os"

	"github.com/Bishesh-P/coffee-alpico-sub000/config"
	"github.com/Bishesh-P/coffee-alpico-sub000/logger"
	"github.com/Bishesh-P/coffee-alpico-sub000/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "coffee",
	Short: "Coffee storefront API: cart, checkout and order intake",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		if log, err = logger.New(cfg.IsDevelopment()); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the order tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := storage.OpenPostgres(cfg.DSN())
		if err != nil {
			return err
		}
		if err := storage.Migrate(db); err != nil {
			return err
		}
		log.Info("migration complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
