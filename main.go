package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"house-prices/config"
	"house-prices/services"
	"house-prices/snapshot"
	"house-prices/storage"
	"house-prices/utils"
	"house-prices/web"
)

var args struct {
	debug bool
}

var rootCmd = &cobra.Command{
	Use:   "house-prices",
	Short: "Interactive house sale price dashboard",
	RunE:  runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	RunE:  runServe,
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load the CSV dataset into PostgreSQL",
	RunE:  runImport,
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [query...]",
	Short: "Save screenshots of the running dashboard, one per query (e.g. cond=5&year=2006)",
	RunE:  runSnapshot,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&args.debug, "debug", false, "enable debug logging")
	rootCmd.AddCommand(serveCmd, importCmd, snapshotCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup() (*config.Config, *utils.Logger) {
	cfg := config.Load()
	return cfg, utils.New(os.Stdout, os.Stderr, args.debug)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger := setup()
	logger.Info("=== House price dashboard starting ===")
	logger.Info("Config — source: %s | csv: %s | addr: %s", cfg.DatasetSource, cfg.DataCSVPath, cfg.HTTPAddr)

	var source storage.ListingSource
	switch cfg.DatasetSource {
	case config.SourceCSV:
		source = storage.NewCSVSource(cfg.DataCSVPath)
	case config.SourcePostgres:
		pg, err := storage.NewPostgresStore(cfg.DSN())
		if err != nil {
			return err
		}
		defer pg.Close()
		source = pg
	default:
		return fmt.Errorf("unknown DATASET_SOURCE %q", cfg.DatasetSource)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dash := services.NewDashboard(source, logger)
	return web.Serve(ctx, cfg.HTTPAddr, web.NewHandler(dash, cfg.IconPath, logger), logger)
}

func runImport(cmd *cobra.Command, _ []string) error {
	cfg, logger := setup()
	ctx := cmd.Context()

	qf, err := storage.NewCSVSource(cfg.DataCSVPath).Load(ctx)
	if err != nil {
		return err
	}
	listings, err := storage.Listings(qf)
	if err != nil {
		return err
	}
	logger.Info("Read %d rows from %s", len(listings), cfg.DataCSVPath)

	cleaned := services.NewCleaner(logger).Clean(listings)

	pg, err := storage.NewPostgresStore(cfg.DSN())
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		logger.Error("Make sure Docker is running: docker compose up -d")
		return err
	}
	defer pg.Close()

	if err := pg.Import(ctx, cleaned); err != nil {
		return err
	}
	logger.Info("Imported %d rows into PostgreSQL (table: house_sales)", len(cleaned))
	return nil
}

func runSnapshot(cmd *cobra.Command, argv []string) error {
	cfg, logger := setup()

	queries, err := snapshot.ParseQueries(argv)
	if err != nil {
		return err
	}

	results, err := snapshot.New(cfg, logger).Capture(cmd.Context(), queries)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d snapshots failed", failed, len(results))
	}
	return nil
}
