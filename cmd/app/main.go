package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backoffice/cmd"
	"backoffice/internal/adapters/out/postgres"
	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/pkg/logging"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 15 * time.Second

// errDiscrepancies makes audit-ledger exit with status 1 without printing
// a second error line.
var errDiscrepancies = errors.New("ledger discrepancies found")

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, errDiscrepancies) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

type rootOptions struct {
	envFile string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "backoffice",
		Short:         "Order lifecycle and inventory ledger service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "optional dotenv file")

	root.AddCommand(newServeCommand(opts))
	root.AddCommand(newMigrateCommand(opts))
	root.AddCommand(newAuditLedgerCommand(opts))
	return root
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and background jobs",
		RunE: func(c *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(c.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, opts)
		},
	}
}

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(c *cobra.Command, _ []string) error {
			config, logger, err := setup(opts)
			if err != nil {
				return err
			}
			db, err := openDatabase(config)
			if err != nil {
				return err
			}
			if err = postgres.Migrate(db.WithContext(c.Context())); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			logger.Info().Msg("schema up to date")
			return nil
		},
	}
}

func newAuditLedgerCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "audit-ledger",
		Short: "List materials whose balance differs from their movement log",
		RunE: func(c *cobra.Command, _ []string) error {
			config, _, err := setup(opts)
			if err != nil {
				return err
			}
			db, err := openDatabase(config)
			if err != nil {
				return err
			}
			handler, err := queries.NewGetLedgerDiscrepanciesQueryHandler(db)
			if err != nil {
				return err
			}

			discrepancies, err := handler.Handle(c.Context(), queries.NewGetLedgerDiscrepanciesQuery())
			if err != nil {
				return err
			}

			out := c.OutOrStdout()
			if len(discrepancies) == 0 {
				fmt.Fprintln(out, "ledger balanced")
				return nil
			}
			for _, d := range discrepancies {
				fmt.Fprintf(out, "%s\t%s\tstock=%s\tledger=%s\tdiff=%s\n",
					d.MaterialID, d.Name, d.StockQuantity, d.LedgerSum, d.Difference)
			}
			return errDiscrepancies
		},
	}
}

func setup(opts *rootOptions) (cmd.Config, zerolog.Logger, error) {
	config, err := cmd.LoadConfig(opts.envFile)
	if err != nil {
		return cmd.Config{}, zerolog.Nop(), err
	}
	return config, logging.Init(config.LogLevel, config.LogFormat), nil
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	db, err := gorm.Open(pgdriver.Open(config.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	return db, nil
}

func serve(ctx context.Context, opts *rootOptions) error {
	config, logger, err := setup(opts)
	if err != nil {
		return err
	}

	db, err := openDatabase(config)
	if err != nil {
		return err
	}
	rdb, err := cmd.OpenRedis(ctx, config)
	if err != nil {
		return err
	}

	app, err := cmd.NewCompositionRoot(config, logger, db, rdb)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Warn().Err(closeErr).Msg("close resources")
		}
	}()

	e, err := app.CreateRouter(ctx)
	if err != nil {
		return err
	}
	jobManager, err := app.CreateJobManager()
	if err != nil {
		return err
	}
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("port", config.HTTPPort).Msg("backoffice listening")
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); !errors.Is(startErr, http.ErrServerClosed) {
			serverErr <- startErr
		}
		close(serverErr)
	}()

	select {
	case err = <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info().Msg("server exited")
	return nil
}
