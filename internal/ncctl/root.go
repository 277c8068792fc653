package ncctl

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	portssvc "github.com/SscSPs/credit_notes_app/internal/core/ports/services"
	"github.com/SscSPs/credit_notes_app/internal/core/services"
	"github.com/SscSPs/credit_notes_app/internal/platform/clock"
	"github.com/SscSPs/credit_notes_app/internal/platform/config"
	"github.com/SscSPs/credit_notes_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/credit_notes_app/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var (
	flagDatabaseURL string
	flagTimezone    string
	flagVerbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "ncctl",
	Short: "Credit note ledger operator tool",
	Long:  "Inspect balances and statements of the credit note ledger and manage its schema.",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level := slog.LevelWarn
		if flagVerbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if flagDatabaseURL == "" {
			flagDatabaseURL = cfg.DatabaseURL
		}
		if flagTimezone == "" {
			flagTimezone = cfg.Timezone
		}
		return nil
	},
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDatabaseURL, "database-url", "", "PostgreSQL URL (defaults to PGSQL_URL)")
	rootCmd.PersistentFlags().StringVar(&flagTimezone, "timezone", "", "IANA zone whose date drives expiry (defaults to TIMEZONE)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging on stderr")
}

// openServices connects to the database and builds a read-mostly service container.
// The returned close function releases the pool.
func openServices(ctx context.Context) (*portssvc.ServiceContainer, func(), error) {
	if flagDatabaseURL == "" {
		return nil, nil, fmt.Errorf("no database URL: set PGSQL_URL or pass --database-url")
	}
	pool, err := database.NewPgxPool(ctx, flagDatabaseURL, true)
	if err != nil {
		return nil, nil, err
	}
	today, err := clock.NewSystem(flagTimezone)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("load time zone %q: %w", flagTimezone, err)
	}
	return newContainer(pool, today), pool.Close, nil
}

func newContainer(pool *pgxpool.Pool, today portssvc.Clock) *portssvc.ServiceContainer {
	return services.NewServiceContainer(pgsql.NewRepositoryProvider(pool), today, nil)
}
