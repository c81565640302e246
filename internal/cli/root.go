package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/club_finance_app/internal/adapters/events"
	portssvc "github.com/SscSPs/club_finance_app/internal/core/ports/services"
	"github.com/SscSPs/club_finance_app/internal/core/services"
	"github.com/SscSPs/club_finance_app/internal/platform/config"
	"github.com/SscSPs/club_finance_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/club_finance_app/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "club_admin",
	Short: "Administrative tasks for the club finance backend",
	Long: `club_admin runs maintenance tasks against the club finance database:
schema migrations, operator accounts and dues ledger repair.
Configuration is read from the same environment as the server.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// app bundles what the data commands need.
type app struct {
	cfg      *config.Config
	services *portssvc.ServiceContainer
	close    func()
}

// bootstrap connects to the database and wires the services. Events are
// logged rather than published.
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return nil, err
	}
	container, err := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool), events.LogPublisher{})
	if err != nil {
		database.ClosePgxPool(pool)
		return nil, err
	}
	return &app{
		cfg:      cfg,
		services: container,
		close:    func() { database.ClosePgxPool(pool) },
	}, nil
}

// amountFlag reads an optional decimal flag. An empty value means "use the configured fee".
func amountFlag(cmd *cobra.Command, name string) (*decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return nil, nil
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: %w", name, raw, err)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("--%s cannot be negative", name)
	}
	return &amount, nil
}
