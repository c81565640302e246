package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/SscSPs/club_finance_app/internal/apperrors"
	"github.com/SscSPs/club_finance_app/internal/core/domain"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rebuildLedgerCmd)
	rootCmd.AddCommand(reconcilePlayerCmd)

	rebuildLedgerCmd.Flags().String("amount", "", "Monthly fee to record (defaults to DUES_AMOUNT)")
	reconcilePlayerCmd.Flags().String("amount", "", "Monthly fee to record (defaults to DUES_AMOUNT)")
}

var rebuildLedgerCmd = &cobra.Command{
	Use:   "rebuild-ledger",
	Short: "Re-derive the dues ledger entries of every player",
	Long: `Re-derive the dues ledger entries of every player from the stored calendars.
Safe to run repeatedly: months already in step are left untouched.`,
	Args: cobra.NoArgs,
	RunE: runRebuildLedger,
}

func runRebuildLedger(cmd *cobra.Command, args []string) error {
	amount, err := amountFlag(cmd, "amount")
	if err != nil {
		return err
	}
	a, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	report, err := a.services.Dues.RebuildLedger(cmd.Context(), amount)
	if err != nil {
		return fmt.Errorf("rebuild ledger: %w", err)
	}
	if err := printReport(cmd.OutOrStdout(), report); err != nil {
		return err
	}
	if report.Failures > 0 {
		return fmt.Errorf("%d month(s) could not be synchronized", report.Failures)
	}
	return nil
}

var reconcilePlayerCmd = &cobra.Command{
	Use:   "reconcile-player PLAYER_ID",
	Short: "Re-derive the dues ledger entries of one player",
	Args:  cobra.ExactArgs(1),
	RunE:  runReconcilePlayer,
}

func runReconcilePlayer(cmd *cobra.Command, args []string) error {
	amount, err := amountFlag(cmd, "amount")
	if err != nil {
		return err
	}
	a, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	report, err := a.services.Dues.ReconcilePlayer(cmd.Context(), args[0], amount)
	if report != nil {
		if perr := printReport(cmd.OutOrStdout(), report); perr != nil {
			return perr
		}
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrLedgerSyncFailed) && report != nil {
			return fmt.Errorf("%d month(s) could not be synchronized: %w", report.Failures, err)
		}
		return fmt.Errorf("reconcile player: %w", err)
	}
	return nil
}

func printReport(w io.Writer, report *domain.ReconcileReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
