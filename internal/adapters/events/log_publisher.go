package events

import (
	"context"
	"log/slog"

	"github.com/SscSPs/club_finance_app/internal/core/domain"
	"github.com/SscSPs/club_finance_app/internal/core/ports/notifications"
	"github.com/SscSPs/club_finance_app/internal/middleware"
)

// LogPublisher writes events to the request logger. It is used when no broker
// is configured.
type LogPublisher struct{}

var _ notifications.EventPublisher = LogPublisher{}

func (LogPublisher) PublishPaymentStatusChanged(ctx context.Context, event domain.PaymentStatusChanged) error {
	middleware.GetLoggerFromCtx(ctx).Info("Payment status changed",
		slog.String("routing_key", RoutingKeyPaymentStatus),
		slog.String("player_id", event.PlayerID),
		slog.Int("month_index", event.MonthIndex),
		slog.Bool("paid", event.Paid),
		slog.Bool("exempt", event.Exempt),
		slog.String("status", string(event.AggregateStatus)))
	return nil
}

func (LogPublisher) PublishFinancialSummaryChanged(ctx context.Context, event domain.FinancialSummaryChanged) error {
	middleware.GetLoggerFromCtx(ctx).Info("Financial summary changed",
		slog.String("routing_key", RoutingKeyFinancialSummary),
		slog.Int("year", event.Year),
		slog.String("revenue", event.TotalRevenue.String()),
		slog.String("expense", event.TotalExpense.String()),
		slog.String("balance", event.Balance.String()))
	return nil
}
