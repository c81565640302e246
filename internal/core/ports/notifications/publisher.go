package notifications

import (
	"context"

	"github.com/SscSPs/club_finance_app/internal/core/domain"
)

// EventPublisher delivers change notifications to subscribers. Delivery is
// best effort and at most once.
type EventPublisher interface {
	PublishPaymentStatusChanged(ctx context.Context, event domain.PaymentStatusChanged) error
	PublishFinancialSummaryChanged(ctx context.Context, event domain.FinancialSummaryChanged) error
}
