package services

import (
	"fmt"

	"github.com/SscSPs/club_finance_app/internal/core/domain"
	"github.com/SscSPs/club_finance_app/internal/core/ports/notifications"
	portsrepo "github.com/SscSPs/club_finance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/club_finance_app/internal/core/ports/services"
	"github.com/SscSPs/club_finance_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher notifications.EventPublisher) (*portssvc.ServiceContainer, error) {
	resolver, err := domain.ResolverForPolicy(cfg.DuesStatusPolicy)
	if err != nil {
		return nil, fmt.Errorf("status policy: %w", err)
	}
	calendar := cfg.DuesCalendar()
	base := WithLocation(cfg.ClubLocation)
	playerLocks := newKeyedMutex()

	container := &portssvc.ServiceContainer{}

	container.Reporting = NewReportingService(repos.ReportingRepo, repos.PlayerRepo,
		WithReportingCalendar(calendar),
		WithReportingBase(base),
	)

	reconciler := NewLedgerReconciler(repos.LedgerRepo, base)
	container.Dues = NewDuesService(repos.PlayerRepo, reconciler,
		WithStatusResolver(resolver),
		WithDuesCalendar(calendar),
		WithDefaultDuesAmount(cfg.DuesAmount),
		WithEventPublisher(publisher),
		WithReportingService(container.Reporting),
		WithDuesBase(base),
		withDuesPlayerLocks(playerLocks),
	)

	container.Player = NewPlayerService(repos.PlayerRepo,
		WithPlayerStatusResolver(resolver),
		WithPlayerCalendar(calendar),
		WithPlayerBase(base),
		withPlayerLocks(playerLocks),
	)
	container.Transaction = NewTransactionService(repos.LedgerRepo, repos.PlayerRepo, base)
	container.User = NewUserService(repos.UserRepo, base)

	return container, nil
}
