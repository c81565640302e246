package pgsql

import (
	portsrepo "github.com/SscSPs/club_finance_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		PlayerRepo:    newPgxPlayerRepository(dbPool),
		LedgerRepo:    newPgxLedgerRepository(dbPool),
		ReportingRepo: newReportingRepository(dbPool),
		UserRepo:      newPgxUserRepository(dbPool),
	}
}
