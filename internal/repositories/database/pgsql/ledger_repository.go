package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/club_finance_app/internal/apperrors"
	"github.com/SscSPs/club_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/club_finance_app/internal/core/ports/repositories"
	"github.com/SscSPs/club_finance_app/internal/models"
	"github.com/SscSPs/club_finance_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ledgerColumns = `entry_id, description, amount, kind, category, transaction_date, due_date, player_id,
	player_name, exempt, status, created_at, created_by, last_updated_at, last_updated_by`

// PgxLedgerRepository stores ledger entries.
type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(db *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	query := `
		INSERT INTO ledger_entries (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EntryID, m.Description, m.Amount, m.Kind, m.Category, m.TransactionDate, m.DueDate,
		m.PlayerID, m.PlayerName, m.Exempt, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save ledger entry: %w", err)
	}
	return nil
}

func (r *PgxLedgerRepository) UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	query := `
		UPDATE ledger_entries
		SET description = $2, amount = $3, category = $4, transaction_date = $5, due_date = $6,
			player_name = $7, exempt = $8, status = $9, last_updated_at = $10, last_updated_by = $11
		WHERE entry_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.EntryID, m.Description, m.Amount, m.Category, m.TransactionDate, m.DueDate,
		m.PlayerName, m.Exempt, m.Status, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update ledger entry %s: %w", m.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxLedgerRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM ledger_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete ledger entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxLedgerRepository) FindDuesEntry(ctx context.Context, playerID, description string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries
		WHERE player_id = $1 AND description = $2 AND kind = 'REVENUE';`
	return r.findOne(ctx, query, playerID, description)
}

func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	return r.findOne(ctx, `SELECT `+ledgerColumns+` FROM ledger_entries WHERE entry_id = $1;`, entryID)
}

func (r *PgxLedgerRepository) findOne(ctx context.Context, query string, args ...any) (*domain.LedgerEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entry: %w", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.LedgerEntry])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
	}
	entry := mapping.ToDomainLedgerEntry(m)
	return &entry, nil
}

// FindEntries lists entries newest first. The cursor continues strictly after
// the given (transaction_date, created_at) pair.
func (r *PgxLedgerRepository) FindEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.From != nil {
		add("transaction_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("transaction_date < $%d", *filter.To)
	}
	if filter.Kind != "" {
		add("kind = $%d", string(filter.Kind))
	}
	if filter.Category != "" {
		add("category = $%d", filter.Category)
	}
	if filter.PlayerID != "" {
		add("player_id = $%d", filter.PlayerID)
	}
	if filter.CursorDate != nil && filter.CursorCreatedAt != nil {
		args = append(args, *filter.CursorDate, *filter.CursorCreatedAt)
		conds = append(conds, fmt.Sprintf("(transaction_date, created_at) < ($%d, $%d)", len(args)-1, len(args)))
	}

	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY transaction_date DESC, created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LedgerEntry])
	if err != nil {
		return nil, fmt.Errorf("failed to scan ledger entries: %w", err)
	}
	return mapping.ToDomainLedgerEntrySlice(ms), nil
}
