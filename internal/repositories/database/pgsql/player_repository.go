package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/club_finance_app/internal/apperrors"
	"github.com/SscSPs/club_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/club_finance_app/internal/core/ports/repositories"
	"github.com/SscSPs/club_finance_app/internal/models"
	"github.com/SscSPs/club_finance_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const playerColumns = `player_id, name, position, level, phone, email, birth_date, dues_year, payments,
	financial_status, created_at, created_by, last_updated_at, last_updated_by`

// PgxPlayerRepository stores players and their dues calendars.
type PgxPlayerRepository struct {
	BaseRepository
}

func newPgxPlayerRepository(db *pgxpool.Pool) portsrepo.PlayerRepositoryFacade {
	return &PgxPlayerRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.PlayerRepositoryFacade = (*PgxPlayerRepository)(nil)

func (r *PgxPlayerRepository) SavePlayer(ctx context.Context, player domain.Player) error {
	m, err := mapping.ToModelPlayer(player)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO players (` + playerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = r.Pool.Exec(ctx, query,
		m.PlayerID, m.Name, m.Position, m.Level, m.Phone, m.Email, m.BirthDate,
		m.DuesYear, m.Payments, m.FinancialStatus,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: player %s", apperrors.ErrDuplicate, m.PlayerID)
		}
		return fmt.Errorf("failed to save player: %w", err)
	}
	return nil
}

func (r *PgxPlayerRepository) FindPlayerByID(ctx context.Context, playerID string) (*domain.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE player_id = $1;`
	rows, err := r.Pool.Query(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query player %s: %w", playerID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Player])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan player %s: %w", playerID, err)
	}
	player, err := mapping.ToDomainPlayer(m)
	if err != nil {
		return nil, err
	}
	return &player, nil
}

func (r *PgxPlayerRepository) FindPlayers(ctx context.Context, filter domain.PlayerFilter) ([]domain.Player, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Position != "" {
		args = append(args, string(filter.Position))
		conds = append(conds, fmt.Sprintf("position = $%d", len(args)))
	}
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	query := `SELECT ` + playerColumns + ` FROM players`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY name, player_id;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Player])
	if err != nil {
		return nil, fmt.Errorf("failed to scan players: %w", err)
	}

	players := make([]domain.Player, 0, len(ms))
	for _, m := range ms {
		p, err := mapping.ToDomainPlayer(m)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, nil
}

func (r *PgxPlayerRepository) ListDuesRecords(ctx context.Context) ([]domain.PlayerDuesRecord, error) {
	rows, err := r.Pool.Query(ctx, `SELECT player_id, name, dues_year, payments, financial_status FROM players;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query dues records: %w", err)
	}
	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PlayerDuesRecord, error) {
		var (
			rec      domain.PlayerDuesRecord
			payments []byte
			status   string
		)
		if err := row.Scan(&rec.PlayerID, &rec.PlayerName, &rec.Year, &payments, &status); err != nil {
			return rec, err
		}
		slots, err := mapping.DecodeSlots(payments)
		if err != nil {
			return rec, fmt.Errorf("player %s: %w", rec.PlayerID, err)
		}
		rec.Slots = slots
		rec.AggregateStatus = domain.FinancialStatus(status)
		return rec, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan dues records: %w", err)
	}
	return records, nil
}

// renameDuesEntriesQuery rekeys dues entries from the old descriptions ($2)
// to the new ones ($3), matched by position.
const renameDuesEntriesQuery = `
		UPDATE ledger_entries AS le
		SET description = k.new_description, last_updated_at = $4, last_updated_by = $5
		FROM unnest($2::text[], $3::text[]) AS k(old_description, new_description)
		WHERE le.player_id = $1 AND le.kind = 'REVENUE' AND le.description = k.old_description;
	`

func (r *PgxPlayerRepository) UpdatePlayer(ctx context.Context, player domain.Player, previousName string) (err error) {
	m, err := mapping.ToModelPlayer(player)
	if err != nil {
		return err
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = r.Rollback(ctx, tx)
		}
	}()

	query := `
		UPDATE players
		SET name = $2, position = $3, level = $4, phone = $5, email = $6, birth_date = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE player_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.PlayerID, m.Name, m.Position, m.Level, m.Phone, m.Email, m.BirthDate,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update player %s: %w", m.PlayerID, err)
	}
	if tag.RowsAffected() == 0 {
		err = apperrors.ErrNotFound
		return err
	}

	if previousName != player.Name {
		_, err = tx.Exec(ctx, renameDuesEntriesQuery, m.PlayerID,
			domain.DuesDescriptions(previousName), domain.DuesDescriptions(player.Name),
			m.LastUpdatedAt, m.LastUpdatedBy)
		if err != nil {
			if isUniqueViolation(err) {
				err = fmt.Errorf("%w: a revenue entry named after %q already exists for player %s", apperrors.ErrDuplicate, player.Name, m.PlayerID)
				return err
			}
			return fmt.Errorf("failed to rename dues entries of player %s: %w", m.PlayerID, err)
		}
		_, err = tx.Exec(ctx, `UPDATE ledger_entries SET player_name = $2 WHERE player_id = $1;`, m.PlayerID, m.Name)
		if err != nil {
			return fmt.Errorf("failed to rename ledger entries of player %s: %w", m.PlayerID, err)
		}
	}
	return r.Commit(ctx, tx)
}

func (r *PgxPlayerRepository) UpdatePlayerDues(ctx context.Context, record domain.PlayerDuesRecord, updatedBy string, updatedAt time.Time) error {
	payments, err := mapping.EncodeSlots(record.Slots)
	if err != nil {
		return err
	}
	query := `
		UPDATE players
		SET dues_year = $2, payments = $3, financial_status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE player_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, record.PlayerID, record.Year, payments, string(record.AggregateStatus), updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update dues of player %s: %w", record.PlayerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeletePlayer removes the player's dues entries and the player in one transaction.
func (r *PgxPlayerRepository) DeletePlayer(ctx context.Context, playerID string) (err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = r.Rollback(ctx, tx)
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM ledger_entries WHERE player_id = $1 AND category = $2;`, playerID, domain.CategoryDues); err != nil {
		return fmt.Errorf("failed to delete dues entries of player %s: %w", playerID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM players WHERE player_id = $1;`, playerID)
	if err != nil {
		return fmt.Errorf("failed to delete player %s: %w", playerID, err)
	}
	if tag.RowsAffected() == 0 {
		err = apperrors.ErrNotFound
		return err
	}
	return r.Commit(ctx, tx)
}
