package services_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/club_finance_app/internal/apperrors"
	"github.com/SscSPs/club_finance_app/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock PlayerRepository ---
type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) FindPlayerByID(ctx context.Context, playerID string) (*domain.Player, error) {
	args := m.Called(ctx, playerID)
	var p *domain.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*domain.Player)
	}
	return p, args.Error(1)
}

func (m *MockPlayerRepository) FindPlayers(ctx context.Context, filter domain.PlayerFilter) ([]domain.Player, error) {
	args := m.Called(ctx, filter)
	var players []domain.Player
	if args.Get(0) != nil {
		players = args.Get(0).([]domain.Player)
	}
	return players, args.Error(1)
}

func (m *MockPlayerRepository) ListDuesRecords(ctx context.Context) ([]domain.PlayerDuesRecord, error) {
	args := m.Called(ctx)
	var records []domain.PlayerDuesRecord
	if args.Get(0) != nil {
		records = args.Get(0).([]domain.PlayerDuesRecord)
	}
	return records, args.Error(1)
}

func (m *MockPlayerRepository) SavePlayer(ctx context.Context, player domain.Player) error {
	args := m.Called(ctx, player)
	return args.Error(0)
}

func (m *MockPlayerRepository) UpdatePlayer(ctx context.Context, player domain.Player, previousName string) error {
	args := m.Called(ctx, player, previousName)
	return args.Error(0)
}

func (m *MockPlayerRepository) UpdatePlayerDues(ctx context.Context, record domain.PlayerDuesRecord, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, record, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockPlayerRepository) DeletePlayer(ctx context.Context, playerID string) error {
	args := m.Called(ctx, playerID)
	return args.Error(0)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindDuesEntry(ctx context.Context, playerID, description string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, playerID, description)
	var e *domain.LedgerEntry
	if args.Get(0) != nil {
		e = args.Get(0).(*domain.LedgerEntry)
	}
	return e, args.Error(1)
}

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	var e *domain.LedgerEntry
	if args.Get(0) != nil {
		e = args.Get(0).(*domain.LedgerEntry)
	}
	return e, args.Error(1)
}

func (m *MockLedgerRepository) FindEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, filter)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	return entries, args.Error(1)
}

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetLedgerTotals(ctx context.Context, from, to time.Time) (domain.LedgerTotals, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(domain.LedgerTotals), args.Error(1)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var u *domain.User
	if args.Get(0) != nil {
		u = args.Get(0).(*domain.User)
	}
	return u, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var u *domain.User
	if args.Get(0) != nil {
		u = args.Get(0).(*domain.User)
	}
	return u, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock EventPublisher ---
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishPaymentStatusChanged(ctx context.Context, event domain.PaymentStatusChanged) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishFinancialSummaryChanged(ctx context.Context, event domain.FinancialSummaryChanged) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) Summarize(ctx context.Context, year int) (*domain.FinancialSummary, error) {
	args := m.Called(ctx, year)
	var s *domain.FinancialSummary
	if args.Get(0) != nil {
		s = args.Get(0).(*domain.FinancialSummary)
	}
	return s, args.Error(1)
}

// memoryLedger is an in-memory ledger store. Set failOn to make one operation
// fail with failErr.
type memoryLedger struct {
	mu      sync.Mutex
	entries map[string]domain.LedgerEntry
	failOn  string
	failErr error
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{entries: make(map[string]domain.LedgerEntry)}
}

func (l *memoryLedger) fail(op string) error {
	if l.failOn == op {
		return l.failErr
	}
	return nil
}

func (l *memoryLedger) FindDuesEntry(_ context.Context, playerID, description string) (*domain.LedgerEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.fail("lookup"); err != nil {
		return nil, err
	}
	for _, e := range l.entries {
		if e.Kind == domain.KindRevenue && e.PlayerID != nil && *e.PlayerID == playerID && e.Description == description {
			found := e
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (l *memoryLedger) FindEntryByID(_ context.Context, entryID string) (*domain.LedgerEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[entryID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (l *memoryLedger) FindEntries(_ context.Context, _ domain.LedgerFilter) ([]domain.LedgerEntry, error) {
	return l.all(), nil
}

func (l *memoryLedger) SaveEntry(_ context.Context, entry domain.LedgerEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.fail("create"); err != nil {
		return err
	}
	for _, e := range l.entries {
		if e.Kind == domain.KindRevenue && entry.Kind == domain.KindRevenue &&
			e.PlayerID != nil && entry.PlayerID != nil && *e.PlayerID == *entry.PlayerID &&
			e.Description == entry.Description {
			return apperrors.ErrDuplicate
		}
	}
	l.entries[entry.EntryID] = entry
	return nil
}

func (l *memoryLedger) UpdateEntry(_ context.Context, entry domain.LedgerEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.fail("update"); err != nil {
		return err
	}
	if _, ok := l.entries[entry.EntryID]; !ok {
		return apperrors.ErrNotFound
	}
	l.entries[entry.EntryID] = entry
	return nil
}

func (l *memoryLedger) DeleteEntry(_ context.Context, entryID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.fail("delete"); err != nil {
		return err
	}
	if _, ok := l.entries[entryID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(l.entries, entryID)
	return nil
}

// renamePlayer rekeys the player's dues entries from oldName to newName and
// leaves everything untouched on a key collision.
func (l *memoryLedger) renamePlayer(playerID, oldName, newName string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	oldKeys, newKeys := domain.DuesDescriptions(oldName), domain.DuesDescriptions(newName)
	renames := make(map[string]string, len(oldKeys))
	for i := range oldKeys {
		renames[oldKeys[i]] = newKeys[i]
	}
	taken := make(map[string]bool)
	for _, e := range l.entries {
		if e.Kind == domain.KindRevenue && e.PlayerID != nil && *e.PlayerID == playerID {
			if _, moving := renames[e.Description]; !moving {
				taken[e.Description] = true
			}
		}
	}
	for _, key := range newKeys {
		if taken[key] {
			return apperrors.ErrDuplicate
		}
	}
	for id, e := range l.entries {
		if e.PlayerID == nil || *e.PlayerID != playerID {
			continue
		}
		if to, ok := renames[e.Description]; ok && e.Kind == domain.KindRevenue {
			e.Description = to
		}
		name := newName
		e.PlayerName = &name
		l.entries[id] = e
	}
	return nil
}

// all returns the entries sorted by description.
func (l *memoryLedger) all() []domain.LedgerEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.LedgerEntry, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Description < out[j].Description })
	return out
}

// memoryPlayers is an in-memory roster store. When ledger is set, renames
// are carried over to it.
type memoryPlayers struct {
	mu      sync.Mutex
	players map[string]domain.Player
	ledger  *memoryLedger
	writes  int
}

func newMemoryPlayers(players ...domain.Player) *memoryPlayers {
	m := &memoryPlayers{players: make(map[string]domain.Player)}
	for _, p := range players {
		m.players[p.PlayerID] = p
	}
	return m
}

func (m *memoryPlayers) FindPlayerByID(_ context.Context, playerID string) (*domain.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.players[playerID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	p.Dues.Slots = append([]domain.CalendarSlot(nil), p.Dues.Slots...)
	return &p, nil
}

func (m *memoryPlayers) FindPlayers(_ context.Context, _ domain.PlayerFilter) ([]domain.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Player, 0, len(m.players))
	for _, p := range m.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memoryPlayers) ListDuesRecords(_ context.Context) ([]domain.PlayerDuesRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.PlayerDuesRecord, 0, len(m.players))
	for _, p := range m.players {
		out = append(out, p.Dues)
	}
	return out, nil
}

func (m *memoryPlayers) SavePlayer(_ context.Context, player domain.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players[player.PlayerID] = player
	return nil
}

func (m *memoryPlayers) UpdatePlayer(_ context.Context, player domain.Player, previousName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.players[player.PlayerID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if previousName != player.Name && m.ledger != nil {
		if err := m.ledger.renamePlayer(player.PlayerID, previousName, player.Name); err != nil {
			return err
		}
	}
	player.Dues = stored.Dues
	m.players[player.PlayerID] = player
	m.writes++
	return nil
}

func (m *memoryPlayers) UpdatePlayerDues(_ context.Context, record domain.PlayerDuesRecord, updatedBy string, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.players[record.PlayerID]
	if !ok {
		return apperrors.ErrNotFound
	}
	record.Slots = append([]domain.CalendarSlot(nil), record.Slots...)
	p.Dues = record
	p.Touch(updatedBy, updatedAt)
	m.players[record.PlayerID] = p
	m.writes++
	return nil
}

func (m *memoryPlayers) DeletePlayer(_ context.Context, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.players[playerID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.players, playerID)
	return nil
}

func (m *memoryPlayers) get(playerID string) domain.Player {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.players[playerID]
}
