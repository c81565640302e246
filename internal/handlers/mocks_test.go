package handlers_test

import (
	"context"

	"github.com/SscSPs/club_finance_app/internal/core/domain"
	portssvc "github.com/SscSPs/club_finance_app/internal/core/ports/services"
	"github.com/SscSPs/club_finance_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock PlayerService ---
type MockPlayerService struct {
	mock.Mock
}

func (m *MockPlayerService) GetPlayerByID(ctx context.Context, playerID string) (*domain.Player, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Player), args.Error(1)
}

func (m *MockPlayerService) ListPlayers(ctx context.Context, params dto.ListPlayersParams) ([]domain.Player, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Player), args.Error(1)
}

func (m *MockPlayerService) CreatePlayer(ctx context.Context, req dto.CreatePlayerRequest, creatorUserID string) (*domain.Player, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Player), args.Error(1)
}

func (m *MockPlayerService) UpdatePlayer(ctx context.Context, playerID string, req dto.UpdatePlayerRequest, userID string) (*domain.Player, error) {
	args := m.Called(ctx, playerID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Player), args.Error(1)
}

func (m *MockPlayerService) DeletePlayer(ctx context.Context, playerID string, requestingUserID string) error {
	args := m.Called(ctx, playerID, requestingUserID)
	return args.Error(0)
}

var _ portssvc.PlayerSvcFacade = (*MockPlayerService)(nil)

// --- Mock DuesService ---
type MockDuesService struct {
	mock.Mock
}

func (m *MockDuesService) GetDues(ctx context.Context, playerID string) (*domain.DuesView, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DuesView), args.Error(1)
}

func (m *MockDuesService) SetSlot(ctx context.Context, playerID string, monthIndex int, req dto.SetSlotRequest, userID string) (*domain.SlotUpdateResult, error) {
	args := m.Called(ctx, playerID, monthIndex, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SlotUpdateResult), args.Error(1)
}

func (m *MockDuesService) ReconcilePlayer(ctx context.Context, playerID string, duesAmount *decimal.Decimal) (*domain.ReconcileReport, error) {
	args := m.Called(ctx, playerID, duesAmount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconcileReport), args.Error(1)
}

func (m *MockDuesService) RebuildLedger(ctx context.Context, duesAmount *decimal.Decimal) (*domain.ReconcileReport, error) {
	args := m.Called(ctx, duesAmount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconcileReport), args.Error(1)
}

var _ portssvc.DuesSvcFacade = (*MockDuesService)(nil)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, entryID string, requestingUserID string) error {
	args := m.Called(ctx, entryID, requestingUserID)
	return args.Error(0)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) Summarize(ctx context.Context, year int) (*domain.FinancialSummary, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialSummary), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)
