package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/club_finance_app/internal/apperrors"
	"github.com/SscSPs/club_finance_app/internal/core/domain"
	portssvc "github.com/SscSPs/club_finance_app/internal/core/ports/services"
	"github.com/SscSPs/club_finance_app/internal/core/services"
	"github.com/SscSPs/club_finance_app/internal/dto"
	"github.com/SscSPs/club_finance_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	ledgerRepo *MockLedgerRepository
	playerRepo *MockPlayerRepository
	service    portssvc.TransactionSvcFacade
	ctx        context.Context
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.ledgerRepo = new(MockLedgerRepository)
	suite.playerRepo = new(MockPlayerRepository)
	suite.service = services.NewTransactionService(suite.ledgerRepo, suite.playerRepo, services.WithClock(fixedClock))
	suite.ctx = context.Background()
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ExpenseDefaults() {
	req := dto.CreateTransactionRequest{
		Description: "Aluguel do campo",
		Amount:      decimal.NewFromInt(300),
		Kind:        domain.KindExpense,
	}
	suite.ledgerRepo.On("SaveEntry", suite.ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.Category == domain.CategoryOther && e.TransactionDate.Equal(fixedNow) && e.Status == domain.EntryPaid
	})).Return(nil).Once()

	entry, err := suite.service.CreateTransaction(suite.ctx, req, "admin")

	suite.Require().NoError(err)
	suite.Equal("admin", entry.CreatedBy)
	suite.ledgerRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RevenueForPlayer() {
	p := newPlayer("player-1", "Carlos")
	pid := "player-1"
	suite.playerRepo.On("FindPlayerByID", suite.ctx, pid).Return(&p, nil).Once()
	suite.ledgerRepo.On("SaveEntry", suite.ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.Category == domain.CategoryDues && e.PlayerName != nil && *e.PlayerName == "Carlos"
	})).Return(nil).Once()

	entry, err := suite.service.CreateTransaction(suite.ctx, dto.CreateTransactionRequest{
		Description: "Mensalidade avulsa",
		Amount:      decimal.NewFromInt(50),
		Kind:        domain.KindRevenue,
		PlayerID:    &pid,
	}, "admin")

	suite.Require().NoError(err)
	suite.Equal(domain.EntryPaid, entry.Status)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnknownPlayer() {
	pid := "ghost"
	suite.playerRepo.On("FindPlayerByID", suite.ctx, pid).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateTransaction(suite.ctx, dto.CreateTransactionRequest{
		Description: "x", Amount: decimal.NewFromInt(1), Kind: domain.KindRevenue, PlayerID: &pid,
	}, "admin")

	suite.ErrorIs(err, apperrors.ErrPlayerNotFound)
	suite.ledgerRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Validation() {
	tests := []struct {
		name string
		req  dto.CreateTransactionRequest
	}{
		{"negative amount", dto.CreateTransactionRequest{Description: "x", Amount: decimal.NewFromInt(-5), Kind: domain.KindExpense}},
		{"unknown kind", dto.CreateTransactionRequest{Description: "x", Amount: decimal.NewFromInt(5), Kind: "GIFT"}},
		{"exempt expense", dto.CreateTransactionRequest{Description: "x", Amount: decimal.Zero, Kind: domain.KindExpense, Exempt: true}},
		{"exempt revenue with amount", dto.CreateTransactionRequest{Description: "x", Amount: decimal.NewFromInt(100), Kind: domain.KindRevenue, Exempt: true}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.service.CreateTransaction(suite.ctx, tt.req, "admin")
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.ledgerRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ExemptRevenueIsZero() {
	suite.ledgerRepo.On("SaveEntry", suite.ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.Exempt && e.Amount.IsZero() && e.Kind == domain.KindRevenue
	})).Return(nil).Once()

	entry, err := suite.service.CreateTransaction(suite.ctx, dto.CreateTransactionRequest{
		Description: "Isenção torneio",
		Amount:      decimal.Zero,
		Kind:        domain.KindRevenue,
		Exempt:      true,
	}, "admin")

	suite.Require().NoError(err)
	suite.True(entry.Exempt)
	suite.ledgerRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactions_MonthWindowAndPaging() {
	entries := make([]domain.LedgerEntry, 3)
	for i := range entries {
		entries[i] = domain.LedgerEntry{
			EntryID:         string(rune('a' + i)),
			TransactionDate: time.Date(2024, 3, 20-i, 0, 0, 0, 0, time.UTC),
			AuditFields:     domain.NewAuditFields("admin", fixedNow),
		}
	}
	suite.ledgerRepo.On("FindEntries", suite.ctx, mock.MatchedBy(func(f domain.LedgerFilter) bool {
		return f.Limit == 3 && f.From.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) &&
			f.To.Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)) && f.Kind == domain.KindRevenue
	})).Return(entries, nil).Once()

	resp, err := suite.service.ListTransactions(suite.ctx, dto.ListTransactionsParams{Month: "2024-03", Kind: "REVENUE", Limit: 2})

	suite.Require().NoError(err)
	suite.Len(resp.Transactions, 2)
	suite.Require().NotNil(resp.NextToken)
	date, createdAt, err := pagination.DecodeToken(*resp.NextToken)
	suite.Require().NoError(err)
	suite.True(date.Equal(entries[1].TransactionDate))
	suite.True(createdAt.Equal(fixedNow))
}

func (suite *TransactionServiceTestSuite) TestListTransactions_CursorIsForwarded() {
	token := pagination.EncodeToken(fixedNow, fixedNow)
	suite.ledgerRepo.On("FindEntries", suite.ctx, mock.MatchedBy(func(f domain.LedgerFilter) bool {
		return f.CursorDate != nil && f.CursorDate.Equal(fixedNow) && f.Limit == 51
	})).Return([]domain.LedgerEntry{}, nil).Once()

	resp, err := suite.service.ListTransactions(suite.ctx, dto.ListTransactionsParams{NextToken: &token})

	suite.Require().NoError(err)
	suite.Empty(resp.Transactions)
	suite.Nil(resp.NextToken)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_BadInput() {
	bad := "%%%"
	_, err := suite.service.ListTransactions(suite.ctx, dto.ListTransactionsParams{NextToken: &bad, Limit: 10})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.ListTransactions(suite.ctx, dto.ListTransactionsParams{Month: "2024-13", Limit: 10})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction() {
	suite.ledgerRepo.On("DeleteEntry", suite.ctx, "e1").Return(nil).Once()
	suite.ledgerRepo.On("DeleteEntry", suite.ctx, "e2").Return(apperrors.ErrNotFound).Once()
	suite.ledgerRepo.On("DeleteEntry", suite.ctx, "e3").Return(errors.New("boom")).Once()

	suite.NoError(suite.service.DeleteTransaction(suite.ctx, "e1", "admin"))
	suite.ErrorIs(suite.service.DeleteTransaction(suite.ctx, "e2", "admin"), apperrors.ErrNotFound)
	suite.Error(suite.service.DeleteTransaction(suite.ctx, "e3", "admin"))
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
