package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/club_finance_app/internal/apperrors"
	"github.com/SscSPs/club_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDuesDescription(t *testing.T) {
	assert.Equal(t, "Mensalidade Janeiro - Carlos", domain.DuesDescription(0, "Carlos"))
	assert.Equal(t, "Mensalidade Março - Ana Paula", domain.DuesDescription(2, "Ana Paula"))
	assert.Equal(t, "Mensalidade Dezembro - Zé", domain.DuesDescription(11, "Zé"))
	assert.Equal(t, "", domain.MonthName(12))
}

func TestDuesDescriptions(t *testing.T) {
	keys := domain.DuesDescriptions("Carlos")

	assert.Len(t, keys, domain.MonthsPerYear)
	assert.Equal(t, "Mensalidade Janeiro - Carlos", keys[0])
	assert.Equal(t, "Mensalidade Dezembro - Carlos", keys[11])
}

func TestLedgerEntry_RefreshStatus(t *testing.T) {
	due := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	before := due.AddDate(0, 0, -1)
	after := due.AddDate(0, 0, 1)

	tests := []struct {
		name  string
		entry domain.LedgerEntry
		now   time.Time
		want  domain.EntryStatus
	}{
		{"exempt wins over overdue", domain.LedgerEntry{Kind: domain.KindRevenue, Category: domain.CategoryDues, Exempt: true, DueDate: &due}, after, domain.EntryExempt},
		{"overdue when past due without amount", domain.LedgerEntry{Kind: domain.KindRevenue, Category: domain.CategoryDues, DueDate: &due}, after, domain.EntryOverdue},
		{"paid when amount recorded", domain.LedgerEntry{Kind: domain.KindRevenue, Category: domain.CategoryDues, Amount: decimal.NewFromInt(50), DueDate: &due}, after, domain.EntryPaid},
		{"pending before due date", domain.LedgerEntry{Kind: domain.KindRevenue, Category: domain.CategoryDues, DueDate: &due}, before, domain.EntryPending},
		{"non dues entries settle immediately", domain.LedgerEntry{Kind: domain.KindExpense, Category: domain.CategoryOther}, after, domain.EntryPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := tt.entry
			e.RefreshStatus(tt.now)
			assert.Equal(t, tt.want, e.Status)
		})
	}
}

func TestLedgerEntry_Validate(t *testing.T) {
	valid := domain.LedgerEntry{
		Description:     "Aluguel do campo",
		Amount:          decimal.NewFromInt(300),
		Kind:            domain.KindExpense,
		TransactionDate: time.Now(),
	}
	assert.NoError(t, valid.Validate())

	noDesc := valid
	noDesc.Description = "  "
	assert.ErrorIs(t, noDesc.Validate(), apperrors.ErrValidation)

	negative := valid
	negative.Amount = decimal.NewFromInt(-1)
	assert.ErrorIs(t, negative.Validate(), apperrors.ErrValidation)

	badKind := valid
	badKind.Kind = "TRANSFER"
	assert.ErrorIs(t, badKind.Validate(), apperrors.ErrValidation)

	noDate := valid
	noDate.TransactionDate = time.Time{}
	assert.ErrorIs(t, noDate.Validate(), apperrors.ErrValidation)
}

func TestLedgerEntry_ValidateExempt(t *testing.T) {
	exempt := domain.LedgerEntry{
		Description:     "Mensalidade Março - Carlos",
		Amount:          decimal.Zero,
		Kind:            domain.KindRevenue,
		TransactionDate: time.Now(),
		Exempt:          true,
	}
	assert.NoError(t, exempt.Validate())

	withAmount := exempt
	withAmount.Amount = decimal.NewFromInt(100)
	assert.ErrorIs(t, withAmount.Validate(), apperrors.ErrValidation)

	expense := exempt
	expense.Kind = domain.KindExpense
	assert.ErrorIs(t, expense.Validate(), apperrors.ErrValidation)
}

func TestYearWindow(t *testing.T) {
	from, to := domain.YearWindow(2024, nil)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), to)
}
