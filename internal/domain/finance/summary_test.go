package finance

import (
	"testing"

	"github.com/festivo/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func entry(kind EntryKind, category string, amount string, isBudget bool) Entry {
	return Entry{
		Kind:        kind,
		Category:    category,
		AmountExVAT: dec(amount),
		IsBudget:    isBudget,
	}
}

func TestBudgetActualByCategory(t *testing.T) {
	t.Run("splits budget and actual per category", func(t *testing.T) {
		entries := []Entry{
			entry(KindExpense, "Artister", "50000", true),
			entry(KindExpense, "Artister", "42000", false),
			entry(KindExpense, "Artister", "8000", false),
		}

		lines := BudgetActualByCategory(entries)
		require.Len(t, lines, 1)
		assert.Equal(t, "Artister", lines[0].Category)
		assert.True(t, lines[0].Budget.Equal(dec("50000")))
		assert.True(t, lines[0].Actual.Equal(dec("50000")))
	})

	t.Run("never merges income and expense categories with the same label", func(t *testing.T) {
		entries := []Entry{
			entry(KindIncome, "Sponsor", "10000", false),
			entry(KindExpense, "Sponsor", "2000", false),
		}

		lines := BudgetActualByCategory(entries)
		require.Len(t, lines, 2)
		assert.Equal(t, KindIncome, lines[0].Kind)
		assert.Equal(t, KindExpense, lines[1].Kind)
	})

	t.Run("income lines first, then expenses, alphabetical", func(t *testing.T) {
		entries := []Entry{
			entry(KindExpense, "Leie", "1", false),
			entry(KindIncome, "Billetter", "1", false),
			entry(KindExpense, "Artister", "1", false),
		}

		lines := BudgetActualByCategory(entries)
		require.Len(t, lines, 3)
		assert.Equal(t, "Billetter", lines[0].Category)
		assert.Equal(t, "Artister", lines[1].Category)
		assert.Equal(t, "Leie", lines[2].Category)
	})
}

func TestComputeEconomySummary(t *testing.T) {
	entries := []Entry{
		entry(KindIncome, "Billetter", "1000", false),
		entry(KindExpense, "Artister", "600", false),
		entry(KindIncome, "Budsjettpost", "99999", true), // budget rows never count
	}

	s := ComputeEconomySummary(entries)
	assert.True(t, s.IncomeTotal.Equal(dec("1000")))
	assert.True(t, s.ExpenseTotal.Equal(dec("600")))
	assert.True(t, s.Result.Equal(dec("400")))
}

func TestEntryVATFallback(t *testing.T) {
	e := entry(KindExpense, "Leie", "100", false)
	e.VATRate = decPtr("0.25")

	assert.True(t, e.VAT().Equal(dec("25")), "missing VAT amount derives from rate")
	assert.True(t, e.AmountIncVAT().Equal(dec("125")))

	explicit := dec("20")
	e.VATAmount = &explicit
	assert.True(t, e.VAT().Equal(dec("20")), "explicit VAT amount wins")
}

func TestTaxLines(t *testing.T) {
	e1 := entry(KindIncome, "Billetter", "100", false)
	e1.VATRate = decPtr("0.25")
	e2 := entry(KindIncome, "Budsjett", "500", true)
	e3 := entry(KindExpense, "Leie", "100", false)

	lines := TaxLines([]Entry{e1, e2, e3}, KindIncome)
	require.Len(t, lines, 1, "budget rows and other kinds excluded")

	buckets := ledger.VATBuckets(lines)
	require.Len(t, buckets, 1)
	assert.True(t, buckets[0].VATAmount.Equal(dec("25")))
}
