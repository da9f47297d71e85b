package finance

import (
	"sort"

	"github.com/festivo/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// CategoryLine carries the planned and actual ex-VAT sums for one category
// of one entry kind. Kind is part of the key: an income category never
// merges with an expense category of the same name.
type CategoryLine struct {
	Kind     EntryKind       `json:"kind"`
	Category string          `json:"category"`
	Budget   decimal.Decimal `json:"budget"`
	Actual   decimal.Decimal `json:"actual"`
}

// BudgetActualByCategory reconciles entries into one line per (kind,
// category), selecting the budget or actual column by the IsBudget flag.
// Income lines come first, then expenses, each alphabetical by category.
func BudgetActualByCategory(entries []Entry) []CategoryLine {
	type key struct {
		kind     EntryKind
		category string
	}
	byKey := make(map[key]*CategoryLine)
	for i := range entries {
		e := &entries[i]
		k := key{kind: e.Kind, category: e.Category}
		line, ok := byKey[k]
		if !ok {
			line = &CategoryLine{
				Kind:     e.Kind,
				Category: e.Category,
				Budget:   decimal.Zero,
				Actual:   decimal.Zero,
			}
			byKey[k] = line
		}
		if e.IsBudget {
			line.Budget = line.Budget.Add(e.AmountExVAT)
		} else {
			line.Actual = line.Actual.Add(e.AmountExVAT)
		}
	}

	lines := make([]CategoryLine, 0, len(byKey))
	for _, line := range byKey {
		lines = append(lines, *line)
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Kind != lines[j].Kind {
			return lines[i].Kind == KindIncome
		}
		return lines[i].Category < lines[j].Category
	})
	return lines
}

// EconomySummary holds the bottom line over actual entries
type EconomySummary struct {
	IncomeTotal  decimal.Decimal `json:"income_total"`
	ExpenseTotal decimal.Decimal `json:"expense_total"`
	Result       decimal.Decimal `json:"result"` // income − expenses
}

// ComputeEconomySummary totals actual (non-budget) entries and computes the
// result line.
func ComputeEconomySummary(entries []Entry) EconomySummary {
	s := EconomySummary{
		IncomeTotal:  decimal.Zero,
		ExpenseTotal: decimal.Zero,
	}
	for i := range entries {
		e := &entries[i]
		if e.IsBudget {
			continue
		}
		switch e.Kind {
		case KindIncome:
			s.IncomeTotal = s.IncomeTotal.Add(e.AmountExVAT)
		case KindExpense:
			s.ExpenseTotal = s.ExpenseTotal.Add(e.AmountExVAT)
		}
	}
	s.Result = s.IncomeTotal.Sub(s.ExpenseTotal)
	return s
}

// TaxLines adapts entries of one kind to the shared VAT bucketing input.
// Budget entries are excluded: only actuals carry VAT.
func TaxLines(entries []Entry, kind EntryKind) []ledger.TaxLine {
	lines := make([]ledger.TaxLine, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		if e.Kind != kind || e.IsBudget {
			continue
		}
		lines = append(lines, ledger.TaxLine{
			ExVAT:     e.AmountExVAT,
			Rate:      e.VATRate,
			VATAmount: e.VATAmount,
			Count:     1,
		})
	}
	return lines
}
