package service

import (
	"github.com/shopspring/decimal"

	"github.com/luke-tf/finanapp/internal/model"
)

// CalculateBalance folds records into a net balance: inflows added,
// outflows subtracted. The empty list yields zero.
func CalculateBalance(records []model.FinanceRecord) decimal.Decimal {
	var balance decimal.Decimal
	for _, r := range records {
		balance = balance.Add(r.Signed())
	}
	return balance
}

// Summarize aggregates records into income, expense and balance
// totals. Records with negative amounts are skipped; validation should
// have excluded them, but persisted data is never trusted.
func Summarize(records []model.FinanceRecord) model.Summary {
	var income, expenses decimal.Decimal
	for _, r := range records {
		if r.Amount.Sign() < 0 {
			continue
		}
		if r.IsExpense {
			expenses = expenses.Add(r.Amount)
		} else {
			income = income.Add(r.Amount)
		}
	}
	return model.Summary{
		Income:   income,
		Expenses: expenses,
		Balance:  income.Sub(expenses),
	}
}

// FilterByType returns only expenses (isExpense true) or only income
// (isExpense false).
func FilterByType(records []model.FinanceRecord, isExpense bool) []model.FinanceRecord {
	matched := make([]model.FinanceRecord, 0, len(records))
	for _, r := range records {
		if r.IsExpense == isExpense {
			matched = append(matched, r)
		}
	}
	return matched
}

// BalanceIndicatorFor classifies a balance: strictly positive,
// exactly zero, or strictly negative.
func BalanceIndicatorFor(balance decimal.Decimal) model.BalanceIndicator {
	switch balance.Sign() {
	case 1:
		return model.BalancePositive
	case -1:
		return model.BalanceNegative
	default:
		return model.BalanceNeutral
	}
}
