package tripbook

import "github.com/shopspring/decimal"

// Pure spending derivations. Nothing here is stored; every report is
// recomputed from the trip on read.

// TotalSpent sums all expense base amounts.
func (t Trip) TotalSpent() Money {
	total := decimal.Zero
	for _, e := range t.Expenses {
		total = total.Add(e.BaseAmount)
	}
	return M(total, t.BaseCurrency)
}

// RemainingBudget returns the total budget minus the total spent.
func (t Trip) RemainingBudget() Money {
	return M(t.Budget, t.BaseCurrency).Sub(t.TotalSpent())
}

// SplitTotal holds the spend attributed to one payer bucket.
type SplitTotal struct {
	Split  Split
	Amount Money
}

// SplitTotals groups expense base amounts by payer bucket, in display order.
func (t Trip) SplitTotals() []SplitTotal {
	sums := make(map[Split]decimal.Decimal)
	for _, e := range t.Expenses {
		sums[e.Split] = sums[e.Split].Add(e.BaseAmount)
	}
	totals := make([]SplitTotal, 0, len(Splits))
	for _, s := range Splits {
		totals = append(totals, SplitTotal{Split: s, Amount: M(sums[s], t.BaseCurrency)})
	}
	return totals
}

// CategoryTotal holds the spend of one expense category, paired with its
// fixed chart color.
type CategoryTotal struct {
	Category ExpenseCategory
	Amount   Money
	Color    string
}

// CategoryTotals groups expense base amounts by category, in display order,
// skipping categories with no spend.
func (t Trip) CategoryTotals() []CategoryTotal {
	sums := make(map[ExpenseCategory]decimal.Decimal)
	for _, e := range t.Expenses {
		sums[e.Category] = sums[e.Category].Add(e.BaseAmount)
	}
	totals := make([]CategoryTotal, 0, len(sums))
	for _, c := range ExpenseCategories {
		if sum, ok := sums[c]; ok && !sum.IsZero() {
			totals = append(totals, CategoryTotal{
				Category: c,
				Amount:   M(sum, t.BaseCurrency),
				Color:    CategoryColor(c),
			})
		}
	}
	return totals
}

// BudgetLine reports the execution of one per-category budget allocation.
type BudgetLine struct {
	Category  ExpenseCategory
	Allocated Money
	Spent     Money
	Execution Percent
}

// BudgetReport pairs every budget allocation with the spend recorded against
// its category.
func (t Trip) BudgetReport() []BudgetLine {
	spent := make(map[ExpenseCategory]decimal.Decimal)
	for _, e := range t.Expenses {
		spent[e.Category] = spent[e.Category].Add(e.BaseAmount)
	}
	lines := make([]BudgetLine, 0, len(t.Budgets))
	for _, b := range t.Budgets {
		lines = append(lines, BudgetLine{
			Category:  b.Category,
			Allocated: M(b.Amount, t.BaseCurrency),
			Spent:     M(spent[b.Category], t.BaseCurrency),
			Execution: budgetExecution(spent[b.Category], b.Amount),
		})
	}
	return lines
}

// budgetExecution computes the spend/budget percentage capped at 100. A zero
// budget reads as fully executed the moment anything is spent.
func budgetExecution(spent, budget decimal.Decimal) Percent {
	if !budget.IsPositive() {
		if spent.IsPositive() {
			return 100
		}
		return 0
	}
	pct := spent.Div(budget).Mul(decimal.NewFromInt(100))
	if pct.GreaterThan(decimal.NewFromInt(100)) {
		return 100
	}
	f, _ := pct.Float64()
	return Percent(f)
}
