package summary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	types "github.com/avkozyreva/tg-splitbot/internal/model/bottypes"
)

var now = time.Date(2024, 5, 15, 14, 30, 0, 0, time.UTC) // среда

func snapshot(expenses ...types.ExpenseRecord) types.LedgerSnapshot {
	return types.LedgerSnapshot{
		ChatID:   77,
		Budgets:  []types.BudgetEntry{{Name: "food", Budget: 5000}},
		Expenses: expenses,
	}
}

func Test_Windows_CalendarBounds(t *testing.T) {
	windows := Windows(now)

	byKey := map[string]Window{}
	for _, w := range windows {
		byKey[w.Key] = w
	}

	assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), byKey[PeriodToday].From)
	assert.Equal(t, time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC), byKey[PeriodYesterday].From)
	assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), byKey[PeriodYesterday].To)
	assert.Equal(t, time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC), byKey[PeriodWeek].From) // понедельник
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), byKey[PeriodMonth].From)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), byKey[PeriodMonth].To)
}

func Test_Build_AggregatesPerWindow(t *testing.T) {
	snap := snapshot(
		types.ExpenseRecord{UserName: "alice", Amount: 100, Category: "food", Period: now},
		types.ExpenseRecord{UserName: "bob", Amount: 50, Category: "food", Period: now.AddDate(0, 0, -1)},
		types.ExpenseRecord{UserName: "bob", Amount: 30, Category: "taxi", Period: now.AddDate(0, 0, -10)},
	)

	digest := Build(snap, now)

	periods := map[string][]types.DigestRow{}
	for _, p := range digest.Periods {
		periods[p.Key] = p.Rows
	}

	assert.Equal(t, []types.DigestRow{{Category: "food", Spent: 100, Budget: 5000}}, periods[PeriodToday])
	assert.Equal(t, []types.DigestRow{{Category: "food", Spent: 50, Budget: 5000}}, periods[PeriodYesterday])
	assert.Equal(t, []types.DigestRow{{Category: "food", Spent: 150, Budget: 5000}}, periods[PeriodWeek])
	// Расход десятидневной давности попадает только в месячное окно.
	assert.Equal(t, []types.DigestRow{
		{Category: "food", Spent: 150, Budget: 5000},
		{Category: "taxi", Spent: 30, Budget: 0},
	}, periods[PeriodMonth])
}

func Test_Build_DiscardedExcludedEverywhere(t *testing.T) {
	discarded := types.ExpenseRecord{UserName: "alice", Amount: 999, Category: "food", Period: now, Discarded: true}
	snap := snapshot(discarded)

	digest := Build(snap, now)

	for _, p := range digest.Periods {
		assert.Equal(t, []types.DigestRow{{Category: "food", Spent: 0, Budget: 5000}}, p.Rows, p.Key)
	}
}

func Test_SpentForCategoryInMonth(t *testing.T) {
	expenses := []types.ExpenseRecord{
		{UserName: "alice", Amount: 100, Category: "food", Period: now},
		{UserName: "bob", Amount: 40, Category: "food", Period: now.AddDate(0, -1, 0)}, // прошлый месяц
		{UserName: "bob", Amount: 25, Category: "taxi", Period: now},
	}

	assert.Equal(t, 100.0, SpentForCategoryInMonth(expenses, "food", now))
	assert.Equal(t, 25.0, SpentForCategoryInMonth(expenses, "taxi", now))
	assert.Equal(t, 0.0, SpentForCategoryInMonth(expenses, "other", now))
}
