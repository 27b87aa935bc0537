// Package summary - сводки расходов группы по календарным периодам.
package summary

import (
	"sort"
	"time"

	"github.com/avkozyreva/tg-splitbot/internal/helpers/timeutils"
	types "github.com/avkozyreva/tg-splitbot/internal/model/bottypes"
)

// Ключи периодов сводки.
const (
	PeriodToday     = "today"
	PeriodYesterday = "yesterday"
	PeriodWeek      = "week"
	PeriodMonth     = "month"
)

// Календарное окно периода: [From, To).
type Window struct {
	Key  string
	From time.Time
	To   time.Time
}

// Windows Набор окон сводки для указанного момента времени.
// В отличие от расчёта долгов, окна фиксированные календарные
// и не зависят от даты последнего расчёта.
func Windows(now time.Time) []Window {
	day := timeutils.BeginOfDay(now)
	return []Window{
		{Key: PeriodToday, From: day, To: day.AddDate(0, 0, 1)},
		{Key: PeriodYesterday, From: timeutils.BeginOfPrevDay(now), To: day},
		{Key: PeriodWeek, From: timeutils.BeginOfWeek(now), To: day.AddDate(0, 0, 1)},
		{Key: PeriodMonth, From: timeutils.BeginOfMonth(now), To: timeutils.BeginOfNextMonth(now)},
	}
}

// Build Построение сводки расходов по снимку книги группы.
// Отменённые записи не учитываются. В каждой строке - потраченное за период
// по категории и месячный бюджет категории (0, если бюджет не задан).
func Build(snap types.LedgerSnapshot, now time.Time) types.ChatDigest {
	budgets := make(map[string]float64, len(snap.Budgets))
	for _, b := range snap.Budgets {
		budgets[b.Name] = b.Budget
	}

	digest := types.ChatDigest{ChatID: snap.ChatID}
	for _, w := range Windows(now) {
		spent := spentByCategory(snap.Expenses, w.From, w.To)

		// В сводку попадают все категории с бюджетом и все категории с расходами.
		names := make(map[string]bool, len(spent)+len(budgets))
		for name := range spent {
			names[name] = true
		}
		for name := range budgets {
			names[name] = true
		}

		rows := make([]types.DigestRow, 0, len(names))
		for name := range names {
			rows = append(rows, types.DigestRow{
				Category: name,
				Spent:    spent[name],
				Budget:   budgets[name],
			})
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].Category < rows[j].Category })

		digest.Periods = append(digest.Periods, types.DigestPeriod{Key: w.Key, Rows: rows})
	}
	return digest
}

// spentByCategory Суммы не отменённых расходов по категориям внутри окна [from, to).
func spentByCategory(expenses []types.ExpenseRecord, from, to time.Time) map[string]float64 {
	spent := make(map[string]float64)
	for _, e := range expenses {
		if e.Discarded {
			continue
		}
		if e.Period.Before(from) || !e.Period.Before(to) {
			continue
		}
		spent[e.Category] += e.Amount
	}
	return spent
}

// SpentForCategoryInMonth Потраченное по категории в месяце указанной даты.
// Используется для предупреждения о превышении бюджета при записи расхода.
func SpentForCategoryInMonth(expenses []types.ExpenseRecord, category string, now time.Time) float64 {
	spent := spentByCategory(expenses, timeutils.BeginOfMonth(now), timeutils.BeginOfNextMonth(now))
	return spent[category]
}
