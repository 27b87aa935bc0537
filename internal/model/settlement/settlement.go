// Package settlement - расчёт балансов участников и минимизация взаимных переводов.
package settlement

import (
	"sort"
	"time"

	types "github.com/avkozyreva/tg-splitbot/internal/model/bottypes"
)

// Epsilon Порог, ниже которого остаток баланса считается нулевым.
// Поглощает накопленную погрешность вычислений с плавающей точкой.
const Epsilon = 0.01

// Баланс одного участника относительно равной доли.
// Положительное значение - переплатил, отрицательное - должен.
type Balance struct {
	UserName string
	Amount   float64
}

// Перевод от должника к кредитору.
type Transfer struct {
	From   string
	To     string
	Amount float64
}

// Результат расчёта по группе.
// AllClear - терминальное состояние "рассчитываться не нужно": нет участников,
// нет подходящих расходов или ни у кого нет долга. Отличается от состояния
// "балансы рассчитаны, переводы построены".
type Result struct {
	AllClear  bool
	Total     float64
	Share     float64
	Balances  []Balance
	Transfers []Transfer
}

// Eligible Отбор расходов, участвующих в расчёте: не отменённые и созданные
// строго после даты последнего полного расчёта (если он был).
// Это единственный временной фильтр движка.
func Eligible(expenses []types.ExpenseRecord, lastSettled *time.Time) []types.ExpenseRecord {
	result := make([]types.ExpenseRecord, 0, len(expenses))
	for _, e := range expenses {
		if e.Discarded {
			continue
		}
		if lastSettled != nil && !e.Period.After(*lastSettled) {
			continue
		}
		result = append(result, e)
	}
	return result
}

// SpentByUser Суммы расходов по плательщикам.
func SpentByUser(expenses []types.ExpenseRecord) map[string]float64 {
	spent := make(map[string]float64)
	for _, e := range expenses {
		spent[e.UserName] += e.Amount
	}
	return spent
}

// Resolve Расчёт балансов и построение переводов, закрывающих все долги.
//
// Доля каждого участника - равная часть общей суммы подходящих расходов.
// Должники и кредиторы сортируются по убыванию величины долга, затем жадно
// сопоставляются: наибольший долг гасится наибольшей переплатой. Такой порядок
// в типичных случаях даёт минимальное число переводов, хотя глобальная
// минимальность для любых распределений не гарантируется. Для групп в десятки
// человек этого достаточно: сортировка O(n log n), проход O(n).
func Resolve(eligible []types.ExpenseRecord, members []types.Member) Result {
	users := userNames(eligible, members)
	if len(users) == 0 || len(eligible) == 0 {
		return Result{AllClear: true}
	}

	total := 0.0
	for _, e := range eligible {
		total += e.Amount
	}
	share := total / float64(len(users))

	spent := SpentByUser(eligible)
	balances := make([]Balance, 0, len(users))
	for _, u := range users {
		balances = append(balances, Balance{UserName: u, Amount: spent[u] - share})
	}

	var debtors, creditors []Balance
	for _, b := range balances {
		switch {
		case b.Amount < -Epsilon:
			debtors = append(debtors, Balance{UserName: b.UserName, Amount: -b.Amount})
		case b.Amount > Epsilon:
			creditors = append(creditors, b)
		}
	}
	sortByAmountDesc(debtors)
	sortByAmountDesc(creditors)

	result := Result{
		Total:    total,
		Share:    share,
		Balances: balances,
	}

	// Никто не должен: отчитываемся "все рассчитаны", а не пустым списком
	// переводов, чтобы отличать этот случай от вырожденного по округлению.
	if len(debtors) == 0 {
		result.AllClear = true
		return result
	}

	di, ci := 0, 0
	for di < len(debtors) && ci < len(creditors) {
		payment := debtors[di].Amount
		if creditors[ci].Amount < payment {
			payment = creditors[ci].Amount
		}
		result.Transfers = append(result.Transfers, Transfer{
			From:   debtors[di].UserName,
			To:     creditors[ci].UserName,
			Amount: payment,
		})
		debtors[di].Amount -= payment
		creditors[ci].Amount -= payment
		if debtors[di].Amount < Epsilon {
			di++
		}
		if creditors[ci].Amount < Epsilon {
			ci++
		}
	}

	return result
}

// userNames Список участников расчёта: состав группы, а если он пуст -
// все плательщики из подходящих расходов (чтобы расчёт работал и до того,
// как состав группы задан явно).
func userNames(eligible []types.ExpenseRecord, members []types.Member) []string {
	var users []string
	if len(members) > 0 {
		for _, m := range members {
			users = append(users, m.UserName)
		}
	} else {
		seen := make(map[string]bool)
		for _, e := range eligible {
			if !seen[e.UserName] {
				seen[e.UserName] = true
				users = append(users, e.UserName)
			}
		}
	}
	sort.Strings(users)
	return users
}

// Сортировка по убыванию суммы, при равенстве - по имени для детерминизма.
func sortByAmountDesc(balances []Balance) {
	sort.Slice(balances, func(i, j int) bool {
		if balances[i].Amount != balances[j].Amount {
			return balances[i].Amount > balances[j].Amount
		}
		return balances[i].UserName < balances[j].UserName
	})
}

// MarkSettled Отметка участника рассчитавшимся.
//
// Снять отметку с себя нельзя - только полный сброс. Когда отмечены все
// текущие участники группы, состояние сбрасывается: множество отметок
// очищается, а дата последнего расчёта сдвигается на now, что переопределяет
// отбор расходов для следующих расчётов. Возвращает true, если сброс произошёл.
func MarkSettled(state *types.SettlementState, members []types.Member, userName string, now time.Time) bool {
	if state.Settled == nil {
		state.Settled = make(map[string]bool)
	}
	state.Settled[userName] = true

	for _, m := range members {
		if !state.Settled[m.UserName] {
			return false
		}
	}

	state.Settled = make(map[string]bool)
	state.LastSettled = &now
	return true
}
