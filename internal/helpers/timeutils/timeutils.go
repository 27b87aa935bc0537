// Package timeutils Хелпер для операций с датами и временем
package timeutils

import "time"

// Границы строятся в часовом поясе исходного момента: записи о расходах
// ставятся локальным time.Now(), и календарные окна должны считаться
// в том же поясе, иначе "сегодня" и "вчера" съезжают на границе суток.

// BeginOfDay Функция возвращает момент начала суток указанной даты.
// Например, при t = "16.10.2022 15:22:30" функция вернет дату "16.10.2022 00:00:00"
func BeginOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// BeginOfPrevDay Функция возвращает момент начала предыдущих суток.
func BeginOfPrevDay(t time.Time) time.Time {
	return BeginOfDay(t).AddDate(0, 0, -1)
}

// BeginOfWeek Функция возвращает момент начала недели (понедельник) указанной даты.
func BeginOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return BeginOfDay(t).AddDate(0, 0, -(weekday - 1))
}

// BeginOfMonth Функция возвращает момент начала месяца указанной даты.
// Например, при t = "16.10.2022 15:22:30" функция вернет дату "01.10.2022 00:00:00"
func BeginOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// BeginOfNextMonth Функция возвращает момент начала следующего месяца указанной даты.
// Например, при t = "16.10.2022 15:22:30" функция вернет дату "01.11.2022 00:00:00"
func BeginOfNextMonth(t time.Time) time.Time {
	m := t.Month() + 1
	y := t.Year()
	if m > 12 {
		m = 1
		y++
	}
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}
