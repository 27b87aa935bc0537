// Package db - Работа с хранилищами (базой данных).
package db

// Хранилище общей книги расходов группы.
//
// Книга читается и записывается только целиком (снимком). Запись выполняется
// в одной транзакции с проверкой версии снимка: параллельное изменение книги
// другим обработчиком приводит к ErrVersionConflict, и вся единица работы
// перечитывает данные и выполняется заново. Удаление и вставка происходят
// в той же транзакции, поэтому частичный сбой записи не теряет данные.

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/avkozyreva/tg-splitbot/internal/helpers/dbutils"
	types "github.com/avkozyreva/tg-splitbot/internal/model/bottypes"
)

// ErrVersionConflict Версия снимка устарела: книга была изменена параллельно.
var ErrVersionConflict = errors.New("ledger snapshot version conflict")

// Параметры повтора записи при сбоях.
const (
	writeAttempts = 3
	writeBackoff  = 100 * time.Millisecond
)

// Типы, принимающие строки таблиц.
type budgetRowDB struct {
	Name   string  `db:"name"`
	Budget float64 `db:"budget"`
}

type expenseRowDB struct {
	ID        int64     `db:"id"`
	UserName  string    `db:"user_name"`
	Amount    float64   `db:"amount"`
	Category  string    `db:"category"`
	Comment   string    `db:"comment"`
	Period    time.Time `db:"period"`
	Discarded bool      `db:"discarded"`
}

type memberRowDB struct {
	UserName    string `db:"user_name"`
	TgID        int64  `db:"tg_id"`
	DisplayName string `db:"display_name"`
}

type settlementRowDB struct {
	UserName string `db:"user_name"`
	Settled  bool   `db:"settled"`
}

type ledgerRowDB struct {
	LastSettled sql.NullTime `db:"last_settled"`
	Version     int64        `db:"version"`
}

// LedgerStorage - Тип для хранилища книги расходов групп.
type LedgerStorage struct {
	db *sqlx.DB
}

// NewLedgerStorage - Инициализация хранилища книги расходов.
// db - *sqlx.DB - ссылка на подключение к БД.
func NewLedgerStorage(db *sqlx.DB) *LedgerStorage {
	return &LedgerStorage{db: db}
}

// LoadSnapshot Чтение снимка книги группы целиком.
func (storage *LedgerStorage) LoadSnapshot(ctx context.Context, chatID int64) (types.LedgerSnapshot, error) {
	snap := types.LedgerSnapshot{
		ChatID:     chatID,
		Settlement: types.SettlementState{Settled: map[string]bool{}},
	}

	// Состояние книги (дата последнего расчёта, версия).
	var states []ledgerRowDB
	const sqlState = `SELECT last_settled, version FROM splitledgers WHERE chat_id = $1;`
	if err := dbutils.Select(ctx, storage.db, &states, sqlState, chatID); err != nil {
		return snap, errors.Wrap(err, "Load ledger state error")
	}
	if len(states) > 0 {
		snap.Version = states[0].Version
		if states[0].LastSettled.Valid {
			lastSettled := states[0].LastSettled.Time
			snap.Settlement.LastSettled = &lastSettled
		}
	}

	// Бюджеты по категориям.
	var budgets []budgetRowDB
	const sqlBudgets = `SELECT name, budget FROM splitbudgets WHERE chat_id = $1 ORDER BY name;`
	if err := dbutils.Select(ctx, storage.db, &budgets, sqlBudgets, chatID); err != nil {
		return snap, errors.Wrap(err, "Load budgets error")
	}
	for _, b := range budgets {
		snap.Budgets = append(snap.Budgets, types.BudgetEntry{Name: b.Name, Budget: b.Budget})
	}

	// Записи о расходах (включая отменённые - они нужны для аудита и отмены по id).
	var expenses []expenseRowDB
	const sqlExpenses = `
		SELECT id, user_name, amount, category, comment, period, discarded
		FROM splitexpenses
		WHERE chat_id = $1
		ORDER BY period, id;`
	if err := dbutils.Select(ctx, storage.db, &expenses, sqlExpenses, chatID); err != nil {
		return snap, errors.Wrap(err, "Load expenses error")
	}
	for _, e := range expenses {
		snap.Expenses = append(snap.Expenses, types.ExpenseRecord{
			ID:        e.ID,
			UserName:  e.UserName,
			Amount:    e.Amount,
			Category:  e.Category,
			Comment:   e.Comment,
			Period:    e.Period,
			Discarded: e.Discarded,
		})
	}

	// Состав группы.
	var members []memberRowDB
	const sqlMembers = `SELECT user_name, tg_id, display_name FROM splitmembers WHERE chat_id = $1 ORDER BY user_name;`
	if err := dbutils.Select(ctx, storage.db, &members, sqlMembers, chatID); err != nil {
		return snap, errors.Wrap(err, "Load members error")
	}
	for _, m := range members {
		snap.Members = append(snap.Members, types.Member{UserName: m.UserName, TgID: m.TgID, DisplayName: m.DisplayName})
	}

	// Отметки "рассчитался".
	var settlements []settlementRowDB
	const sqlSettlements = `SELECT user_name, settled FROM splitsettlements WHERE chat_id = $1;`
	if err := dbutils.Select(ctx, storage.db, &settlements, sqlSettlements, chatID); err != nil {
		return snap, errors.Wrap(err, "Load settlements error")
	}
	for _, s := range settlements {
		snap.Settlement.Settled[s.UserName] = s.Settled
	}

	return snap, nil
}

// ReplaceSnapshot Замена снимка книги группы целиком.
//
// Выполняется в одной транзакции с проверкой версии (оптимистичная блокировка):
// если версия в базе не совпадает с версией снимка, возвращается
// ErrVersionConflict и вызывающая сторона перечитывает книгу и повторяет
// свою единицу работы. Временные сбои записи повторяются с паузой.
func (storage *LedgerStorage) ReplaceSnapshot(ctx context.Context, snap types.LedgerSnapshot) error {
	skipConflict := func(err error) bool {
		return errors.Is(err, ErrVersionConflict)
	}
	return dbutils.WithRetry(ctx, writeAttempts, writeBackoff, skipConflict, func() error {
		return dbutils.RunTx(ctx, storage.db, func(tx *sqlx.Tx) error {
			return replaceSnapshotTx(ctx, tx, snap)
		})
	})
}

// ListChats Список идентификаторов чатов, у которых есть книга.
func (storage *LedgerStorage) ListChats(ctx context.Context) ([]int64, error) {
	var chats []int64
	const sqlString = `SELECT chat_id FROM splitledgers ORDER BY chat_id;`
	if err := dbutils.Select(ctx, storage.db, &chats, sqlString); err != nil {
		return nil, errors.Wrap(err, "List chats error")
	}
	return chats, nil
}

// replaceSnapshotTx Тело замены снимка, выполняемое внутри транзакции (tx).
func replaceSnapshotTx(ctx context.Context, tx *sqlx.Tx, snap types.LedgerSnapshot) error {
	// Блокировка и проверка версии.
	var versions []int64
	const sqlVersion = `SELECT version FROM splitledgers WHERE chat_id = $1 FOR UPDATE;`
	if err := dbutils.Select(ctx, tx, &versions, sqlVersion, snap.ChatID); err != nil {
		return err
	}
	currentVersion := int64(0)
	if len(versions) > 0 {
		currentVersion = versions[0]
	}
	if currentVersion != snap.Version {
		return ErrVersionConflict
	}

	var lastSettled *time.Time
	if snap.Settlement.LastSettled != nil {
		lastSettled = snap.Settlement.LastSettled
	}
	if len(versions) == 0 {
		const sqlInsertState = `INSERT INTO splitledgers (chat_id, last_settled, version) VALUES ($1, $2, $3);`
		if _, err := dbutils.Exec(ctx, tx, sqlInsertState, snap.ChatID, lastSettled, snap.Version+1); err != nil {
			return err
		}
	} else {
		const sqlUpdateState = `UPDATE splitledgers SET last_settled = $2, version = $3 WHERE chat_id = $1;`
		if _, err := dbutils.Exec(ctx, tx, sqlUpdateState, snap.ChatID, lastSettled, snap.Version+1); err != nil {
			return err
		}
	}

	// Полная замена таблиц книги: удаление и вставка в одной транзакции.
	for _, sqlDelete := range []string{
		`DELETE FROM splitbudgets WHERE chat_id = $1;`,
		`DELETE FROM splitexpenses WHERE chat_id = $1;`,
		`DELETE FROM splitmembers WHERE chat_id = $1;`,
		`DELETE FROM splitsettlements WHERE chat_id = $1;`,
	} {
		if _, err := dbutils.Exec(ctx, tx, sqlDelete, snap.ChatID); err != nil {
			return err
		}
	}

	const sqlInsertBudget = `
		INSERT INTO splitbudgets (chat_id, name, budget)
		VALUES (:chat_id, :name, :budget);`
	for _, b := range snap.Budgets {
		args := map[string]any{"chat_id": snap.ChatID, "name": b.Name, "budget": b.Budget}
		if _, err := dbutils.NamedExec(ctx, tx, sqlInsertBudget, args); err != nil {
			return err
		}
	}

	const sqlInsertExpense = `
		INSERT INTO splitexpenses (id, chat_id, user_name, amount, category, comment, period, discarded)
		VALUES (:id, :chat_id, :user_name, :amount, :category, :comment, :period, :discarded);`
	for _, e := range snap.Expenses {
		args := map[string]any{
			"id":        e.ID,
			"chat_id":   snap.ChatID,
			"user_name": e.UserName,
			"amount":    e.Amount,
			"category":  e.Category,
			"comment":   e.Comment,
			"period":    e.Period,
			"discarded": e.Discarded,
		}
		if _, err := dbutils.NamedExec(ctx, tx, sqlInsertExpense, args); err != nil {
			return err
		}
	}

	const sqlInsertMember = `
		INSERT INTO splitmembers (chat_id, user_name, tg_id, display_name)
		VALUES (:chat_id, :user_name, :tg_id, :display_name);`
	for _, m := range snap.Members {
		args := map[string]any{"chat_id": snap.ChatID, "user_name": m.UserName, "tg_id": m.TgID, "display_name": m.DisplayName}
		if _, err := dbutils.NamedExec(ctx, tx, sqlInsertMember, args); err != nil {
			return err
		}
	}

	const sqlInsertSettlement = `
		INSERT INTO splitsettlements (chat_id, user_name, settled)
		VALUES (:chat_id, :user_name, :settled);`
	for userName, settled := range snap.Settlement.Settled {
		args := map[string]any{"chat_id": snap.ChatID, "user_name": userName, "settled": settled}
		if _, err := dbutils.NamedExec(ctx, tx, sqlInsertSettlement, args); err != nil {
			return err
		}
	}

	return nil
}
