package messages

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/avkozyreva/tg-splitbot/internal/logger"
	types "github.com/avkozyreva/tg-splitbot/internal/model/bottypes"
	"github.com/avkozyreva/tg-splitbot/internal/model/db"
	"github.com/avkozyreva/tg-splitbot/internal/model/expense"
	"github.com/avkozyreva/tg-splitbot/internal/model/settlement"
	"github.com/avkozyreva/tg-splitbot/internal/model/summary"
)

// Область "Константы и переменные": начало.

const (
	txtStart          = "Привет, <b>%v</b>. Я помогаю вести общие расходы группы. Выберите действие."
	txtHelp           = "Я - бот для учёта общих расходов группы.\nПросто напишите расход, например: <code>100 food</code>, <code>50+30-food</code> или <code>bought 100 groceries</code>.\nРасход за другого участника: <code>100 food for @username</code> (также by и split).\nОтмена расхода: ответьте на сообщение с расходом командой /revert.\nКоманды: /balance - балансы и переводы, /settle - отметиться рассчитавшимся, /budget - бюджеты, /set_budget &lt;категория&gt; &lt;сумма&gt;, /del_budget &lt;категория&gt;, /join и /leave - состав группы, /summary - сводка расходов."
	txtUnknownCommand = "К сожалению, данная команда мне неизвестна. Для начала работы введите /start"
	txtError          = "Произошла ошибка при обработке сообщения. Попробуйте ещё раз."
	txtRecSaved       = "Записано: %.2f (%v)"
	txtRecSavedFor    = "Записано: %.2f (%v), %v @%v"
	txtOverBudget     = "⚠️ Бюджет категории <b>%v</b> превышен: %.2f из %.2f за месяц."
	txtRevertDone     = "Запись отменена и исключена из всех расчётов."
	txtRevertAlready  = "Запись уже была отменена ранее."
	txtRevertNotFound = "Запись о расходе для отмены не найдена."
	txtAllClear       = "Долгов нет, все рассчитаны."
	txtBalanceHeader  = "Всего расходов: %.2f, доля каждого: %.2f"
	txtTransfers      = "Переводы для расчёта:"
	txtSettleMarked   = "Отметка принята. Ещё не рассчитались: %v"
	txtSettleReset    = "Все участники рассчитались. Книга закрыта, начат новый период."
	txtSettleNoName   = "У вас не задано имя пользователя в телеграме, отметка о расчёте невозможна."
	txtBudgetsEmpty   = "Бюджеты пока не заданы. Задайте командой /set_budget категория сумма"
	txtBudgetsHeader  = "Бюджеты на месяц (потрачено / лимит):"
	txtBudgetSet      = "Бюджет категории <b>%v</b> установлен: %.2f"
	txtBudgetDeleted  = "Бюджет категории <b>%v</b> удалён."
	txtBudgetNotFound = "Категория <b>%v</b> не найдена."
	txtBudgetBadArgs  = "Формат команды: /set_budget категория сумма (категория - латинские буквы, сумма - неотрицательное число)."
	txtJoined         = "Участник <b>%v</b> добавлен в группу."
	txtAlreadyMember  = "Участник <b>%v</b> уже в группе."
	txtLeft           = "Участник <b>%v</b> покинул группу."
	txtNotMember      = "Участник <b>%v</b> не состоит в группе."
	txtDigestWait     = "Формирование сводки. Пожалуйста, подождите..."
	txtDigestError    = "Не удалось запросить сводку."
)

// Команды стартовых действий.
var btnStart = []types.TgRowButtons{
	{types.TgInlineButton{DisplayName: "Баланс", Value: "/balance"}, types.TgInlineButton{DisplayName: "Рассчитаться", Value: "/settle"}},
	{types.TgInlineButton{DisplayName: "Бюджеты", Value: "/budget"}, types.TgInlineButton{DisplayName: "Сводка", Value: "/summary"}},
	{types.TgInlineButton{DisplayName: "Присоединиться", Value: "/join"}, types.TgInlineButton{DisplayName: "Помощь", Value: "/help"}},
}

var categoryKeyRegexp = regexp.MustCompile(`^[a-z]+$`)

// Тексты, отменяющие запись о расходе (в ответ на сообщение с расходом).
var revertTexts = map[string]bool{"/revert": true, "отмена": true}

// Количество повторов единицы работы при конфликте версий снимка.
const ledgerUpdateAttempts = 3

// Заголовки периодов сводки.
var digestPeriodTitles = map[string]string{
	summary.PeriodToday:     "Сегодня",
	summary.PeriodYesterday: "Вчера",
	summary.PeriodWeek:      "Неделя",
	summary.PeriodMonth:     "Месяц",
}

// Область "Константы и переменные": конец.

// Область "Внешний интерфейс": начало.

// MessageSender Интерфейс для работы с сообщениями.
type MessageSender interface {
	SendMessage(text string, chatID int64) error
	SendMessageReply(text string, chatID int64, replyToMsgID int) error
	ShowInlineButtons(text string, buttons []types.TgRowButtons, chatID int64) error
}

// LedgerDataStorage Интерфейс для работы с хранилищем книги расходов.
type LedgerDataStorage interface {
	LoadSnapshot(ctx context.Context, chatID int64) (types.LedgerSnapshot, error)
	ReplaceSnapshot(ctx context.Context, snap types.LedgerSnapshot) error
}

// DigestCache Интерфейс для работы с кэшем сводок.
type DigestCache interface {
	Add(key string, value any)
	Get(key string) any
	Remove(key string)
}

// kafkaProducer Интерфейс для отправки сообщений в кафку.
type kafkaProducer interface {
	SendMessage(key string, value string) (partition int32, offset int64, err error)
	GetTopic() string
}

// Model Модель бота (клиент, хранилище книги, кэш сводок, кафка).
type Model struct {
	ctx           context.Context
	tgClient      MessageSender     // Клиент.
	storage       LedgerDataStorage // Хранилище книги расходов.
	digestCache   DigestCache       // Кэш готовых сводок.
	kafkaProducer kafkaProducer     // Кафка.
}

// New Генерация сущности для хранения клиента ТГ и хранилища книги расходов.
func New(ctx context.Context, tgClient MessageSender, storage LedgerDataStorage, digestCache DigestCache, kafka kafkaProducer) *Model {
	return &Model{
		ctx:           ctx,
		tgClient:      tgClient,
		storage:       storage,
		digestCache:   digestCache,
		kafkaProducer: kafka,
	}
}

// Message Структура сообщения для обработки.
type Message struct {
	Text             string
	ChatID           int64
	UserID           int64
	UserName         string
	UserDisplayName  string
	MessageID        int
	ReplyToMessageID int
	Mentions         []types.MentionSpan
	IsCallback       bool
	CallbackMsgID    string
}

func (s *Model) GetCtx() context.Context {
	return s.ctx
}

func (s *Model) SetCtx(ctx context.Context) {
	s.ctx = ctx
}

// IncomingMessage Обработка входящего сообщения.
// Любая неожиданная ошибка обработчиков превращается в короткий ответ
// пользователю без внутренних подробностей.
func (s *Model) IncomingMessage(msg Message) error {
	span, ctx := opentracing.StartSpanFromContext(s.ctx, "IncomingMessage")
	s.ctx = ctx
	defer span.Finish()

	err := s.dispatchMessage(msg)
	if err != nil {
		logger.Error("Ошибка обработки сообщения", "err", err)
		if sendErr := s.tgClient.SendMessage(txtError, msg.ChatID); sendErr != nil {
			logger.Error("Ошибка отправки сообщения об ошибке", "err", sendErr)
		}
	}
	return err
}

// dispatchMessage Последовательная проверка вариантов обработки сообщения.
func (s *Model) dispatchMessage(msg Message) error {
	// Проверка отмены расхода (ответ на сообщение с расходом).
	if isNeedReturn, err := checkIfRevert(s, msg); err != nil || isNeedReturn {
		return err
	}

	// Распознавание стандартных команд.
	if isNeedReturn, err := checkBotCommands(s, msg); err != nil || isNeedReturn {
		return err
	}

	// Проверка расхода с упоминанием участника.
	if isNeedReturn, err := checkIfTaggedExpense(s, msg); err != nil || isNeedReturn {
		return err
	}

	// Проверка обычной записи о расходе.
	if isNeedReturn, err := checkIfExpenseText(s, msg); err != nil || isNeedReturn {
		return err
	}

	// Неизвестная команда. Обычный текст без расхода молча игнорируется,
	// чтобы бот не отвечал на каждое сообщение в группе.
	if strings.HasPrefix(strings.TrimSpace(msg.Text), "/") {
		return s.tgClient.SendMessage(txtUnknownCommand, msg.ChatID)
	}
	return nil
}

// SendDigestToChat Отправка готовой сводки в чат (вызывается приёмником сводок).
func (s *Model) SendDigestToChat(digest types.ChatDigest) error {
	span, ctx := opentracing.StartSpanFromContext(s.ctx, "SendDigestToChat")
	s.ctx = ctx
	defer span.Finish()

	answerText := formatDigest(digest)
	// Сохранение значения в кэш.
	s.digestCache.Add(digestCacheKey(digest.ChatID), answerText)
	if err := s.tgClient.SendMessage(answerText, digest.ChatID); err != nil {
		logger.Error("Ошибка отправки сводки в ТГ", "err", err)
		return err
	}
	return nil
}

// Область "Внешний интерфейс": конец.

// Область "Служебные функции": начало.

// Область "Единица работы над книгой": начало.

// mutateFunc Тип функции единицы работы над снимком книги.
// Возвращает текст ответа и признак, что снимок изменён и требует записи.
type mutateFunc func(snap *types.LedgerSnapshot) (answer string, changed bool, err error)

// updateLedger Выполнение единицы работы над книгой: чтение снимка целиком,
// изменение в памяти, запись целиком с проверкой версии. При конфликте версий
// (книга изменена параллельным обработчиком) вся единица работы повторяется
// на свежем снимке, ограниченное число раз.
func (s *Model) updateLedger(chatID int64, mutate mutateFunc) (string, error) {
	var err error
	for attempt := 0; attempt < ledgerUpdateAttempts; attempt++ {
		snap := s.loadSnapshot(chatID)

		var answer string
		var changed bool
		answer, changed, err = mutate(&snap)
		if err != nil {
			return "", err
		}
		if !changed {
			return answer, nil
		}

		err = s.storage.ReplaceSnapshot(s.ctx, snap)
		if err == nil {
			// Книга изменилась: закэшированная сводка устарела.
			s.digestCache.Remove(digestCacheKey(chatID))
			return answer, nil
		}
		if !errors.Is(err, db.ErrVersionConflict) {
			return "", errors.Wrap(err, "Replace snapshot error")
		}
	}
	return "", errors.Wrap(err, "Ledger update attempts exhausted")
}

// loadSnapshot Чтение снимка книги.
// Ошибка чтения деградирует до пустого снимка, чтобы обработка команды
// дала осмысленный (пусть и пустой) ответ; запись такого снимка поверх
// существующих данных не пройдёт проверку версии.
func (s *Model) loadSnapshot(chatID int64) types.LedgerSnapshot {
	snap, err := s.storage.LoadSnapshot(s.ctx, chatID)
	if err != nil {
		logger.Error("Ошибка чтения книги, используются пустые данные", "err", err)
		snap = types.LedgerSnapshot{ChatID: chatID}
	}
	if snap.Settlement.Settled == nil {
		snap.Settlement.Settled = map[string]bool{}
	}
	return snap
}

// Область "Единица работы над книгой": конец.

// Область "Распознавание входящих команд": начало.

// checkIfRevert Проверка отмены расхода: ответ на сообщение с расходом
// текстом /revert (или "отмена"). Отменяются все записи, созданные из
// того сообщения (может быть несколько), флаг отмены не снимается.
func checkIfRevert(s *Model, msg Message) (bool, error) {
	if msg.ReplyToMessageID == 0 || !revertTexts[strings.ToLower(strings.TrimSpace(msg.Text))] {
		return false, nil
	}
	span, ctx := opentracing.StartSpanFromContext(s.ctx, "checkIfRevert")
	s.ctx = ctx
	defer span.Finish()

	targetID := int64(msg.ReplyToMessageID)
	answer, err := s.updateLedger(msg.ChatID, func(snap *types.LedgerSnapshot) (string, bool, error) {
		found := false
		alreadyDiscarded := true
		for i := range snap.Expenses {
			if snap.Expenses[i].ID != targetID {
				continue
			}
			found = true
			if !snap.Expenses[i].Discarded {
				alreadyDiscarded = false
				snap.Expenses[i].Discarded = true
			}
		}
		switch {
		case !found:
			return txtRevertNotFound, false, nil
		case alreadyDiscarded:
			return txtRevertAlready, false, nil
		default:
			return txtRevertDone, true, nil
		}
	})
	if err != nil {
		return true, err
	}
	return true, s.tgClient.SendMessageReply(answer, msg.ChatID, msg.MessageID)
}

// checkBotCommands Распознавание стандартных команд бота.
func checkBotCommands(s *Model, msg Message) (bool, error) {
	fields := strings.Fields(msg.Text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return false, nil
	}
	// В группах команды приходят в виде /cmd@botname.
	cmd := strings.SplitN(fields[0], "@", 2)[0]
	args := fields[1:]

	span, ctx := opentracing.StartSpanFromContext(s.ctx, "checkBotCommands")
	s.ctx = ctx
	defer span.Finish()

	switch cmd {
	case "/start":
		displayName := msg.UserDisplayName
		if len(displayName) == 0 {
			displayName = msg.UserName
		}
		return true, s.tgClient.ShowInlineButtons(fmt.Sprintf(txtStart, displayName), btnStart, msg.ChatID)
	case "/help":
		return true, s.tgClient.SendMessage(txtHelp, msg.ChatID)
	case "/balance":
		return true, s.tgClient.SendMessage(getBalanceReport(s, msg.ChatID), msg.ChatID)
	case "/settle":
		return handleSettle(s, msg)
	case "/budget":
		return true, s.tgClient.SendMessage(getBudgetsReport(s, msg.ChatID), msg.ChatID)
	case "/set_budget":
		return handleSetBudget(s, msg, args)
	case "/del_budget":
		return handleDelBudget(s, msg, args)
	case "/join":
		return handleJoin(s, msg)
	case "/leave":
		return handleLeave(s, msg)
	case "/summary":
		return true, s.tgClient.SendMessage(getDigestReport(s, msg.ChatID), msg.ChatID)
	}
	// Команда не распознана.
	return false, nil
}

// checkIfTaggedExpense Проверка расхода с упоминанием участника
// ("100 food for @username"). Нераспознанное упоминание не является ошибкой:
// сообщение продолжает обрабатываться как обычный текст.
func checkIfTaggedExpense(s *Model, msg Message) (bool, error) {
	if len(msg.Mentions) == 0 {
		return false, nil
	}
	span, ctx := opentracing.StartSpanFromContext(s.ctx, "checkIfTaggedExpense")
	s.ctx = ctx
	defer span.Finish()

	handled := false
	answer, err := s.updateLedger(msg.ChatID, func(snap *types.LedgerSnapshot) (string, bool, error) {
		tagged := expense.ResolveTagged(msg.Text, msg.Mentions, snap.Members)
		if tagged == nil {
			return "", false, nil
		}
		handled = true

		ensureMember(snap, msg)

		// Связка определяет, на кого относится расход: by - на упомянутого
		// участника, for и split - на автора сообщения. Сама связка
		// сохраняется в ответе без изменений.
		payer := msg.UserName
		if tagged.Relation == expense.RelationBy {
			payer = tagged.Member.UserName
		}
		category := expense.ValidateCategory(tagged.Category, snap.Budgets)
		snap.Expenses = append(snap.Expenses, types.ExpenseRecord{
			ID:       int64(msg.MessageID),
			UserName: payer,
			Amount:   tagged.Amount,
			Category: category,
			Comment:  msg.Text,
			Period:   time.Now(),
		})

		answer := fmt.Sprintf(txtRecSavedFor, tagged.Amount, category, tagged.Relation, tagged.Member.UserName)
		if warn := overBudgetWarning(snap, category); warn != "" {
			answer += "\n" + warn
		}
		return answer, true, nil
	})
	if err != nil {
		return true, err
	}
	if !handled {
		return false, nil
	}
	return true, s.tgClient.SendMessageReply(answer, msg.ChatID, msg.MessageID)
}

// checkIfExpenseText Проверка обычной записи о расходе в свободном тексте.
// Нулевые суммы считаются отсутствием расхода и не записываются.
func checkIfExpenseText(s *Model, msg Message) (bool, error) {
	text := strings.TrimSpace(msg.Text)
	// Команды не являются записями о расходах.
	if text == "" || strings.HasPrefix(text, "/") || msg.IsCallback {
		return false, nil
	}
	span, ctx := opentracing.StartSpanFromContext(s.ctx, "checkIfExpenseText")
	s.ctx = ctx
	defer span.Finish()

	handled := false
	answer, err := s.updateLedger(msg.ChatID, func(snap *types.LedgerSnapshot) (string, bool, error) {
		parsed := expense.ParseAll(msg.Text, snap.Budgets)
		records := make([]expense.ParsedExpense, 0, len(parsed))
		for _, p := range parsed {
			if p.Amount > 0 {
				records = append(records, p)
			}
		}
		if len(records) == 0 {
			return "", false, nil
		}
		handled = true

		ensureMember(snap, msg)

		var lines []string
		warned := map[string]bool{}
		now := time.Now()
		for _, p := range records {
			category := p.Category
			if category == "" {
				category = types.UncategorizedKey
			}
			snap.Expenses = append(snap.Expenses, types.ExpenseRecord{
				ID:       int64(msg.MessageID),
				UserName: msg.UserName,
				Amount:   p.Amount,
				Category: category,
				Comment:  msg.Text,
				Period:   now,
			})
			lines = append(lines, fmt.Sprintf(txtRecSaved, p.Amount, category))
			if !warned[category] {
				if warn := overBudgetWarning(snap, category); warn != "" {
					lines = append(lines, warn)
					warned[category] = true
				}
			}
		}
		return strings.Join(lines, "\n"), true, nil
	})
	if err != nil {
		return true, err
	}
	if !handled {
		return false, nil
	}
	return true, s.tgClient.SendMessageReply(answer, msg.ChatID, msg.MessageID)
}

// handleSettle Отметка участника рассчитавшимся.
// Без имени пользователя отметка невозможна: пустой ключ не соответствует
// ни одному участнику и осел бы в хранилище фантомной записью.
func handleSettle(s *Model, msg Message) (bool, error) {
	if msg.UserName == "" {
		return true, s.tgClient.SendMessage(txtSettleNoName, msg.ChatID)
	}
	answer, err := s.updateLedger(msg.ChatID, func(snap *types.LedgerSnapshot) (string, bool, error) {
		ensureMember(snap, msg)
		fired := settlement.MarkSettled(&snap.Settlement, snap.Members, msg.UserName, time.Now())
		if fired {
			return txtSettleReset, true, nil
		}
		var waiting []string
		for _, m := range snap.Members {
			if !snap.Settlement.Settled[m.UserName] {
				waiting = append(waiting, m.UserName)
			}
		}
		sort.Strings(waiting)
		return fmt.Sprintf(txtSettleMarked, strings.Join(waiting, ", ")), true, nil
	})
	if err != nil {
		return true, err
	}
	return true, s.tgClient.SendMessage(answer, msg.ChatID)
}

// handleSetBudget Установка месячного бюджета категории.
func handleSetBudget(s *Model, msg Message, args []string) (bool, error) {
	if len(args) != 2 {
		return true, s.tgClient.SendMessage(txtBudgetBadArgs, msg.ChatID)
	}
	category := strings.ToLower(args[0])
	budget, err := strconv.ParseFloat(args[1], 64)
	if !categoryKeyRegexp.MatchString(category) || err != nil || budget < 0 {
		return true, s.tgClient.SendMessage(txtBudgetBadArgs, msg.ChatID)
	}

	answer, err := s.updateLedger(msg.ChatID, func(snap *types.LedgerSnapshot) (string, bool, error) {
		updated := false
		for i := range snap.Budgets {
			if snap.Budgets[i].Name == category {
				snap.Budgets[i].Budget = budget
				updated = true
				break
			}
		}
		if !updated {
			snap.Budgets = append(snap.Budgets, types.BudgetEntry{Name: category, Budget: budget})
		}
		return fmt.Sprintf(txtBudgetSet, category, budget), true, nil
	})
	if err != nil {
		return true, err
	}
	return true, s.tgClient.SendMessage(answer, msg.ChatID)
}

// handleDelBudget Удаление бюджета категории.
func handleDelBudget(s *Model, msg Message, args []string) (bool, error) {
	if len(args) != 1 {
		return true, s.tgClient.SendMessage(txtBudgetBadArgs, msg.ChatID)
	}
	category := strings.ToLower(args[0])

	answer, err := s.updateLedger(msg.ChatID, func(snap *types.LedgerSnapshot) (string, bool, error) {
		for i := range snap.Budgets {
			if snap.Budgets[i].Name == category {
				snap.Budgets = append(snap.Budgets[:i], snap.Budgets[i+1:]...)
				return fmt.Sprintf(txtBudgetDeleted, category), true, nil
			}
		}
		return fmt.Sprintf(txtBudgetNotFound, category), false, nil
	})
	if err != nil {
		return true, err
	}
	return true, s.tgClient.SendMessage(answer, msg.ChatID)
}

// handleJoin Явное добавление участника.
func handleJoin(s *Model, msg Message) (bool, error) {
	answer, err := s.updateLedger(msg.ChatID, func(snap *types.LedgerSnapshot) (string, bool, error) {
		if findMember(snap.Members, msg.UserName) != nil {
			return fmt.Sprintf(txtAlreadyMember, msg.UserName), false, nil
		}
		ensureMember(snap, msg)
		return fmt.Sprintf(txtJoined, msg.UserName), true, nil
	})
	if err != nil {
		return true, err
	}
	return true, s.tgClient.SendMessage(answer, msg.ChatID)
}

// handleLeave Удаление участника. Вместе с участником удаляется его отметка
// о расчёте; записи о его расходах остаются в книге для аудита.
func handleLeave(s *Model, msg Message) (bool, error) {
	answer, err := s.updateLedger(msg.ChatID, func(snap *types.LedgerSnapshot) (string, bool, error) {
		for i := range snap.Members {
			if snap.Members[i].UserName == msg.UserName {
				snap.Members = append(snap.Members[:i], snap.Members[i+1:]...)
				delete(snap.Settlement.Settled, msg.UserName)
				return fmt.Sprintf(txtLeft, msg.UserName), true, nil
			}
		}
		return fmt.Sprintf(txtNotMember, msg.UserName), false, nil
	})
	if err != nil {
		return true, err
	}
	return true, s.tgClient.SendMessage(answer, msg.ChatID)
}

// Область "Распознавание входящих команд": конец.

// Область "Формирование ответов": начало.

// getBalanceReport Расчёт балансов и переводов по книге группы.
func getBalanceReport(s *Model, chatID int64) string {
	span, ctx := opentracing.StartSpanFromContext(s.ctx, "getBalanceReport")
	s.ctx = ctx
	defer span.Finish()

	snap := s.loadSnapshot(chatID)
	eligible := settlement.Eligible(snap.Expenses, snap.Settlement.LastSettled)
	res := settlement.Resolve(eligible, snap.Members)
	return formatBalance(res)
}

// getBudgetsReport Список бюджетов с расходами текущего месяца.
func getBudgetsReport(s *Model, chatID int64) string {
	span, ctx := opentracing.StartSpanFromContext(s.ctx, "getBudgetsReport")
	s.ctx = ctx
	defer span.Finish()

	snap := s.loadSnapshot(chatID)
	if len(snap.Budgets) == 0 {
		return txtBudgetsEmpty
	}
	now := time.Now()
	var res strings.Builder
	res.WriteString(txtBudgetsHeader + "\n<pre>")
	for _, b := range snap.Budgets {
		spent := summary.SpentForCategoryInMonth(snap.Expenses, b.Name, now)
		res.WriteString(fmt.Sprintf("%-15s %10.2f / %.2f\n", b.Name, spent, b.Budget))
	}
	res.WriteString("</pre>")
	return res.String()
}

// getDigestReport Получение сводки: из кэша, либо запрос на построение в кафку.
func getDigestReport(s *Model, chatID int64) string {
	span, ctx := opentracing.StartSpanFromContext(s.ctx, "getDigestReport")
	s.ctx = ctx
	defer span.Finish()

	// Попытка получить готовую сводку из кэша.
	if cacheValue := s.digestCache.Get(digestCacheKey(chatID)); cacheValue != nil {
		if answerText, ok := cacheValue.(string); ok {
			return answerText
		}
		logger.Error("Ошибка приведения значения кэша к строке.")
	}

	// Отправка запроса на формирование сводки в кафку.
	p, o, err := s.kafkaProducer.SendMessage(strconv.FormatInt(chatID, 10), "digest")
	if err != nil {
		logger.Error("Ошибка отправки сообщения в кафку", "err", err)
		return txtDigestError
	}
	logger.Debug(fmt.Sprintf("[KAFKA] Successful to write message, topic %s, offset:%d, partition: %d", s.kafkaProducer.GetTopic(), o, p))
	return txtDigestWait
}

// formatBalance Форматирование результата расчёта в текст ответа.
func formatBalance(res settlement.Result) string {
	if res.AllClear && len(res.Transfers) == 0 && res.Total == 0 {
		return txtAllClear
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf(txtBalanceHeader, res.Total, res.Share) + "\n<pre>")
	for _, bal := range res.Balances {
		b.WriteString(fmt.Sprintf("%-15s %+10.2f\n", bal.UserName, bal.Amount))
	}
	b.WriteString("</pre>")

	if res.AllClear || len(res.Transfers) == 0 {
		b.WriteString("\n" + txtAllClear)
		return b.String()
	}

	b.WriteString("\n" + txtTransfers + "\n<pre>")
	for _, t := range res.Transfers {
		b.WriteString(fmt.Sprintf("%v -> %v: %.2f\n", t.From, t.To, t.Amount))
	}
	b.WriteString("</pre>")
	return b.String()
}

// formatDigest Форматирование сводки по периодам в текст ответа.
func formatDigest(digest types.ChatDigest) string {
	var b strings.Builder
	b.WriteString("Сводка расходов:\n")
	for _, period := range digest.Periods {
		title := digestPeriodTitles[period.Key]
		if title == "" {
			title = period.Key
		}
		b.WriteString(fmt.Sprintf("<b>%v</b>\n", title))
		if len(period.Rows) == 0 {
			b.WriteString("Данных нет.\n")
			continue
		}
		b.WriteString("<pre>")
		total := 0.0
		for _, row := range period.Rows {
			total += row.Spent
			if row.Budget > 0 {
				b.WriteString(fmt.Sprintf("%-15s %10.2f / %.2f\n", row.Category, row.Spent, row.Budget))
			} else {
				b.WriteString(fmt.Sprintf("%-15s %10.2f\n", row.Category, row.Spent))
			}
		}
		b.WriteString(fmt.Sprintf("%-15s %10.2f\n", "ИТОГО", total))
		b.WriteString("</pre>")
	}
	return b.String()
}

// Область "Формирование ответов": конец.

// Область "Другие функции": начало.

// ensureMember Неявное добавление участника при первой активности.
func ensureMember(snap *types.LedgerSnapshot, msg Message) {
	if msg.UserName == "" || findMember(snap.Members, msg.UserName) != nil {
		return
	}
	snap.Members = append(snap.Members, types.Member{
		UserName:    msg.UserName,
		TgID:        msg.UserID,
		DisplayName: msg.UserDisplayName,
	})
}

// findMember Поиск участника по имени.
func findMember(members []types.Member, userName string) *types.Member {
	for i := range members {
		if members[i].UserName == userName {
			return &members[i]
		}
	}
	return nil
}

// overBudgetWarning Предупреждение о превышении месячного бюджета категории
// (справочное, запись расхода не блокируется).
func overBudgetWarning(snap *types.LedgerSnapshot, category string) string {
	for _, b := range snap.Budgets {
		if b.Name != category || b.Budget <= 0 {
			continue
		}
		spent := summary.SpentForCategoryInMonth(snap.Expenses, category, time.Now())
		if spent > b.Budget {
			return fmt.Sprintf(txtOverBudget, category, spent, b.Budget)
		}
	}
	return ""
}

// digestCacheKey Ключ кэша сводок по чату.
func digestCacheKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

// Область "Другие функции": конец.

// Область "Служебные функции": конец.
