package bottypes

import (
	"time"
)

// Ключ категории для расходов, у которых категорию распознать не удалось.
const UncategorizedKey = "uncategorized"

// Тип для записи о расходе в общей книге группы.
// ID совпадает с идентификатором исходного сообщения в телеграме,
// чтобы ответом (reply) на это сообщение расход можно было отменить.
type ExpenseRecord struct {
	ID        int64     // Идентификатор записи (= message id).
	UserName  string    // Кто записал расход.
	Amount    float64   // Сумма (неотрицательная).
	Category  string    // Категория (ключ бюджета) или UncategorizedKey.
	Comment   string    // Исходный текст сообщения.
	Period    time.Time // Момент создания записи (не изменяется).
	Discarded bool      // Отменённые записи не участвуют в расчётах, но хранятся для аудита.
}

// Тип для записи о месячном бюджете по категории.
type BudgetEntry struct {
	Name   string  // Категория (уникальный ключ, в нижнем регистре).
	Budget float64 // Месячный лимит (>= 0).
}

// Участник группы.
type Member struct {
	UserName    string // Стабильный ключ участника.
	TgID        int64  // Идентификатор пользователя в телеграме (опционально).
	DisplayName string // Отображаемое имя (опционально, используется при разрешении упоминаний).
}

// Состояние подтверждения расчёта по группе.
// Когда отмечены все участники, множество отметок сбрасывается,
// а LastSettled сдвигается на текущий момент (точка отсечения книги).
type SettlementState struct {
	Settled     map[string]bool // userName -> отметка "рассчитался".
	LastSettled *time.Time      // Дата последнего полного расчёта (nil - расчётов не было).
}

// Снимок всей книги группы, читается и записывается целиком.
// Version используется для оптимистичной блокировки при записи.
type LedgerSnapshot struct {
	ChatID     int64
	Budgets    []BudgetEntry
	Expenses   []ExpenseRecord
	Members    []Member
	Settlement SettlementState
	Version    int64
}

// Упоминание участника в тексте сообщения (@username или text_mention).
type MentionSpan struct {
	Offset      int    // Смещение в тексте (в кодовых единицах UTF-16, как в телеграме).
	Length      int    // Длина упоминания (в кодовых единицах UTF-16).
	TgID        int64  // Идентификатор пользователя (для text_mention).
	UserName    string // Имя пользователя без "@" (для обычного упоминания).
	DisplayName string // Отображаемое имя (для text_mention).
}

// Строка сводки: расходы по категории за период в сравнении с бюджетом.
type DigestRow struct {
	Category string  `json:"category"`
	Spent    float64 `json:"spent"`
	Budget   float64 `json:"budget"` // 0 - бюджет не задан.
}

// Сводка за один календарный период.
type DigestPeriod struct {
	Key  string      `json:"key"` // today | yesterday | week | month
	Rows []DigestRow `json:"rows"`
}

// Сводка расходов группы по всем периодам.
type ChatDigest struct {
	ChatID  int64          `json:"chatID"`
	Periods []DigestPeriod `json:"periods"`
}

// Типы для описания состава кнопок телеграм сообщения.
// Кнопка сообщения.
type TgInlineButton struct {
	DisplayName string
	Value       string
}

// Строка с кнопками сообщения.
type TgRowButtons []TgInlineButton
