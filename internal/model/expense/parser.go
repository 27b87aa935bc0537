// Package expense - распознавание расходов в свободном тексте сообщений.
package expense

import (
	"regexp"
	"strconv"
	"strings"

	types "github.com/avkozyreva/tg-splitbot/internal/model/bottypes"
)

// Результат распознавания: сумма и кандидат категории.
// Пустая категория означает, что категорию распознать не удалось.
type ParsedExpense struct {
	Amount   float64
	Category string
}

// Служебные слова, вырезаемые из текста до распознавания (только целиком).
var stopWordsRegexp = regexp.MustCompile(`\b(spent|paid|expense|for|on|the|a|an|in|at|to|bought|purchase|purchased)\b`)

// Шаблоны каскада. Сумма - беззнаковое число с необязательной дробной частью,
// категория - строка строчных латинских букв.
var (
	additiveDashRegexp  = regexp.MustCompile(`^(\d+(?:\.\d+)?(?:\+\d+(?:\.\d+)?)+)-([a-z]+)$`)
	additiveSpaceRegexp = regexp.MustCompile(`^(\d+(?:\.\d+)?(?:\+\d+(?:\.\d+)?)+)\s+([a-z]+)$`)
	amountDashRegexp    = regexp.MustCompile(`^(\d+(?:\.\d+)?)-([a-z]+)$`)
	amountSpaceRegexp   = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s+([a-z]+)$`)
	categoryFirstRegexp = regexp.MustCompile(`^([a-z]+)\s+(\d+(?:\.\d+)?)$`)
	numberRegexp        = regexp.MustCompile(`\d+(?:\.\d+)?`)
	bareNumberRegexp    = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
	alphaWordRegexp     = regexp.MustCompile(`^[a-z]+$`)
	spacesRegexp        = regexp.MustCompile(`\s+`)
)

// Тип функции-распознавателя одного шаблона.
// nil означает "шаблон не подошёл", проверяется следующий по списку.
type matcherFunc func(text string) *ParsedExpense

// Фиксированный порядок проверки шаблонов. Первый подошедший выигрывает,
// дальнейшие шаблоны не проверяются, даже если тоже могли бы подойти.
var matchers = []matcherFunc{
	matchAdditiveDash,
	matchAdditiveSpace,
	matchAmountDash,
	matchAmountSpace,
	matchCategoryFirst,
	matchLooseText,
	matchBareNumber,
}

// ParseText Распознавание одного расхода в произвольном тексте.
// Возвращает nil, если текст не содержит расхода (это ожидаемый результат,
// а не ошибка - сообщение просто не является записью о расходе).
func ParseText(text string) *ParsedExpense {
	cleaned := preprocess(text)
	if cleaned == "" {
		return nil
	}
	for _, match := range matchers {
		if res := match(cleaned); res != nil {
			return res
		}
	}
	return nil
}

// preprocess Предобработка текста: нижний регистр, вырезание служебных слов,
// нормализация пробелов. Выполняется ровно один раз до всего каскада.
func preprocess(text string) string {
	cleaned := strings.ToLower(text)
	cleaned = stopWordsRegexp.ReplaceAllString(cleaned, " ")
	cleaned = spacesRegexp.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// Шаблон 1: несколько слагаемых через "+", затем дефис и категория ("50+30-food").
func matchAdditiveDash(text string) *ParsedExpense {
	m := additiveDashRegexp.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return &ParsedExpense{Amount: sumTerms(m[1]), Category: m[2]}
}

// Шаблон 2: те же слагаемые, но категория отделена пробелом ("50+30 food").
func matchAdditiveSpace(text string) *ParsedExpense {
	m := additiveSpaceRegexp.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return &ParsedExpense{Amount: sumTerms(m[1]), Category: m[2]}
}

// Шаблон 3: одна сумма, дефис, категория ("100-food").
func matchAmountDash(text string) *ParsedExpense {
	m := amountDashRegexp.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return &ParsedExpense{Amount: parseAmount(m[1]), Category: m[2]}
}

// Шаблон 4: сумма в начале строки, пробел, категория ("100 food").
func matchAmountSpace(text string) *ParsedExpense {
	m := amountSpaceRegexp.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return &ParsedExpense{Amount: parseAmount(m[1]), Category: m[2]}
}

// Шаблон 5: категория в начале строки, пробел, сумма ("food 100").
func matchCategoryFirst(text string) *ParsedExpense {
	m := categoryFirstRegexp.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return &ParsedExpense{Amount: parseAmount(m[2]), Category: m[1]}
}

// Шаблон 6: "естественный" текст - первое число в любом месте строки,
// категория берётся из соседнего слова: сначала слово слева от числа,
// а если его нет или оно не буквенное - слово справа. Шаблон подходит
// только если нашлось и число, и подходящее соседнее слово.
func matchLooseText(text string) *ParsedExpense {
	loc := numberRegexp.FindStringIndex(text)
	if loc == nil {
		return nil
	}
	before := strings.Fields(text[:loc[0]])
	after := strings.Fields(text[loc[1]:])

	category := ""
	if len(before) > 0 && alphaWordRegexp.MatchString(before[len(before)-1]) {
		category = before[len(before)-1]
	} else if len(after) > 0 && alphaWordRegexp.MatchString(after[0]) {
		category = after[0]
	}
	if category == "" {
		return nil
	}
	return &ParsedExpense{Amount: parseAmount(text[loc[0]:loc[1]]), Category: category}
}

// Шаблон 7: вся строка целиком - одно число, категория отсутствует.
func matchBareNumber(text string) *ParsedExpense {
	if !bareNumberRegexp.MatchString(text) {
		return nil
	}
	return &ParsedExpense{Amount: parseAmount(text)}
}

// sumTerms Сумма слагаемых вида "50+30.5+20".
func sumTerms(terms string) float64 {
	total := 0.0
	for _, term := range strings.Split(terms, "+") {
		total += parseAmount(term)
	}
	return total
}

// parseAmount Парсинг суммы. Строка уже проверена регулярным выражением,
// поэтому ошибка парсинга невозможна.
func parseAmount(s string) float64 {
	amount, _ := strconv.ParseFloat(s, 64)
	return amount
}

// ValidateCategory Валидация кандидата категории по текущему набору бюджетов:
// известная категория принимается как есть, пустая или неизвестная
// заменяется на UncategorizedKey.
func ValidateCategory(category string, budgets []types.BudgetEntry) string {
	for _, b := range budgets {
		if b.Name == category {
			return category
		}
	}
	return types.UncategorizedKey
}

// ParseAll Распознавание расходов в "живом" сообщении с учётом текущих бюджетов.
// Категорией здесь считается только слово, совпадающее с ключом бюджета:
//   - N сумм и ровно одна известная категория: каждая сумма становится отдельной
//     записью под этой категорией;
//   - одна сумма и несколько известных категорий: берётся только первая категория;
//   - несколько сумм и несколько категорий: попарно, по длине короткого списка.
//
// Если известных категорий в тексте нет, выполняется обычный каскад ParseText,
// а его кандидат категории проходит валидацию по бюджетам.
func ParseAll(text string, budgets []types.BudgetEntry) []ParsedExpense {
	cleaned := preprocess(text)
	if cleaned == "" {
		return nil
	}

	amounts := numberRegexp.FindAllString(cleaned, -1)
	if len(amounts) == 0 {
		return nil
	}

	known := make(map[string]bool, len(budgets))
	for _, b := range budgets {
		known[b.Name] = true
	}
	var categories []string
	for _, word := range strings.Fields(cleaned) {
		if alphaWordRegexp.MatchString(word) && known[word] {
			categories = append(categories, word)
		}
	}

	if len(categories) == 0 {
		// Известных категорий в тексте нет: обычный каскад
		// плюс валидация кандидата по бюджетам.
		parsed := ParseText(text)
		if parsed == nil {
			return nil
		}
		return []ParsedExpense{{Amount: parsed.Amount, Category: ValidateCategory(parsed.Category, budgets)}}
	}

	switch {
	case len(amounts) > 1 && len(categories) == 1:
		// Все суммы под единственной известной категорией.
		result := make([]ParsedExpense, 0, len(amounts))
		for _, a := range amounts {
			result = append(result, ParsedExpense{Amount: parseAmount(a), Category: categories[0]})
		}
		return result
	case len(amounts) == 1 && len(categories) > 1:
		// Одна сумма и несколько категорий: учитывается только первая категория.
		return []ParsedExpense{{Amount: parseAmount(amounts[0]), Category: categories[0]}}
	default:
		// Попарное сопоставление, лишние элементы отбрасываются.
		n := len(amounts)
		if len(categories) < n {
			n = len(categories)
		}
		result := make([]ParsedExpense, 0, n)
		for i := 0; i < n; i++ {
			result = append(result, ParsedExpense{Amount: parseAmount(amounts[i]), Category: categories[i]})
		}
		return result
	}
}
