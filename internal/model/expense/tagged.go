package expense

// Распознавание расходов с упоминанием участника ("100 обед for @vasya").

import (
	"regexp"
	"strings"

	types "github.com/avkozyreva/tg-splitbot/internal/model/bottypes"
)

// Допустимые связки между расходом и упомянутым участником.
const (
	RelationFor   = "for"
	RelationBy    = "by"
	RelationSplit = "split"
)

// Порядок проверки связок фиксирован: выигрывает первая найденная.
var relations = []string{RelationFor, RelationBy, RelationSplit}

// Шаблон для вырезания связки вместе с упоминанием из текста.
var tagRegexp = regexp.MustCompile(`(?i)\s(for|by|split)\s*@\S+`)

// Результат распознавания расхода с упоминанием.
type TaggedExpense struct {
	Amount   float64
	Category string       // Категория или UncategorizedKey.
	Member   types.Member // Участник, к которому относится расход.
	Relation string       // for | by | split, передаётся дальше без изменений.
	Comment  string       // Текст сообщения с вырезанной связкой.
}

// ResolveTagged Распознавание расхода, привязанного к участнику через упоминание.
// Возвращает nil, если сообщение не является таким расходом: нет упоминаний,
// упомянутый пользователь не входит в состав группы, нет связки for/by/split
// или из оставшегося текста не распозналась ненулевая сумма. Во всех этих
// случаях сообщение обрабатывается дальше как обычный текст.
func ResolveTagged(text string, mentions []types.MentionSpan, members []types.Member) *TaggedExpense {
	if len(mentions) == 0 {
		return nil
	}

	// Учитывается только первое упоминание, остальные игнорируются.
	member := resolveMember(mentions[0], members)
	if member == nil {
		return nil
	}

	relation := findRelation(text)
	if relation == "" {
		return nil
	}

	comment := strings.TrimSpace(tagRegexp.ReplaceAllString(text, ""))

	parsed := ParseText(comment)
	if parsed == nil || parsed.Amount == 0 {
		return nil
	}

	category := parsed.Category
	if category == "" {
		category = types.UncategorizedKey
	}

	return &TaggedExpense{
		Amount:   parsed.Amount,
		Category: category,
		Member:   *member,
		Relation: relation,
		Comment:  comment,
	}
}

// resolveMember Поиск участника по упоминанию: сначала точное совпадение
// имени пользователя, затем числового идентификатора, затем отображаемого имени.
func resolveMember(mention types.MentionSpan, members []types.Member) *types.Member {
	userName := strings.TrimPrefix(mention.UserName, "@")
	if userName != "" {
		for i, m := range members {
			if m.UserName == userName {
				return &members[i]
			}
		}
	}
	if mention.TgID != 0 {
		for i, m := range members {
			if m.TgID == mention.TgID {
				return &members[i]
			}
		}
	}
	if mention.DisplayName != "" {
		for i, m := range members {
			if m.DisplayName == mention.DisplayName {
				return &members[i]
			}
		}
	}
	return nil
}

// findRelation Поиск связки в тексте: требуется пробел перед словом связки
// и знак "@" сразу за ним (с пробелом или без).
func findRelation(text string) string {
	lowered := strings.ToLower(text)
	for _, rel := range relations {
		if strings.Contains(lowered, " "+rel+" @") || strings.Contains(lowered, " "+rel+"@") {
			return rel
		}
	}
	return ""
}
