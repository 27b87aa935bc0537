package expense

import (
	"testing"

	"github.com/stretchr/testify/assert"

	types "github.com/avkozyreva/tg-splitbot/internal/model/bottypes"
)

var testMembers = []types.Member{
	{UserName: "alice", TgID: 100, DisplayName: "Alice A."},
	{UserName: "bob", TgID: 101, DisplayName: "Bob B."},
}

func Test_ResolveTagged_ShouldResolveForRelation(t *testing.T) {
	res := ResolveTagged("100 food for @bob", []types.MentionSpan{{Offset: 9, Length: 4, UserName: "bob"}}, testMembers)

	assert.NotNil(t, res)
	assert.Equal(t, 100.0, res.Amount)
	assert.Equal(t, "food", res.Category)
	assert.Equal(t, "bob", res.Member.UserName)
	assert.Equal(t, RelationFor, res.Relation)
	// Связка с упоминанием вырезана из комментария.
	assert.Equal(t, "100 food", res.Comment)
}

func Test_ResolveTagged_ShouldResolveByAndSplitRelations(t *testing.T) {
	res := ResolveTagged("250 taxi by @bob", []types.MentionSpan{{UserName: "bob"}}, testMembers)
	assert.NotNil(t, res)
	assert.Equal(t, RelationBy, res.Relation)

	res = ResolveTagged("250 taxi split @bob", []types.MentionSpan{{UserName: "bob"}}, testMembers)
	assert.NotNil(t, res)
	assert.Equal(t, RelationSplit, res.Relation)
}

func Test_ResolveTagged_ShouldPreferForRelation_WhenSeveralPresent(t *testing.T) {
	// Порядок проверки связок фиксирован: for раньше by.
	res := ResolveTagged("100 food by @alice for @bob", []types.MentionSpan{{UserName: "alice"}}, testMembers)

	assert.NotNil(t, res)
	assert.Equal(t, RelationFor, res.Relation)
	// Учитывается только первое упоминание.
	assert.Equal(t, "alice", res.Member.UserName)
}

func Test_ResolveTagged_ShouldResolveMemberByTgID(t *testing.T) {
	// Упоминание без имени пользователя (text_mention) ищется по идентификатору.
	res := ResolveTagged("100 food for @101", []types.MentionSpan{{TgID: 101, DisplayName: "Bob B."}}, testMembers)

	assert.NotNil(t, res)
	assert.Equal(t, "bob", res.Member.UserName)
}

func Test_ResolveTagged_ShouldResolveMemberByDisplayName(t *testing.T) {
	res := ResolveTagged("100 food for @someone", []types.MentionSpan{{DisplayName: "Bob B."}}, testMembers)

	assert.NotNil(t, res)
	assert.Equal(t, "bob", res.Member.UserName)
}

func Test_ResolveTagged_ShouldDefaultCategory_WhenNoneParsed(t *testing.T) {
	res := ResolveTagged("100 for @bob", []types.MentionSpan{{UserName: "bob"}}, testMembers)

	assert.NotNil(t, res)
	assert.Equal(t, types.UncategorizedKey, res.Category)
}

func Test_ResolveTagged_ShouldReturnNil_WhenNotTaggedExpense(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		mentions []types.MentionSpan
	}{
		{"нет упоминаний", "100 food for @bob", nil},
		{"упомянутый не участник группы", "100 food for @stranger", []types.MentionSpan{{UserName: "stranger"}}},
		{"нет связки for/by/split", "100 food @bob", []types.MentionSpan{{UserName: "bob"}}},
		{"нет суммы", "food for @bob", []types.MentionSpan{{UserName: "bob"}}},
		{"нулевая сумма", "0 food for @bob", []types.MentionSpan{{UserName: "bob"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, ResolveTagged(tt.text, tt.mentions, testMembers))
		})
	}
}
