package expense

import (
	"testing"

	"github.com/stretchr/testify/assert"
	types "github.com/avkozyreva/tg-splitbot/internal/model/bottypes"
)

func Test_ParseText_ShouldSumAdditiveAmountsWithDash(t *testing.T) {
	res := ParseText("50+30-food")

	assert.NotNil(t, res)
	assert.Equal(t, 80.0, res.Amount)
	assert.Equal(t, "food", res.Category)
}

func Test_ParseText_ShouldSumAdditiveAmountsWithSpace(t *testing.T) {
	res := ParseText("50+30 food")

	assert.NotNil(t, res)
	assert.Equal(t, 80.0, res.Amount)
	assert.Equal(t, "food", res.Category)
}

func Test_ParseText_DashAndSpaceFormsAreEquivalent(t *testing.T) {
	dash := ParseText("100-food")
	space := ParseText("100 food")

	assert.NotNil(t, dash)
	assert.NotNil(t, space)
	assert.Equal(t, *dash, *space)
	assert.Equal(t, 100.0, dash.Amount)
	assert.Equal(t, "food", dash.Category)
}

func Test_ParseText_ShouldMatchCategoryFirstForm(t *testing.T) {
	res := ParseText("food 100")

	assert.NotNil(t, res)
	assert.Equal(t, 100.0, res.Amount)
	assert.Equal(t, "food", res.Category)
}

func Test_ParseText_ShouldParseBareNumberWithoutCategory(t *testing.T) {
	res := ParseText("100")

	assert.NotNil(t, res)
	assert.Equal(t, 100.0, res.Amount)
	assert.Equal(t, "", res.Category)
}

func Test_ParseText_ShouldKeepDecimalPrecision(t *testing.T) {
	res := ParseText("99.50-food")

	assert.NotNil(t, res)
	assert.Equal(t, 99.5, res.Amount)
	assert.Equal(t, "food", res.Category)
}

func Test_ParseText_ShouldBeCaseInsensitive(t *testing.T) {
	upper := ParseText("100-FOOD")
	mixed := ParseText("100-Food")

	assert.NotNil(t, upper)
	assert.NotNil(t, mixed)
	assert.Equal(t, "food", upper.Category)
	assert.Equal(t, "food", mixed.Category)
}

func Test_ParseText_ShouldStripStopWordsBeforeMatching(t *testing.T) {
	res := ParseText("spent 100 on food")

	assert.NotNil(t, res)
	assert.Equal(t, 100.0, res.Amount)
	assert.Equal(t, "food", res.Category)
}

func Test_ParseText_ShouldMatchLooseNaturalText(t *testing.T) {
	res := ParseText("bought 100 groceries")

	assert.NotNil(t, res)
	assert.Equal(t, 100.0, res.Amount)
	assert.Equal(t, "groceries", res.Category)
}

func Test_ParseText_LooseMatchPrefersPrecedingWord(t *testing.T) {
	res := ParseText("taxi 250 downtown")

	assert.NotNil(t, res)
	assert.Equal(t, 250.0, res.Amount)
	assert.Equal(t, "taxi", res.Category)
}

func Test_ParseText_FirstPatternWinsOverLaterOnes(t *testing.T) {
	// Сумма со слагаемыми не должна "проваливаться" в одиночные шаблоны.
	res := ParseText("10+20+30-trip")

	assert.NotNil(t, res)
	assert.Equal(t, 60.0, res.Amount)
	assert.Equal(t, "trip", res.Category)
}

func Test_ParseText_ShouldReturnNil_Cases(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "текст без цифр", text: "just some text"},
		{name: "пустая строка", text: ""},
		{name: "только служебные слова", text: "spent paid on the"},
		{name: "два числа без категории", text: "100 200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, ParseText(tt.text))
		})
	}
}

func Test_ParseText_CategoryWithDigitsDoesNotQualify(t *testing.T) {
	res := ParseText("100 a1b2")

	assert.Nil(t, res)
}

func Test_ValidateCategory_ShouldRemapUnknownToUncategorized(t *testing.T) {
	budgets := []types.BudgetEntry{{Name: "food", Budget: 5000}}

	assert.Equal(t, "food", ValidateCategory("food", budgets))
	assert.Equal(t, types.UncategorizedKey, ValidateCategory("taxi", budgets))
	assert.Equal(t, types.UncategorizedKey, ValidateCategory("", budgets))
}

func Test_ParseAll_ManyAmountsOneKnownCategory(t *testing.T) {
	budgets := []types.BudgetEntry{{Name: "food", Budget: 5000}}

	res := ParseAll("food 100 and 200 and 300", budgets)

	assert.Equal(t, []ParsedExpense{
		{Amount: 100, Category: "food"},
		{Amount: 200, Category: "food"},
		{Amount: 300, Category: "food"},
	}, res)
}

func Test_ParseAll_OneAmountManyCategories_TakesFirstOnly(t *testing.T) {
	budgets := []types.BudgetEntry{{Name: "food", Budget: 5000}, {Name: "taxi", Budget: 3000}}

	res := ParseAll("food taxi 100", budgets)

	assert.Equal(t, []ParsedExpense{{Amount: 100, Category: "food"}}, res)
}

func Test_ParseAll_PositionalPairingTruncatesToShorterList(t *testing.T) {
	budgets := []types.BudgetEntry{{Name: "food", Budget: 5000}, {Name: "taxi", Budget: 3000}}

	res := ParseAll("food 100 taxi 200 300", budgets)

	assert.Equal(t, []ParsedExpense{
		{Amount: 100, Category: "food"},
		{Amount: 200, Category: "taxi"},
	}, res)
}

func Test_ParseAll_NoKnownCategories_FallsBackToCascade(t *testing.T) {
	budgets := []types.BudgetEntry{{Name: "food", Budget: 5000}}

	res := ParseAll("bought 100 groceries", budgets)

	// Кандидат "groceries" не является ключом бюджета и заменяется.
	assert.Equal(t, []ParsedExpense{{Amount: 100, Category: types.UncategorizedKey}}, res)
}

func Test_ParseAll_NoAmounts_ReturnsNil(t *testing.T) {
	assert.Nil(t, ParseAll("food and drinks", []types.BudgetEntry{{Name: "food"}}))
}
