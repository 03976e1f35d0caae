package search

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrNoIngredients 未選擇任何食材
	ErrNoIngredients = errors.New("search: at least one ingredient is required")
	// ErrBlankIngredient 食材去除空白後為空字串
	ErrBlankIngredient = errors.New("search: ingredient is blank")
)

const (
	andOperator = " & "
	orOperator  = " | "
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// BuildSearchExpression 將食材組合成 web-search 語法的查詢字串。
// 每個食材內的字以 & 連接，食材之間以 | 連接，例如
// {"salt", "black pepper"} 會得到 "salt | black & pepper"。
func BuildSearchExpression(ingredients []string) (string, error) {
	if len(ingredients) == 0 {
		return "", ErrNoIngredients
	}

	terms := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		term, err := ingredientTerm(ing)
		if err != nil {
			return "", err
		}
		terms = append(terms, term)
	}
	return strings.Join(terms, orOperator), nil
}

// ingredientTerm 單一食材的子查詢
func ingredientTerm(ingredient string) (string, error) {
	trimmed := strings.TrimSpace(ingredient)
	if trimmed == "" {
		return "", ErrBlankIngredient
	}
	return whitespaceRun.ReplaceAllString(trimmed, andOperator), nil
}
