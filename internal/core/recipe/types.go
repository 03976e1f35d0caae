package recipe

import (
	"context"
	"fmt"

	"recipe-finder/internal/core/search"
)

// Store 食譜資料來源
type Store interface {
	// ListCuisines 依名稱排序的料理類別
	ListCuisines(ctx context.Context) ([]string, error)
	// ListIngredients 某料理類別的食材
	ListIngredients(ctx context.Context, cuisine string) ([]string, error)
	// SearchRecipes 全文檢索，依相關度排序並截取前 limit 筆
	SearchRecipes(ctx context.Context, expression string, limit int) ([]search.RecipeCandidate, error)
	// FetchInstructions 取得指定食譜的步驟說明
	FetchInstructions(ctx context.Context, names []string) ([]InstructionRecord, error)
}

// InstructionRecord 食譜的步驟說明，資料庫中為 NULL 時為空字串
type InstructionRecord struct {
	RecipeName      string `json:"rname"`
	RawInstructions string `json:"instructions"`
}

// EmptyReason 無資料可顯示的原因
type EmptyReason string

const (
	EmptyNoCuisines            EmptyReason = "no_cuisines"
	EmptyNoIngredientsSelected EmptyReason = "no_ingredients_selected"
	EmptyNoMatches             EmptyReason = "no_matches"
	EmptyNoCookableRecipes     EmptyReason = "no_cookable_recipes"
	EmptyNoRecipesInRange      EmptyReason = "no_recipes_in_range"
	EmptyNoInstructions        EmptyReason = "no_instructions"
)

var emptyMessages = map[EmptyReason]string{
	EmptyNoCuisines:            "No cuisines loaded.",
	EmptyNoIngredientsSelected: "Please select at least one ingredient.",
	EmptyNoMatches:             "No matching recipes found.",
	EmptyNoCookableRecipes:     "No cookable recipes with positive time found.",
	EmptyNoRecipesInRange:      "No recipes within the selected cooking time.",
	EmptyNoInstructions:        "No instructions found for the matching recipes.",
}

// EmptyState 流程正常結束但沒有可顯示的內容，不是錯誤
type EmptyState struct {
	Reason  EmptyReason `json:"reason"`
	Message string      `json:"message"`
}

// NewEmptyState 依原因建立 EmptyState
func NewEmptyState(reason EmptyReason) *EmptyState {
	return &EmptyState{Reason: reason, Message: emptyMessages[reason]}
}

// UpstreamError 資料來源查詢失敗
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("recipe store %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// SearchResult 全文檢索結果
type SearchResult struct {
	Expression string                   `json:"expression"`
	Candidates []search.RecipeCandidate `json:"candidates"`
	TimeRange  *search.TimeRange        `json:"time_range,omitempty"`
	Empty      *EmptyState              `json:"empty,omitempty"`
}

// SearchRequest 全文檢索請求
type SearchRequest struct {
	Ingredients []string `json:"ingredients"`
}

// RecommendRequest 推薦請求，未指定的時間端點沿用預設範圍
type RecommendRequest struct {
	Cuisine     string   `json:"cuisine"`
	Ingredients []string `json:"ingredients"`
	MinTime     *int     `json:"min_time,omitempty"`
	MaxTime     *int     `json:"max_time,omitempty"`
}

// CuisinesResult 料理類別清單
type CuisinesResult struct {
	Cuisines []string    `json:"cuisines"`
	Empty    *EmptyState `json:"empty,omitempty"`
}

// IngredientsResult 料理類別的食材清單
type IngredientsResult struct {
	Cuisine     string   `json:"cuisine"`
	Ingredients []string `json:"ingredients"`
}

// RenderedRecipe 帶有標示步驟的食譜
type RenderedRecipe struct {
	Name          string   `json:"recipe_name"`
	TotalTimeMins *float64 `json:"total_time_mins"`
	Steps         []string `json:"steps"`
	HTML          string   `json:"html"`
}

// Recommendation 推薦結果。Empty 不為 nil 時表示流程在該階段結束，
// 已經算出的欄位（例如時間範圍）仍會保留。
type Recommendation struct {
	Cuisine       string                   `json:"cuisine,omitempty"`
	Expression    string                   `json:"expression,omitempty"`
	DefaultRange  *search.TimeRange        `json:"default_range,omitempty"`
	SelectedRange *search.TimeRange        `json:"selected_range,omitempty"`
	QuickRecipes  []search.RecipeCandidate `json:"quick_recipes"`
	Recipes       []RenderedRecipe         `json:"recipes"`
	Empty         *EmptyState              `json:"empty,omitempty"`
}
