package recipe

import (
	"context"
	"fmt"
	"sort"
	"time"

	"recipe-finder/internal/core/instruction"
	"recipe-finder/internal/core/search"
	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 食譜推薦服務
type Service struct {
	store       Store
	searchLimit int
}

// NewService 創建食譜推薦服務。searchLimit 不在 1 到 DefaultResultLimit 之間時使用預設上限
func NewService(store Store, searchLimit int) *Service {
	if searchLimit <= 0 || searchLimit > search.DefaultResultLimit {
		searchLimit = search.DefaultResultLimit
	}
	return &Service{
		store:       store,
		searchLimit: searchLimit,
	}
}

// Cuisines 取得所有料理類別
func (s *Service) Cuisines(ctx context.Context) ([]string, *EmptyState, error) {
	start := time.Now()
	cuisines, err := s.store.ListCuisines(ctx)
	common.LogStoreCall("list_cuisines", time.Since(start), len(cuisines), err)
	if err != nil {
		return []string{}, nil, &UpstreamError{Op: "list cuisines", Err: err}
	}
	if len(cuisines) == 0 {
		return []string{}, NewEmptyState(EmptyNoCuisines), nil
	}
	return cuisines, nil, nil
}

// Ingredients 取得料理類別的食材，排序並去除重複
func (s *Service) Ingredients(ctx context.Context, cuisine string) ([]string, error) {
	if cuisine == "" {
		return nil, common.NewValidationError("cuisine is required")
	}

	start := time.Now()
	raw, err := s.store.ListIngredients(ctx, cuisine)
	common.LogStoreCall("list_ingredients", time.Since(start), len(raw), err)
	if err != nil {
		return []string{}, &UpstreamError{Op: "list ingredients", Err: err}
	}

	ingredients := common.NormalizeSelection(raw)
	sort.Strings(ingredients)
	return ingredients, nil
}

// Search 依選擇的食材做全文檢索並計算預設時間範圍
func (s *Service) Search(ctx context.Context, ingredients []string) (*SearchResult, error) {
	selected := common.NormalizeSelection(ingredients)
	if len(selected) == 0 {
		return &SearchResult{
			Candidates: []search.RecipeCandidate{},
			Empty:      NewEmptyState(EmptyNoIngredientsSelected),
		}, nil
	}

	expression, err := search.BuildSearchExpression(selected)
	if err != nil {
		return nil, common.NewValidationError(err.Error())
	}

	result := &SearchResult{
		Expression: expression,
		Candidates: []search.RecipeCandidate{},
	}

	candidates, err := s.searchRecipes(ctx, expression)
	if err != nil {
		return result, err
	}
	if len(candidates) == 0 {
		result.Empty = NewEmptyState(EmptyNoMatches)
		return result, nil
	}
	result.Candidates = candidates

	r, ok := search.DefaultTimeRange(candidates)
	if !ok {
		result.Empty = NewEmptyState(EmptyNoCookableRecipes)
		return result, nil
	}
	result.TimeRange = &r
	return result, nil
}

// Recommend 執行完整推薦流程：檢索、時間篩選、合併步驟說明、標示食材。
// 資料來源失敗時回傳空結果與 *UpstreamError。
func (s *Service) Recommend(ctx context.Context, req RecommendRequest) (*Recommendation, error) {
	rec := &Recommendation{
		Cuisine:      req.Cuisine,
		QuickRecipes: []search.RecipeCandidate{},
		Recipes:      []RenderedRecipe{},
	}

	if req.MinTime != nil && req.MaxTime != nil && *req.MinTime > *req.MaxTime {
		return nil, common.NewValidationError(fmt.Sprintf("min_time %d is greater than max_time %d", *req.MinTime, *req.MaxTime))
	}

	found, err := s.Search(ctx, req.Ingredients)
	if err != nil {
		return rec, err
	}
	rec.Expression = found.Expression
	if found.Empty != nil {
		rec.Empty = found.Empty
		return rec, nil
	}

	defaultRange := *found.TimeRange
	selected := selectRange(defaultRange, req.MinTime, req.MaxTime)
	rec.DefaultRange = &defaultRange
	rec.SelectedRange = &selected

	quick := search.FilterByTime(found.Candidates, selected.Min, selected.Max)
	rec.QuickRecipes = quick
	if len(quick) == 0 {
		rec.Empty = NewEmptyState(EmptyNoRecipesInRange)
		return rec, nil
	}

	records, err := s.fetchInstructions(ctx, quick)
	if err != nil {
		return rec, err
	}

	rec.Recipes = render(quick, records, common.NormalizeSelection(req.Ingredients))
	if len(rec.Recipes) == 0 {
		rec.Empty = NewEmptyState(EmptyNoInstructions)
	}

	common.LogInfo("推薦完成",
		zap.String("cuisine", req.Cuisine),
		zap.String("expression", rec.Expression),
		zap.Int("candidates", len(found.Candidates)),
		zap.Int("quick_recipes", len(quick)),
		zap.Int("rendered", len(rec.Recipes)),
	)
	return rec, nil
}

func (s *Service) searchRecipes(ctx context.Context, expression string) ([]search.RecipeCandidate, error) {
	start := time.Now()
	candidates, err := s.store.SearchRecipes(ctx, expression, s.searchLimit)
	common.LogStoreCall("search_recipes", time.Since(start), len(candidates), err)
	if err != nil {
		return nil, &UpstreamError{Op: "search recipes", Err: err}
	}
	return search.RankCandidates(candidates, s.searchLimit), nil
}

func (s *Service) fetchInstructions(ctx context.Context, recipes []search.RecipeCandidate) ([]InstructionRecord, error) {
	names := make([]string, len(recipes))
	for i, r := range recipes {
		names[i] = r.Name
	}

	start := time.Now()
	records, err := s.store.FetchInstructions(ctx, names)
	common.LogStoreCall("fetch_instructions", time.Since(start), len(records), err)
	if err != nil {
		return nil, &UpstreamError{Op: "fetch instructions", Err: err}
	}
	return records, nil
}

// selectRange 使用者未指定的一端沿用預設範圍
func selectRange(def search.TimeRange, lo, hi *int) search.TimeRange {
	r := def
	if lo != nil {
		r.Min = *lo
	}
	if hi != nil {
		r.Max = *hi
	}
	return r
}

// render 依 quick 的順序與步驟說明做 inner join，沒有說明的食譜不輸出
func render(quick []search.RecipeCandidate, records []InstructionRecord, ingredients []string) []RenderedRecipe {
	byName := make(map[string][]InstructionRecord, len(records))
	for _, rec := range records {
		byName[rec.RecipeName] = append(byName[rec.RecipeName], rec)
	}

	highlighter := instruction.NewHighlighter(ingredients)
	rendered := make([]RenderedRecipe, 0, len(records))
	for _, c := range quick {
		for _, rec := range byName[c.Name] {
			text := rec.RawInstructions
			steps := highlighter.Steps(&text)
			rendered = append(rendered, RenderedRecipe{
				Name:          c.Name,
				TotalTimeMins: c.TotalTimeMins,
				Steps:         steps,
				HTML:          instruction.RenderOrderedList(steps),
			})
		}
	}
	return rendered
}
