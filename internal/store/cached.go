package store

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"recipe-finder/internal/core/cache"
	"recipe-finder/internal/core/recipe"
	"recipe-finder/internal/core/search"
	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// Cached 以快取包裝 recipe.Store，相同查詢與參數在 TTL 內不重複查詢。
// 失敗的查詢不寫入快取。
type Cached struct {
	next  recipe.Store
	cache cache.Cache
}

var _ recipe.Store = (*Cached)(nil)

// NewCached 建立快取包裝；c 為 nil 時直接回傳 next
func NewCached(next recipe.Store, c cache.Cache) recipe.Store {
	if c == nil {
		return next
	}
	return &Cached{next: next, cache: c}
}

// ListCuisines 料理類別
func (s *Cached) ListCuisines(ctx context.Context) ([]string, error) {
	return load(ctx, s.cache, "cuisines", func() ([]string, error) {
		return s.next.ListCuisines(ctx)
	})
}

// ListIngredients 料理類別的食材
func (s *Cached) ListIngredients(ctx context.Context, cuisine string) ([]string, error) {
	return load(ctx, s.cache, cacheKey("ingredients", cuisine), func() ([]string, error) {
		return s.next.ListIngredients(ctx, cuisine)
	})
}

// SearchRecipes 全文檢索
func (s *Cached) SearchRecipes(ctx context.Context, expression string, limit int) ([]search.RecipeCandidate, error) {
	return load(ctx, s.cache, cacheKey("search", strconv.Itoa(limit), expression), func() ([]search.RecipeCandidate, error) {
		return s.next.SearchRecipes(ctx, expression, limit)
	})
}

// FetchInstructions 步驟說明
func (s *Cached) FetchInstructions(ctx context.Context, names []string) ([]recipe.InstructionRecord, error) {
	return load(ctx, s.cache, cacheKey("instructions", names...), func() ([]recipe.InstructionRecord, error) {
		return s.next.FetchInstructions(ctx, names)
	})
}

// Ping 轉交給下層 store
func (s *Cached) Ping(ctx context.Context) error {
	if p, ok := s.next.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}

// load 先查快取，未命中時呼叫 fetch 並寫回快取。快取本身出錯只記錄日誌。
func load[T any](ctx context.Context, c cache.Cache, key string, fetch func() (T, error)) (T, error) {
	data, err := c.Get(ctx, key)
	switch {
	case err == nil:
		var cached T
		if err := common.ParseJSONBytes(data, &cached); err == nil {
			return cached, nil
		}
		common.LogWarn("快取內容無法解析", zap.String("鍵", key))
	case !errors.Is(err, common.ErrCacheMiss):
		common.LogWarn("快取讀取失敗", zap.String("鍵", key), zap.Error(err))
	}

	value, err := fetch()
	if err != nil {
		return value, err
	}

	data, err = common.ToJSONBytes(value)
	if err != nil {
		common.LogWarn("快取內容無法編碼", zap.String("鍵", key), zap.Error(err))
		return value, nil
	}
	if err := c.Set(ctx, key, data); err != nil {
		common.LogWarn("快取寫入失敗", zap.String("鍵", key), zap.Error(err))
	}
	return value, nil
}

// cacheKey 以查詢種類與參數雜湊組成快取鍵
func cacheKey(kind string, parts ...string) string {
	return "store:" + kind + ":" + common.HashString(strings.Join(parts, "\x00"))
}
