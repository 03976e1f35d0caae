package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	recipeService "recipe-finder/internal/core/recipe"
	"recipe-finder/internal/core/search"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

type stubStore struct {
	cuisines     []string
	candidates   []search.RecipeCandidate
	instructions []recipeService.InstructionRecord
	err          error
}

func (s *stubStore) ListCuisines(ctx context.Context) ([]string, error) {
	return s.cuisines, s.err
}

func (s *stubStore) ListIngredients(ctx context.Context, cuisine string) ([]string, error) {
	return []string{"salt", "cumin"}, s.err
}

func (s *stubStore) SearchRecipes(ctx context.Context, expression string, limit int) ([]search.RecipeCandidate, error) {
	return s.candidates, s.err
}

func (s *stubStore) FetchInstructions(ctx context.Context, names []string) ([]recipeService.InstructionRecord, error) {
	return s.instructions, s.err
}

func newRouter(store recipeService.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(recipeService.NewService(store, 0), false)

	r := gin.New()
	r.GET("/cuisines", h.HandleCuisines)
	r.GET("/cuisines/:cuisine/ingredients", h.HandleIngredients)
	r.POST("/search", h.HandleSearch)
	r.POST("/recommend", h.HandleRecommend)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func minutes(v float64) *float64 { return &v }

func TestHandleCuisines(t *testing.T) {
	w := do(newRouter(&stubStore{cuisines: []string{"Indian", "Thai"}}), http.MethodGet, "/cuisines", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var res recipeService.CuisinesResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Cuisines) != 2 || res.Empty != nil {
		t.Fatalf("unexpected response %+v", res)
	}
}

func TestHandleCuisinesUpstreamFailure(t *testing.T) {
	w := do(newRouter(&stubStore{err: errors.New("dial tcp: refused")}), http.MethodGet, "/cuisines", "")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}

	var res common.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Code != common.ErrCodeUpstreamFailure {
		t.Fatalf("expected %s, got %s", common.ErrCodeUpstreamFailure, res.Code)
	}
	if strings.Contains(w.Body.String(), "refused") {
		t.Fatalf("upstream details must not leak outside debug mode: %s", w.Body.String())
	}
}

func TestHandleIngredients(t *testing.T) {
	w := do(newRouter(&stubStore{}), http.MethodGet, "/cuisines/Indian/ingredients", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var res recipeService.IngredientsResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Cuisine != "Indian" || strings.Join(res.Ingredients, ",") != "cumin,salt" {
		t.Fatalf("unexpected response %+v", res)
	}
}

func TestHandleSearch(t *testing.T) {
	store := &stubStore{candidates: []search.RecipeCandidate{
		{Name: "Dal", Rank: 0.7, TotalTimeMins: minutes(20)},
	}}
	w := do(newRouter(store), http.MethodPost, "/search", `{"ingredients":["salt","black pepper"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var res recipeService.SearchResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Expression != "salt | black & pepper" {
		t.Fatalf("unexpected expression %q", res.Expression)
	}
	if res.TimeRange == nil || *res.TimeRange != (search.TimeRange{Min: 19, Max: 21}) {
		t.Fatalf("unexpected time range %+v", res.TimeRange)
	}
}

func TestHandleSearchBadRequest(t *testing.T) {
	w := do(newRouter(&stubStore{}), http.MethodPost, "/search", `{"ingredients":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHandleRecommend(t *testing.T) {
	store := &stubStore{
		candidates: []search.RecipeCandidate{
			{Name: "Dal", Rank: 0.7, TotalTimeMins: minutes(20)},
			{Name: "Biryani", Rank: 0.6, TotalTimeMins: minutes(90)},
		},
		instructions: []recipeService.InstructionRecord{
			{RecipeName: "Dal", RawInstructions: "Boil the lentils. Add salt."},
		},
	}
	body := `{"cuisine":"Indian","ingredients":["salt","lentils"],"max_time":30}`
	w := do(newRouter(store), http.MethodPost, "/recommend", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var res recipeService.Recommendation
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Recipes) != 1 || res.Recipes[0].Name != "Dal" {
		t.Fatalf("unexpected recipes %+v", res.Recipes)
	}
	want := "<ol><li>Boil the <strong>lentils</strong>.</li><li>Add <strong>salt</strong>.</li></ol>"
	if res.Recipes[0].HTML != want {
		t.Fatalf("expected %q, got %q", want, res.Recipes[0].HTML)
	}
}

func TestHandleRecommendEmptyState(t *testing.T) {
	w := do(newRouter(&stubStore{}), http.MethodPost, "/recommend", `{"cuisine":"Indian","ingredients":["salt"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("empty state must not be an error, got %d", w.Code)
	}

	var res recipeService.Recommendation
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Empty == nil || res.Empty.Reason != recipeService.EmptyNoMatches {
		t.Fatalf("expected no_matches, got %+v", res.Empty)
	}
}

func TestHandleRecommendInvalidRange(t *testing.T) {
	w := do(newRouter(&stubStore{}), http.MethodPost, "/recommend", `{"ingredients":["salt"],"min_time":50,"max_time":10}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var res common.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Code != common.ErrCodeInvalidRequest || !strings.Contains(res.Details, "min_time") {
		t.Fatalf("unexpected error response %+v", res)
	}
}
