package client

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"recipe-finder/internal/api"
	"recipe-finder/internal/core/recipe"
	"recipe-finder/internal/core/search"
	"recipe-finder/internal/infrastructure/config"
)

type memoryStore struct{}

func (memoryStore) ListCuisines(ctx context.Context) ([]string, error) {
	return []string{"Indian"}, nil
}

func (memoryStore) ListIngredients(ctx context.Context, cuisine string) ([]string, error) {
	if cuisine != "South Indian" {
		return nil, nil
	}
	return []string{"curry leaves", "mustard seeds"}, nil
}

func (memoryStore) SearchRecipes(ctx context.Context, expression string, limit int) ([]search.RecipeCandidate, error) {
	m := 20.0
	return []search.RecipeCandidate{{Name: "Lemon Rice", Ingredients: "rice, curry leaves", TotalTimeMins: &m, Rank: 0.5}}, nil
}

func (memoryStore) FetchInstructions(ctx context.Context, names []string) ([]recipe.InstructionRecord, error) {
	return []recipe.InstructionRecord{{RecipeName: "Lemon Rice", RawInstructions: "Fry the curry leaves. Mix with rice."}}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{
		App:    config.AppConfig{Version: "test"},
		Server: config.ServerConfig{RequestTimeout: 5 * time.Second, MaxBodyBytes: 1 << 20},
	}
	router, err := api.SetupRouter(cfg, api.Dependencies{Service: recipe.NewService(memoryStore{}, 0)})
	if err != nil {
		t.Fatalf("SetupRouter: %v", err)
	}
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient(t *testing.T) {
	c := New(newTestServer(t).URL + "/")
	ctx := context.Background()

	cuisines, err := c.Cuisines(ctx)
	if err != nil {
		t.Fatalf("Cuisines: %v", err)
	}
	if len(cuisines.Cuisines) != 1 || cuisines.Cuisines[0] != "Indian" {
		t.Fatalf("unexpected cuisines %+v", cuisines)
	}

	ingredients, err := c.Ingredients(ctx, "South Indian")
	if err != nil {
		t.Fatalf("Ingredients: %v", err)
	}
	if ingredients.Cuisine != "South Indian" || len(ingredients.Ingredients) != 2 {
		t.Fatalf("unexpected ingredients %+v", ingredients)
	}

	found, err := c.Search(ctx, []string{"curry leaves"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if found.Expression != "curry & leaves" || len(found.Candidates) != 1 {
		t.Fatalf("unexpected search result %+v", found)
	}

	rec, err := c.Recommend(ctx, recipe.RecommendRequest{Cuisine: "South Indian", Ingredients: []string{"curry leaves"}})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(rec.Recipes) != 1 || rec.Recipes[0].Steps[0] != "Fry the <strong>curry leaves</strong>." {
		t.Fatalf("unexpected recommendation %+v", rec)
	}
}

func TestClientAPIError(t *testing.T) {
	c := New(newTestServer(t).URL)
	lo, hi := 30, 10

	_, err := c.Recommend(context.Background(), recipe.RecommendRequest{
		Ingredients: []string{"rice"},
		MinTime:     &lo,
		MaxTime:     &hi,
	})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != 400 || apiErr.Code != "INVALID_REQUEST" {
		t.Fatalf("unexpected api error %+v", apiErr)
	}
}
