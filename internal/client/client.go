package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"recipe-finder/internal/core/recipe"
	"recipe-finder/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const defaultTimeout = 30 * time.Second

// APIError 服務端回傳的錯誤
type APIError struct {
	Status int
	common.ErrorResponse
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("api error %d %s: %s (%s)", e.Status, e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
}

// Client recipe-finder API 客戶端
type Client struct {
	client *resty.Client
}

// New 創建 API 客戶端，baseURL 例如 http://localhost:8080
func New(baseURL string) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")+"/api/v1").
		SetHeader("Accept", "application/json").
		SetTimeout(defaultTimeout)

	return &Client{client: client}
}

// Cuisines 料理類別
func (c *Client) Cuisines(ctx context.Context) (*recipe.CuisinesResult, error) {
	var out recipe.CuisinesResult
	if err := c.do(ctx, c.client.R().SetResult(&out), "GET", "/cuisines"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ingredients 料理類別的食材
func (c *Client) Ingredients(ctx context.Context, cuisine string) (*recipe.IngredientsResult, error) {
	var out recipe.IngredientsResult
	req := c.client.R().
		SetPathParam("cuisine", cuisine).
		SetResult(&out)
	if err := c.do(ctx, req, "GET", "/cuisines/{cuisine}/ingredients"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search 依食材全文檢索
func (c *Client) Search(ctx context.Context, ingredients []string) (*recipe.SearchResult, error) {
	var out recipe.SearchResult
	req := c.client.R().
		SetBody(recipe.SearchRequest{Ingredients: ingredients}).
		SetResult(&out)
	if err := c.do(ctx, req, "POST", "/recipes/search"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Recommend 完整推薦
func (c *Client) Recommend(ctx context.Context, in recipe.RecommendRequest) (*recipe.Recommendation, error) {
	var out recipe.Recommendation
	req := c.client.R().
		SetBody(in).
		SetResult(&out)
	if err := c.do(ctx, req, "POST", "/recipes/recommend"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, req *resty.Request, method, path string) error {
	var apiErr common.ErrorResponse
	resp, err := req.
		SetContext(ctx).
		SetError(&apiErr).
		Execute(method, path)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}

	common.LogDebug("API 回應",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("耗時", resp.Time()),
	)

	if resp.IsError() {
		if apiErr.Code == "" {
			apiErr.Message = resp.String()
		}
		return &APIError{Status: resp.StatusCode(), ErrorResponse: apiErr}
	}
	return nil
}
