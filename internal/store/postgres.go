package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"recipe-finder/internal/core/recipe"
	"recipe-finder/internal/core/search"
)

// ErrEmptyNameList IN 清單不可為空
var ErrEmptyNameList = errors.New("store: recipe name list is empty")

const defaultLanguage = "english"

// 查詢字串的解析方式
const (
	// ParserWebsearch websearch_to_tsquery，查詢字串中的 | 與 & 被當成標點，所有字都必須出現
	ParserWebsearch = "websearch"
	// ParserTSQuery to_tsquery，| 與 & 為 OR 與 AND 運算子
	ParserTSQuery = "tsquery"
)

var tsqueryFuncs = map[string]string{
	ParserWebsearch: "websearch_to_tsquery",
	ParserTSQuery:   "to_tsquery",
}

const (
	queryCuisines = `SELECT DISTINCT cuisine FROM ingredients ORDER BY cuisine`

	queryIngredients = `SELECT final_ingredients AS ingredients
FROM ingredients
WHERE cuisine = $1`

	// %[1]s 為 tsquery 函式名稱
	querySearchTemplate = `SELECT recipe_name, ingredients, total_time_mins,
       ts_rank(to_tsvector($2::regconfig, cleaned), %[1]s($2::regconfig, $1)) AS rank
FROM recipes
WHERE to_tsvector($2::regconfig, cleaned) @@ %[1]s($2::regconfig, $1)
ORDER BY rank DESC, total_time_mins ASC NULLS LAST
LIMIT $3`

	queryInstructionsPrefix = `SELECT rname, instructions
FROM instructions
WHERE rname IN (`
)

// Postgres 以 Postgres 全文檢索實作 recipe.Store
type Postgres struct {
	DB       *sql.DB
	Language string // text search configuration，例如 english

	searchQuery string
}

var _ recipe.Store = (*Postgres)(nil)

// NewPostgres 建立 Postgres store，parser 為 ParserWebsearch 或 ParserTSQuery
func NewPostgres(db *sql.DB, language, parser string) (*Postgres, error) {
	if language == "" {
		language = defaultLanguage
	}
	query, err := searchQuery(parser)
	if err != nil {
		return nil, err
	}
	return &Postgres{DB: db, Language: language, searchQuery: query}, nil
}

// searchQuery 依解析方式產生檢索 SQL，空字串使用 ParserWebsearch
func searchQuery(parser string) (string, error) {
	if parser == "" {
		parser = ParserWebsearch
	}
	fn, ok := tsqueryFuncs[parser]
	if !ok {
		return "", fmt.Errorf("store: unknown query parser %q", parser)
	}
	return fmt.Sprintf(querySearchTemplate, fn), nil
}

// ListCuisines 依名稱排序的料理類別
func (s *Postgres) ListCuisines(ctx context.Context) ([]string, error) {
	return s.queryStrings(ctx, queryCuisines)
}

// ListIngredients 料理類別的食材
func (s *Postgres) ListIngredients(ctx context.Context, cuisine string) ([]string, error) {
	return s.queryStrings(ctx, queryIngredients, cuisine)
}

// SearchRecipes 全文檢索並依 ts_rank 排序
func (s *Postgres) SearchRecipes(ctx context.Context, expression string, limit int) ([]search.RecipeCandidate, error) {
	if limit <= 0 {
		limit = search.DefaultResultLimit
	}

	rows, err := s.DB.QueryContext(ctx, s.searchQuery, expression, s.Language, limit)
	if err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}
	defer rows.Close()

	out := make([]search.RecipeCandidate, 0, limit)
	for rows.Next() {
		var (
			c           search.RecipeCandidate
			ingredients sql.NullString
			minutes     sql.NullFloat64
		)
		if err := rows.Scan(&c.Name, &ingredients, &minutes, &c.Rank); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		c.Ingredients = ingredients.String
		if minutes.Valid {
			m := minutes.Float64
			c.TotalTimeMins = &m
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}
	return out, nil
}

// FetchInstructions 取得步驟說明，names 不可為空
func (s *Postgres) FetchInstructions(ctx context.Context, names []string) ([]recipe.InstructionRecord, error) {
	query, args, err := instructionsQuery(names)
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch instructions: %w", err)
	}
	defer rows.Close()

	out := make([]recipe.InstructionRecord, 0, len(names))
	for rows.Next() {
		var (
			name string
			text sql.NullString
		)
		if err := rows.Scan(&name, &text); err != nil {
			return nil, fmt.Errorf("scan instructions: %w", err)
		}
		out = append(out, recipe.InstructionRecord{RecipeName: name, RawInstructions: text.String})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch instructions: %w", err)
	}
	return out, nil
}

// Ping 檢查資料庫連線
func (s *Postgres) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// instructionsQuery 依名稱數量產生 $1..$n 的 IN 清單
func instructionsQuery(names []string) (string, []interface{}, error) {
	if len(names) == 0 {
		return "", nil, ErrEmptyNameList
	}
	args := make([]interface{}, len(names))
	for i, n := range names {
		args[i] = n
	}
	return queryInstructionsPrefix + placeholders(1, len(names)) + ")", args, nil
}

// placeholders 產生 "$start, $start+1, ..." 共 n 個
func placeholders(start, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(parts, ", ")
}

// queryStrings 查詢單一字串欄位，略過 NULL
func (s *Postgres) queryStrings(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v sql.NullString
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		if v.Valid {
			out = append(out, v.String)
		}
	}
	return out, rows.Err()
}
