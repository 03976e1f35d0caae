package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func newTestStore(t *testing.T, db *sql.DB, parser string) *Postgres {
	t.Helper()
	st, err := NewPostgres(db, "", parser)
	if err != nil {
		t.Fatalf("NewPostgres: %v", err)
	}
	return st
}

func TestNewPostgresUnknownParser(t *testing.T) {
	if _, err := NewPostgres(nil, "english", "plainto"); err == nil {
		t.Fatalf("expected error for unknown parser")
	}
}

func TestListCuisines(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	st := newTestStore(t, db, "")

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT DISTINCT cuisine FROM ingredients ORDER BY cuisine`)).
		WillReturnRows(sqlmock.NewRows([]string{"cuisine"}).
			AddRow("Indian").
			AddRow(nil).
			AddRow("Thai"))

	got, err := st.ListCuisines(context.Background())
	if err != nil {
		t.Fatalf("ListCuisines: %v", err)
	}
	if len(got) != 2 || got[0] != "Indian" || got[1] != "Thai" {
		t.Fatalf("unexpected cuisines %v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListIngredients(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	st := newTestStore(t, db, "")

	query := regexp.QuoteMeta(`SELECT final_ingredients AS ingredients
FROM ingredients
WHERE cuisine = $1`)
	mock.ExpectQuery(query).
		WithArgs("Indian").
		WillReturnRows(sqlmock.NewRows([]string{"ingredients"}).AddRow("turmeric").AddRow("cumin"))

	got, err := st.ListIngredients(context.Background(), "Indian")
	if err != nil {
		t.Fatalf("ListIngredients: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("unexpected ingredients %v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSearchRecipes(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	st := newTestStore(t, db, ParserWebsearch)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT recipe_name, ingredients, total_time_mins,
       ts_rank(to_tsvector($2::regconfig, cleaned), websearch_to_tsquery($2::regconfig, $1)) AS rank
FROM recipes
WHERE to_tsvector($2::regconfig, cleaned) @@ websearch_to_tsquery($2::regconfig, $1)
ORDER BY rank DESC, total_time_mins ASC NULLS LAST
LIMIT $3`)).
		WithArgs("salt | black & pepper", "english", 10).
		WillReturnRows(sqlmock.NewRows([]string{"recipe_name", "ingredients", "total_time_mins", "rank"}).
			AddRow("Pepper Chicken", "chicken, black pepper", 35.0, 0.61).
			AddRow("Salted Lassi", nil, nil, 0.2))

	got, err := st.SearchRecipes(context.Background(), "salt | black & pepper", 0)
	if err != nil {
		t.Fatalf("SearchRecipes: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].Name != "Pepper Chicken" || got[0].TotalTimeMins == nil || *got[0].TotalTimeMins != 35 || got[0].Rank != 0.61 {
		t.Fatalf("unexpected first candidate %+v", got[0])
	}
	if got[1].TotalTimeMins != nil || got[1].Ingredients != "" {
		t.Fatalf("expected null fields to stay empty, got %+v", got[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSearchRecipesError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta(`to_tsquery($2::regconfig, $1)`)).
		WithArgs("salt", "english", 5).
		WillReturnError(boom)

	_, err = newTestStore(t, db, ParserTSQuery).SearchRecipes(context.Background(), "salt", 5)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestFetchInstructions(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	st := newTestStore(t, db, "")

	query := regexp.QuoteMeta(`SELECT rname, instructions
FROM instructions
WHERE rname IN ($1, $2, $3)`)
	mock.ExpectQuery(query).
		WithArgs("Toast", "Salad", "Omelette").
		WillReturnRows(sqlmock.NewRows([]string{"rname", "instructions"}).
			AddRow("Salad", "Toss.").
			AddRow("Omelette", nil))

	got, err := st.FetchInstructions(context.Background(), []string{"Toast", "Salad", "Omelette"})
	if err != nil {
		t.Fatalf("FetchInstructions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[1].RecipeName != "Omelette" || got[1].RawInstructions != "" {
		t.Fatalf("expected null instructions as empty string, got %+v", got[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestFetchInstructionsEmptyNames(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	if _, err := newTestStore(t, db, "").FetchInstructions(context.Background(), nil); !errors.Is(err, ErrEmptyNameList) {
		t.Fatalf("expected ErrEmptyNameList, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no query expected: %v", err)
	}
}

func TestInstructionsQueryPlaceholders(t *testing.T) {
	query, args, err := instructionsQuery([]string{"a"})
	if err != nil {
		t.Fatalf("instructionsQuery: %v", err)
	}
	if want := queryInstructionsPrefix + "$1)"; query != want {
		t.Fatalf("expected %q, got %q", want, query)
	}
	if len(args) != 1 {
		t.Fatalf("expected 1 arg, got %d", len(args))
	}

	if got := placeholders(3, 3); got != "$3, $4, $5" {
		t.Fatalf("unexpected placeholders %q", got)
	}
}
