package search

import "testing"

func minutes(v float64) *float64 { return &v }

func candidate(name string, t *float64) RecipeCandidate {
	return RecipeCandidate{Name: name, TotalTimeMins: t}
}

func names(c []RecipeCandidate) []string {
	out := make([]string, len(c))
	for i, r := range c {
		out[i] = r.Name
	}
	return out
}

func TestDefaultTimeRange(t *testing.T) {
	got, ok := DefaultTimeRange([]RecipeCandidate{
		candidate("a", minutes(30)),
		candidate("b", minutes(10)),
		candidate("c", nil),
		candidate("d", minutes(0)),
		candidate("e", minutes(-5)),
		candidate("f", minutes(45.9)),
	})
	if !ok {
		t.Fatalf("expected a range")
	}
	if got != (TimeRange{Min: 10, Max: 45}) {
		t.Fatalf("unexpected range %+v", got)
	}
}

func TestDefaultTimeRangeWidensSingleValue(t *testing.T) {
	got, ok := DefaultTimeRange([]RecipeCandidate{
		candidate("a", minutes(20)),
		candidate("b", minutes(20)),
	})
	if !ok {
		t.Fatalf("expected a range")
	}
	if got != (TimeRange{Min: 19, Max: 21}) {
		t.Fatalf("expected [19,21], got %+v", got)
	}
}

func TestDefaultTimeRangeNoPositiveTimes(t *testing.T) {
	if _, ok := DefaultTimeRange(nil); ok {
		t.Fatalf("expected no range for empty input")
	}
	if _, ok := DefaultTimeRange([]RecipeCandidate{candidate("a", nil), candidate("b", minutes(0))}); ok {
		t.Fatalf("expected no range without positive times")
	}
}

func TestFilterByTime(t *testing.T) {
	in := []RecipeCandidate{
		candidate("slow", minutes(90)),
		candidate("quick", minutes(15)),
		candidate("none", nil),
		candidate("edge-low", minutes(10)),
		candidate("edge-high", minutes(30)),
		candidate("mid", minutes(15)),
	}

	got := names(FilterByTime(in, 10, 30))
	want := []string{"edge-low", "quick", "mid", "edge-high"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestFilterByTimeCapsResults(t *testing.T) {
	var in []RecipeCandidate
	for i := 0; i < 25; i++ {
		in = append(in, candidate("r", minutes(float64(25-i))))
	}
	got := FilterByTime(in, 0, 100)
	if len(got) != DefaultResultLimit {
		t.Fatalf("expected %d results, got %d", DefaultResultLimit, len(got))
	}
	for i := 1; i < len(got); i++ {
		if *got[i-1].TotalTimeMins > *got[i].TotalTimeMins {
			t.Fatalf("results not ordered by time: %v then %v", *got[i-1].TotalTimeMins, *got[i].TotalTimeMins)
		}
	}
	if *got[0].TotalTimeMins != 1 {
		t.Fatalf("expected shortest recipe first, got %v", *got[0].TotalTimeMins)
	}
}

func TestFilterByTimeIdempotent(t *testing.T) {
	in := []RecipeCandidate{
		candidate("a", minutes(12)),
		candidate("b", minutes(5)),
		candidate("c", minutes(40)),
	}
	once := FilterByTime(in, 5, 20)
	twice := FilterByTime(once, 5, 20)
	if len(once) != len(twice) {
		t.Fatalf("filter is not idempotent: %v vs %v", names(once), names(twice))
	}
	for i := range once {
		if once[i].Name != twice[i].Name {
			t.Fatalf("filter is not idempotent: %v vs %v", names(once), names(twice))
		}
	}
}

func TestFilterByTimeNarrowerRangeIsSubset(t *testing.T) {
	in := []RecipeCandidate{
		candidate("a", minutes(5)),
		candidate("b", minutes(15)),
		candidate("c", minutes(25)),
		candidate("d", minutes(35)),
	}
	wide := map[string]bool{}
	for _, c := range FilterByTime(in, 0, 40) {
		wide[c.Name] = true
	}
	for _, c := range FilterByTime(in, 10, 30) {
		if !wide[c.Name] {
			t.Fatalf("%s in narrow result but not in wide result", c.Name)
		}
	}
}

func TestFilterByTimeEmptyRange(t *testing.T) {
	got := FilterByTime([]RecipeCandidate{candidate("a", minutes(50))}, 1, 10)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}
