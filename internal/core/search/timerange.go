package search

import (
	"math"
	"sort"
)

// DefaultTimeRange 由有效（非 null 且大於 0）的烹調時間計算預設範圍。
// 沒有任何有效時間時 ok 為 false。所有時間相同時向兩側各放寬 1 分鐘，
// 讓範圍選擇器有非零的區間。
func DefaultTimeRange(candidates []RecipeCandidate) (TimeRange, bool) {
	lo, hi := math.Inf(1), math.Inf(-1)
	found := false
	for _, c := range candidates {
		if !c.HasTime() || c.Minutes() <= 0 {
			continue
		}
		found = true
		lo = math.Min(lo, c.Minutes())
		hi = math.Max(hi, c.Minutes())
	}
	if !found {
		return TimeRange{}, false
	}

	r := TimeRange{Min: int(lo), Max: int(hi)}
	if r.Min == r.Max {
		r.Min--
		r.Max++
	}
	return r, true
}

// FilterByTime 保留烹調時間落在 [lo, hi]（含兩端）的食譜，依時間由短到長
// 穩定排序後取前 DefaultResultLimit 筆。沒有時間的食譜一律排除。
func FilterByTime(candidates []RecipeCandidate, lo, hi int) []RecipeCandidate {
	window := TimeRange{Min: lo, Max: hi}

	filtered := make([]RecipeCandidate, 0, len(candidates))
	for _, c := range candidates {
		if !c.HasTime() || !window.Contains(c.Minutes()) {
			continue
		}
		filtered = append(filtered, c)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Minutes() < filtered[j].Minutes()
	})

	if len(filtered) > DefaultResultLimit {
		filtered = filtered[:DefaultResultLimit]
	}
	return filtered
}
