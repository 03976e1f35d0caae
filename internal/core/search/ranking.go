package search

import "sort"

// RankCandidates 依相關度由高到低排序，同分時烹調時間短的在前（沒有時間的排最後），
// 並截取前 limit 筆。limit 不在 1 到 DefaultResultLimit 之間時使用 DefaultResultLimit。
// 回傳新的切片，不修改輸入。
func RankCandidates(candidates []RecipeCandidate, limit int) []RecipeCandidate {
	if limit <= 0 || limit > DefaultResultLimit {
		limit = DefaultResultLimit
	}

	ranked := make([]RecipeCandidate, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Rank != ranked[j].Rank {
			return ranked[i].Rank > ranked[j].Rank
		}
		return lessTime(ranked[i], ranked[j])
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// lessTime 比較烹調時間，null 視為無限大
func lessTime(a, b RecipeCandidate) bool {
	switch {
	case a.TotalTimeMins == nil:
		return false
	case b.TotalTimeMins == nil:
		return true
	default:
		return *a.TotalTimeMins < *b.TotalTimeMins
	}
}
