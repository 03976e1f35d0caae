package search

// DefaultResultLimit 搜尋與時間篩選的結果上限
const DefaultResultLimit = 10

// RecipeCandidate 全文檢索命中的食譜
type RecipeCandidate struct {
	Name          string   `json:"recipe_name"`
	Ingredients   string   `json:"ingredients"`
	TotalTimeMins *float64 `json:"total_time_mins"` // 可能為 null
	Rank          float64  `json:"rank"`
}

// HasTime 是否有烹調時間
func (c RecipeCandidate) HasTime() bool {
	return c.TotalTimeMins != nil
}

// Minutes 烹調時間，沒有時間時回傳 0
func (c RecipeCandidate) Minutes() float64 {
	if c.TotalTimeMins == nil {
		return 0
	}
	return *c.TotalTimeMins
}

// TimeRange 烹調時間範圍（分鐘），Min <= Max
type TimeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains 範圍是否包含 minutes（含兩端）
func (r TimeRange) Contains(minutes float64) bool {
	return minutes >= float64(r.Min) && minutes <= float64(r.Max)
}
