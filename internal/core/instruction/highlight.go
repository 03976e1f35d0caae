package instruction

import (
	"html"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// Placeholder 沒有步驟說明時顯示的內容
	Placeholder = "<em>No instructions available.</em>"

	markOpen  = "<strong>"
	markClose = "</strong>"
)

// Highlighter 在步驟文字中標示食材
type Highlighter struct {
	// 依長度由長到短，每個都錨定在開頭
	patterns []*regexp.Regexp
}

// NewHighlighter 依食材建立標示器。
// 食材依長度由長到短排序（同長度保持原順序），比對不分大小寫、整個單字、
// 以字面值比對，所以 "black pepper" 會優先於 "pepper"。
// 單字邊界以 Unicode 字母、數字與底線判斷，"éclair" 與 "dhaniyaé" 都視為一個字。
func NewHighlighter(ingredients []string) *Highlighter {
	names := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		ing = strings.TrimSpace(ing)
		if ing == "" {
			continue
		}
		names = append(names, ing)
	}

	sort.SliceStable(names, func(i, j int) bool {
		return utf8.RuneCountInString(names[i]) > utf8.RuneCountInString(names[j])
	})

	patterns := make([]*regexp.Regexp, len(names))
	for i, name := range names {
		patterns[i] = regexp.MustCompile(`^(?i:` + regexp.QuoteMeta(name) + `)`)
	}
	return &Highlighter{patterns: patterns}
}

// Steps 將步驟說明切成步驟並標示食材。text 為 nil 時回傳單一佔位步驟。
func (h *Highlighter) Steps(text *string) []string {
	if text == nil {
		return []string{Placeholder}
	}

	steps := SplitSteps(*text)
	if steps == nil {
		return []string{}
	}
	for i, step := range steps {
		steps[i] = h.Mark(step)
	}
	return steps
}

// Mark 標示單一步驟中的食材，其餘文字做 HTML 跳脫
func (h *Highlighter) Mark(step string) string {
	if len(h.patterns) == 0 {
		return html.EscapeString(step)
	}

	var sb strings.Builder
	last := 0
	for i := 0; i < len(step); {
		// 由左到右，同一位置先試長的食材
		if end, ok := h.matchAt(step, i); ok {
			sb.WriteString(html.EscapeString(step[last:i]))
			sb.WriteString(markOpen)
			sb.WriteString(html.EscapeString(step[i:end]))
			sb.WriteString(markClose)
			i, last = end, end
			continue
		}
		_, size := utf8.DecodeRuneInString(step[i:])
		i += size
	}
	sb.WriteString(html.EscapeString(step[last:]))
	return sb.String()
}

// matchAt 回傳在 i 開始、兩端都落在單字邊界上的第一個食材的結束位置
func (h *Highlighter) matchAt(step string, i int) (int, bool) {
	if !isBoundary(step, i) {
		return 0, false
	}
	for _, p := range h.patterns {
		loc := p.FindStringIndex(step[i:])
		if loc == nil || loc[1] == 0 {
			continue
		}
		if end := i + loc[1]; isBoundary(step, end) {
			return end, true
		}
	}
	return 0, false
}

// isBoundary 位置 i 兩側一邊是單字字元、另一邊不是
func isBoundary(s string, i int) bool {
	before, after := false, false
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:i])
		before = isWordRune(r)
	}
	if i < len(s) {
		r, _ := utf8.DecodeRuneInString(s[i:])
		after = isWordRune(r)
	}
	return before != after
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Highlight 以 ingredients 標示 text 的每個步驟
func Highlight(text *string, ingredients []string) []string {
	return NewHighlighter(ingredients).Steps(text)
}

// RenderOrderedList 將步驟組成 <ol> 清單
func RenderOrderedList(steps []string) string {
	var sb strings.Builder
	sb.WriteString("<ol>")
	for _, step := range steps {
		sb.WriteString("<li>")
		sb.WriteString(step)
		sb.WriteString("</li>")
	}
	sb.WriteString("</ol>")
	return sb.String()
}
