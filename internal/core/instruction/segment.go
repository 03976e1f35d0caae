package instruction

import "strings"

// SplitSteps 以句尾標點（. ! ?）後接一個以上空格作為步驟分界，
// 去除前後空白並丟棄空步驟。
//
// 只看標點與空格，"1 oz. sugar" 這類縮寫或小數也會被切開。
func SplitSteps(text string) []string {
	var steps []string
	start := 0
	for i := 0; i < len(text); i++ {
		if !isSentenceEnd(text[i]) {
			continue
		}
		j := i + 1
		for j < len(text) && text[j] == ' ' {
			j++
		}
		if j == i+1 {
			continue
		}
		steps = appendStep(steps, text[start:i+1])
		start = j
		i = j - 1
	}
	return appendStep(steps, text[start:])
}

func isSentenceEnd(b byte) bool {
	return b == '.' || b == '!' || b == '?'
}

func appendStep(steps []string, step string) []string {
	step = strings.TrimSpace(step)
	if step == "" {
		return steps
	}
	return append(steps, step)
}
