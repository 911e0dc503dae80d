package evaluation

import (
	"fmt"
	"strings"

	"ai-interview-lab/internal/domain"
)

// 优势/不足的固定措辞，analytics 的建议规则按原文匹配
const (
	StrongKeywords  = "Good use of relevant keywords"
	StrongDepth     = "Sufficient depth in answer"
	StrongStructure = "Clear sentence structure"
	StrongVocab     = "Rich and varied vocabulary"
	StrongOrganized = "Good answer organization with multiple points"

	WeakNoAnswer      = "No answer provided."
	WeakSomeKeywords  = "Missing some domain keywords"
	WeakFewKeywords   = "Very few domain keywords used — review core concepts"
	WeakMoreDetail    = "Answer could be more detailed"
	WeakTooShort      = "Answer is too short — expand with examples or steps"
	WeakStructure     = "Sentence structure could be improved for clarity"
	WeakVocab         = "Consider using more varied vocabulary"
	WeakNeedsExamples = "Consider expanding your answer with examples or steps"
)

const (
	maxMissedInFeedback = 6
	maxMissedInTip      = 4
)

func assess(b Breakdown) (strengths, weaknesses []string) {
	strengths, weaknesses = []string{}, []string{}

	switch {
	case b.Keyword >= 0.7:
		strengths = append(strengths, StrongKeywords)
	case b.Keyword >= 0.4:
		weaknesses = append(weaknesses, WeakSomeKeywords)
	default:
		weaknesses = append(weaknesses, WeakFewKeywords)
	}

	switch {
	case b.Depth >= 0.85:
		strengths = append(strengths, StrongDepth)
	case b.Depth >= 0.5:
		weaknesses = append(weaknesses, WeakMoreDetail)
	default:
		weaknesses = append(weaknesses, WeakTooShort)
	}

	if b.Structure >= 0.9 {
		strengths = append(strengths, StrongStructure)
	} else {
		weaknesses = append(weaknesses, WeakStructure)
	}

	if b.Vocab >= 0.9 {
		strengths = append(strengths, StrongVocab)
	} else if b.Vocab < 0.7 {
		weaknesses = append(weaknesses, WeakVocab)
	}

	if float64(b.WordCount) < float64(b.ExpectedWords)*0.4 {
		weaknesses = append(weaknesses, WeakNeedsExamples)
	}
	if b.SentenceCount >= 3 {
		strengths = append(strengths, StrongOrganized)
	}
	return strengths, weaknesses
}

func feedback(b Breakdown, difficulty domain.Difficulty) string {
	lines := []string{
		fmt.Sprintf("Keyword coverage: %d/%d matched.", len(b.Matched), b.KeywordTotal),
	}
	if len(b.Matched) > 0 {
		lines = append(lines, "  ✓ Found: "+strings.Join(b.Matched, ", "))
	}
	if len(b.Missed) > 0 {
		lines = append(lines, "  ✗ Missed: "+strings.Join(capped(b.Missed, maxMissedInFeedback), ", "))
	}
	lines = append(lines,
		fmt.Sprintf("Word count: %d (target ≈ %d for %s).", b.WordCount, b.ExpectedWords, difficulty),
		fmt.Sprintf("Sentences: %d — avg %.0f words/sentence.", b.SentenceCount, b.AvgWordsPerSen),
		fmt.Sprintf("Vocabulary richness: %.0f%%.", b.UniqueRatio*100),
	)
	return strings.Join(lines, "\n")
}

// tips 固定顺序：开场、缺失关键词、篇幅、句式、用词、收尾
func tips(b Breakdown) []string {
	out := []string{"Start with a clear one-sentence summary, then elaborate."}
	if len(b.Missed) > 0 {
		out = append(out, fmt.Sprintf("Try to naturally mention: %s.", strings.Join(capped(b.Missed, maxMissedInTip), ", ")))
	}
	if b.Depth < 0.7 {
		out = append(out, "Use the STAR method (Situation, Task, Action, Result) for structured depth.")
	}
	if b.Structure < 0.8 {
		out = append(out, "Vary sentence length — mix concise statements with detailed explanations.")
	}
	if b.Vocab < 0.8 {
		out = append(out, "Avoid repeating the same words. Use synonyms and domain terms.")
	}
	return append(out, "End with a brief conclusion or real-world example to leave a strong impression.")
}

func capped(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
