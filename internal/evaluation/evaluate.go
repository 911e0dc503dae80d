// Package evaluation 对作答文本做确定性的启发式评分。
//
// 四个维度各自归一到 [0,1]：关键词覆盖 45%、篇幅 25%、句子结构 15%、词汇丰富度 15%，
// 再乘以难度系数。困难题系数大于 1，满分前留有余量，最终结果截断到 [0,100]。
package evaluation

import (
	"math"
	"strings"

	"ai-interview-lab/internal/domain"
)

const (
	weightKeyword   = 0.45
	weightDepth     = 0.25
	weightStructure = 0.15
	weightVocab     = 0.15
)

var expectedWords = map[domain.Difficulty]int{
	domain.Easy:   40,
	domain.Medium: 80,
	domain.Hard:   150,
}

var multipliers = map[domain.Difficulty]float64{
	domain.Easy:   0.92,
	domain.Medium: 1.0,
	domain.Hard:   1.12,
}

// ExpectedWords 未知难度按 medium 处理
func ExpectedWords(d domain.Difficulty) int {
	if n, ok := expectedWords[d]; ok {
		return n
	}
	return expectedWords[domain.Medium]
}

func Multiplier(d domain.Difficulty) float64 {
	if m, ok := multipliers[d]; ok {
		return m
	}
	return 1.0
}

// Breakdown 各维度子分与原始统计量
type Breakdown struct {
	Keyword   float64 `json:"keyword_score"`
	Depth     float64 `json:"depth_score"`
	Structure float64 `json:"structure_score"`
	Vocab     float64 `json:"vocab_score"`

	Matched        []string `json:"matched_keywords"`
	Missed         []string `json:"missed_keywords"`
	KeywordTotal   int      `json:"keyword_total"`
	WordCount      int      `json:"word_count"`
	ExpectedWords  int      `json:"expected_words"`
	SentenceCount  int      `json:"sentence_count"`
	AvgWordsPerSen float64  `json:"avg_words_per_sentence"`
	UniqueRatio    float64  `json:"unique_ratio"`
}

type Result struct {
	Score      int        `json:"score"`
	Strengths  []string   `json:"strengths"`
	Weaknesses []string   `json:"weaknesses"`
	Feedback   string     `json:"feedback"`
	Tips       []string   `json:"tips"`
	Breakdown  *Breakdown `json:"breakdown,omitempty"`
}

// Evaluator 便于在上层注入替身
type Evaluator interface {
	Evaluate(answer string, q domain.Question, difficulty domain.Difficulty) Result
}

// Engine 无状态，零值可用
type Engine struct{}

func (Engine) Evaluate(answer string, q domain.Question, difficulty domain.Difficulty) Result {
	return Evaluate(answer, q, difficulty)
}

// Evaluate 纯函数：相同输入得到完全相同的输出（包括反馈文本）
func Evaluate(answer string, q domain.Question, difficulty domain.Difficulty) Result {
	text := strings.TrimSpace(answer)
	if text == "" {
		return emptyResult()
	}

	b := measure(text, q.Keywords, difficulty)
	raw := b.Keyword*weightKeyword +
		b.Depth*weightDepth +
		b.Structure*weightStructure +
		b.Vocab*weightVocab

	score := math.RoundToEven(raw * Multiplier(difficulty) * 100)
	score = math.Max(0, math.Min(100, score))

	strengths, weaknesses := assess(b)
	return Result{
		Score:      int(score),
		Strengths:  strengths,
		Weaknesses: weaknesses,
		Feedback:   feedback(b, difficulty),
		Tips:       tips(b),
		Breakdown:  &b,
	}
}

func emptyResult() Result {
	return Result{
		Score:      0,
		Strengths:  []string{},
		Weaknesses: []string{WeakNoAnswer},
		Feedback:   "You didn't submit an answer. Try to provide at least a short response.",
		Tips:       []string{"Start by restating the question in your own words, then elaborate."},
	}
}

func measure(text string, keywords []string, difficulty domain.Difficulty) Breakdown {
	cleaned := normalize(text)
	words := strings.Fields(cleaned)
	wc := len(words)

	var b Breakdown
	b.WordCount = wc

	// 1) 关键词
	b.Matched, b.Missed = matchKeywords(cleaned, keywords)
	b.KeywordTotal = max(1, len(keywords))
	b.Keyword = float64(len(b.Matched)) / float64(b.KeywordTotal)

	// 2) 篇幅
	b.ExpectedWords = ExpectedWords(difficulty)
	b.Depth = math.Min(float64(wc)/float64(b.ExpectedWords), 1.0)

	// 3) 句子结构
	b.SentenceCount = max(1, len(sentences(text)))
	b.AvgWordsPerSen = float64(wc) / float64(b.SentenceCount)
	b.Structure = structureScore(b.AvgWordsPerSen)

	// 4) 词汇丰富度
	unique := make(map[string]struct{}, wc)
	for _, w := range words {
		unique[w] = struct{}{}
	}
	b.UniqueRatio = float64(len(unique)) / float64(max(1, wc))
	b.Vocab = vocabScore(b.UniqueRatio)
	return b
}

func structureScore(avg float64) float64 {
	switch {
	case avg >= 10 && avg <= 25:
		return 1.0
	case (avg >= 8 && avg < 10) || (avg > 25 && avg <= 30):
		return 0.8
	case avg < 8:
		return 0.55
	default:
		return 0.6
	}
}

func vocabScore(ratio float64) float64 {
	switch {
	case ratio > 0.65:
		return 1.0
	case ratio > 0.5:
		return 0.8
	default:
		return 0.6
	}
}
