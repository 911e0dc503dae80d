// Package analytics 从用户的历史面试记录推导趋势、均分和改进建议。
package analytics

import (
	"context"
	"slices"
	"sort"

	"ai-interview-lab/internal/domain"
	"ai-interview-lab/internal/evaluation"
)

type Trend string

const (
	TrendNone      Trend = "none"
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
	TrendNotEnough Trend = "not enough data"
)

const (
	trendWindow        = 5
	trendThreshold     = 5.0
	topFrequencies     = 10
	topWeaknessRules   = 3
	lowAverageScore    = 50
	fallbackRole       = "unknown"
	fallbackDifficulty = domain.Medium
)

const (
	SuggestFirstInterview = "Complete your first interview to start tracking progress."
	SuggestKeywords       = "Focus on learning and naturally using domain-specific terminology in your answers."
	SuggestSTAR           = "Practice the STAR method: Situation → Task → Action → Result. Aim for structured, detailed responses."
	SuggestSentences      = "Vary your sentence length. Mix short punchy statements with longer explanatory ones."
	SuggestExamples       = "Always include at least one concrete example or step-by-step walkthrough."
	SuggestEasier         = "Your average score is below 50. Try easier questions first to build confidence."
	SuggestBreak          = "Your recent scores are declining. Take a break, review feedback, then retry."
	SuggestKeepGoing      = "You're doing well! Try harder questions or new roles to keep improving."
)

// weaknessRules 顺序即建议输出顺序
var weaknessRules = []struct {
	weakness   string
	suggestion string
}{
	{evaluation.WeakSomeKeywords, SuggestKeywords},
	{evaluation.WeakMoreDetail, SuggestSTAR},
	{evaluation.WeakStructure, SuggestSentences},
	{evaluation.WeakNeedsExamples, SuggestExamples},
}

type Point struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
	Role  string `json:"role"`
}

type Report struct {
	TotalInterviews        int            `json:"total_interviews"`
	AvgScore               int            `json:"avg_score"`
	Timeseries             []Point        `json:"timeseries"`
	RoleAverage            map[string]int `json:"role_average"`
	DifficultyAverage      map[string]int `json:"difficulty_average"`
	StrengthFrequency      Frequencies    `json:"strength_frequency"`
	WeaknessFrequency      Frequencies    `json:"weakness_frequency"`
	RecentTrend            Trend          `json:"recent_trend"`
	ImprovementSuggestions []string       `json:"improvement_suggestions"`
}

// History 按用户读取记录，newest-first
type History interface {
	ForUser(ctx context.Context, userID string) ([]domain.InterviewRecord, error)
}

type Aggregator struct {
	history History
}

func NewAggregator(h History) *Aggregator { return &Aggregator{history: h} }

func (a *Aggregator) Analyze(ctx context.Context, userID string) (Report, error) {
	recs, err := a.history.ForUser(ctx, userID)
	if err != nil {
		return Report{}, err
	}
	return Build(recs), nil
}

func emptyReport() Report {
	return Report{
		Timeseries:             []Point{},
		RoleAverage:            map[string]int{},
		DifficultyAverage:      map[string]int{},
		StrengthFrequency:      Frequencies{},
		WeaknessFrequency:      Frequencies{},
		RecentTrend:            TrendNone,
		ImprovementSuggestions: []string{SuggestFirstInterview},
	}
}

// Build recs 须为 newest-first
func Build(recs []domain.InterviewRecord) Report {
	if len(recs) == 0 {
		return emptyReport()
	}

	// 时间序列：旧 -> 新
	byDate := slices.Clone(recs)
	sort.SliceStable(byDate, func(i, j int) bool { return byDate[i].Date < byDate[j].Date })
	series := make([]Point, len(byDate))
	for i, r := range byDate {
		series[i] = Point{Date: r.Date, Score: r.Score, Role: r.Role}
	}

	scores := make([]int, len(recs))
	roles := newGroups()
	diffs := newGroups()
	strengths := newCounter()
	weaknesses := newCounter()
	for i, r := range recs {
		scores[i] = r.Score
		role := r.Role
		if role == "" {
			role = fallbackRole
		}
		roles.add(role, r.Score)
		d := string(r.Difficulty)
		if d == "" {
			d = string(fallbackDifficulty)
		}
		diffs.add(d, r.Score)
		strengths.add(r.Strengths...)
		weaknesses.add(r.Weaknesses...)
	}

	avg := sum(scores) / len(scores)
	trend := trendOf(scores)
	return Report{
		TotalInterviews:        len(recs),
		AvgScore:               avg,
		Timeseries:             series,
		RoleAverage:            roles.averages(),
		DifficultyAverage:      diffs.averages(),
		StrengthFrequency:      strengths.mostCommon(topFrequencies),
		WeaknessFrequency:      weaknesses.mostCommon(topFrequencies),
		RecentTrend:            trend,
		ImprovementSuggestions: suggestions(weaknesses.mostCommon(topWeaknessRules).Phrases(), avg, trend),
	}
}

// trendOf 最近 5 次均值对比其后 5 次（下标 5..9）
func trendOf(newestFirst []int) Trend {
	if len(newestFirst) <= trendWindow {
		return TrendNotEnough
	}
	recent := newestFirst[:trendWindow]
	previous := newestFirst[trendWindow:min(len(newestFirst), 2*trendWindow)]
	delta := mean(recent) - mean(previous)
	switch {
	case delta > trendThreshold:
		return TrendImproving
	case delta < -trendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func suggestions(topWeaknesses []string, avg int, trend Trend) []string {
	var out []string
	for _, rule := range weaknessRules {
		if slices.Contains(topWeaknesses, rule.weakness) {
			out = append(out, rule.suggestion)
		}
	}
	if avg < lowAverageScore {
		out = append(out, SuggestEasier)
	}
	if trend == TrendDeclining {
		out = append(out, SuggestBreak)
	}
	if len(out) == 0 {
		out = append(out, SuggestKeepGoing)
	}
	return out
}

type groups struct {
	sums   map[string]int
	counts map[string]int
}

func newGroups() *groups { return &groups{sums: map[string]int{}, counts: map[string]int{}} }

func (g *groups) add(key string, score int) {
	g.sums[key] += score
	g.counts[key]++
}

// averages 整数截断
func (g *groups) averages() map[string]int {
	out := make(map[string]int, len(g.sums))
	for k, s := range g.sums {
		out[k] = s / g.counts[k]
	}
	return out
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

func mean(xs []int) float64 { return float64(sum(xs)) / float64(len(xs)) }
