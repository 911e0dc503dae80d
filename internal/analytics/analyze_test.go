package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-interview-lab/internal/domain"
	"ai-interview-lab/internal/evaluation"
)

// recordsFromScores 输入按 newest-first 排列
func recordsFromScores(scores ...int) []domain.InterviewRecord {
	out := make([]domain.InterviewRecord, len(scores))
	for i, s := range scores {
		out[i] = domain.InterviewRecord{
			ID:         fmt.Sprintf("r%d", i),
			UserID:     "u1",
			Date:       fmt.Sprintf("2025-01-%02dT00:00:00.000000Z", 28-i),
			Role:       "backend",
			Difficulty: domain.Medium,
			QuestionID: "q1",
			Score:      s,
		}
	}
	return out
}

type stubHistory struct {
	recs []domain.InterviewRecord
	err  error
}

func (s stubHistory) ForUser(context.Context, string) ([]domain.InterviewRecord, error) {
	return s.recs, s.err
}

func TestAnalyze_ZeroState(t *testing.T) {
	r, err := NewAggregator(stubHistory{}).Analyze(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 0, r.TotalInterviews)
	assert.Equal(t, 0, r.AvgScore)
	assert.Equal(t, TrendNone, r.RecentTrend)
	assert.Equal(t, []string{SuggestFirstInterview}, r.ImprovementSuggestions)

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"total_interviews": 0,
		"avg_score": 0,
		"timeseries": [],
		"role_average": {},
		"difficulty_average": {},
		"strength_frequency": {},
		"weakness_frequency": {},
		"recent_trend": "none",
		"improvement_suggestions": ["Complete your first interview to start tracking progress."]
	}`, string(b))
}

func TestAnalyze_PropagatesError(t *testing.T) {
	boom := errors.New("io")
	_, err := NewAggregator(stubHistory{err: boom}).Analyze(context.Background(), "u1")
	require.ErrorIs(t, err, boom)
}

func TestTrend(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   Trend
	}{
		{"improving", []int{90, 90, 90, 90, 90, 40, 40, 40, 40, 40}, TrendImproving},
		{"declining", []int{40, 40, 40, 40, 40, 90, 90, 90, 90, 90}, TrendDeclining},
		{"stable within threshold", []int{70, 70, 70, 70, 70, 65, 65, 65, 65, 65}, TrendStable},
		{"exactly five is not enough", []int{10, 20, 30, 40, 50}, TrendNotEnough},
		{"six uses a single previous score", []int{60, 60, 60, 60, 60, 50}, TrendImproving},
		{"only indexes 5..9 count as previous", []int{50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 0, 0}, TrendStable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Build(recordsFromScores(tt.scores...)).RecentTrend)
		})
	}
}

func TestBuild_AveragesAndTimeseries(t *testing.T) {
	recs := recordsFromScores(81, 70, 55)
	recs[1].Role = "frontend"
	recs[2].Role = ""
	recs[2].Difficulty = ""
	recs[0].Difficulty = domain.Hard

	r := Build(recs)
	assert.Equal(t, 3, r.TotalInterviews)
	assert.Equal(t, 68, r.AvgScore, "206/3 truncated")
	assert.Equal(t, map[string]int{"backend": 81, "frontend": 70, "unknown": 55}, r.RoleAverage)
	assert.Equal(t, map[string]int{"hard": 81, "medium": 62}, r.DifficultyAverage)

	require.Len(t, r.Timeseries, 3)
	assert.Equal(t, Point{Date: recs[2].Date, Score: 55, Role: ""}, r.Timeseries[0], "oldest first")
	assert.Equal(t, 81, r.Timeseries[2].Score)
}

func TestBuild_FrequenciesKeepFirstEncounterOrderOnTies(t *testing.T) {
	recs := recordsFromScores(80, 80, 80)
	recs[0].Strengths = []string{"b", "a"}
	recs[1].Strengths = []string{"a", "c"}
	recs[2].Strengths = []string{"c", "d"}

	r := Build(recs)
	assert.Equal(t, Frequencies{{"a", 2}, {"c", 2}, {"b", 1}, {"d", 1}}, r.StrengthFrequency)

	b, err := json.Marshal(r.StrengthFrequency)
	require.NoError(t, err)
	assert.Equal(t, `{"a":2,"c":2,"b":1,"d":1}`, string(b))

	var back Frequencies
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, r.StrengthFrequency, back)
	assert.Error(t, json.Unmarshal([]byte(`["a"]`), &back))
}

func TestBuild_FrequenciesCappedAtTen(t *testing.T) {
	recs := recordsFromScores(80)
	for i := 0; i < 15; i++ {
		recs[0].Weaknesses = append(recs[0].Weaknesses, fmt.Sprintf("w%02d", i))
	}
	r := Build(recs)
	assert.Len(t, r.WeaknessFrequency, 10)
	assert.Equal(t, "w00", r.WeaknessFrequency[0].Phrase)
}

func TestSuggestions(t *testing.T) {
	t.Run("top weaknesses drive rules in fixed order", func(t *testing.T) {
		recs := recordsFromScores(80, 80)
		recs[0].Weaknesses = []string{evaluation.WeakNeedsExamples, evaluation.WeakSomeKeywords}
		recs[1].Weaknesses = []string{evaluation.WeakNeedsExamples, evaluation.WeakSomeKeywords}
		assert.Equal(t, []string{SuggestKeywords, SuggestExamples}, Build(recs).ImprovementSuggestions)
	})

	t.Run("weaknesses outside the top three are ignored", func(t *testing.T) {
		recs := recordsFromScores(80, 80, 80)
		for i := range recs {
			recs[i].Weaknesses = []string{"x", "y", "z"}
		}
		recs[0].Weaknesses = append(recs[0].Weaknesses, evaluation.WeakStructure)
		assert.Equal(t, []string{SuggestKeepGoing}, Build(recs).ImprovementSuggestions)
	})

	t.Run("low average and declining", func(t *testing.T) {
		recs := recordsFromScores(10, 10, 10, 10, 10, 60, 60, 60, 60, 60)
		recs[0].Weaknesses = []string{evaluation.WeakMoreDetail}
		assert.Equal(t, []string{SuggestSTAR, SuggestEasier, SuggestBreak}, Build(recs).ImprovementSuggestions)
	})

	t.Run("fallback encouragement", func(t *testing.T) {
		assert.Equal(t, []string{SuggestKeepGoing}, Build(recordsFromScores(90)).ImprovementSuggestions)
	})
}
