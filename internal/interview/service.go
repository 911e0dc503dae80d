// Package interview 把评估结果和请求上下文组装成面试记录并追加到存储。
package interview

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"ai-interview-lab/internal/catalog"
	"ai-interview-lab/internal/domain"
	"ai-interview-lab/internal/evaluation"
	"ai-interview-lab/pkg/utils"
)

const DefaultHistoryLimit = 50

// Records 面试记录集合，只有追加和全量读取
type Records interface {
	Load() ([]domain.InterviewRecord, error)
	Append(domain.InterviewRecord) error
}

type SubmitRequest struct {
	QuestionID string            `json:"question_id" binding:"required"`
	Role       string            `json:"role"`
	Difficulty domain.Difficulty `json:"difficulty"`
	Answer     string            `json:"answer"`
}

type Submission struct {
	Result evaluation.Result      `json:"result"`
	Record domain.InterviewRecord `json:"record"`
}

type Service struct {
	records   Records
	catalog   catalog.Catalog
	evaluator evaluation.Evaluator
	log       *zap.Logger

	Now   func() time.Time
	NewID func() string
}

func NewService(records Records, cat catalog.Catalog, ev evaluation.Evaluator, l *zap.Logger) *Service {
	if ev == nil {
		ev = evaluation.Engine{}
	}
	if l == nil {
		l = zap.NewNop()
	}
	return &Service{
		records:   records,
		catalog:   cat,
		evaluator: ev,
		log:       l,
		Now:       time.Now,
		NewID:     utils.NewID,
	}
}

// Submit 评估作答并追加一条不可变记录
func (s *Service) Submit(ctx context.Context, userID string, req SubmitRequest) (Submission, error) {
	if strings.TrimSpace(userID) == "" {
		return Submission{}, fmt.Errorf("missing user: %w", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(req.QuestionID) == "" {
		return Submission{}, fmt.Errorf("question_id is required: %w", domain.ErrInvalidInput)
	}
	q, err := s.catalog.ByID(ctx, req.QuestionID)
	if err != nil {
		return Submission{}, err
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = domain.Medium
	}
	role := req.Role
	if role == "" {
		role = q.Role
	}

	res := s.evaluator.Evaluate(req.Answer, q, difficulty)
	rec := domain.InterviewRecord{
		ID:           s.NewID(),
		UserID:       userID,
		Date:         domain.FormatTimestamp(s.Now()),
		Role:         role,
		Difficulty:   difficulty,
		Category:     q.Category,
		QuestionID:   q.ID,
		QuestionText: q.Text,
		Answer:       req.Answer,
		Score:        res.Score,
		Strengths:    res.Strengths,
		Weaknesses:   res.Weaknesses,
		Feedback:     res.Feedback,
		Tips:         res.Tips,
	}
	if err := s.records.Append(rec); err != nil {
		return Submission{}, fmt.Errorf("save interview: %w", err)
	}
	scoreHistogram.WithLabelValues(string(difficulty)).Observe(float64(res.Score))
	s.log.Info("interview submitted",
		zap.String("user_id", userID),
		zap.String("interview_id", rec.ID),
		zap.String("question_id", q.ID),
		zap.Int("score", res.Score),
	)
	return Submission{Result: res, Record: rec}, nil
}

// ForUser 某用户的全部记录，按 date 字符串倒序（同一时间保持原有顺序）
func (s *Service) ForUser(_ context.Context, userID string) ([]domain.InterviewRecord, error) {
	all, err := s.records.Load()
	if err != nil {
		return nil, err
	}
	return NewestFirst(all, userID), nil
}

// History limit <= 0 时取默认 50；同时返回总数
func (s *Service) History(ctx context.Context, userID string, limit int) ([]domain.InterviewRecord, int, error) {
	recs, err := s.ForUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	total := len(recs)
	if limit < total {
		recs = recs[:limit]
	}
	return recs, total, nil
}

// Get 记录必须属于该用户
func (s *Service) Get(_ context.Context, userID, id string) (domain.InterviewRecord, error) {
	all, err := s.records.Load()
	if err != nil {
		return domain.InterviewRecord{}, err
	}
	for _, r := range all {
		if r.ID == id && r.UserID == userID {
			return r, nil
		}
	}
	return domain.InterviewRecord{}, fmt.Errorf("interview %q: %w", id, domain.ErrInterviewNotFound)
}

func NewestFirst(all []domain.InterviewRecord, userID string) []domain.InterviewRecord {
	out := make([]domain.InterviewRecord, 0)
	for _, r := range all {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}
