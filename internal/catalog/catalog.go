// Package catalog 是题库集合上的只读查询层。
package catalog

import (
	"context"
	"fmt"
	"sort"

	"ai-interview-lab/internal/domain"
)

// Source 题库的持久化来源，通常是 store.Collection[domain.Question]
type Source interface {
	Load() ([]domain.Question, error)
	Save([]domain.Question) error
}

type Catalog interface {
	Filter(ctx context.Context, role string, difficulty domain.Difficulty) ([]domain.Question, error)
	ByID(ctx context.Context, id string) (domain.Question, error)
	Roles(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) (Stats, error)
}

type Stats struct {
	ByRole       map[string]int `json:"by_role"`
	ByDifficulty map[string]int `json:"by_difficulty"`
	Total        int            `json:"total"`
}

type Service struct {
	src Source
}

func New(src Source) *Service { return &Service{src: src} }

// Filter 精确匹配；空字符串表示不限
func (s *Service) Filter(_ context.Context, role string, difficulty domain.Difficulty) ([]domain.Question, error) {
	qs, err := s.src.Load()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Question, 0, len(qs))
	for _, q := range qs {
		if role != "" && q.Role != role {
			continue
		}
		if difficulty != "" && q.Difficulty != difficulty {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

// ByID 返回第一条匹配
func (s *Service) ByID(_ context.Context, id string) (domain.Question, error) {
	qs, err := s.src.Load()
	if err != nil {
		return domain.Question{}, err
	}
	for _, q := range qs {
		if q.ID == id {
			return q, nil
		}
	}
	return domain.Question{}, fmt.Errorf("question %q: %w", id, domain.ErrQuestionNotFound)
}

func (s *Service) Roles(_ context.Context) ([]string, error) {
	qs, err := s.src.Load()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	roles := make([]string, 0)
	for _, q := range qs {
		if q.Role == "" {
			continue
		}
		if _, ok := seen[q.Role]; ok {
			continue
		}
		seen[q.Role] = struct{}{}
		roles = append(roles, q.Role)
	}
	sort.Strings(roles)
	return roles, nil
}

func (s *Service) Stats(_ context.Context) (Stats, error) {
	qs, err := s.src.Load()
	if err != nil {
		return Stats{}, err
	}
	st := Stats{ByRole: map[string]int{}, ByDifficulty: map[string]int{}, Total: len(qs)}
	for _, q := range qs {
		st.ByRole[q.Role]++
		st.ByDifficulty[string(q.Difficulty)]++
	}
	return st, nil
}

// Replace 整体替换题库，只给题库导入进程使用
func (s *Service) Replace(_ context.Context, qs []domain.Question) error {
	seen := make(map[string]struct{}, len(qs))
	for i, q := range qs {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question #%d: %w: %v", i, domain.ErrInvalidInput, err)
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("question #%d: duplicate id %q: %w", i, q.ID, domain.ErrInvalidInput)
		}
		seen[q.ID] = struct{}{}
	}
	return s.src.Save(qs)
}
