package store

import (
	"go.uber.org/zap"

	"ai-interview-lab/internal/domain"
)

const (
	Users      = "users"
	Questions  = "questions"
	Interviews = "interviews"
)

// Store 进程启动时构造一次，按引用注入各服务
type Store struct {
	Users      *Collection[domain.User]
	Questions  *Collection[domain.Question]
	Interviews *Collection[domain.InterviewRecord]
}

func New(b Backend, l *zap.Logger) *Store {
	return &Store{
		Users:      NewCollection[domain.User](b, Users, l),
		Questions:  NewCollection[domain.Question](b, Questions, l),
		Interviews: NewCollection[domain.InterviewRecord](b, Interviews, l),
	}
}

// Open 基于数据目录打开文件存储
func Open(dir string, l *zap.Logger) (*Store, error) {
	b, err := NewFileBackend(dir)
	if err != nil {
		return nil, err
	}
	return New(b, l), nil
}
