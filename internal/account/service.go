// Package account 负责注册与登录校验；令牌签发在传输层完成。
package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"ai-interview-lab/internal/domain"
	"ai-interview-lab/pkg/utils"
)

const MinPasswordLen = 4

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Users 用户集合；Update 让唯一性检查和插入处于同一临界区
type Users interface {
	Load() ([]domain.User, error)
	Update(fn func([]domain.User) ([]domain.User, error)) error
}

type Service struct {
	users  Users
	admins map[string]struct{}
	log    *zap.Logger

	Now   func() time.Time
	NewID func() string
	Hash  func(string) (string, error)
}

func NewService(users Users, adminUsernames []string, l *zap.Logger) *Service {
	if l == nil {
		l = zap.NewNop()
	}
	admins := make(map[string]struct{}, len(adminUsernames))
	for _, u := range adminUsernames {
		if u = strings.TrimSpace(u); u != "" {
			admins[u] = struct{}{}
		}
	}
	return &Service{
		users:  users,
		admins: admins,
		log:    l,
		Now:    time.Now,
		NewID:  utils.NewID,
		Hash:   utils.HashPassword,
	}
}

func validateCredentials(username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("username and password required: %w", domain.ErrInvalidInput)
	}
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters: %w", MinPasswordLen, domain.ErrInvalidInput)
	}
	return nil
}

// Register 用户名区分大小写，去掉首尾空白
func (s *Service) Register(_ context.Context, username, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if err := validateCredentials(username, password); err != nil {
		return domain.User{}, err
	}
	hash, err := s.Hash(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	u := domain.User{
		ID:           s.NewID(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.Now().UTC(),
	}

	err = s.users.Update(func(users []domain.User) ([]domain.User, error) {
		for _, existing := range users {
			if existing.Username == username {
				return nil, domain.ErrUsernameTaken
			}
		}
		return append(users, u), nil
	})
	if err != nil {
		return domain.User{}, err
	}
	s.log.Info("user registered", zap.String("user_id", u.ID), zap.String("username", u.Username))
	return u, nil
}

// Authenticate 用户不存在与密码错误返回同一个错误
func (s *Service) Authenticate(_ context.Context, username, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.User{}, fmt.Errorf("username and password required: %w", domain.ErrInvalidInput)
	}
	u, err := s.byUsername(username)
	if err != nil {
		return domain.User{}, err
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return *u, nil
}

func (s *Service) byUsername(username string) (*domain.User, error) {
	users, err := s.users.Load()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (s *Service) ByID(_ context.Context, id string) (domain.User, error) {
	users, err := s.users.Load()
	if err != nil {
		return domain.User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, fmt.Errorf("user %q: %w", id, domain.ErrUserNotFound)
}

func (s *Service) List(_ context.Context) ([]domain.User, error) {
	return s.users.Load()
}

// RoleOf 配置中的 admin.usernames 拥有 admin 角色
func (s *Service) RoleOf(username string) string {
	if _, ok := s.admins[username]; ok {
		return RoleAdmin
	}
	return RoleUser
}
