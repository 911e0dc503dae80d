package domain

import "time"

// User 注册后不再修改，核心层也不会删除
type User struct {
	ID           string    `json:"id"            validate:"required"`
	Username     string    `json:"username"      validate:"required"`
	PasswordHash string    `json:"password_hash" validate:"required"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u User) Validate() error { return validate.Struct(u) }

// Public 对外展示（不含密码哈希）
type Public struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

func (u User) Public() Public {
	return Public{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt}
}
