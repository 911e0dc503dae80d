package domain

// Difficulty 题目难度；未知值在评分时按 medium 处理
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}

// Question 题库中的静态题目，核心层只读
type Question struct {
	ID         string     `json:"id"         yaml:"id"         validate:"required"`
	Role       string     `json:"role"       yaml:"role"       validate:"required"`
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty" validate:"required,oneof=easy medium hard"`
	Category   string     `json:"category"   yaml:"category"`
	Text       string     `json:"text"       yaml:"text"       validate:"required"`
	Keywords   []string   `json:"keywords"   yaml:"keywords"`
}

func (q Question) Validate() error { return validate.Struct(q) }
