package domain

import "time"

// TimestampLayout 固定宽度的 UTC 时间格式，字符串字典序即时间顺序
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

func FormatTimestamp(t time.Time) string { return t.UTC().Format(TimestampLayout) }

// InterviewRecord 一次作答的评估记录，只追加、不可修改
type InterviewRecord struct {
	ID           string     `json:"id"            validate:"required"`
	UserID       string     `json:"user_id"       validate:"required"`
	Date         string     `json:"date"          validate:"required"`
	Role         string     `json:"role"`
	Difficulty   Difficulty `json:"difficulty"`
	Category     string     `json:"category"`
	QuestionID   string     `json:"question_id"   validate:"required"`
	QuestionText string     `json:"question_text"`
	Answer       string     `json:"answer"`
	Score        int        `json:"score"         validate:"min=0,max=100"`
	Strengths    []string   `json:"strengths"`
	Weaknesses   []string   `json:"weaknesses"`
	Feedback     string     `json:"feedback"`
	Tips         []string   `json:"tips"`
}

func (r InterviewRecord) Validate() error { return validate.Struct(r) }
