// Package handler 把 gin 请求翻译成服务调用，业务规则都在服务层。
package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ai-interview-lab/internal/account"
	"ai-interview-lab/internal/analytics"
	"ai-interview-lab/internal/catalog"
	"ai-interview-lab/internal/core/auth"
	"ai-interview-lab/internal/domain"
	"ai-interview-lab/internal/interview"
	mdw "ai-interview-lab/internal/transport/http/middleware"
)

// Deps 两个进程共用的服务集合
type Deps struct {
	Accounts   *account.Service
	Catalog    catalog.Catalog
	Interviews *interview.Service
	Analytics  *analytics.Aggregator
	JWT        *auth.JWTer
	Log        *zap.Logger
}

type historyQ struct {
	Limit int `form:"limit" binding:"omitempty,min=0"`
}

type historyOut struct {
	Total int                      `json:"total"`
	Items []domain.InterviewRecord `json:"items"`
}

func userID(c *gin.Context) string { return c.GetString(mdw.KeyUserID) }

func (d *Deps) history(c *gin.Context, uid string, limit int) (historyOut, error) {
	items, total, err := d.Interviews.History(c.Request.Context(), uid, limit)
	if err != nil {
		return historyOut{}, err
	}
	return historyOut{Total: total, Items: items}, nil
}
