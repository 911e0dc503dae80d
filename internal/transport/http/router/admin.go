package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ai-interview-lab/internal/account"
	"ai-interview-lab/internal/transport/http/handler"
	mdw "ai-interview-lab/internal/transport/http/middleware"
)

func NewAdminEngine(l *zap.Logger, d *handler.Deps, opt Options) *gin.Engine {
	r := newEngine(l, opt)

	// 管理端 v1（统一要求 admin 角色）
	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(d.JWT, account.RoleAdmin))

	d.MountAdmin(admin)
	return r
}
