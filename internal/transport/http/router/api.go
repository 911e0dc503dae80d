package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"ai-interview-lab/internal/core/config"
	"ai-interview-lab/internal/core/server"
	"ai-interview-lab/internal/transport/http/handler"
	mdw "ai-interview-lab/internal/transport/http/middleware"
)

// Options 两个引擎共用的中间件参数
type Options struct {
	Mode        string
	CORSOrigins []string
	Limits      config.Limits
}

func FromConfig(c *config.Config) Options {
	mode := gin.DebugMode
	if c.App.Env == "prod" || c.App.Env == "production" {
		mode = gin.ReleaseMode
	}
	return Options{Mode: mode, CORSOrigins: c.App.CORSOrigins, Limits: c.Limits}
}

func newEngine(l *zap.Logger, opt Options) *gin.Engine {
	r := server.NewRouter(l, server.Options{Mode: opt.Mode, CORSOrigins: opt.CORSOrigins})

	lim := opt.Limits
	if lim.TimeoutSec <= 0 {
		lim.TimeoutSec = 15
	}
	rps := rate.Limit(lim.RPS)
	if lim.RPS <= 0 {
		rps = rate.Inf
	}
	if lim.MaxBodyBytes <= 0 {
		lim.MaxBodyBytes = 1 << 20
	}
	r.Use(
		mdw.RequestID(),
		mdw.RateLimitPerIP(rps, lim.Burst),
		mdw.ConcurrencyLimit(lim.Concurrency),
		mdw.MaxBodyBytes(lim.MaxBodyBytes),
		mdw.Timeout(time.Duration(lim.TimeoutSec)*time.Second),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	// 健康检查 + 指标
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", mdw.MetricsHandler())
	return r
}

func NewAPIEngine(l *zap.Logger, d *handler.Deps, opt Options) *gin.Engine {
	r := newEngine(l, opt)

	api := r.Group("/api/v1")

	// 鉴权分组
	authUser := api.Group("")
	authUser.Use(mdw.AuthJWT(d.JWT, ""))

	d.MountAPI(api, authUser)
	return r
}
