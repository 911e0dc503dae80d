// Package app 按配置组装存储、缓存和服务，供各个进程复用。
package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ai-interview-lab/internal/account"
	"ai-interview-lab/internal/analytics"
	"ai-interview-lab/internal/catalog"
	"ai-interview-lab/internal/core/auth"
	"ai-interview-lab/internal/core/cache"
	"ai-interview-lab/internal/core/config"
	"ai-interview-lab/internal/core/store"
	"ai-interview-lab/internal/domain"
	"ai-interview-lab/internal/interview"
	"ai-interview-lab/internal/transport/http/handler"
)

type App struct {
	Store   *store.Store
	Catalog *catalog.Service
	Cached  *catalog.Cached // 未配置 redis 时为 nil
	Deps    *handler.Deps

	cache *cache.Cache
}

// Build 打开数据目录；redis 配置了但连不上时只告警，回源读文件
func Build(ctx context.Context, cfg *config.Config, l *zap.Logger) (*App, error) {
	st, err := store.Open(cfg.Store.DataDir, l)
	if err != nil {
		return nil, err
	}
	a := &App{Store: st, Catalog: catalog.New(st.Questions)}

	var cat catalog.Catalog = a.Catalog
	if cfg.Redis.Enabled() {
		a.cache = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := a.cache.RDB.Ping(ctx).Err(); err != nil {
			l.Warn("redis unreachable, catalog reads fall through to store",
				zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		a.Cached = catalog.NewCached(a.Catalog, a.cache, time.Duration(cfg.Redis.TTLSec)*time.Second, l)
		cat = a.Cached
	}

	iv := interview.NewService(st.Interviews, cat, nil, l)
	a.Deps = &handler.Deps{
		Accounts:   account.NewService(st.Users, cfg.Admin.Usernames, l),
		Catalog:    cat,
		Interviews: iv,
		Analytics:  analytics.NewAggregator(iv),
		JWT:        auth.NewJWTer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL()),
		Log:        l,
	}
	return a, nil
}

// ReplaceCatalog 有缓存时顺带失效
func (a *App) ReplaceCatalog(ctx context.Context, qs []domain.Question) error {
	if a.Cached != nil {
		return a.Cached.Replace(ctx, qs)
	}
	return a.Catalog.Replace(ctx, qs)
}

func (a *App) Close() error {
	if a.cache != nil {
		return a.cache.Close()
	}
	return nil
}
