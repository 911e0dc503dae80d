package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ai-interview-lab/internal/account"
	"ai-interview-lab/internal/analytics"
	"ai-interview-lab/internal/catalog"
	"ai-interview-lab/internal/domain"
	httpez "ai-interview-lab/internal/transport/http/ez"
)

type userRow struct {
	domain.Public
	Role string `json:"role"`
}

type usersOut struct {
	Total int       `json:"total"`
	Items []userRow `json:"items"`
}

// MountAdmin admin 分组已要求 admin 角色，这里再按 Roles 校验一次
func (d *Deps) MountAdmin(admin *gin.RouterGroup) {
	ezAdmin := httpez.New(admin, d.Log)
	roles := []string{account.RoleAdmin}

	httpez.RegisterAction(ezAdmin, httpez.Action[struct{}, usersOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: httpez.BindNone,
		Auth:   true,
		Roles:  roles,
		Handler: func(c *gin.Context, _ *struct{}) (usersOut, error) {
			us, err := d.Accounts.List(c.Request.Context())
			if err != nil {
				return usersOut{}, err
			}
			out := usersOut{Total: len(us), Items: make([]userRow, 0, len(us))}
			for _, u := range us {
				out.Items = append(out.Items, userRow{Public: u.Public(), Role: d.Accounts.RoleOf(u.Username)})
			}
			return out, nil
		},
	})

	httpez.RegisterAction(ezAdmin, httpez.Action[struct{}, catalog.Stats]{
		Method: http.MethodGet,
		Path:   "/questions/stats",
		Binder: httpez.BindNone,
		Auth:   true,
		Roles:  roles,
		Handler: func(c *gin.Context, _ *struct{}) (catalog.Stats, error) {
			return d.Catalog.Stats(c.Request.Context())
		},
	})

	httpez.RegisterAction(ezAdmin, httpez.Action[struct{}, analytics.Report]{
		Method: http.MethodGet,
		Path:   "/users/:id/analytics",
		Binder: httpez.BindNone,
		Auth:   true,
		Roles:  roles,
		Handler: func(c *gin.Context, _ *struct{}) (analytics.Report, error) {
			u, err := d.Accounts.ByID(c.Request.Context(), c.Param("id"))
			if err != nil {
				return analytics.Report{}, err
			}
			return d.Analytics.Analyze(c.Request.Context(), u.ID)
		},
	})

	httpez.RegisterAction(ezAdmin, httpez.Action[historyQ, historyOut]{
		Method: http.MethodGet,
		Path:   "/users/:id/history",
		Binder: httpez.BindQuery,
		Auth:   true,
		Roles:  roles,
		Handler: func(c *gin.Context, in *historyQ) (historyOut, error) {
			u, err := d.Accounts.ByID(c.Request.Context(), c.Param("id"))
			if err != nil {
				return historyOut{}, err
			}
			return d.history(c, u.ID, in.Limit)
		},
	})
}
