package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ai-interview-lab/internal/analytics"
	"ai-interview-lab/internal/catalog"
	"ai-interview-lab/internal/domain"
	"ai-interview-lab/internal/interview"
	httpez "ai-interview-lab/internal/transport/http/ez"
	mdw "ai-interview-lab/internal/transport/http/middleware"
)

type credentialsIn struct {
	Username string `json:"username" binding:"required,max=64"`
	Password string `json:"password" binding:"required"`
}

type tokenOut struct {
	Token string        `json:"token"`
	Role  string        `json:"role"`
	User  domain.Public `json:"user"`
}

type questionsQ struct {
	Role       string `form:"role"`
	Difficulty string `form:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

type questionsOut struct {
	Questions []domain.Question `json:"questions"`
	Total     int               `json:"total"`
}

// rolesOut 首页按角色展示题目数量
type rolesOut struct {
	Roles []string      `json:"roles"`
	Stats catalog.Stats `json:"stats"`
}

// MountAPI public 无需登录，authed 已挂 AuthJWT
func (d *Deps) MountAPI(public, authed *gin.RouterGroup) {
	ezPublic := httpez.New(public, d.Log)
	ezAuth := httpez.New(authed, d.Log)

	httpez.RegisterAction(ezPublic, httpez.Action[credentialsIn, tokenOut]{
		Method: http.MethodPost,
		Path:   "/register",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *credentialsIn) (tokenOut, error) {
			u, err := d.Accounts.Register(c.Request.Context(), in.Username, in.Password)
			if err != nil {
				return tokenOut{}, err
			}
			return d.issue(u)
		},
	})

	httpez.RegisterAction(ezPublic, httpez.Action[credentialsIn, tokenOut]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *credentialsIn) (tokenOut, error) {
			u, err := d.Accounts.Authenticate(c.Request.Context(), in.Username, in.Password)
			if err != nil {
				return tokenOut{}, err
			}
			return d.issue(u)
		},
	})

	httpez.RegisterAction(ezPublic, httpez.Action[questionsQ, questionsOut]{
		Method: http.MethodGet,
		Path:   "/questions",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *questionsQ) (questionsOut, error) {
			qs, err := d.Catalog.Filter(c.Request.Context(), in.Role, domain.Difficulty(in.Difficulty))
			if err != nil {
				return questionsOut{}, err
			}
			return questionsOut{Questions: qs, Total: len(qs)}, nil
		},
	})

	httpez.RegisterAction(ezPublic, httpez.Action[struct{}, rolesOut]{
		Method: http.MethodGet,
		Path:   "/roles",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (rolesOut, error) {
			ctx := c.Request.Context()
			roles, err := d.Catalog.Roles(ctx)
			if err != nil {
				return rolesOut{}, err
			}
			st, err := d.Catalog.Stats(ctx)
			if err != nil {
				return rolesOut{}, err
			}
			return rolesOut{Roles: roles, Stats: st}, nil
		},
	})

	httpez.RegisterAction(ezAuth, httpez.Action[interview.SubmitRequest, interview.Submission]{
		Method: http.MethodPost,
		Path:   "/submit",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *interview.SubmitRequest) (interview.Submission, error) {
			if in.Difficulty != "" && !in.Difficulty.Valid() {
				return interview.Submission{}, httpez.BadRequest("difficulty must be easy, medium or hard")
			}
			return d.Interviews.Submit(c.Request.Context(), userID(c), *in)
		},
	})

	httpez.RegisterAction(ezAuth, httpez.Action[historyQ, historyOut]{
		Method: http.MethodGet,
		Path:   "/history",
		Binder: httpez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, in *historyQ) (historyOut, error) {
			return d.history(c, userID(c), in.Limit)
		},
	})

	httpez.RegisterAction(ezAuth, httpez.Action[struct{}, domain.InterviewRecord]{
		Method: http.MethodGet,
		Path:   "/history/:id",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (domain.InterviewRecord, error) {
			return d.Interviews.Get(c.Request.Context(), userID(c), c.Param("id"))
		},
	})

	httpez.RegisterAction(ezAuth, httpez.Action[struct{}, analytics.Report]{
		Method: http.MethodGet,
		Path:   "/analytics",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (analytics.Report, error) {
			return d.Analytics.Analyze(c.Request.Context(), userID(c))
		},
	})

	httpez.RegisterAction(ezAuth, httpez.Action[struct{}, tokenOut]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (tokenOut, error) {
			u, err := d.Accounts.ByID(c.Request.Context(), userID(c))
			if err != nil {
				return tokenOut{}, err
			}
			return tokenOut{Role: c.GetString(mdw.KeyRole), User: u.Public()}, nil
		},
	})
}

func (d *Deps) issue(u domain.User) (tokenOut, error) {
	role := d.Accounts.RoleOf(u.Username)
	tok, err := d.JWT.Issue(u.ID, u.Username, role)
	if err != nil {
		return tokenOut{}, httpez.Internal("issue token failed", err)
	}
	return tokenOut{Token: tok, Role: role, User: u.Public()}, nil
}
