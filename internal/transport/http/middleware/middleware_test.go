package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-interview-lab/internal/core/auth"
	resp "ai-interview-lab/internal/transport/http/response"
)

func init() { gin.SetMode(gin.TestMode) }

func do(r http.Handler, req *http.Request) (*httptest.ResponseRecorder, resp.Resp) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var body resp.Resp
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestAuthJWT(t *testing.T) {
	j := auth.NewJWTer("secret", "lab", time.Hour)
	r := gin.New()
	r.GET("/me", AuthJWT(j, ""), func(c *gin.Context) {
		c.JSON(http.StatusOK, resp.OK(gin.H{
			"uid": c.GetString(KeyUserID), "username": c.GetString(KeyUsername), "role": c.GetString(KeyRole),
		}))
	})
	r.GET("/admin", AuthJWT(j, "admin"), func(c *gin.Context) { c.JSON(http.StatusOK, resp.OK(nil)) })

	userTok, err := j.Issue("u-1", "alice", "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	_, body := do(r, req)
	assert.Equal(t, resp.CodeUnauthorized, body.Code)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer junk")
	w, body := do(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, resp.CodeUnauthorized, body.Code)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+userTok)
	_, body = do(r, req)
	require.Equal(t, resp.CodeOK, body.Code)
	assert.Equal(t, map[string]any{"uid": "u-1", "username": "alice", "role": "user"}, body.Data)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userTok)
	_, body = do(r, req)
	assert.Equal(t, resp.CodeForbidden, body.Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(KeyRequestID)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
	assert.Equal(t, w.Header().Get(HeaderRequestID), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "given")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "given", w.Body.String())
}

func TestRateLimitPerIP(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitPerIP(0.001, 2))
	r.GET("/", func(c *gin.Context) { c.JSON(http.StatusOK, resp.OK(nil)) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		_, body := do(r, req)
		codes = append(codes, body.Code)
	}
	assert.Equal(t, []int{resp.CodeOK, resp.CodeOK, resp.CodeTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	_, body := do(r, req)
	assert.Equal(t, resp.CodeOK, body.Code)
}

func TestMaxBodyBytes(t *testing.T) {
	r := gin.New()
	r.Use(MaxBodyBytes(8))
	r.POST("/", func(c *gin.Context) { c.JSON(http.StatusOK, resp.OK(nil)) })

	_, body := do(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"answer":"far too long"}`)))
	assert.Equal(t, resp.CodeBadRequest, body.Code)

	_, body = do(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`)))
	assert.Equal(t, resp.CodeOK, body.Code)
}

func TestMaskQuery(t *testing.T) {
	got := maskQuery(map[string][]string{"Password": {"x"}, "role": {"backend"}})
	assert.Equal(t, []string{"****"}, got["Password"])
	assert.Equal(t, []string{"backend"}, got["role"])
}
