package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ai-interview-lab/internal/core/cache"
	"ai-interview-lab/internal/core/store"
	"ai-interview-lab/internal/domain"
)

func seed(t *testing.T) *Service {
	t.Helper()
	s := store.New(store.NewMemoryBackend(), zap.NewNop())
	require.NoError(t, s.Questions.Save([]domain.Question{
		{ID: "b1", Role: "backend", Difficulty: domain.Easy, Text: "What is HTTP?"},
		{ID: "b2", Role: "backend", Difficulty: domain.Hard, Text: "Design a queue."},
		{ID: "f1", Role: "frontend", Difficulty: domain.Easy, Text: "What is the DOM?"},
		{ID: "d1", Role: "devops", Difficulty: domain.Medium, Text: "Explain blue-green deploys."},
		{ID: "b1", Role: "backend", Difficulty: domain.Medium, Text: "shadowed duplicate"},
	}))
	return New(s.Questions)
}

func ids(qs []domain.Question) []string {
	out := make([]string, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	svc := seed(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		role       string
		difficulty domain.Difficulty
		want       []string
	}{
		{"no filters", "", "", []string{"b1", "b2", "f1", "d1", "b1"}},
		{"role only", "backend", "", []string{"b1", "b2", "b1"}},
		{"difficulty only", "", domain.Easy, []string{"b1", "f1"}},
		{"both", "backend", domain.Hard, []string{"b2"}},
		{"no match", "data", "", []string{}},
		{"role is exact match", "Backend", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Filter(ctx, tt.role, tt.difficulty)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestByID(t *testing.T) {
	svc := seed(t)

	q, err := svc.ByID(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, "What is HTTP?", q.Text, "first match wins")

	_, err = svc.ByID(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrQuestionNotFound)
}

func TestRolesAndStats(t *testing.T) {
	svc := seed(t)
	ctx := context.Background()

	roles, err := svc.Roles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"backend", "devops", "frontend"}, roles)

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, st.Total)
	assert.Equal(t, map[string]int{"backend": 3, "frontend": 1, "devops": 1}, st.ByRole)
	assert.Equal(t, map[string]int{"easy": 2, "medium": 2, "hard": 1}, st.ByDifficulty)
}

func TestEmptyCatalog(t *testing.T) {
	svc := New(store.New(store.NewMemoryBackend(), zap.NewNop()).Questions)
	ctx := context.Background()

	roles, err := svc.Roles(ctx)
	require.NoError(t, err)
	assert.Empty(t, roles)

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Total)
	assert.NotNil(t, st.ByRole)
}

func TestReplace(t *testing.T) {
	svc := seed(t)
	ctx := context.Background()

	err := svc.Replace(ctx, []domain.Question{
		{ID: "x", Role: "r", Difficulty: domain.Easy, Text: "a"},
		{ID: "x", Role: "r", Difficulty: domain.Easy, Text: "b"},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	err = svc.Replace(ctx, []domain.Question{{ID: "x", Role: "r", Difficulty: "trivial", Text: "a"}})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, svc.Replace(ctx, []domain.Question{{ID: "x", Role: "r", Difficulty: domain.Easy, Text: "a"}}))
	got, err := svc.Filter(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, ids(got))
}

func TestCached_FallsThroughWhenRedisIsDown(t *testing.T) {
	c := &cache.Cache{RDB: redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})}
	defer c.Close()

	cached := NewCached(seed(t), c, time.Minute, zap.NewNop())
	ctx := context.Background()

	roles, err := cached.Roles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"backend", "devops", "frontend"}, roles)

	st, err := cached.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, st.Total)

	require.NoError(t, cached.Replace(ctx, []domain.Question{{ID: "x", Role: "r", Difficulty: domain.Easy, Text: "a"}}))
	roles, err = cached.Roles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"r"}, roles)

	var _ Catalog = cached
}
