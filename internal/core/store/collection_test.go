package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ai-interview-lab/internal/domain"
)

func newFileStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	s, err := Open(dir, zap.NewNop())
	require.NoError(t, err)
	return s, dir
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{ID: "q2", Role: "backend", Difficulty: domain.Hard, Category: "system design", Text: "Design a rate limiter", Keywords: []string{"token bucket", "redis"}},
		{ID: "q1", Role: "frontend", Difficulty: domain.Easy, Category: "basics", Text: "What is the DOM?", Keywords: []string{"tree", "nodes"}},
		{ID: "q1", Role: "frontend", Difficulty: domain.Easy, Category: "basics", Text: "duplicate id kept", Keywords: nil},
	}
}

func record(i int) domain.InterviewRecord {
	return domain.InterviewRecord{
		ID:         fmt.Sprintf("r-%03d", i),
		UserID:     "u1",
		Date:       fmt.Sprintf("2025-01-01T00:00:%02d.000000Z", i%60),
		QuestionID: "q1",
		Score:      i % 101,
	}
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	s, _ := newFileStore(t)

	qs, err := s.Questions.Load()
	require.NoError(t, err)
	assert.Empty(t, qs)
	assert.NotNil(t, qs)
}

func TestSaveLoad_RoundTripPreservesOrderAndDuplicates(t *testing.T) {
	s, dir := newFileStore(t)
	want := sampleQuestions()

	require.NoError(t, s.Questions.Save(want))

	got, err := s.Questions.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	raw, err := os.ReadFile(filepath.Join(dir, "questions.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  {\n    \"id\": \"q2\"", "pretty printed with two-space indent")
}

func TestSave_OverwritesWholeCollection(t *testing.T) {
	s, _ := newFileStore(t)
	require.NoError(t, s.Questions.Save(sampleQuestions()))
	require.NoError(t, s.Questions.Save(sampleQuestions()[:1]))

	got, err := s.Questions.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "q2", got[0].ID)
}

func TestSave_RejectsInvalidRecordWithoutWriting(t *testing.T) {
	s, _ := newFileStore(t)
	require.NoError(t, s.Questions.Save(sampleQuestions()))

	bad := append(sampleQuestions(), domain.Question{ID: "q9", Role: "x", Difficulty: "extreme", Text: "t"})
	err := s.Questions.Save(bad)
	require.ErrorIs(t, err, ErrInvalidRecord)

	got, err := s.Questions.Load()
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestLoad_MalformedFileIsEmpty(t *testing.T) {
	s, dir := newFileStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "interviews.json"), []byte(`[{"id": "broken"`), 0o644))

	got, err := s.Interviews.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoad_SkipsInvalidElements(t *testing.T) {
	s, dir := newFileStore(t)
	body := `[
  {"id": "q1", "role": "backend", "difficulty": "easy", "text": "ok"},
  {"id": "q2", "role": "backend", "difficulty": "impossible", "text": "bad difficulty"},
  "not an object"
]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "questions.json"), []byte(body), 0o644))

	got, err := s.Questions.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "q1", got[0].ID)
}

func TestAppend_OntoMalformedFileStartsFresh(t *testing.T) {
	s, dir := newFileStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "interviews.json"), []byte("{{{"), 0o644))

	require.NoError(t, s.Interviews.Append(record(1)))

	got, err := s.Interviews.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "r-001", got[0].ID)
}

func TestAppend_KeepsUndecodableElements(t *testing.T) {
	s, dir := newFileStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "interviews.json"), []byte(`[{"legacy": true}]`), 0o644))

	require.NoError(t, s.Interviews.Append(record(2)))

	raw, err := os.ReadFile(filepath.Join(dir, "interviews.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"legacy": true`)

	got, err := s.Interviews.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestAppend_RejectsInvalidRecord(t *testing.T) {
	s, _ := newFileStore(t)
	r := record(1)
	r.Score = 150

	err := s.Interviews.Append(r)
	require.ErrorIs(t, err, ErrInvalidRecord)
}

func TestAppend_ConcurrentWritersLoseNothing(t *testing.T) {
	backends := map[string]Backend{
		"memory": NewMemoryBackend(),
	}
	fb, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)
	backends["file"] = fb

	for name, b := range backends {
		t.Run(name, func(t *testing.T) {
			s := New(b, zap.NewNop())
			const n = 40

			var wg sync.WaitGroup
			errs := make(chan error, n)
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					errs <- s.Interviews.Append(record(i))
				}(i)
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				require.NoError(t, err)
			}

			got, err := s.Interviews.Load()
			require.NoError(t, err)
			require.Len(t, got, n)

			seen := map[string]bool{}
			for _, r := range got {
				seen[r.ID] = true
			}
			assert.Len(t, seen, n)
		})
	}
}

func TestUpdate_ReadModifyWrite(t *testing.T) {
	s := New(NewMemoryBackend(), zap.NewNop())
	require.NoError(t, s.Questions.Save(sampleQuestions()))

	err := s.Questions.Update(func(qs []domain.Question) ([]domain.Question, error) {
		return qs[:1], nil
	})
	require.NoError(t, err)

	got, err := s.Questions.Load()
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestUpdate_ErrorLeavesCollectionUntouched(t *testing.T) {
	s := New(NewMemoryBackend(), zap.NewNop())
	require.NoError(t, s.Questions.Save(sampleQuestions()))
	boom := fmt.Errorf("boom")

	err := s.Questions.Update(func([]domain.Question) ([]domain.Question, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.Questions.Load()
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestNewFileBackend_EmptyDir(t *testing.T) {
	_, err := NewFileBackend("")
	require.Error(t, err)
}

func TestRead_PropagatesIOErrors(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores file permissions")
	}
	fb, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)
	p := filepath.Join(fb.Dir(), "users.json")
	require.NoError(t, os.WriteFile(p, []byte("[]"), 0o000))

	_, err = New(fb, zap.NewNop()).Users.Load()
	require.Error(t, err)
}
