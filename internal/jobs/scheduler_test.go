package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReindexer struct {
	calls    int
	err      error
	deadline bool
}

func (f *fakeReindexer) Reindex(ctx context.Context) (int, error) {
	f.calls++
	_, f.deadline = ctx.Deadline()
	return 3, f.err
}

func TestRunNow(t *testing.T) {
	search := &fakeReindexer{}
	s := NewScheduler(time.Minute, nil)
	require.NoError(t, s.Register(NewSearchReindex(search, "", nil)))

	assert.Equal(t, []string{"search-reindex"}, s.Jobs())
	require.NoError(t, s.RunNow(context.Background(), "search-reindex"))
	assert.Equal(t, 1, search.calls)
	assert.True(t, search.deadline)

	assert.Error(t, s.RunNow(context.Background(), "missing"))
}

func TestRunNowReturnsJobError(t *testing.T) {
	search := &fakeReindexer{err: errors.New("meilisearch down")}
	s := NewScheduler(0, nil)
	require.NoError(t, s.Register(NewSearchReindex(search, "", nil)))

	err := s.RunNow(context.Background(), "search-reindex")
	assert.EqualError(t, err, "meilisearch down")
	assert.False(t, search.deadline)
}

func TestRegisterRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(0, nil)
	err := s.Register(NewSearchReindex(&fakeReindexer{}, "not a schedule", nil))
	assert.Error(t, err)
	assert.Empty(t, s.Jobs())
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(0, nil)
	require.NoError(t, s.Register(NewSearchReindex(&fakeReindexer{}, "@every 1h", nil)))
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
