package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"redddate/pkg/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	calls  int
	orders []string
	result []dto.Candidate
	err    error
}

func (f *fakeSearcher) Search(_ context.Context, _ int, order string) ([]dto.Candidate, error) {
	f.calls++
	f.orders = append(f.orders, order)
	if f.err != nil {
		return nil, f.err
	}
	return append([]dto.Candidate{}, f.result...), nil
}

func candidates(names ...string) []dto.Candidate {
	out := make([]dto.Candidate, len(names))
	for i, n := range names {
		out[i] = dto.Candidate{UserID: i + 1, Username: n, SharedCount: len(names) - i}
	}
	return out
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestBuffer(searcher CandidateSearcher) (*Buffer, *clock) {
	c := &clock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	b := NewBuffer(NewMemoryBufferStore(), searcher, 5*time.Minute)
	b.now = c.now
	return b, c
}

func TestBuffer_ReusesWithinTTL(t *testing.T) {
	ctx := context.Background()
	searcher := &fakeSearcher{result: candidates("a", "b", "c")}
	b, c := newTestBuffer(searcher)

	first, err := b.GetOrRefresh(ctx, "s1", 1, false)
	require.NoError(t, err)

	c.t = c.t.Add(4 * time.Minute)
	second, err := b.GetOrRefresh(ctx, "s1", 1, false)
	require.NoError(t, err)

	assert.Equal(t, 1, searcher.calls)
	assert.True(t, first.GeneratedAt.Equal(second.GeneratedAt))
	assert.Equal(t, first.Usernames(), second.Usernames())
}

func TestBuffer_RefreshesAfterTTL(t *testing.T) {
	ctx := context.Background()
	searcher := &fakeSearcher{result: candidates("a")}
	b, c := newTestBuffer(searcher)

	_, err := b.GetOrRefresh(ctx, "s1", 1, false)
	require.NoError(t, err)

	c.t = c.t.Add(5*time.Minute + time.Second)
	buf, err := b.GetOrRefresh(ctx, "s1", 1, false)
	require.NoError(t, err)

	assert.Equal(t, 2, searcher.calls)
	assert.True(t, c.t.Equal(buf.GeneratedAt))
}

func TestBuffer_ForceAlwaysRecomputes(t *testing.T) {
	ctx := context.Background()
	searcher := &fakeSearcher{result: candidates("a")}
	b, _ := newTestBuffer(searcher)

	for i := 0; i < 3; i++ {
		_, err := b.GetOrRefresh(ctx, "s1", 1, true)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, searcher.calls)
}

func TestBuffer_SessionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	searcher := &fakeSearcher{result: candidates("a")}
	b, _ := newTestBuffer(searcher)

	_, err := b.GetOrRefresh(ctx, "s1", 1, false)
	require.NoError(t, err)
	_, err = b.GetOrRefresh(ctx, "s2", 1, false)
	require.NoError(t, err)
	assert.Equal(t, 2, searcher.calls)
}

func TestBuffer_EmptyResultIsCached(t *testing.T) {
	ctx := context.Background()
	searcher := &fakeSearcher{result: []dto.Candidate{}}
	b, _ := newTestBuffer(searcher)

	buf, err := b.GetOrRefresh(ctx, "s1", 1, false)
	require.NoError(t, err)
	require.NotNil(t, buf)
	assert.Equal(t, 0, buf.Len())

	_, err = b.GetOrRefresh(ctx, "s1", 1, false)
	require.NoError(t, err)
	assert.Equal(t, 1, searcher.calls)
}

func TestBuffer_UsesStoredOrder(t *testing.T) {
	ctx := context.Background()
	searcher := &fakeSearcher{result: candidates("a")}
	b, _ := newTestBuffer(searcher)

	require.NoError(t, b.SetOrder(ctx, "s1", "-views_count"))
	buf, err := b.GetOrRefresh(ctx, "s1", 1, true)
	require.NoError(t, err)

	assert.Equal(t, []string{"-views_count"}, searcher.orders)
	assert.Equal(t, "-views_count", buf.Order)
}

func TestBuffer_SearchError(t *testing.T) {
	ctx := context.Background()
	searcher := &fakeSearcher{err: errors.New("db down")}
	b, _ := newTestBuffer(searcher)

	_, err := b.GetOrRefresh(ctx, "s1", 1, false)
	assert.Error(t, err)

	buf, err := b.store.LoadBuffer(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, buf)
}

func TestBuffer_Remove(t *testing.T) {
	ctx := context.Background()
	names := make([]string, 10)
	for i := range names {
		names[i] = fmt.Sprintf("u%d", i)
	}
	searcher := &fakeSearcher{result: candidates(names...)}
	b, _ := newTestBuffer(searcher)

	_, err := b.GetOrRefresh(ctx, "s1", 1, false)
	require.NoError(t, err)

	removed, err := b.Remove(ctx, "s1", "u4")
	require.NoError(t, err)
	assert.True(t, removed)

	buf, err := b.GetOrRefresh(ctx, "s1", 1, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"u0", "u1", "u2", "u3", "u5", "u6", "u7", "u8", "u9"}, buf.Usernames())
	assert.Equal(t, 1, searcher.calls)

	removed, err = b.Remove(ctx, "s1", "u4")
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = b.Remove(ctx, "missing-session", "u1")
	require.NoError(t, err)
	assert.False(t, removed)
}
