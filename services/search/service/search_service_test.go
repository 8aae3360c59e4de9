package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"redddate/pkg/config"
	"redddate/pkg/db/dbtest"
	"redddate/pkg/dto"
	"redddate/pkg/relation"
	"redddate/pkg/types/commontype"
	eventtypes "redddate/pkg/types/eventtype"
	"redddate/services/search/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

type recordingEmitter struct {
	set     []eventtypes.FlagEvent
	deleted []eventtypes.FlagEvent
	err     error
}

func (e *recordingEmitter) PublishFlagSetEvent(data eventtypes.FlagEvent) error {
	e.set = append(e.set, data)
	return e.err
}

func (e *recordingEmitter) PublishFlagDeleteEvent(data eventtypes.FlagEvent) error {
	e.deleted = append(e.deleted, data)
	return e.err
}

type testEnv struct {
	f         *dbtest.Fixture
	cfg       config.SearchConfig
	relations *relation.Store
	emitter   *recordingEmitter
	buffer    *Buffer
	search    *SearchService
	results   *ResultsService
	flags     *FlagService
}

// alice(1)가 golang, pics를 즐겨찾기.
// bob(2)은 둘 다, carol(3)은 golang, dave(4)는 pics, erin(5)은 구독 없음
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	f := dbtest.NewFixture(t)
	f.User(1, "alice")
	f.User(2, "bob")
	f.User(3, "carol", dbtest.Birth("19700101"))
	f.User(4, "dave")
	f.User(5, "erin")
	f.Group(1, "golang")
	f.Group(2, "pics")
	f.Group(3, "AskReddit")
	f.Subscribe(1, 1, true)
	f.Subscribe(1, 2, true)
	f.Subscribe(1, 3, false)
	f.Subscribe(2, 1, true)
	f.Subscribe(2, 2, false)
	f.Subscribe(3, 1, false)
	f.Subscribe(4, 2, true)

	cfg := config.SearchConfig{
		BufferSize:      1000,
		BufferTTL:       5 * time.Minute,
		PageSize:        2,
		AroundCount:     5,
		MinLinkKarma:    10,
		MinCommentKarma: 10,
	}
	return buildTestEnv(f, cfg)
}

func buildTestEnv(f *dbtest.Fixture, cfg config.SearchConfig) *testEnv {
	candidateRepo := repository.NewCandidateRepository(f.DB)
	profileRepo := repository.NewProfileRepository(f.DB)
	relations := relation.NewStore(f.DB)
	emitter := &recordingEmitter{}

	search := NewSearchService(candidateRepo, profileRepo, relations, cfg)
	search.now = func() time.Time { return testNow }

	buffer := NewBuffer(NewMemoryBufferStore(), search, cfg.BufferTTL)

	results := NewResultsService(buffer, profileRepo, relations, cfg)
	results.now = func() time.Time { return testNow }

	return &testEnv{
		f:         f,
		cfg:       cfg,
		relations: relations,
		emitter:   emitter,
		buffer:    buffer,
		search:    search,
		results:   results,
		flags:     NewFlagService(buffer, profileRepo, relations, emitter),
	}
}

func names(cs []dto.Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Username
	}
	return out
}

func TestSearchService_RanksBySharedFavorites(t *testing.T) {
	env := newTestEnv(t)

	got, err := env.search.Search(context.Background(), 1, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"bob", "carol", "dave"}, names(got))
	assert.Equal(t, 2, got[0].SharedCount)
	assert.Equal(t, 1, got[1].SharedCount)
	assert.Equal(t, 0, got[0].DistanceMeters)
}

func TestSearchService_SecondaryOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.f.DB.Exec("UPDATE profiles SET views_count = 50 WHERE user_id = 4").Error)

	got, err := env.search.Search(ctx, 1, commontype.OrderViewsCountDesc)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "dave", "carol"}, names(got))
}

func TestSearchService_ExcludesBlocked(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.relations.SetFlag(ctx, 1, 4, commontype.FlagBlock)
	require.NoError(t, err)
	_, err = env.relations.SetFlag(ctx, 1, 3, commontype.FlagNope)
	require.NoError(t, err)

	got, err := env.search.Search(ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "carol"}, names(got))
}

func TestSearchService_ExcludeAllFlagged(t *testing.T) {
	f := dbtest.NewFixture(t)
	f.User(1, "alice")
	f.User(2, "bob")
	f.User(3, "carol")
	f.Group(1, "golang")
	f.Subscribe(1, 1, true)
	f.Subscribe(2, 1, true)
	f.Subscribe(3, 1, true)

	env := buildTestEnv(f, config.SearchConfig{BufferSize: 100, PageSize: 20, ExcludeAllFlagged: true})
	_, err := env.relations.SetFlag(context.Background(), 1, 3, commontype.FlagLike)
	require.NoError(t, err)

	got, err := env.search.Search(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, names(got))
}

func TestSearchService_UnknownRequester(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.search.Search(context.Background(), 999, "")
	assert.True(t, errors.Is(err, ErrUserNotFound))
}
