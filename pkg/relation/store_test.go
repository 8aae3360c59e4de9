package relation

import (
	"context"
	"testing"

	"redddate/pkg/db/dbtest"
	"redddate/pkg/models"
	"redddate/pkg/types/commontype"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(dbtest.Open(t))
}

func countFlags(t *testing.T, s *Store, sender, receiver int) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.db.Model(&models.Flag{}).
		Where("sender_id = ? AND receiver_id = ?", sender, receiver).Count(&n).Error)
	return n
}

func TestSetFlag_ReplacesExisting(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.SetFlag(ctx, 1, 2, commontype.FlagLike)
	require.NoError(t, err)
	flag, err := s.SetFlag(ctx, 1, 2, commontype.FlagLike)
	require.NoError(t, err)
	assert.Equal(t, commontype.FlagLike, flag.Kind)
	assert.EqualValues(t, 1, countFlags(t, s, 1, 2))

	_, err = s.SetFlag(ctx, 1, 2, commontype.FlagBlock)
	require.NoError(t, err)
	_, err = s.SetFlag(ctx, 1, 2, commontype.FlagLike)
	require.NoError(t, err)

	assert.EqualValues(t, 1, countFlags(t, s, 1, 2))
	got, err := s.GetFlag(ctx, 1, 2)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, commontype.FlagLike, got.Kind)
}

func TestSetFlag_InvalidInput(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.SetFlag(ctx, 1, 2, 99)
	assert.ErrorIs(t, err, ErrInvalidKind)

	_, err = s.SetFlag(ctx, 1, 2, commontype.FlagNone)
	assert.ErrorIs(t, err, ErrInvalidKind)

	_, err = s.SetFlag(ctx, 3, 3, commontype.FlagLike)
	assert.ErrorIs(t, err, ErrSelfFlag)
}

func TestDeleteFlag_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.DeleteFlag(ctx, 1, 2))

	_, err := s.SetFlag(ctx, 1, 2, commontype.FlagNope)
	require.NoError(t, err)
	require.NoError(t, s.DeleteFlag(ctx, 1, 2))
	require.NoError(t, s.DeleteFlag(ctx, 1, 2))

	got, err := s.GetFlag(ctx, 1, 2)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestIsMatch_Symmetric(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.SetFlag(ctx, 1, 2, commontype.FlagLike)
	require.NoError(t, err)

	m, err := s.IsMatch(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, m)

	_, err = s.SetFlag(ctx, 2, 1, commontype.FlagLike)
	require.NoError(t, err)

	ab, err := s.IsMatch(ctx, 1, 2)
	require.NoError(t, err)
	ba, err := s.IsMatch(ctx, 2, 1)
	require.NoError(t, err)
	assert.True(t, ab)
	assert.Equal(t, ab, ba)

	_, err = s.SetFlag(ctx, 2, 1, commontype.FlagNope)
	require.NoError(t, err)
	ab, err = s.IsMatch(ctx, 1, 2)
	require.NoError(t, err)
	ba, err = s.IsMatch(ctx, 2, 1)
	require.NoError(t, err)
	assert.False(t, ab)
	assert.Equal(t, ab, ba)
}

func TestPredicates(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.SetFlag(ctx, 1, 2, commontype.FlagLike)
	require.NoError(t, err)
	_, err = s.SetFlag(ctx, 1, 3, commontype.FlagNope)
	require.NoError(t, err)

	like, err := s.DoesLike(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, like)

	like, err = s.DoesLike(ctx, 2, 1)
	require.NoError(t, err)
	assert.False(t, like)

	nope, err := s.DoesNope(ctx, 1, 3)
	require.NoError(t, err)
	assert.True(t, nope)

	nope, err = s.DoesNope(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, nope)
}

func TestCountMatchesAndListings(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	pairs := [][3]int{
		{1, 2, commontype.FlagLike}, {2, 1, commontype.FlagLike},
		{1, 3, commontype.FlagLike}, {3, 1, commontype.FlagLike},
		{1, 4, commontype.FlagLike}, {4, 1, commontype.FlagNope},
		{5, 1, commontype.FlagLike},
		{1, 6, commontype.FlagBlock},
		{2, 3, commontype.FlagLike}, {3, 2, commontype.FlagLike},
	}
	for _, p := range pairs {
		_, err := s.SetFlag(ctx, p[0], p[1], p[2])
		require.NoError(t, err)
	}

	n, err := s.CountMatches(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = s.CountMatches(ctx, 4)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	total, err := s.CountAllMatches(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	matches, err := s.ListMatches(ctx, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{2, 3}, receivers(matches))

	sent, err := s.ListSent(ctx, 1, commontype.FlagLike)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{2, 3, 4}, receivers(sent))

	received, err := s.ListReceived(ctx, 1, commontype.FlagLike)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{2, 3, 5}, senders(received))

	_, err = s.ListSent(ctx, 1, 42)
	assert.ErrorIs(t, err, ErrInvalidKind)

	blocked, err := s.BlockedBy(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{6}, blocked)

	flagged, err := s.FlaggedBy(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4, 6}, flagged)

	likes, err := s.CountByKind(ctx, commontype.FlagLike)
	require.NoError(t, err)
	assert.EqualValues(t, 8, likes)
}

func TestDeleteAllSentAndFor(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, p := range [][3]int{
		{1, 2, commontype.FlagLike},
		{1, 3, commontype.FlagNope},
		{1, 4, commontype.FlagBlock},
		{5, 1, commontype.FlagLike},
	} {
		_, err := s.SetFlag(ctx, p[0], p[1], p[2])
		require.NoError(t, err)
	}

	n, err := s.DeleteAllSent(ctx, 1, commontype.FlagLike, commontype.FlagNope)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	flagged, err := s.FlaggedBy(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, flagged)

	_, err = s.DeleteAllSent(ctx, 1, 77)
	assert.ErrorIs(t, err, ErrInvalidKind)

	require.NoError(t, s.DeleteAllFor(ctx, 1))
	assert.EqualValues(t, 0, countFlags(t, s, 1, 4))
	assert.EqualValues(t, 0, countFlags(t, s, 5, 1))
}

func TestKindFromName(t *testing.T) {
	kind, ok := KindFromName("like")
	assert.True(t, ok)
	assert.Equal(t, commontype.FlagLike, kind)

	_, ok = KindFromName("love")
	assert.False(t, ok)
}

func receivers(flags []models.Flag) []int {
	ids := make([]int, 0, len(flags))
	for _, f := range flags {
		ids = append(ids, f.ReceiverID)
	}
	return ids
}

func senders(flags []models.Flag) []int {
	ids := make([]int, 0, len(flags))
	for _, f := range flags {
		ids = append(ids, f.SenderID)
	}
	return ids
}

func TestSetReportFlag(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.SetFlag(ctx, 1, 2, commontype.FlagLike)
	require.NoError(t, err)

	report := &models.Report{SenderID: 1, ReceiverID: 2, Reason: commontype.ReportReasonSpam, Details: "spam links"}
	flag, err := s.SetReportFlag(ctx, report)
	require.NoError(t, err)
	assert.Equal(t, commontype.FlagReport, flag.Kind)
	assert.NotZero(t, report.ID)
	assert.EqualValues(t, 1, countFlags(t, s, 1, 2))

	_, err = s.SetReportFlag(ctx, &models.Report{SenderID: 3, ReceiverID: 3, Reason: 1})
	assert.ErrorIs(t, err, ErrSelfFlag)
}

func TestSetReportFlag_RollsBackFlag(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.SetFlag(ctx, 1, 2, commontype.FlagLike)
	require.NoError(t, err)

	// Report 저장이 실패하면 기존 like도 그대로 남아야 한다
	require.NoError(t, s.db.Migrator().DropTable(&models.Report{}))

	_, err = s.SetReportFlag(ctx, &models.Report{SenderID: 1, ReceiverID: 2, Reason: 1})
	require.Error(t, err)

	flag, err := s.GetFlag(ctx, 1, 2)
	require.NoError(t, err)
	require.NotNil(t, flag)
	assert.Equal(t, commontype.FlagLike, flag.Kind)
}
