package dbtest

import (
	"testing"
	"time"

	"redddate/pkg/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Fixture는 테스트 데이터를 만드는 도우미다
type Fixture struct {
	t  *testing.T
	DB *gorm.DB
}

func NewFixture(t *testing.T) *Fixture {
	t.Helper()
	return &Fixture{t: t, DB: Open(t)}
}

type UserOption func(*models.User, *models.Profile)

// 활성 유저와 검색에 걸리는 기본 프로필을 만든다
func (f *Fixture) User(id int, username string, opts ...UserOption) {
	f.t.Helper()

	lastLogin := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	u := models.User{
		ID:         id,
		Username:   username,
		IsActive:   true,
		LastLogin:  &lastLogin,
		DateJoined: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, id),
	}
	p := models.DefaultProfile(id)
	p.Birth = "19900101"
	p.Sex = 1
	p.Lat, p.Lng = 52.52, 13.405
	p.LinkKarma, p.CommentKarma = 100, 100
	p.HasVerifiedEmail = true
	p.Pics = `["https://i.imgur.com/a.jpg"]`
	p.Accessed = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	for _, opt := range opts {
		opt(&u, &p)
	}

	require.NoError(f.t, f.DB.Create(&u).Error)
	require.NoError(f.t, f.DB.Create(&p).Error)
}

func (f *Fixture) Group(id int, displayName string) {
	f.t.Helper()
	require.NoError(f.t, f.DB.Create(&models.Group{ID: id, Name: displayName, DisplayName: displayName}).Error)
}

func (f *Fixture) Subscribe(userID, groupID int, favorite bool) {
	f.t.Helper()
	require.NoError(f.t, f.DB.Omit("Group").Create(&models.Subscription{
		UserID:       userID,
		GroupID:      groupID,
		IsSubscriber: true,
		IsFavorite:   favorite,
	}).Error)
}

func Inactive(u *models.User, _ *models.Profile) { u.IsActive = false }

func Deleted(u *models.User, _ *models.Profile) { u.LastLogin = nil }

func Unverified(_ *models.User, p *models.Profile) { p.HasVerifiedEmail = false }

func Sex(s int) UserOption {
	return func(_ *models.User, p *models.Profile) { p.Sex = s }
}

func Birth(b string) UserOption {
	return func(_ *models.User, p *models.Profile) { p.Birth = b }
}

func Location(lat, lng float64) UserOption {
	return func(_ *models.User, p *models.Profile) { p.Lat, p.Lng = lat, lng }
}

func Karma(link, comment int) UserOption {
	return func(_ *models.User, p *models.Profile) { p.LinkKarma, p.CommentKarma = link, comment }
}

func Pics(raw string) UserOption {
	return func(_ *models.User, p *models.Profile) { p.Pics = raw }
}

func Views(n int) UserOption {
	return func(_ *models.User, p *models.Profile) { p.ViewsCount = n }
}

func Accessed(t time.Time) UserOption {
	return func(_ *models.User, p *models.Profile) { p.Accessed = t }
}

func Filter(filter models.SearchFilter) UserOption {
	return func(_ *models.User, p *models.Profile) { p.Filter = filter }
}
