package models

import (
	"encoding/json"
	"strings"
	"time"
)

type User struct {
	ID         int        `gorm:"primaryKey;autoIncrement" json:"id"`
	Username   string     `gorm:"size:20;uniqueIndex" json:"username"`
	IsActive   bool       `json:"is_active"`
	LastLogin  *time.Time `json:"last_login"`
	DateJoined time.Time  `json:"date_joined"`
}

// 검색 필터 (profiles 테이블에 f_ 접두사로 저장)
type SearchFilter struct {
	Sex              int    `json:"sex"`
	Distance         int    `json:"distance"`
	MinAge           int    `json:"min_age"`
	MaxAge           int    `json:"max_age"`
	HideNoPic        bool   `json:"hide_no_pic"`
	HasVerifiedEmail bool   `json:"has_verified_email"`
	IgnoreGroups     string `gorm:"size:2000" json:"ignore_groups"`
	ExcludeGroups    string `gorm:"size:2000" json:"exclude_groups"`
}

func (f SearchFilter) IgnoreGroupList() []string {
	return strings.Fields(f.IgnoreGroups)
}

func (f SearchFilter) ExcludeGroupList() []string {
	return strings.Fields(f.ExcludeGroups)
}

type Profile struct {
	UserID           int          `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Birth            string       `gorm:"size:8;index" json:"birth"` // YYYYMMDD
	Sex              int          `gorm:"index" json:"sex"`
	Lat              float64      `gorm:"index" json:"lat"`
	Lng              float64      `gorm:"index" json:"lng"`
	Fuzzy            int          `json:"fuzzy"`
	Accessed         time.Time    `json:"accessed"`
	Created          time.Time    `json:"created"`
	HasVerifiedEmail bool         `json:"has_verified_email"`
	LinkKarma        int          `json:"link_karma"`
	CommentKarma     int          `json:"comment_karma"`
	ViewsCount       int          `json:"views_count"`
	NewViewsCount    int          `json:"new_views_count"`
	NewLikesCount    int          `json:"new_likes_count"`
	NewMatchesCount  int          `json:"new_matches_count"`
	MatchesCount     int          `json:"matches_count"`
	Pics             string       `gorm:"size:4000" json:"-"`
	Filter           SearchFilter `gorm:"embedded;embeddedPrefix:f_" json:"filter"`
}

// 사진 URL 목록
func (p Profile) PicList() []string {
	if p.Pics == "" {
		return []string{}
	}
	var pics []string
	if err := json.Unmarshal([]byte(p.Pics), &pics); err != nil {
		return []string{}
	}
	return pics
}

// 탈퇴 시 초기화된 프로필
func DefaultProfile(userID int) Profile {
	return Profile{
		UserID: userID,
		Filter: SearchFilter{
			MinAge: 18,
			MaxAge: 100,
		},
	}
}

// 서브레딧
type Group struct {
	ID              int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string `gorm:"size:12" json:"name"`
	DisplayName     string `gorm:"size:50;uniqueIndex" json:"display_name"`
	Subscribers     int    `json:"subscribers"`
	SubscribersHere int    `json:"subscribers_here"`
	Over18          bool   `json:"over18"`
}

func (Group) TableName() string {
	return "subreddits"
}

type Subscription struct {
	ID            int   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int   `gorm:"uniqueIndex:idx_subscription_pair" json:"user_id"`
	GroupID       int   `gorm:"uniqueIndex:idx_subscription_pair;index" json:"group_id"`
	IsContributor bool  `json:"is_contributor"`
	IsModerator   bool  `json:"is_moderator"`
	IsSubscriber  bool  `json:"is_subscriber"`
	IsBanned      bool  `json:"is_banned"`
	IsMuted       bool  `json:"is_muted"`
	IsFavorite    bool  `json:"is_favorite"`
	Group         Group `gorm:"foreignKey:GroupID" json:"group"`
}
