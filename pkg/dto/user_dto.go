package dto

// 외부(레딧)에서 받아온 구독 정보
type SubscriptionDTO struct {
	Name          string `json:"name"`
	DisplayName   string `json:"display_name"`
	Subscribers   int    `json:"subscribers"`
	Over18        bool   `json:"over18"`
	IsContributor bool   `json:"user_is_contributor"`
	IsModerator   bool   `json:"user_is_moderator"`
	IsSubscriber  bool   `json:"user_is_subscriber"`
	IsBanned      bool   `json:"user_is_banned"`
	IsMuted       bool   `json:"user_is_muted"`
}

type SubscriptionView struct {
	GroupID         int    `json:"group_id"`
	DisplayName     string `json:"display_name"`
	Subscribers     int    `json:"subscribers"`
	SubscribersHere int    `json:"subscribers_here"`
	IsFavorite      bool   `json:"is_favorite"`
	IsModerator     bool   `json:"is_moderator"`
}

type SyncResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`
}

type StatsDTO struct {
	Users       int64 `json:"users"`
	ActiveUsers int64 `json:"active_users"`
	Likes       int64 `json:"likes"`
	Nopes       int64 `json:"nopes"`
	Matches     int64 `json:"matches"`
}
