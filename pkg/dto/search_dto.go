package dto

import "time"

// 검색 결과 후보 한 명
type Candidate struct {
	UserID         int    `json:"user_id"`
	Username       string `json:"username"`
	SharedCount    int    `json:"shared_count"`
	DistanceMeters int    `json:"distance_meters"`
}

// 세션별로 캐시되는 정렬된 후보 목록
type ResultBuffer struct {
	Candidates  []Candidate `json:"candidates"`
	GeneratedAt time.Time   `json:"generated_at"`
	Order       string      `json:"order"`
}

func (b *ResultBuffer) Usernames() []string {
	if b == nil {
		return []string{}
	}
	names := make([]string, len(b.Candidates))
	for i, c := range b.Candidates {
		names[i] = c.Username
	}
	return names
}

func (b *ResultBuffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Candidates)
}

type ResultsPage struct {
	Page        int         `json:"page"`
	PerPage     int         `json:"per_page"`
	TotalPages  int         `json:"total_pages"`
	Total       int         `json:"total"`
	Candidates  []Candidate `json:"candidates"`
	GeneratedAt time.Time   `json:"generated_at"`
	Order       string      `json:"order"`
}

// 프로필 상세
type ProfileView struct {
	UserID         int       `json:"user_id"`
	Username       string    `json:"username"`
	Age            int       `json:"age"`
	Sex            int       `json:"sex"`
	Pics           []string  `json:"pics"`
	Accessed       time.Time `json:"accessed"`
	DateJoined     time.Time `json:"date_joined"`
	ViewsCount     int       `json:"views_count"`
	DistanceMeters int       `json:"distance_meters"`
	IsMatch        bool      `json:"is_match"`
	IsLike         bool      `json:"is_like"`
	IsNope         bool      `json:"is_nope"`
	Prev           string    `json:"prev"`
	Next           string    `json:"next"`
	After          []string  `json:"after"`
}

type FlagResult struct {
	Action   string `json:"action"`
	Kind     string `json:"kind"`
	Username string `json:"username"`
	IsMatch  bool   `json:"is_match"`
	Next     string `json:"next"`
}

type FlagItem struct {
	UserID    int       `json:"user_id"`
	Username  string    `json:"username"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

type ReportRequest struct {
	Reason  int    `json:"reason" form:"reason"`
	Details string `json:"details" form:"details"`
}
