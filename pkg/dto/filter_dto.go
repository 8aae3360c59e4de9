package dto

// 검색 설정 변경 요청. nil 필드는 변경하지 않는다.
type SearchSettings struct {
	Sex              *int    `json:"sex,omitempty"`
	Distance         *int    `json:"distance,omitempty"`
	MinAge           *int    `json:"min_age,omitempty"`
	MaxAge           *int    `json:"max_age,omitempty"`
	HideNoPic        *bool   `json:"hide_no_pic,omitempty"`
	HasVerifiedEmail *bool   `json:"has_verified_email,omitempty"`
	IgnoreGroups     *string `json:"ignore_groups,omitempty"`
	ExcludeGroups    *string `json:"exclude_groups,omitempty"`
	Order            *string `json:"order,omitempty"`
	// 즐겨찾기로 지정할 서브레딧 이름. 내 구독과 하나도 안 맞으면 무시한다
	Favorites []string `json:"favorites,omitempty"`
}
