package commontype

// 성별 코드 (0 = 검색 시 "상관없음")
const (
	SexAny = iota
	SexWoman
	SexMan
	SexOther
)

const (
	SexMin = SexAny
	SexMax = SexOther
)

// 유저 간 플래그 종류
const (
	FlagNone = iota
	FlagLike
	FlagNope
	FlagBlock
	FlagReport
)

var FlagNames = map[int]string{
	FlagLike:   "like",
	FlagNope:   "nope",
	FlagBlock:  "block",
	FlagReport: "report",
}

// 신고 사유
const (
	ReportReasonSpam = iota + 1
	ReportReasonFake
	ReportReasonHarassment
	ReportReasonUnderage
	ReportReasonOther
)

// 검색 결과 2차 정렬 키
const (
	OrderSharedCount      = ""
	OrderLastActiveDesc   = "-accessed"
	OrderLastActiveAsc    = "accessed"
	OrderAccountAgeDesc   = "date_joined"
	OrderAccountAgeAsc    = "-date_joined"
	OrderViewsCountDesc   = "-views_count"
	OrderViewsCountAsc    = "views_count"
	OrderSharedCountAlias = "-sr_count"
)

// 검색 필터 범위
const (
	// 이 값 이하의 거리는 "전세계"로 취급한다 (위치 퍼징 + 미설정 값 보호)
	WorldwideDistanceKm = 5
	MaxDistanceKm       = 21000

	MinAgeFloor = 18
	MinAgeCeil  = 99
	MaxAgeFloor = 19
	MaxAgeCeil  = 100

	DefaultMinAge = 18
	DefaultMaxAge = 100
)

// 검색 결과 버퍼 기본값
const (
	DefaultBufferSize  = 1000
	DefaultBufferTTL   = 5 // minutes
	DefaultPageSize    = 20
	DefaultAroundCount = 5
)
