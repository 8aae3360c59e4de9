package service

import (
	"time"

	"redddate/pkg/config"
	"redddate/pkg/geo"
	"redddate/pkg/helper"
	"redddate/pkg/models"
	"redddate/pkg/types/commontype"
	"redddate/services/search/repository"
)

// 저장된 나이 범위 보정: 0이면 기본값, 범위 밖이면 자르고, 뒤집혀 있으면 바꾼다
func normalizeAges(minAge, maxAge int) (int, int) {
	if minAge == 0 {
		minAge = commontype.DefaultMinAge
	}
	if maxAge == 0 {
		maxAge = commontype.DefaultMaxAge
	}
	minAge = helper.ClampInt(minAge, commontype.MinAgeFloor, commontype.MinAgeCeil)
	maxAge = helper.ClampInt(maxAge, commontype.MaxAgeFloor, commontype.MaxAgeCeil)
	if minAge > maxAge {
		minAge, maxAge = maxAge, minAge
	}
	return minAge, maxAge
}

// 요청자의 프로필/필터로 후보 검색 조건을 만든다
func BuildCriteria(profile models.Profile, excludeUserIDs []int, now time.Time, cfg config.SearchConfig) repository.Criteria {
	f := profile.Filter
	minAge, maxAge := normalizeAges(f.MinAge, f.MaxAge)
	earliest, latest := helper.DobRange(now, minAge, maxAge)

	c := repository.Criteria{
		RequesterID:          profile.UserID,
		Sex:                  helper.ClampInt(f.Sex, commontype.SexMin, commontype.SexMax),
		BirthAfter:           earliest,
		BirthBefore:          latest,
		IgnoreGroups:         f.IgnoreGroupList(),
		ExcludeGroups:        f.ExcludeGroupList(),
		ExcludeUserIDs:       excludeUserIDs,
		MinLinkKarma:         cfg.MinLinkKarma,
		MinCommentKarma:      cfg.MinCommentKarma,
		RequirePics:          f.HideNoPic,
		RequireVerifiedEmail: f.HasVerifiedEmail,
		Limit:                cfg.BufferSize,
	}

	// 5km 이하는 전세계 검색
	if f.Distance > commontype.WorldwideDistanceKm && geo.Valid(profile.Lat, profile.Lng) {
		if box, err := geo.BoundingBox(profile.Lat, profile.Lng, float64(f.Distance)); err == nil {
			c.Box = &box
		}
	}
	return c
}
