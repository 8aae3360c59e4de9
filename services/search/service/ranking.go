package service

import (
	"sort"

	"redddate/pkg/dto"
	"redddate/pkg/geo"
	"redddate/pkg/types/commontype"
	"redddate/services/search/repository"
)

var validOrders = map[string]bool{
	commontype.OrderSharedCount:      true,
	commontype.OrderSharedCountAlias: true,
	commontype.OrderLastActiveDesc:   true,
	commontype.OrderLastActiveAsc:    true,
	commontype.OrderAccountAgeDesc:   true,
	commontype.OrderAccountAgeAsc:    true,
	commontype.OrderViewsCountDesc:   true,
	commontype.OrderViewsCountAsc:    true,
}

func ValidOrder(order string) bool {
	return validOrders[order]
}

// 같은 shared count 안에서의 순서. 0이면 동률
func compareSecondary(a, b repository.CandidateRow, order string) int {
	switch order {
	case commontype.OrderLastActiveDesc:
		return -compareTime(a, b, func(r repository.CandidateRow) int64 { return r.Accessed.UnixNano() })
	case commontype.OrderLastActiveAsc:
		return compareTime(a, b, func(r repository.CandidateRow) int64 { return r.Accessed.UnixNano() })
	case commontype.OrderAccountAgeDesc:
		return compareTime(a, b, func(r repository.CandidateRow) int64 { return r.DateJoined.UnixNano() })
	case commontype.OrderAccountAgeAsc:
		return -compareTime(a, b, func(r repository.CandidateRow) int64 { return r.DateJoined.UnixNano() })
	case commontype.OrderViewsCountDesc:
		return b.ViewsCount - a.ViewsCount
	case commontype.OrderViewsCountAsc:
		return a.ViewsCount - b.ViewsCount
	}
	return 0
}

func compareTime(a, b repository.CandidateRow, key func(repository.CandidateRow) int64) int {
	ka, kb := key(a), key(b)
	switch {
	case ka < kb:
		return -1
	case ka > kb:
		return 1
	}
	return 0
}

// shared count 내림차순 -> 선택된 2차 정렬 -> user id 오름차순
func rankCandidates(rows []repository.CandidateRow, order string, origin geo.Point) []dto.Candidate {
	sorted := make([]repository.CandidateRow, len(rows))
	copy(sorted, rows)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.SharedCount != b.SharedCount {
			return a.SharedCount > b.SharedCount
		}
		if c := compareSecondary(a, b, order); c != 0 {
			return c < 0
		}
		return a.UserID < b.UserID
	})

	candidates := make([]dto.Candidate, len(sorted))
	for i, r := range sorted {
		candidates[i] = dto.Candidate{
			UserID:         r.UserID,
			Username:       r.Username,
			SharedCount:    r.SharedCount,
			DistanceMeters: geo.DistanceOrUnknown(origin, geo.Point{Lat: r.Lat, Lng: r.Lng}),
		}
	}
	return candidates
}
