package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"redddate/pkg/geo"

	"gorm.io/gorm"
)

// Criteria는 후보 검색 조건이다. 0/nil 값인 조건은 적용하지 않는다.
type Criteria struct {
	RequesterID int

	// 0이면 성별 무관
	Sex int

	// BirthAfter < birth < BirthBefore (YYYYMMDD)
	BirthAfter  string
	BirthBefore string

	// nil이면 위치 필터 없음
	Box *geo.Box

	// 겹치는 서브레딧 계산에서 뺄 서브레딧
	IgnoreGroups []string
	// 이 서브레딧 중 하나라도 구독한 유저는 제외
	ExcludeGroups []string

	ExcludeUserIDs []int

	// link_karma <= MinLinkKarma AND comment_karma <= MinCommentKarma 이면 제외
	MinLinkKarma    int
	MinCommentKarma int

	RequirePics          bool
	RequireVerifiedEmail bool

	Limit int
}

// 후보 한 명과 정렬에 필요한 값들
type CandidateRow struct {
	UserID      int
	Username    string
	SharedCount int
	DateJoined  time.Time
	Accessed    time.Time
	ViewsCount  int
	Lat         float64
	Lng         float64
}

type CandidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

type sharedCount struct {
	UserID      int
	SharedCount int
}

// 겹치는 즐겨찾기 서브레딧 수 내림차순으로 후보를 찾는다
func (r *CandidateRepository) FindCandidates(ctx context.Context, c Criteria) ([]CandidateRow, error) {
	var counts []sharedCount
	err := r.rankQuery(ctx, c).Scan(&counts).Error
	if err != nil {
		log.Printf("❌ Failed to rank candidates for user %d: %v", c.RequesterID, err)
		return nil, fmt.Errorf("rank candidates: %w", err)
	}
	if len(counts) == 0 {
		return []CandidateRow{}, nil
	}

	ids := make([]int, len(counts))
	for i, sc := range counts {
		ids[i] = sc.UserID
	}

	var attrs []CandidateRow
	err = r.db.WithContext(ctx).
		Table("users AS u").
		Select("u.id AS user_id, u.username, u.date_joined, p.accessed, p.views_count, p.lat, p.lng").
		Joins("INNER JOIN profiles AS p ON u.id = p.user_id").
		Where("u.id IN ?", ids).
		Scan(&attrs).Error
	if err != nil {
		log.Printf("❌ Failed to load candidate attributes for user %d: %v", c.RequesterID, err)
		return nil, fmt.Errorf("load candidates: %w", err)
	}

	byID := make(map[int]CandidateRow, len(attrs))
	for _, a := range attrs {
		byID[a.UserID] = a
	}

	rows := make([]CandidateRow, 0, len(counts))
	for _, sc := range counts {
		row, ok := byID[sc.UserID]
		if !ok {
			continue
		}
		row.SharedCount = sc.SharedCount
		rows = append(rows, row)
	}
	return rows, nil
}

// 1단계 쿼리: (user_id, shared_count)
func (r *CandidateRepository) rankQuery(ctx context.Context, c Criteria) *gorm.DB {
	q := r.db.WithContext(ctx).
		Table("subscriptions AS r1").
		Select("r2.user_id AS user_id, COUNT(DISTINCT r1.group_id) AS shared_count").
		Joins("INNER JOIN subscriptions AS r2 ON r1.group_id = r2.group_id AND r1.user_id <> r2.user_id").
		Joins("INNER JOIN users AS u ON r2.user_id = u.id").
		Joins("INNER JOIN profiles AS p ON u.id = p.user_id").
		Where("r1.user_id = ?", c.RequesterID).
		Where("r1.is_favorite = ?", true).
		Where("u.id <> ?", c.RequesterID).
		Where("u.is_active = ?", true).
		Where("u.last_login IS NOT NULL").
		Where("NOT (p.link_karma <= ? AND p.comment_karma <= ?)", c.MinLinkKarma, c.MinCommentKarma)

	q = q.Scopes(
		sexScope(c.Sex),
		birthScope(c.BirthAfter, c.BirthBefore),
		boxScope(c.Box),
		excludeUsersScope(c.ExcludeUserIDs),
		ignoreGroupsScope(c.IgnoreGroups),
		excludeGroupsScope(c.ExcludeGroups),
	)

	if c.RequirePics {
		q = q.Where("p.pics NOT IN ?", []string{"", "[]"})
	}
	if c.RequireVerifiedEmail {
		q = q.Where("p.has_verified_email = ?", true)
	}

	q = q.Group("r2.user_id").Order("shared_count DESC").Order("r2.user_id ASC")
	if c.Limit > 0 {
		q = q.Limit(c.Limit)
	}
	return q
}

func sexScope(sex int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if sex == 0 {
			return db
		}
		return db.Where("p.sex = ?", sex)
	}
}

func birthScope(after, before string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if after != "" {
			db = db.Where("p.birth > ?", after)
		}
		if before != "" {
			db = db.Where("p.birth < ?", before)
		}
		return db
	}
}

func boxScope(box *geo.Box) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if box == nil {
			return db
		}
		return db.
			Where("p.lat >= ? AND p.lat <= ?", box.LatMin, box.LatMax).
			Where("p.lng >= ? AND p.lng <= ?", box.LngMin, box.LngMax)
	}
}

func excludeUsersScope(ids []int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(ids) == 0 {
			return db
		}
		return db.Where("u.id NOT IN ?", ids)
	}
}

func ignoreGroupsScope(names []string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(names) == 0 {
			return db
		}
		return db.Where("r1.group_id NOT IN (SELECT id FROM subreddits WHERE display_name IN ?)", names)
	}
}

func excludeGroupsScope(names []string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(names) == 0 {
			return db
		}
		return db.Where(`NOT EXISTS (
			SELECT 1 FROM subscriptions AS xs
			INNER JOIN subreddits AS xg ON xs.group_id = xg.id
			WHERE xs.user_id = u.id AND xg.display_name IN ?)`, names)
	}
}
