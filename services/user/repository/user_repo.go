package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"redddate/pkg/models"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// 유저 조회 (ID). 없으면 nil
func (r *UserRepository) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("❌ Failed to get user by ID %d: %v", id, err)
		return nil, err
	}
	return &user, nil
}

// 구독 목록 (서브레딧 이름순)
func (r *UserRepository) ListSubscriptions(ctx context.Context, userID int) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.WithContext(ctx).Preload("Group").Where("user_id = ?", userID).Find(&subs).Error
	if err != nil {
		log.Printf("❌ Failed to list subscriptions of user ID %d: %v", userID, err)
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	sort.Slice(subs, func(i, j int) bool {
		return strings.ToLower(subs[i].Group.DisplayName) < strings.ToLower(subs[j].Group.DisplayName)
	})
	return subs, nil
}

type SyncCounts struct {
	Created int
	Updated int
	Deleted int
}

// 외부에서 받은 구독 목록으로 교체한다.
// 새 구독은 즐겨찾기로 추가하고, 목록에 없는 구독은 지운다. subscribers_here도 함께 맞춘다.
func (r *UserRepository) SyncSubscriptions(ctx context.Context, userID int, upstream []models.Subscription) (SyncCounts, error) {
	var counts SyncCounts

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []models.Subscription
		if err := tx.Preload("Group").Where("user_id = ?", userID).Find(&existing).Error; err != nil {
			return err
		}
		byName := lo.KeyBy(existing, func(s models.Subscription) string { return s.Group.DisplayName })
		kept := make(map[int]bool, len(upstream))

		for _, up := range upstream {
			group, err := upsertGroup(tx, up.Group)
			if err != nil {
				return err
			}

			if cur, ok := byName[group.DisplayName]; ok {
				kept[cur.ID] = true
				if err := tx.Model(&models.Subscription{}).Where("id = ?", cur.ID).Updates(map[string]interface{}{
					"is_contributor": up.IsContributor,
					"is_moderator":   up.IsModerator,
					"is_subscriber":  up.IsSubscriber,
					"is_banned":      up.IsBanned,
					"is_muted":       up.IsMuted,
				}).Error; err != nil {
					return err
				}
				counts.Updated++
				continue
			}

			sub := models.Subscription{
				UserID:        userID,
				GroupID:       group.ID,
				IsContributor: up.IsContributor,
				IsModerator:   up.IsModerator,
				IsSubscriber:  up.IsSubscriber,
				IsBanned:      up.IsBanned,
				IsMuted:       up.IsMuted,
				IsFavorite:    true,
			}
			if err := tx.Omit("Group").Create(&sub).Error; err != nil {
				return err
			}
			if err := addSubscribersHere(tx, []int{group.ID}, 1); err != nil {
				return err
			}
			counts.Created++
		}

		stale := lo.Filter(existing, func(s models.Subscription, _ int) bool { return !kept[s.ID] })
		if len(stale) == 0 {
			return nil
		}
		if err := tx.Delete(&models.Subscription{}, lo.Map(stale, func(s models.Subscription, _ int) int { return s.ID })).Error; err != nil {
			return err
		}
		counts.Deleted = len(stale)
		return addSubscribersHere(tx, lo.Map(stale, func(s models.Subscription, _ int) int { return s.GroupID }), -1)
	})
	if err != nil {
		log.Printf("❌ Failed to sync subscriptions of user ID %d: %v", userID, err)
		return SyncCounts{}, fmt.Errorf("sync subscriptions: %w", err)
	}
	return counts, nil
}

// display_name 기준으로 서브레딧을 만들거나 최신 정보로 갱신한다
func upsertGroup(tx *gorm.DB, in models.Group) (models.Group, error) {
	var group models.Group
	err := tx.Where("display_name = ?", in.DisplayName).Take(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		group = models.Group{
			Name:        in.Name,
			DisplayName: in.DisplayName,
			Subscribers: in.Subscribers,
			Over18:      in.Over18,
		}
		return group, tx.Create(&group).Error
	}
	if err != nil {
		return group, err
	}

	err = tx.Model(&group).Updates(map[string]interface{}{
		"name":        in.Name,
		"subscribers": in.Subscribers,
		"over18":      in.Over18,
	}).Error
	return group, err
}

func addSubscribersHere(tx *gorm.DB, groupIDs []int, delta int) error {
	if len(groupIDs) == 0 {
		return nil
	}
	return tx.Model(&models.Group{}).
		Where("id IN ?", groupIDs).
		UpdateColumn("subscribers_here", gorm.Expr("subscribers_here + ?", delta)).Error
}

// 탈퇴: 구독 삭제, 프로필 초기화, 로그아웃 상태로 표시
func (r *UserRepository) ResetAccount(ctx context.Context, userID int) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var groupIDs []int
		if err := tx.Model(&models.Subscription{}).Where("user_id = ?", userID).Pluck("group_id", &groupIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Subscription{}).Error; err != nil {
			return err
		}
		if err := addSubscribersHere(tx, groupIDs, -1); err != nil {
			return err
		}

		var profile models.Profile
		err := tx.Where("user_id = ?", userID).Take(&profile).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		reset := models.DefaultProfile(userID)
		reset.Created = profile.Created
		reset.Accessed = profile.Accessed
		if err == nil {
			if err := tx.Model(&models.Profile{UserID: userID}).Select("*").Updates(reset).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.User{}).Where("id = ?", userID).Update("last_login", nil).Error
	})
	if err != nil {
		log.Printf("❌ Failed to reset account of user ID %d: %v", userID, err)
		return fmt.Errorf("reset account: %w", err)
	}
	return nil
}

func (r *UserRepository) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// since 이후 접속한 활성 유저 수
func (r *UserRepository) CountActiveUsers(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("users AS u").
		Joins("INNER JOIN profiles AS p ON u.id = p.user_id").
		Where("u.is_active = ? AND u.last_login IS NOT NULL", true).
		Where("p.accessed >= ?", since).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count active users: %w", err)
	}
	return n, nil
}

// 새 좋아요 알림 카운터 증가
func (r *UserRepository) IncrementNewLikes(ctx context.Context, userID int) error {
	return r.incrementCounter(ctx, "new_likes_count", userID)
}

// 새 매치 알림 카운터 증가
func (r *UserRepository) IncrementNewMatches(ctx context.Context, userIDs ...int) error {
	return r.incrementCounter(ctx, "new_matches_count", userIDs...)
}

func (r *UserRepository) incrementCounter(ctx context.Context, column string, userIDs ...int) error {
	err := r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("user_id IN ?", userIDs).
		UpdateColumn(column, gorm.Expr(column+" + 1")).Error
	if err != nil {
		log.Printf("❌ Failed to increment %s for users %v: %v", column, userIDs, err)
		return fmt.Errorf("increment %s: %w", column, err)
	}
	return nil
}

func (r *UserRepository) SetMatchesCount(ctx context.Context, userID int, n int64) error {
	err := r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("user_id = ?", userID).
		UpdateColumn("matches_count", n).Error
	if err != nil {
		log.Printf("❌ Failed to set matches_count for user ID %d: %v", userID, err)
		return fmt.Errorf("set matches count: %w", err)
	}
	return nil
}
