package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"redddate/pkg/models"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// 유저 조회 (ID). 없으면 nil
func (r *ProfileRepository) GetUserByID(ctx context.Context, id int) (*models.User, error) {
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

// 유저 조회 (username). 없으면 nil
func (r *ProfileRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("❌ Failed to get user by username %s: %v", username, err)
		return nil, err
	}
	return &user, nil
}

// 프로필 조회. 없으면 nil
func (r *ProfileRepository) GetProfile(ctx context.Context, userID int) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("❌ Failed to get profile for user ID %d: %v", userID, err)
		return nil, err
	}
	return &profile, nil
}

// 검색 필터 저장
func (r *ProfileRepository) UpdateFilter(ctx context.Context, userID int, f models.SearchFilter) error {
	err := r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"f_sex":                f.Sex,
			"f_distance":           f.Distance,
			"f_min_age":            f.MinAge,
			"f_max_age":            f.MaxAge,
			"f_hide_no_pic":        f.HideNoPic,
			"f_has_verified_email": f.HasVerifiedEmail,
			"f_ignore_groups":      f.IgnoreGroups,
			"f_exclude_groups":     f.ExcludeGroups,
		}).Error
	if err != nil {
		log.Printf("❌ Failed to update search filter for user ID %d: %v", userID, err)
		return fmt.Errorf("update filter: %w", err)
	}
	return nil
}

// 조회수 증가
func (r *ProfileRepository) IncrementViews(ctx context.Context, userID int) error {
	err := r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"views_count":     gorm.Expr("views_count + ?", 1),
			"new_views_count": gorm.Expr("new_views_count + ?", 1),
		}).Error
	if err != nil {
		log.Printf("❌ Failed to increment views for user ID %d: %v", userID, err)
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

// ID -> username
func (r *ProfileRepository) UsernamesByIDs(ctx context.Context, ids []int) (map[int]string, error) {
	result := make(map[int]string, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var users []models.User
	if err := r.db.WithContext(ctx).Select("id", "username").Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("usernames by ids: %w", err)
	}
	for _, u := range users {
		result[u.ID] = u.Username
	}
	return result, nil
}

// 입력된 서브레딧 이름을 저장된 대소문자로 바꾼다. 모르는 이름은 그대로 둔다.
func (r *ProfileRepository) NormalizeGroupNames(ctx context.Context, names []string) ([]string, error) {
	if len(names) == 0 {
		return []string{}, nil
	}

	lowered := lo.Map(names, func(n string, _ int) string { return strings.ToLower(n) })

	var stored []string
	err := r.db.WithContext(ctx).Model(&models.Group{}).
		Where("LOWER(display_name) IN ?", lowered).
		Pluck("display_name", &stored).Error
	if err != nil {
		return nil, fmt.Errorf("normalize group names: %w", err)
	}

	byLower := lo.KeyBy(stored, func(n string) string { return strings.ToLower(n) })
	normalized := lo.Map(names, func(n string, _ int) string {
		if s, ok := byLower[strings.ToLower(n)]; ok {
			return s
		}
		return n
	})
	return lo.Uniq(normalized), nil
}

// 즐겨찾기 서브레딧 지정. 내 구독과 하나도 안 맞으면 아무것도 바꾸지 않고 false
func (r *ProfileRepository) SetFavorites(ctx context.Context, userID int, displayNames []string) (bool, error) {
	if len(displayNames) == 0 {
		return false, nil
	}

	var groupIDs []int
	err := r.db.WithContext(ctx).
		Table("subscriptions AS s").
		Joins("INNER JOIN subreddits AS g ON s.group_id = g.id").
		Where("s.user_id = ? AND g.display_name IN ?", userID, displayNames).
		Pluck("s.group_id", &groupIDs).Error
	if err != nil {
		return false, fmt.Errorf("find favorites: %w", err)
	}
	if len(groupIDs) == 0 {
		return false, nil
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Subscription{}).
			Where("user_id = ?", userID).
			Update("is_favorite", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Subscription{}).
			Where("user_id = ? AND group_id IN ?", userID, groupIDs).
			Update("is_favorite", true).Error
	})
	if err != nil {
		log.Printf("❌ Failed to set favorites for user ID %d: %v", userID, err)
		return false, fmt.Errorf("set favorites: %w", err)
	}
	return true, nil
}
