package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"redddate/pkg/dto"
	"redddate/pkg/logger"
	"redddate/pkg/models"
	"redddate/pkg/relation"
	"redddate/pkg/types/commontype"
	eventtypes "redddate/pkg/types/eventtype"
	"redddate/services/user/repository"

	"github.com/samber/lo"
)

var ErrUserNotFound = errors.New("user not found")

// 세션 삭제 (redis). 탈퇴 시 로그아웃에 쓴다
type SessionStore interface {
	DeleteSession(ctx context.Context, sessionID string) error
}

type UserService struct {
	repo         *repository.UserRepository
	relations    *relation.Store
	sessions     SessionStore
	activeWindow time.Duration
	now          func() time.Time
}

func NewUserService(
	repo *repository.UserRepository,
	relations *relation.Store,
	sessions SessionStore,
	activeWindow time.Duration,
) *UserService {
	return &UserService{
		repo:         repo,
		relations:    relations,
		sessions:     sessions,
		activeWindow: activeWindow,
		now:          time.Now,
	}
}

func (s *UserService) requireUser(ctx context.Context, userID int) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %d: %w", userID, ErrUserNotFound)
	}
	return nil
}

// 외부 구독 목록 동기화
func (s *UserService) SyncSubscriptions(ctx context.Context, userID int, subs []dto.SubscriptionDTO) (*dto.SyncResult, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	// 공백을 먼저 정리해야 같은 서브레딧이 두 번 들어가지 않는다
	subs = lo.Map(subs, func(sub dto.SubscriptionDTO, _ int) dto.SubscriptionDTO {
		sub.DisplayName = strings.TrimSpace(sub.DisplayName)
		return sub
	})
	subs = lo.Filter(subs, func(sub dto.SubscriptionDTO, _ int) bool { return sub.DisplayName != "" })
	subs = lo.UniqBy(subs, func(sub dto.SubscriptionDTO) string { return sub.DisplayName })

	upstream := lo.Map(subs, func(sub dto.SubscriptionDTO, _ int) models.Subscription {
		return models.Subscription{
			IsContributor: sub.IsContributor,
			IsModerator:   sub.IsModerator,
			IsSubscriber:  sub.IsSubscriber,
			IsBanned:      sub.IsBanned,
			IsMuted:       sub.IsMuted,
			Group: models.Group{
				Name:        sub.Name,
				DisplayName: sub.DisplayName,
				Subscribers: sub.Subscribers,
				Over18:      sub.Over18,
			},
		}
	})

	counts, err := s.repo.SyncSubscriptions(ctx, userID, upstream)
	if err != nil {
		return nil, err
	}

	result := &dto.SyncResult{Created: counts.Created, Updated: counts.Updated, Deleted: counts.Deleted}
	logger.Info(logger.LogEventSubscriptionSync, fmt.Sprintf("Subscriptions synced: user %d", userID), result)
	return result, nil
}

func (s *UserService) ListSubscriptions(ctx context.Context, userID int) ([]dto.SubscriptionView, error) {
	subs, err := s.repo.ListSubscriptions(ctx, userID)
	if err != nil {
		return nil, err
	}

	return lo.Map(subs, func(sub models.Subscription, _ int) dto.SubscriptionView {
		return dto.SubscriptionView{
			GroupID:         sub.GroupID,
			DisplayName:     sub.Group.DisplayName,
			Subscribers:     sub.Group.Subscribers,
			SubscribersHere: sub.Group.SubscribersHere,
			IsFavorite:      sub.IsFavorite,
			IsModerator:     sub.IsModerator,
		}
	}), nil
}

// 탈퇴: 플래그와 구독을 지우고 프로필을 초기화한다. 유저 행은 남긴다
func (s *UserService) ResetAccount(ctx context.Context, userID int, sessionID string) error {
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}

	matches, err := s.relations.ListMatches(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.relations.DeleteAllFor(ctx, userID); err != nil {
		return err
	}
	if err := s.repo.ResetAccount(ctx, userID); err != nil {
		return err
	}

	// 매치 상대의 matches_count도 다시 센다
	for _, m := range matches {
		if err := s.recountMatches(ctx, m.ReceiverID); err != nil {
			return err
		}
	}

	if s.sessions != nil && sessionID != "" {
		if err := s.sessions.DeleteSession(ctx, sessionID); err != nil {
			log.Printf("❌ Failed to delete session of user %d: %v", userID, err)
		}
	}

	logger.Info(logger.LogEventAccountReset, fmt.Sprintf("Account reset: user %d", userID), nil)
	return nil
}

func (s *UserService) Stats(ctx context.Context) (*dto.StatsDTO, error) {
	var (
		stats dto.StatsDTO
		err   error
	)

	if stats.Users, err = s.repo.CountUsers(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveUsers, err = s.repo.CountActiveUsers(ctx, s.now().Add(-s.activeWindow)); err != nil {
		return nil, err
	}
	if stats.Likes, err = s.relations.CountByKind(ctx, commontype.FlagLike); err != nil {
		return nil, err
	}
	if stats.Nopes, err = s.relations.CountByKind(ctx, commontype.FlagNope); err != nil {
		return nil, err
	}
	if stats.Matches, err = s.relations.CountAllMatches(ctx); err != nil {
		return nil, err
	}
	return &stats, nil
}

// flag.set: 받은 좋아요/매치 알림 카운터 증가 후 매치 수 재계산
func (s *UserService) ApplyFlagSet(ctx context.Context, ev eventtypes.FlagEvent) error {
	if ev.Kind == commontype.FlagLike {
		if err := s.repo.IncrementNewLikes(ctx, ev.ReceiverID); err != nil {
			return err
		}
		if ev.IsMatch {
			if err := s.repo.IncrementNewMatches(ctx, ev.SenderID, ev.ReceiverID); err != nil {
				return err
			}
			logger.Info(logger.LogEventMatchCreate, fmt.Sprintf("Match: %d <-> %d", ev.SenderID, ev.ReceiverID), ev)
		}
	}
	return s.recountMatches(ctx, ev.SenderID, ev.ReceiverID)
}

// flag.delete: 매치가 풀렸을 수 있으니 다시 센다
func (s *UserService) ApplyFlagDelete(ctx context.Context, ev eventtypes.FlagEvent) error {
	return s.recountMatches(ctx, ev.SenderID, ev.ReceiverID)
}

func (s *UserService) recountMatches(ctx context.Context, userIDs ...int) error {
	for _, id := range userIDs {
		n, err := s.relations.CountMatches(ctx, id)
		if err != nil {
			return err
		}
		if err := s.repo.SetMatchesCount(ctx, id, n); err != nil {
			return err
		}
	}
	return nil
}
