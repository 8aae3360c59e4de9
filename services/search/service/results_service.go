package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"redddate/pkg/config"
	"redddate/pkg/dto"
	"redddate/pkg/geo"
	"redddate/pkg/helper"
	"redddate/pkg/logger"
	"redddate/pkg/models"
	"redddate/pkg/relation"
	"redddate/pkg/types/commontype"
	"redddate/services/search/repository"
)

// ResultsService는 버퍼를 통해 결과 페이지, 설정 변경, 프로필 상세를 제공한다
type ResultsService struct {
	buffer      *Buffer
	profileRepo *repository.ProfileRepository
	relations   *relation.Store
	cfg         config.SearchConfig
	now         func() time.Time
}

func NewResultsService(
	buffer *Buffer,
	profileRepo *repository.ProfileRepository,
	relations *relation.Store,
	cfg config.SearchConfig,
) *ResultsService {
	return &ResultsService{
		buffer:      buffer,
		profileRepo: profileRepo,
		relations:   relations,
		cfg:         cfg,
		now:         time.Now,
	}
}

func (s *ResultsService) toPage(buf *dto.ResultBuffer, page int) *dto.ResultsPage {
	items, current, totalPages := Paginate(buf.Candidates, page, s.cfg.PageSize)
	return &dto.ResultsPage{
		Page:        current,
		PerPage:     s.cfg.PageSize,
		TotalPages:  totalPages,
		Total:       buf.Len(),
		Candidates:  items,
		GeneratedAt: buf.GeneratedAt,
		Order:       buf.Order,
	}
}

// 결과 페이지. 버퍼가 오래됐으면 새로 계산한다
func (s *ResultsService) Page(ctx context.Context, sessionID string, userID, page int) (*dto.ResultsPage, error) {
	buf, err := s.buffer.GetOrRefresh(ctx, sessionID, userID, false)
	if err != nil {
		return nil, err
	}
	return s.toPage(buf, page), nil
}

// 검색 설정 변경 후 강제로 다시 계산하고 첫 페이지를 돌려준다
func (s *ResultsService) UpdateSettings(ctx context.Context, sessionID string, userID int, in dto.SearchSettings) (*dto.ResultsPage, error) {
	profile, err := s.profileRepo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("user %d: %w", userID, ErrUserNotFound)
	}

	var order string
	if in.Order != nil {
		order = strings.TrimSpace(*in.Order)
		if !ValidOrder(order) {
			return nil, fmt.Errorf("%q: %w", order, ErrInvalidOrder)
		}
	}

	f, err := s.applySettings(ctx, profile.Filter, in)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.UpdateFilter(ctx, userID, f); err != nil {
		return nil, err
	}

	if len(in.Favorites) > 0 {
		changed, err := s.profileRepo.SetFavorites(ctx, userID, in.Favorites)
		if err != nil {
			return nil, err
		}
		if !changed {
			logger.Warn(logger.LogEventSettingsUpdate, "no subreddits selected for search", map[string]interface{}{
				"user_id":   userID,
				"favorites": in.Favorites,
			})
		}
	}

	// 필터 저장이 끝난 뒤에만 세션 정렬을 바꾼다
	if in.Order != nil {
		if err := s.buffer.SetOrder(ctx, sessionID, order); err != nil {
			return nil, err
		}
	}

	logger.Info(logger.LogEventSettingsUpdate, fmt.Sprintf("Search settings updated: user %d", userID), f)

	buf, err := s.buffer.GetOrRefresh(ctx, sessionID, userID, true)
	if err != nil {
		return nil, err
	}
	return s.toPage(buf, 1), nil
}

func (s *ResultsService) applySettings(ctx context.Context, f models.SearchFilter, in dto.SearchSettings) (models.SearchFilter, error) {
	if in.Sex != nil {
		f.Sex = helper.ClampInt(*in.Sex, commontype.SexMin, commontype.SexMax)
	}
	if in.Distance != nil {
		f.Distance = helper.ClampInt(*in.Distance, 0, commontype.MaxDistanceKm)
	}
	if in.MinAge != nil {
		f.MinAge = helper.ClampInt(*in.MinAge, commontype.MinAgeFloor, commontype.MinAgeCeil)
	}
	if in.MaxAge != nil {
		f.MaxAge = helper.ClampInt(*in.MaxAge, commontype.MaxAgeFloor, commontype.MaxAgeCeil)
	}
	if f.MinAge > f.MaxAge && f.MaxAge != 0 {
		f.MinAge, f.MaxAge = f.MaxAge, f.MinAge
	}
	if in.HideNoPic != nil {
		f.HideNoPic = *in.HideNoPic
	}
	if in.HasVerifiedEmail != nil {
		f.HasVerifiedEmail = *in.HasVerifiedEmail
	}

	if in.IgnoreGroups != nil {
		names, err := s.profileRepo.NormalizeGroupNames(ctx, helper.SrStrToList(*in.IgnoreGroups))
		if err != nil {
			return f, err
		}
		f.IgnoreGroups = strings.Join(names, " ")
	}
	if in.ExcludeGroups != nil {
		names, err := s.profileRepo.NormalizeGroupNames(ctx, helper.SrStrToList(*in.ExcludeGroups))
		if err != nil {
			return f, err
		}
		f.ExcludeGroups = strings.Join(names, " ")
	}
	return f, nil
}

// 프로필 상세
func (s *ResultsService) ViewProfile(ctx context.Context, sessionID string, viewerID int, username string) (*dto.ProfileView, error) {
	user, err := s.profileRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	// 비활성/탈퇴 계정은 없는 것으로 취급
	if user == nil || !user.IsActive || user.LastLogin == nil {
		return nil, fmt.Errorf("%s: %w", username, ErrUserNotFound)
	}

	profile, err := s.profileRepo.GetProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("%s profile: %w", username, ErrUserNotFound)
	}

	viewer, err := s.profileRepo.GetProfile(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	origin := geo.Point{}
	if viewer != nil {
		origin = geo.Point{Lat: viewer.Lat, Lng: viewer.Lng}
	}

	buf, err := s.buffer.GetOrRefresh(ctx, sessionID, viewerID, false)
	if err != nil {
		return nil, err
	}
	names := buf.Usernames()
	prev, next, _ := PrevNext(names, username)

	view := &dto.ProfileView{
		UserID:         user.ID,
		Username:       user.Username,
		Age:            helper.AgeFromBirth(profile.Birth, s.now()),
		Sex:            profile.Sex,
		Pics:           profile.PicList(),
		Accessed:       profile.Accessed,
		DateJoined:     user.DateJoined,
		ViewsCount:     profile.ViewsCount,
		DistanceMeters: geo.DistanceOrUnknown(origin, geo.Point{Lat: profile.Lat, Lng: profile.Lng}),
		Prev:           prev,
		Next:           next,
		After:          After(names, username, s.cfg.AroundCount),
	}

	if viewerID != user.ID {
		if err := s.profileRepo.IncrementViews(ctx, user.ID); err != nil {
			return nil, err
		}
		view.ViewsCount++

		if view.IsMatch, err = s.relations.IsMatch(ctx, viewerID, user.ID); err != nil {
			return nil, err
		}
		if view.IsLike, err = s.relations.DoesLike(ctx, viewerID, user.ID); err != nil {
			return nil, err
		}
		if view.IsNope, err = s.relations.DoesNope(ctx, viewerID, user.ID); err != nil {
			return nil, err
		}
	}

	return view, nil
}
