package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"redddate/pkg/config"
	"redddate/pkg/dto"
	"redddate/pkg/geo"
	"redddate/pkg/relation"
	"redddate/services/search/repository"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrReportReasonRequired = errors.New("report reason is required")
	ErrInvalidAction        = errors.New("invalid flag action")
	ErrInvalidOrder         = errors.New("invalid order")
)

// SearchService는 요청자 한 명의 후보 목록을 계산한다
type SearchService struct {
	candidateRepo *repository.CandidateRepository
	profileRepo   *repository.ProfileRepository
	relations     *relation.Store
	cfg           config.SearchConfig
	now           func() time.Time
}

func NewSearchService(
	candidateRepo *repository.CandidateRepository,
	profileRepo *repository.ProfileRepository,
	relations *relation.Store,
	cfg config.SearchConfig,
) *SearchService {
	return &SearchService{
		candidateRepo: candidateRepo,
		profileRepo:   profileRepo,
		relations:     relations,
		cfg:           cfg,
		now:           time.Now,
	}
}

func (s *SearchService) Search(ctx context.Context, requesterID int, order string) ([]dto.Candidate, error) {
	profile, err := s.profileRepo.GetProfile(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("requester %d: %w", requesterID, ErrUserNotFound)
	}

	var excluded []int
	if s.cfg.ExcludeAllFlagged {
		excluded, err = s.relations.FlaggedBy(ctx, requesterID)
	} else {
		excluded, err = s.relations.BlockedBy(ctx, requesterID)
	}
	if err != nil {
		return nil, err
	}

	criteria := BuildCriteria(*profile, excluded, s.now(), s.cfg)
	rows, err := s.candidateRepo.FindCandidates(ctx, criteria)
	if err != nil {
		return nil, err
	}

	candidates := rankCandidates(rows, order, geo.Point{Lat: profile.Lat, Lng: profile.Lng})
	log.Printf("🔎 Search for user %d: %d candidates (order=%q)", requesterID, len(candidates), order)
	return candidates, nil
}
