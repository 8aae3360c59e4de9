package service

import (
	"context"
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
	"redddate/services/search/repository"

	"github.com/samber/lo"
)

const (
	FlagActionSet    = "set"
	FlagActionDelete = "delete"
)

// 플래그 목록 종류
const (
	ListingMatches       = "matches"
	ListingLikesSent     = "likes_sent"
	ListingLikesReceived = "likes_received"
	ListingNopesSent     = "nopes_sent"
)

// 플래그 변경 이벤트 발행 (user-service가 카운터를 갱신한다)
type FlagEventPublisher interface {
	PublishFlagSetEvent(data eventtypes.FlagEvent) error
	PublishFlagDeleteEvent(data eventtypes.FlagEvent) error
}

type FlagService struct {
	buffer      *Buffer
	profileRepo *repository.ProfileRepository
	relations   *relation.Store
	emitter     FlagEventPublisher
	now         func() time.Time
}

func NewFlagService(
	buffer *Buffer,
	profileRepo *repository.ProfileRepository,
	relations *relation.Store,
	emitter FlagEventPublisher,
) *FlagService {
	return &FlagService{
		buffer:      buffer,
		profileRepo: profileRepo,
		relations:   relations,
		emitter:     emitter,
		now:         time.Now,
	}
}

// 플래그 설정 후 해당 후보를 버퍼에서 빼고 다음 후보를 알려준다. 삭제는 버퍼를 그대로 둔다
func (s *FlagService) Apply(
	ctx context.Context,
	sessionID string,
	senderID int,
	action, kindName, username string,
	report *dto.ReportRequest,
) (*dto.FlagResult, error) {
	kind, ok := relation.KindFromName(kindName)
	if !ok {
		return nil, fmt.Errorf("%q: %w", kindName, relation.ErrInvalidKind)
	}
	if action != FlagActionSet && action != FlagActionDelete {
		return nil, fmt.Errorf("%q: %w", action, ErrInvalidAction)
	}

	receiver, err := s.profileRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return nil, fmt.Errorf("%s: %w", username, ErrUserNotFound)
	}

	result := &dto.FlagResult{Action: action, Kind: kindName, Username: username}
	event := eventtypes.FlagEvent{
		SenderID:   senderID,
		ReceiverID: receiver.ID,
		Kind:       kind,
		CreatedAt:  s.now(),
	}

	switch action {
	case FlagActionSet:
		if kind == commontype.FlagReport && (report == nil || report.Reason == 0) {
			return nil, ErrReportReasonRequired
		}
		if kind == commontype.FlagReport {
			if _, err := s.relations.SetReportFlag(ctx, &models.Report{
				SenderID:   senderID,
				ReceiverID: receiver.ID,
				Reason:     report.Reason,
				Details:    strings.TrimSpace(report.Details),
			}); err != nil {
				return nil, err
			}
			logger.Info(logger.LogEventReport, fmt.Sprintf("Report: %d -> %d", senderID, receiver.ID), report)
		} else if _, err := s.relations.SetFlag(ctx, senderID, receiver.ID, kind); err != nil {
			return nil, err
		}
		if kind == commontype.FlagLike {
			if result.IsMatch, err = s.relations.IsMatch(ctx, senderID, receiver.ID); err != nil {
				return nil, err
			}
			event.IsMatch = result.IsMatch
		}
		s.publish(eventtypes.EventTypeFlagSet, event)
		logger.Info(logger.LogEventFlagSet, fmt.Sprintf("Flag set: %d -> %d (%s)", senderID, receiver.ID, kindName), event)

	case FlagActionDelete:
		if err := s.relations.DeleteFlag(ctx, senderID, receiver.ID); err != nil {
			return nil, err
		}
		s.publish(eventtypes.EventTypeFlagDelete, event)
		logger.Info(logger.LogEventFlagDelete, fmt.Sprintf("Flag deleted: %d -> %d", senderID, receiver.ID), event)

		// 플래그를 바꾸려는 경우가 대부분이라 같은 후보를 다시 보여준다
		result.Next = username
		return result, nil
	}

	next, err := s.nextAfterRemoval(ctx, sessionID, username)
	if err != nil {
		return nil, err
	}
	result.Next = next
	return result, nil
}

// 버퍼에서 다음 후보를 구한 뒤 처리한 후보를 뺀다
func (s *FlagService) nextAfterRemoval(ctx context.Context, sessionID, username string) (string, error) {
	buf, err := s.buffer.store.LoadBuffer(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("load buffer: %w", err)
	}

	next := ""
	if _, n, ok := PrevNext(buf.Usernames(), username); ok && n != username {
		next = n
	}

	if _, err := s.buffer.Remove(ctx, sessionID, username); err != nil {
		return "", err
	}
	return next, nil
}

// 이벤트 발행 실패는 플래그 변경을 되돌리지 않는다
func (s *FlagService) publish(eventType string, ev eventtypes.FlagEvent) {
	if s.emitter == nil {
		return
	}

	var err error
	if eventType == eventtypes.EventTypeFlagSet {
		err = s.emitter.PublishFlagSetEvent(ev)
	} else {
		err = s.emitter.PublishFlagDeleteEvent(ev)
	}
	if err != nil {
		log.Printf("❌ Failed to publish %s event %d -> %d: %v", eventType, ev.SenderID, ev.ReceiverID, err)
	}
}

// 보낸 플래그 일괄 삭제. 제외됐던 유저가 다시 보이도록 버퍼도 새로 만든다
func (s *FlagService) DeleteSent(ctx context.Context, sessionID string, userID int, kindNames []string) (int64, error) {
	kinds := make([]int, 0, len(kindNames))
	for _, name := range kindNames {
		kind, ok := relation.KindFromName(strings.TrimSpace(name))
		if !ok {
			return 0, fmt.Errorf("%q: %w", name, relation.ErrInvalidKind)
		}
		kinds = append(kinds, kind)
	}

	n, err := s.relations.DeleteAllSent(ctx, userID, kinds...)
	if err != nil {
		return 0, err
	}

	if n > 0 {
		if _, err := s.buffer.GetOrRefresh(ctx, sessionID, userID, true); err != nil {
			return n, err
		}
	}
	logger.Info(logger.LogEventFlagDelete, fmt.Sprintf("Deleted %d flags of user %d", n, userID), kindNames)
	return n, nil
}

// 매치/좋아요/싫어요 목록
func (s *FlagService) List(ctx context.Context, userID int, listing string) ([]dto.FlagItem, error) {
	var (
		flags        []models.Flag
		err          error
		useSender    bool
		kindOverride string
	)

	switch listing {
	case ListingMatches:
		flags, err = s.relations.ListMatches(ctx, userID)
		kindOverride = "match"
	case ListingLikesSent:
		flags, err = s.relations.ListSent(ctx, userID, commontype.FlagLike)
	case ListingLikesReceived:
		flags, err = s.relations.ListReceived(ctx, userID, commontype.FlagLike)
		useSender = true
	case ListingNopesSent:
		flags, err = s.relations.ListSent(ctx, userID, commontype.FlagNope)
	default:
		return nil, fmt.Errorf("listing %q: %w", listing, relation.ErrInvalidKind)
	}
	if err != nil {
		return nil, err
	}

	counterpart := func(f models.Flag) int {
		if useSender {
			return f.SenderID
		}
		return f.ReceiverID
	}

	names, err := s.profileRepo.UsernamesByIDs(ctx, lo.Map(flags, func(f models.Flag, _ int) int { return counterpart(f) }))
	if err != nil {
		return nil, err
	}

	items := make([]dto.FlagItem, 0, len(flags))
	for _, f := range flags {
		id := counterpart(f)
		kind := commontype.FlagNames[f.Kind]
		if kindOverride != "" {
			kind = kindOverride
		}
		items = append(items, dto.FlagItem{
			UserID:    id,
			Username:  names[id],
			Kind:      kind,
			CreatedAt: f.CreatedAt,
		})
	}
	return items, nil
}
