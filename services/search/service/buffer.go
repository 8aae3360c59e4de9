package service

import (
	"context"
	"fmt"
	"time"

	"redddate/pkg/dto"

	"github.com/samber/lo"
)

// 세션별 버퍼 저장소 (redis 또는 메모리)
type BufferStore interface {
	// 버퍼가 없으면 nil, nil
	LoadBuffer(ctx context.Context, sessionID string) (*dto.ResultBuffer, error)
	SaveBuffer(ctx context.Context, sessionID string, buf *dto.ResultBuffer) error
	LoadOrder(ctx context.Context, sessionID string) (string, error)
	SaveOrder(ctx context.Context, sessionID, order string) error
}

type CandidateSearcher interface {
	Search(ctx context.Context, requesterID int, order string) ([]dto.Candidate, error)
}

// Buffer는 세션별 검색 결과를 TTL 동안 재사용한다
type Buffer struct {
	store    BufferStore
	searcher CandidateSearcher
	ttl      time.Duration
	now      func() time.Time
}

func NewBuffer(store BufferStore, searcher CandidateSearcher, ttl time.Duration) *Buffer {
	return &Buffer{
		store:    store,
		searcher: searcher,
		ttl:      ttl,
		now:      time.Now,
	}
}

// force이거나, 버퍼가 없거나, TTL이 지났으면 새로 계산한다
func (b *Buffer) GetOrRefresh(ctx context.Context, sessionID string, requesterID int, force bool) (*dto.ResultBuffer, error) {
	if !force {
		buf, err := b.store.LoadBuffer(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("load buffer: %w", err)
		}
		if buf != nil && b.now().Sub(buf.GeneratedAt) <= b.ttl {
			return buf, nil
		}
	}

	order, err := b.store.LoadOrder(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}

	candidates, err := b.searcher.Search(ctx, requesterID, order)
	if err != nil {
		return nil, err
	}

	buf := &dto.ResultBuffer{
		Candidates:  candidates,
		GeneratedAt: b.now(),
		Order:       order,
	}
	if err := b.store.SaveBuffer(ctx, sessionID, buf); err != nil {
		return nil, fmt.Errorf("save buffer: %w", err)
	}
	return buf, nil
}

// 처리한 후보 한 명을 다시 계산하지 않고 버퍼에서 뺀다
func (b *Buffer) Remove(ctx context.Context, sessionID, username string) (bool, error) {
	buf, err := b.store.LoadBuffer(ctx, sessionID)
	if err != nil {
		return false, fmt.Errorf("load buffer: %w", err)
	}
	if buf == nil {
		return false, nil
	}

	_, idx, found := lo.FindIndexOf(buf.Candidates, func(c dto.Candidate) bool {
		return c.Username == username
	})
	if !found {
		return false, nil
	}

	buf.Candidates = append(buf.Candidates[:idx:idx], buf.Candidates[idx+1:]...)
	if err := b.store.SaveBuffer(ctx, sessionID, buf); err != nil {
		return false, fmt.Errorf("save buffer: %w", err)
	}
	return true, nil
}

func (b *Buffer) SetOrder(ctx context.Context, sessionID, order string) error {
	return b.store.SaveOrder(ctx, sessionID, order)
}
