package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"redddate/pkg/dto"
)

func bufferKey(sessionID string) string {
	return fmt.Sprintf("search_buffer:%s", sessionID)
}

func orderKey(sessionID string) string {
	return fmt.Sprintf("search_order:%s", sessionID)
}

// 세션별 검색 결과 버퍼 저장소
type BufferStore struct {
	client *RedisClient
	// 키 만료 시간. 버퍼 신선도(TTL)와는 별개로 세션이 끝난 키를 정리하기 위함
	expiration time.Duration
}

func NewBufferStore(client *RedisClient, expiration time.Duration) *BufferStore {
	return &BufferStore{client: client, expiration: expiration}
}

// 버퍼가 없으면 nil, nil
func (s *BufferStore) LoadBuffer(ctx context.Context, sessionID string) (*dto.ResultBuffer, error) {
	raw, err := s.client.Get(ctx, bufferKey(sessionID))
	if errors.Is(err, ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var buf dto.ResultBuffer
	if err := json.Unmarshal([]byte(raw), &buf); err != nil {
		return nil, fmt.Errorf("decode buffer for session %s: %w", sessionID, err)
	}
	if buf.Candidates == nil {
		buf.Candidates = []dto.Candidate{}
	}
	return &buf, nil
}

func (s *BufferStore) SaveBuffer(ctx context.Context, sessionID string, buf *dto.ResultBuffer) error {
	data, err := json.Marshal(buf)
	if err != nil {
		return fmt.Errorf("encode buffer for session %s: %w", sessionID, err)
	}
	return s.client.Set(ctx, bufferKey(sessionID), data, s.expiration)
}

// 선택된 정렬 키. 없으면 빈 문자열
func (s *BufferStore) LoadOrder(ctx context.Context, sessionID string) (string, error) {
	order, err := s.client.Get(ctx, orderKey(sessionID))
	if errors.Is(err, ErrKeyNotFound) {
		return "", nil
	}
	return order, err
}

func (s *BufferStore) SaveOrder(ctx context.Context, sessionID, order string) error {
	return s.client.Set(ctx, orderKey(sessionID), order, s.expiration)
}
