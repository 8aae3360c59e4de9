package service

import (
	"context"
	"sync"

	"redddate/pkg/dto"
)

// 단일 프로세스용 BufferStore
type MemoryBufferStore struct {
	mu      sync.Mutex
	buffers map[string]dto.ResultBuffer
	orders  map[string]string
}

func NewMemoryBufferStore() *MemoryBufferStore {
	return &MemoryBufferStore{
		buffers: make(map[string]dto.ResultBuffer),
		orders:  make(map[string]string),
	}
}

func (s *MemoryBufferStore) LoadBuffer(_ context.Context, sessionID string) (*dto.ResultBuffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf, ok := s.buffers[sessionID]
	if !ok {
		return nil, nil
	}
	buf.Candidates = append([]dto.Candidate{}, buf.Candidates...)
	return &buf, nil
}

func (s *MemoryBufferStore) SaveBuffer(_ context.Context, sessionID string, buf *dto.ResultBuffer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *buf
	stored.Candidates = append([]dto.Candidate{}, buf.Candidates...)
	s.buffers[sessionID] = stored
	return nil
}

func (s *MemoryBufferStore) LoadOrder(_ context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[sessionID], nil
}

func (s *MemoryBufferStore) SaveOrder(_ context.Context, sessionID, order string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[sessionID] = order
	return nil
}
