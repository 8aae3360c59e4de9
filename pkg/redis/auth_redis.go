package redis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// 세션 ID로 유저 ID 조회
func (r *RedisClient) GetUserBySessionID(ctx context.Context, sessionID string) (int, error) {
	sUserID, err := r.Get(ctx, sessionKey(sessionID))
	if errors.Is(err, ErrKeyNotFound) {
		log.Printf("sessionID is not exist in DB")
		return 0, ErrSessionNotFound
	} else if err != nil {
		log.Printf("Get Session Error, %s", err.Error())
		return 0, err
	}

	userID, err := strconv.Atoi(sUserID)
	if err != nil {
		log.Printf("Failed to Atoi, user id: %s", sUserID)
		return 0, ErrSessionNotFound
	}

	return userID, nil
}

// 세션 저장 (로그인 측에서 사용)
func (r *RedisClient) SetSession(ctx context.Context, sessionID string, userID int, ttl time.Duration) error {
	return r.Set(ctx, sessionKey(sessionID), strconv.Itoa(userID), ttl)
}

// 세션과 세션에 묶인 검색 상태 삭제
func (r *RedisClient) DeleteSession(ctx context.Context, sessionID string) error {
	return r.Delete(ctx, sessionKey(sessionID), bufferKey(sessionID), orderKey(sessionID))
}
