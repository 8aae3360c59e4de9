package event

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"redddate/pkg/logger"
)

// 로그 저장소 (MongoDB)
type LogWriter interface {
	InsertLog(ctx context.Context, l logger.BaseLog) error
}

type EventHandler struct {
	logs LogWriter
}

func NewEventHandler(logs LogWriter) *EventHandler {
	return &EventHandler{
		logs: logs,
	}
}

// HandleLogEvent는 로그 이벤트를 처리합니다
func (e *EventHandler) HandleLogEvent(payload json.RawMessage) {
	var baseLog logger.BaseLog
	if err := json.Unmarshal(payload, &baseLog); err != nil {
		log.Printf("❌ Failed to unmarshal log event: %v", err)
		return
	}

	// MongoDB에 로그 저장
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := e.logs.InsertLog(ctx, baseLog); err != nil {
		log.Printf("❌ Failed to insert log: %v", err)
		return
	}

	log.Printf("✅ Log saved: %s", baseLog.Message)
}
