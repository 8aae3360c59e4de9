package logger

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	"redddate/pkg/helper"
	"redddate/pkg/mq"

	eventtypes "redddate/pkg/types/eventtype"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Publisher는 로그를 외부로 내보내는 발행자입니다 (RabbitMQ)
type Publisher interface {
	PublishMessage(exchange, routingKey string, body []byte) error
}

var (
	// Logger는 전역 로거 인스턴스
	Logger zerolog.Logger = newConsoleLogger(os.Stdout, 0)

	mu             sync.RWMutex
	publisher      Publisher
	currentService ServiceType
)

const (
	ServiceTypeSearch ServiceType = iota
	ServiceTypeUser
	ServiceTypeLogger
)

// ServiceType은 서비스 타입을 나타내는 정수입니다
type ServiceType int

const (
	// 검색 관련 이벤트
	LogEventSearchRefresh LogEventType = iota
	LogEventSettingsUpdate
	LogEventProfileView

	// 플래그 관련 이벤트
	LogEventFlagSet
	LogEventFlagDelete
	LogEventReport
	LogEventMatchCreate

	// 유저 관련 이벤트
	LogEventSubscriptionSync
	LogEventAccountReset

	// 경고 이벤트
	LogEventWarning

	// 에러 이벤트
	LogEventError
)

// LogEventType은 로그 이벤트 타입을 나타내는 정수입니다
type LogEventType int

// BaseLog는 로그의 기본 구조를 정의합니다
type BaseLog struct {
	Level        string      `json:"level" bson:"level"`
	Timestamp    time.Time   `json:"timestamp" bson:"timestamp"`
	Service      int         `json:"service" bson:"service"`
	LogEventType int         `json:"log_event_type" bson:"log_event_type"`
	Message      string      `json:"message" bson:"message"`
	Log          interface{} `json:"log" bson:"log"`
}

func newConsoleLogger(out io.Writer, serviceType ServiceType) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	output := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}

	return zerolog.New(output).
		Level(zerolog.InfoLevel).
		With().
		Int("service", int(serviceType)).
		Timestamp().
		Logger()
}

// InitLogger는 로거를 초기화합니다. pub이 nil이면 콘솔에만 출력합니다.
func InitLogger(serviceType ServiceType, pub Publisher) error {
	if declarer, ok := pub.(interface {
		DeclareExchange(name, exchangeType string) error
	}); ok {
		if err := declarer.DeclareExchange(mq.ExchangeLog, mq.ExchangeTypeFanout); err != nil {
			return err
		}
	}

	mu.Lock()
	defer mu.Unlock()

	currentService = serviceType
	publisher = pub
	Logger = newConsoleLogger(os.Stdout, serviceType)
	return nil
}

// SetOutput은 콘솔 출력 대상을 바꿉니다 (테스트용)
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	Logger = newConsoleLogger(w, currentService)
}

// Log는 콘솔에 출력하고, 발행자가 있으면 BaseLog를 logs exchange로 발행합니다
func Log(level string, logEventType LogEventType, message string, logData interface{}) {
	mu.RLock()
	l := Logger
	pub := publisher
	service := currentService
	mu.RUnlock()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	l.WithLevel(lvl).
		Int("log_event_type", int(logEventType)).
		Interface("log", logData).
		Msg(message)

	if pub == nil {
		return
	}

	baseLog := BaseLog{
		Level:        level,
		Timestamp:    time.Now(),
		Service:      int(service),
		LogEventType: int(logEventType),
		Message:      message,
		Log:          logData,
	}

	eventPayload := eventtypes.EventPayload{
		EventID:   uuid.NewString(),
		EventType: eventtypes.EventTypeLog,
		Data:      helper.ToJSON(baseLog),
	}

	jsonData, err := json.Marshal(eventPayload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal log data")
		return
	}

	if err := pub.PublishMessage(mq.ExchangeLog, "", jsonData); err != nil {
		log.Error().Err(err).Msg("Failed to publish log message")
	}
}

// Debug는 debug 레벨 로그를 출력합니다
func Debug(logEventType LogEventType, message string, logData interface{}) {
	Log("debug", logEventType, message, logData)
}

// Info는 info 레벨 로그를 출력합니다
func Info(logEventType LogEventType, message string, logData interface{}) {
	Log("info", logEventType, message, logData)
}

// Warn은 warn 레벨 로그를 출력합니다
func Warn(logEventType LogEventType, message string, logData interface{}) {
	Log("warn", logEventType, message, logData)
}

// Error는 error 레벨 로그를 출력합니다
func Error(logEventType LogEventType, message string, logData interface{}) {
	Log("error", logEventType, message, logData)
}

// WithContext는 추가 컨텍스트를 포함한 로거를 반환합니다
func WithContext(fields map[string]interface{}) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return Logger.With().Fields(fields).Logger()
}
