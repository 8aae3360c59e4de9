package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"redddate/pkg/mq"
	eventtypes "redddate/pkg/types/eventtype"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	exchanges []string
	published [][]byte
	declared  []string
	failWith  error
}

func (f *fakePublisher) DeclareExchange(name, exchangeType string) error {
	f.declared = append(f.declared, name+":"+exchangeType)
	return nil
}

func (f *fakePublisher) PublishMessage(exchange, routingKey string, body []byte) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.exchanges = append(f.exchanges, exchange)
	f.published = append(f.published, body)
	return nil
}

func TestLog_PublishesBaseLog(t *testing.T) {
	pub := &fakePublisher{}
	require.NoError(t, InitLogger(ServiceTypeSearch, pub))
	t.Cleanup(func() { _ = InitLogger(ServiceTypeSearch, nil) })

	var buf bytes.Buffer
	SetOutput(&buf)

	Info(LogEventFlagSet, "flag set", map[string]int{"sender_id": 1})

	assert.Equal(t, []string{mq.ExchangeLog + ":" + mq.ExchangeTypeFanout}, pub.declared)
	require.Len(t, pub.published, 1)
	assert.Equal(t, mq.ExchangeLog, pub.exchanges[0])

	var payload eventtypes.EventPayload
	require.NoError(t, json.Unmarshal(pub.published[0], &payload))
	assert.Equal(t, eventtypes.EventTypeLog, payload.EventType)
	assert.NotEmpty(t, payload.EventID)

	var baseLog BaseLog
	require.NoError(t, json.Unmarshal(payload.Data, &baseLog))
	assert.Equal(t, "info", baseLog.Level)
	assert.Equal(t, int(LogEventFlagSet), baseLog.LogEventType)
	assert.Equal(t, int(ServiceTypeSearch), baseLog.Service)
	assert.Equal(t, "flag set", baseLog.Message)

	assert.Contains(t, buf.String(), "flag set")
}

func TestLog_ConsoleOnly(t *testing.T) {
	require.NoError(t, InitLogger(ServiceTypeUser, nil))

	var buf bytes.Buffer
	SetOutput(&buf)

	Warn(LogEventWarning, "no publisher", nil)
	assert.Contains(t, buf.String(), "no publisher")
}

func TestLog_PublishFailureIsSwallowed(t *testing.T) {
	pub := &fakePublisher{failWith: errors.New("closed")}
	require.NoError(t, InitLogger(ServiceTypeUser, pub))
	t.Cleanup(func() { _ = InitLogger(ServiceTypeUser, nil) })

	SetOutput(&bytes.Buffer{})
	assert.NotPanics(t, func() { Error(LogEventError, "boom", nil) })
	assert.Empty(t, pub.published)
}
