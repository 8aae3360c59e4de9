package event

import (
	"encoding/json"
	"testing"

	"redddate/pkg/mq"
	eventtypes "redddate/pkg/types/eventtype"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	exchange string
	body     []byte
}

func (p *recordingPublisher) PublishMessage(exchange, _ string, body []byte) error {
	p.exchange = exchange
	p.body = body
	return nil
}

func TestEmitter_PublishFlagEvents(t *testing.T) {
	pub := &recordingPublisher{}
	emitter := NewEmitter(pub)

	for eventType, publish := range map[string]func(eventtypes.FlagEvent) error{
		eventtypes.EventTypeFlagSet:    emitter.PublishFlagSetEvent,
		eventtypes.EventTypeFlagDelete: emitter.PublishFlagDeleteEvent,
	} {
		require.NoError(t, publish(eventtypes.FlagEvent{SenderID: 1, ReceiverID: 2, Kind: 1, IsMatch: true}))
		assert.Equal(t, mq.ExchangeFlagEvents, pub.exchange)

		var payload eventtypes.EventPayload
		require.NoError(t, json.Unmarshal(pub.body, &payload))
		assert.Equal(t, eventType, payload.EventType)
		assert.NotEmpty(t, payload.EventID)

		var ev eventtypes.FlagEvent
		require.NoError(t, json.Unmarshal(payload.Data, &ev))
		assert.Equal(t, 2, ev.ReceiverID)
		assert.True(t, ev.IsMatch)
	}
}
