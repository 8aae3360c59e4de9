package event

import (
	"encoding/json"
	"log"

	"redddate/pkg/helper"
	"redddate/pkg/mq"
	eventtypes "redddate/pkg/types/eventtype"

	"github.com/google/uuid"
)

type Publisher interface {
	PublishMessage(exchange, routingKey string, body []byte) error
}

type Emitter struct {
	mqClient Publisher
}

func NewEmitter(mqClient Publisher) *Emitter {
	return &Emitter{mqClient: mqClient}
}

func (e *Emitter) publish(exchangeName, routingKey string, payload eventtypes.EventPayload) error {
	eventBytes, err := json.Marshal(payload)
	if err != nil {
		log.Printf("❌ Failed to marshal event: %s, err: %v", payload.EventType, err)
		return err
	}

	err = e.mqClient.PublishMessage(
		exchangeName, // Exchange Name (Fanout 타입)
		routingKey,   // Routing Key (Fanout은 필요 없음)
		eventBytes,
	)
	if err != nil {
		log.Printf("❌ Failed to publish event: %s, err: %v", payload.EventType, err)
		return err
	}

	return nil
}

func (e *Emitter) PublishFlagSetEvent(data eventtypes.FlagEvent) error {
	payload := eventtypes.EventPayload{
		EventID:   uuid.NewString(),
		EventType: eventtypes.EventTypeFlagSet,
		Data:      helper.ToJSON(data),
	}
	return e.publish(mq.ExchangeFlagEvents, "", payload)
}

func (e *Emitter) PublishFlagDeleteEvent(data eventtypes.FlagEvent) error {
	payload := eventtypes.EventPayload{
		EventID:   uuid.NewString(),
		EventType: eventtypes.EventTypeFlagDelete,
		Data:      helper.ToJSON(data),
	}
	return e.publish(mq.ExchangeFlagEvents, "", payload)
}
