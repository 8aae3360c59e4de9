package event

import (
	"log"

	"redddate/pkg/mq"
	eventtypes "redddate/pkg/types/eventtype"
	"redddate/services/user/service"
)

type Consumer struct {
	mqClient     *mq.RabbitMQ
	eventHandler *EventHandler
}

func NewConsumer(mqClient *mq.RabbitMQ, userService *service.UserService) *Consumer {
	return &Consumer{
		mqClient:     mqClient,
		eventHandler: NewEventHandler(userService),
	}
}

func (c *Consumer) StartListening() {
	// Exchange 및 Queue 설정
	err := c.mqClient.DeclareExchange(mq.ExchangeFlagEvents, mq.ExchangeTypeFanout)
	if err != nil {
		log.Fatalf("❌ Failed to declare exchange %s: %v", mq.ExchangeFlagEvents, err)
	}

	queue, err := c.mqClient.DeclareQueue(mq.QueueUserFlag, mq.ExchangeFlagEvents, []string{})
	if err != nil {
		log.Fatalf("❌ Failed to declare queue %s for %s: %v", mq.QueueUserFlag, mq.ExchangeFlagEvents, err)
	}

	// 이벤트 리스닝 시작
	err = c.mqClient.ConsumeMessages(queue.Name, c.eventHandler.Handlers())
	if err != nil {
		log.Fatalf("❌ Failed to consume queue %s: %v", queue.Name, err)
	}

	log.Println("✅ RabbitMQ Consumer Listening...")
}

// 이벤트 타입 -> 핸들러
func (h *EventHandler) Handlers() mq.EventHandlerMap {
	return mq.EventHandlerMap{
		eventtypes.EventTypeFlagSet:    h.HandleFlagSet,
		eventtypes.EventTypeFlagDelete: h.HandleFlagDelete,
	}
}
