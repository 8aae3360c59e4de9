package event

import (
	"log"

	"redddate/pkg/mq"
	eventtypes "redddate/pkg/types/eventtype"
)

type Consumer struct {
	mqClient     *mq.RabbitMQ
	eventHandler *EventHandler
}

func NewConsumer(mqClient *mq.RabbitMQ, logs LogWriter) *Consumer {
	return &Consumer{
		mqClient:     mqClient,
		eventHandler: NewEventHandler(logs),
	}
}

func (c *Consumer) StartListening() {
	// Exchange 설정
	err := c.mqClient.DeclareExchange(mq.ExchangeLog, mq.ExchangeTypeFanout)
	if err != nil {
		log.Fatalf("❌ Failed to declare exchange %s: %v", mq.ExchangeLog, err)
	}

	// Queue 생성 및 바인딩
	queue, err := c.mqClient.DeclareQueue(mq.QueueLog, mq.ExchangeLog, []string{})
	if err != nil {
		log.Fatalf("❌ Failed to declare queue %s for %s: %v", mq.QueueLog, mq.ExchangeLog, err)
	}

	// 메시지 소비 시작
	if err := c.mqClient.ConsumeMessages(queue.Name, c.eventHandler.Handlers()); err != nil {
		log.Fatalf("❌ Failed to consume queue %s: %v", queue.Name, err)
	}

	log.Println("✅ Logger Service Consumer Listening...")
}

// 이벤트 핸들러 등록
func (e *EventHandler) Handlers() mq.EventHandlerMap {
	return mq.EventHandlerMap{
		eventtypes.EventTypeLog: e.HandleLogEvent,
	}
}
