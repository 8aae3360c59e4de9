package mq

// Exchange Names
const (
	ExchangeFlagEvents = "flag_events"
	ExchangeLog        = "logs"
)

// Exchange Types
const (
	ExchangeTypeTopic  = "topic"
	ExchangeTypeFanout = "fanout"
)

// Queue Names
const (
	QueueUserFlag = "user_flag_queue"
	QueueLog      = "log_queue"
)
