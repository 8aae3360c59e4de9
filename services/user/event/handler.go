package event

import (
	"context"
	"encoding/json"
	"log"

	eventtypes "redddate/pkg/types/eventtype"
	"redddate/services/user/service"
)

type EventHandler struct {
	userService *service.UserService
}

func NewEventHandler(userService *service.UserService) *EventHandler {
	return &EventHandler{userService: userService}
}

func (h *EventHandler) HandleFlagSet(data json.RawMessage) {
	var eventData eventtypes.FlagEvent
	if err := json.Unmarshal(data, &eventData); err != nil {
		log.Printf("❌ Failed to unmarshal flag set event: %v", err)
		return
	}

	log.Printf("🎯 Processing Flag Set Event: %+v", eventData)

	if err := h.userService.ApplyFlagSet(context.Background(), eventData); err != nil {
		log.Printf("❌ Failed to apply flag set event %d -> %d: %v", eventData.SenderID, eventData.ReceiverID, err)
	}
}

func (h *EventHandler) HandleFlagDelete(data json.RawMessage) {
	var eventData eventtypes.FlagEvent
	if err := json.Unmarshal(data, &eventData); err != nil {
		log.Printf("❌ Failed to unmarshal flag delete event: %v", err)
		return
	}

	log.Printf("🗑️ Processing Flag Delete Event: %+v", eventData)

	if err := h.userService.ApplyFlagDelete(context.Background(), eventData); err != nil {
		log.Printf("❌ Failed to apply flag delete event %d -> %d: %v", eventData.SenderID, eventData.ReceiverID, err)
	}
}
