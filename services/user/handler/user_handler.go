package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"redddate/pkg/dto"
	"redddate/pkg/middleware"
	"redddate/services/user/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// X-User-ID 헤더 (gateway가 세션으로 채운다)
func userIDFromHeader(w http.ResponseWriter, r *http.Request) (int, bool) {
	xUserID := r.Header.Get(middleware.HeaderUserID)
	if xUserID == "" {
		http.Error(w, "User ID is required", http.StatusUnauthorized)
		return 0, false
	}

	userID, err := strconv.Atoi(xUserID)
	if err != nil {
		http.Error(w, fmt.Sprintf("User ID is not number, xUserID: %s", xUserID), http.StatusUnauthorized)
		return 0, false
	}
	return userID, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Failed to encode response: %v", err)
	}
}

func writeServiceError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, service.ErrUserNotFound) {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	log.Printf("❌ %s: %v", msg, err)
	http.Error(w, msg, http.StatusInternalServerError)
}

// 구독 목록 동기화
func (h *UserHandler) SyncSubscriptions(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromHeader(w, r)
	if !ok {
		return
	}

	var subs []dto.SubscriptionDTO
	if err := json.NewDecoder(r.Body).Decode(&subs); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	result, err := h.userService.SyncSubscriptions(r.Context(), userID, subs)
	if err != nil {
		writeServiceError(w, err, "Failed to sync subscriptions")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// 구독 목록 조회
func (h *UserHandler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromHeader(w, r)
	if !ok {
		return
	}

	subs, err := h.userService.ListSubscriptions(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "Failed to retrieve subscriptions")
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

// 탈퇴
func (h *UserHandler) ResetAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromHeader(w, r)
	if !ok {
		return
	}

	sessionID := ""
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		sessionID = cookie.Value
	}

	if err := h.userService.ResetAccount(r.Context(), userID, sessionID); err != nil {
		writeServiceError(w, err, "Failed to reset account")
		return
	}
	w.WriteHeader(http.StatusOK)
}

// 통계
func (h *UserHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.userService.Stats(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to retrieve stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
