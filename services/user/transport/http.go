package transport

import (
	"net/http"

	"redddate/services/user/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func NewRouter(userHandler *handler.UserHandler) http.Handler {
	mux := chi.NewRouter()

	// CORS 설정
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	mux.Get("/subscriptions", userHandler.ListSubscriptions)
	mux.Put("/subscriptions", userHandler.SyncSubscriptions)

	mux.Delete("/account", userHandler.ResetAccount)

	mux.Get("/stats", userHandler.Stats)

	return mux
}
