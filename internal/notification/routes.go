package notification

import (
	"github.com/gorilla/mux"

	"github.com/Ecera-System/ESMatromonial-sub000/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/notifications").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("", handler.ListNotifications).Methods("GET")
	api.HandleFunc("/unread", handler.GetUnreadCount).Methods("GET")
	api.HandleFunc("/{id}/read", handler.MarkRead).Methods("POST")
}
