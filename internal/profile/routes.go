package profile

import (
	"github.com/gorilla/mux"

	"github.com/Ecera-System/ESMatromonial-sub000/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/profile", handler.GetMyProfile).Methods("GET")
	api.HandleFunc("/profile/completion", handler.GetProfileCompletion).Methods("GET")
	api.HandleFunc("/users/{id}/profile", handler.GetUserProfile).Methods("GET")
}
