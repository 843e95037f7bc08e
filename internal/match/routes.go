package match

import (
	"github.com/gorilla/mux"

	"github.com/Ecera-System/ESMatromonial-sub000/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/recommendations").Subrouter()
	api.Use(authMiddleware.Authenticate)

	// Daily recommendation lifecycle
	api.HandleFunc("/daily", handler.GetDailyRecommendation).Methods("GET")
	api.HandleFunc("/daily/regenerate", handler.RegenerateRecommendation).Methods("POST")
	api.HandleFunc("/skip", handler.SkipRecommendation).Methods("POST")
	api.HandleFunc("/like", handler.LikeRecommendation).Methods("POST")

	// Pairwise compatibility
	api.HandleFunc("/compatibility/{userId}", handler.GetCompatibility).Methods("GET")

	// Batch trigger
	api.HandleFunc("/generate", handler.TriggerBatchGeneration).Methods("POST")
}
