// internal/profile/handlers.go

package profile

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Ecera-System/ESMatromonial-sub000/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetMyProfile returns the authenticated member's full profile
func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	p, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		if err == ErrProfileNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, p)
}

// GetUserProfile returns another member's public projection
func (h *Handler) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	p, err := h.service.GetPublicProfile(r.Context(), userID)
	if err != nil {
		if err == ErrProfileNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, p)
}

// GetProfileCompletion returns completion percentage and missing fields
func (h *Handler) GetProfileCompletion(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	completion, err := h.service.GetCompletion(r.Context(), userID)
	if err != nil {
		if err == ErrProfileNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to calculate profile completion")
		return
	}

	log.Printf("Profile completion for user %d: %d%%", userID, completion.Percentage)
	utils.RespondWithJSON(w, http.StatusOK, completion)
}
