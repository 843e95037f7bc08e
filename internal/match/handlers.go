package match

import (
	"encoding/json"
	"errors"
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

// GetDailyRecommendation serves today's recommendation, generating it on
// first call of the day.
func (h *Handler) GetDailyRecommendation(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	result, err := h.service.GetDailyRecommendation(r.Context(), userID)
	if err != nil {
		h.respondRecommendationError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

// RegenerateRecommendation serves a fresh on-demand recommendation without
// replacing today's persisted one.
func (h *Handler) RegenerateRecommendation(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	result, err := h.service.RegenerateRecommendation(r.Context(), userID)
	if err != nil {
		h.respondRecommendationError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

func (h *Handler) SkipRecommendation(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	var dto SkipRecommendationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.SkipRecommendation(r.Context(), userID, &dto); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to skip recommendation")
		return
	}

	utils.MessageResponse(w, "Recommendation skipped", http.StatusOK)
}

func (h *Handler) LikeRecommendation(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	var dto LikeRecommendationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.LikeRecommendation(r.Context(), userID, &dto); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to like recommendation")
		return
	}

	utils.MessageResponse(w, "Recommendation liked", http.StatusOK)
}

func (h *Handler) GetCompatibility(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	vars := mux.Vars(r)
	otherID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil || otherID <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	result, err := h.service.GetCompatibility(r.Context(), userID, otherID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute compatibility")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

// TriggerBatchGeneration runs the daily batch on demand. Intended for
// operators; the scheduler calls the same service method.
func (h *Handler) TriggerBatchGeneration(w http.ResponseWriter, r *http.Request) {
	if err := h.service.GenerateDailyRecommendations(r.Context()); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Batch generation failed")
		return
	}

	utils.MessageResponse(w, "Daily recommendations generated", http.StatusOK)
}

func (h *Handler) respondRecommendationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, ErrNoCandidates):
		utils.RespondWithJSON(w, http.StatusNotFound, map[string]interface{}{
			"success":     false,
			"error":       "No recommendations available right now",
			"suggestions": noCandidatesSuggestions,
		})
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get recommendation")
	}
}
