package notification

import (
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

func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	notifications, err := h.service.ListNotifications(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list notifications")
		return
	}
	if notifications == nil {
		notifications = []*Notification{}
	}

	utils.RespondWithJSON(w, http.StatusOK, notifications)
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	vars := mux.Vars(r)
	notificationID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil || notificationID <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	if err := h.service.MarkRead(r.Context(), notificationID, userID); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to mark notification read")
		return
	}

	utils.MessageResponse(w, "Notification marked as read", http.StatusOK)
}

func (h *Handler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	count, err := h.service.CountUnread(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count notifications")
		return
	}

	utils.RespondWithData(w, http.StatusOK, map[string]int{"unread": count})
}
