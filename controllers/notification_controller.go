package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"buzzme_server/services"
)

// NotificationController struct
type NotificationController struct {
	NotificationService *services.NotificationService
}

func NewNotificationController(service *services.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: service}
}

// HandleList - fetch a user's notifications, newest first
func (c *NotificationController) HandleList(w http.ResponseWriter, r *http.Request) {
	uid := r.URL.Query().Get("uid")
	if uid == "" {
		http.Error(w, `{"error": "uid is required"}`, http.StatusBadRequest)
		return
	}

	notifications, err := c.NotificationService.List(r.Context(), uid)
	if err != nil {
		log.Printf("❌ Failed to list notifications for %s: %v", uid, err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, notifications)
}

// HandleMarkRead - flip the read flag on one notification
func (c *NotificationController) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UID            string `json:"uid"`
		NotificationID string `json:"notificationId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if request.UID == "" || request.NotificationID == "" {
		http.Error(w, `{"error": "uid and notificationId are required"}`, http.StatusBadRequest)
		return
	}

	if err := c.NotificationService.MarkRead(r.Context(), request.UID, request.NotificationID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
