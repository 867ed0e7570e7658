package controllers

import (
	"encoding/json"
	"net/http"

	"buzzme_server/services"
)

// PresenceController struct
type PresenceController struct {
	PresenceService *services.PresenceService
}

func NewPresenceController(service *services.PresenceService) *PresenceController {
	return &PresenceController{PresenceService: service}
}

// HandleTouch - record a heartbeat for a user at server time
func (c *PresenceController) HandleTouch(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UID string `json:"uid"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if err := c.PresenceService.Touch(r.Context(), request.UID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// HandleIsOnline - compute whether a user is currently online
func (c *PresenceController) HandleIsOnline(w http.ResponseWriter, r *http.Request) {
	uid := r.URL.Query().Get("uid")
	if uid == "" {
		http.Error(w, `{"error": "uid is required"}`, http.StatusBadRequest)
		return
	}

	online, err := c.PresenceService.IsOnline(r.Context(), uid)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"online": online})
}
