package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"buzzme_server/services"
)

// RequestController serves the pending-request inbox and its terminal
// accept/reject transitions.
type RequestController struct {
	RequestService *services.RequestService
}

func NewRequestController(service *services.RequestService) *RequestController {
	return &RequestController{RequestService: service}
}

// HandleListIncoming - fetch pending requests addressed to a user
func (c *RequestController) HandleListIncoming(w http.ResponseWriter, r *http.Request) {
	uid := r.URL.Query().Get("uid")
	if uid == "" {
		http.Error(w, `{"error": "uid is required"}`, http.StatusBadRequest)
		return
	}

	incoming, err := c.RequestService.ListIncoming(r.Context(), uid)
	if err != nil {
		log.Printf("❌ Failed to list requests for %s: %v", uid, err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, incoming)
}

// HandleAccept - consume a pending request into a match
func (c *RequestController) HandleAccept(w http.ResponseWriter, r *http.Request) {
	var request struct {
		RequestID string `json:"requestId"`
		UID       string `json:"uid"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	log.Printf("🔄 %s accepting request %s", request.UID, request.RequestID)

	result, err := c.RequestService.Accept(r.Context(), request.RequestID, request.UID)
	if err != nil {
		log.Printf("❌ Accept failed: %v", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleReject - discard a pending request
func (c *RequestController) HandleReject(w http.ResponseWriter, r *http.Request) {
	var request struct {
		RequestID string `json:"requestId"`
		UID       string `json:"uid"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if err := c.RequestService.Reject(r.Context(), request.RequestID, request.UID); err != nil {
		log.Printf("❌ Reject failed: %v", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Request rejected"})
}
