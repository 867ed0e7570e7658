package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"buzzme_server/services"
)

// ActionController handles the single mutation entry point for interest
// events.
type ActionController struct {
	MatchService *services.MatchService
}

func NewActionController(service *services.MatchService) *ActionController {
	return &ActionController{MatchService: service}
}

// HandleEvaluate - process a like/crush/request action between two users
func (c *ActionController) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ActorUID  string `json:"actorUid"`
		TargetUID string `json:"targetUid"`
		Channel   string `json:"channel"`
		Source    string `json:"source"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	log.Printf("🔄 Evaluating %s action: %s -> %s", request.Channel, request.ActorUID, request.TargetUID)

	result, err := c.MatchService.Evaluate(r.Context(), request.ActorUID, request.TargetUID, request.Channel, request.Source)
	if err != nil {
		log.Printf("❌ Evaluate failed: %v", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
