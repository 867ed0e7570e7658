package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"buzzme_server/services"
)

// ChatController struct
type ChatController struct {
	ChatService *services.ChatService
}

// NewChatController initializes the chat controller
func NewChatController(service *services.ChatService) *ChatController {
	return &ChatController{ChatService: service}
}

// HandleSendMessage - append a message to a match's log
func (c *ChatController) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID   string `json:"matchId"`
		SenderID  string `json:"senderId"`
		Text      string `json:"text"`
		ReplyToID string `json:"replyToId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	log.Printf("📩 New message request for match %s from %s", request.MatchID, request.SenderID)

	message, err := c.ChatService.AppendMessage(r.Context(), request.MatchID, request.SenderID, request.Text, request.ReplyToID)
	if err != nil {
		log.Printf("❌ Failed to send message: %v", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, message)
}

// HandleGetMessages - fetch messages for a match, optionally after a cursor
func (c *ChatController) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	matchID := r.URL.Query().Get("matchId")
	if matchID == "" {
		http.Error(w, `{"error": "matchId is required"}`, http.StatusBadRequest)
		return
	}

	afterSeq := int64(0)
	if afterStr := r.URL.Query().Get("afterSeq"); afterStr != "" {
		parsed, err := strconv.ParseInt(afterStr, 10, 64)
		if err != nil || parsed < 0 {
			http.Error(w, `{"error": "afterSeq must be a non-negative integer"}`, http.StatusBadRequest)
			return
		}
		afterSeq = parsed
	}

	messages, err := c.ChatService.ListMessagesAfter(r.Context(), matchID, afterSeq)
	if err != nil {
		log.Printf("❌ Failed to fetch messages for %s: %v", matchID, err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, messages)
}

// HandleGetMatches - fetch a user's conversation list ordered by recency
func (c *ChatController) HandleGetMatches(w http.ResponseWriter, r *http.Request) {
	uid := r.URL.Query().Get("uid")
	if uid == "" {
		http.Error(w, `{"error": "uid is required"}`, http.StatusBadRequest)
		return
	}

	matches, err := c.ChatService.ListMatches(r.Context(), uid)
	if err != nil {
		log.Printf("❌ Failed to fetch matches for %s: %v", uid, err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, matches)
}
