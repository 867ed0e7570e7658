package routes

import (
	"buzzme_server/controllers"
	"buzzme_server/services"

	"github.com/gorilla/mux"
)

// RegisterChatRoutes sets up routes for conversations under /api/chat
func RegisterChatRoutes(r *mux.Router, chatService *services.ChatService) {
	controller := controllers.NewChatController(chatService)

	chatRouter := r.PathPrefix("/api/chat").Subrouter()

	chatRouter.HandleFunc("/send", controller.HandleSendMessage).Methods("POST")
	chatRouter.HandleFunc("/messages", controller.HandleGetMessages).Methods("GET")
	chatRouter.HandleFunc("/matches", controller.HandleGetMatches).Methods("GET")
}
