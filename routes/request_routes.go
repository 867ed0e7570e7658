package routes

import (
	"buzzme_server/controllers"
	"buzzme_server/services"

	"github.com/gorilla/mux"
)

// RegisterRequestRoutes sets up routes for friend requests under /api/requests
func RegisterRequestRoutes(r *mux.Router, requestService *services.RequestService) {
	controller := controllers.NewRequestController(requestService)

	requestRouter := r.PathPrefix("/api/requests").Subrouter()

	requestRouter.HandleFunc("/incoming", controller.HandleListIncoming).Methods("GET")
	requestRouter.HandleFunc("/accept", controller.HandleAccept).Methods("POST")
	requestRouter.HandleFunc("/reject", controller.HandleReject).Methods("POST")
}
