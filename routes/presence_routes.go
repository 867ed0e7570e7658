package routes

import (
	"buzzme_server/controllers"
	"buzzme_server/services"

	"github.com/gorilla/mux"
)

// RegisterPresenceRoutes sets up routes for presence under /api/presence
func RegisterPresenceRoutes(r *mux.Router, presenceService *services.PresenceService) {
	controller := controllers.NewPresenceController(presenceService)

	presenceRouter := r.PathPrefix("/api/presence").Subrouter()

	presenceRouter.HandleFunc("/touch", controller.HandleTouch).Methods("POST")
	presenceRouter.HandleFunc("/online", controller.HandleIsOnline).Methods("GET")
}
