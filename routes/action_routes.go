package routes

import (
	"buzzme_server/controllers"
	"buzzme_server/services"

	"github.com/gorilla/mux"
)

// RegisterActionRoutes sets up routes for interest actions under /api/action
func RegisterActionRoutes(r *mux.Router, matchService *services.MatchService) {
	controller := controllers.NewActionController(matchService)

	actionRouter := r.PathPrefix("/api/action").Subrouter()

	actionRouter.HandleFunc("/evaluate", controller.HandleEvaluate).Methods("POST")
}
