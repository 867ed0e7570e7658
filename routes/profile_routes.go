package routes

import (
	"buzzme_server/controllers"
	"buzzme_server/services"

	"github.com/gorilla/mux"
)

// RegisterProfileRoutes sets up routes for user profiles under /api/profiles
func RegisterProfileRoutes(r *mux.Router, profileService *services.ProfileService) {
	controller := controllers.NewProfileController(profileService)

	profileRouter := r.PathPrefix("/api/profiles").Subrouter()

	profileRouter.HandleFunc("/search", controller.HandleSearch).Methods("GET")
	profileRouter.HandleFunc("/{uid}", controller.HandleGetProfile).Methods("GET")
}
