package controllers

import (
	"net/http"

	"buzzme_server/services"

	"github.com/gorilla/mux"
)

// ProfileController exposes the read-only identity directory lookups.
type ProfileController struct {
	ProfileService *services.ProfileService
}

func NewProfileController(service *services.ProfileService) *ProfileController {
	return &ProfileController{ProfileService: service}
}

// HandleGetProfile - fetch a profile by uid
func (c *ProfileController) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["uid"]

	profile, err := c.ProfileService.GetProfile(r.Context(), uid)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// HandleSearch - exact lookup by buzzId
func (c *ProfileController) HandleSearch(w http.ResponseWriter, r *http.Request) {
	buzzID := r.URL.Query().Get("buzzId")

	profile, err := c.ProfileService.FindByBuzzID(r.Context(), buzzID)
	if err != nil {
		respondError(w, err)
		return
	}
	if profile == nil {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": "No user with that Buzz ID"})
		return
	}

	respondJSON(w, http.StatusOK, profile)
}
