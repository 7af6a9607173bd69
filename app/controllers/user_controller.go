package controllers

import (
	"net/http"

	"postlikes/app/services"

	"github.com/gorilla/mux"
)

// UserController handles HTTP requests for the user directory
type UserController struct {
	userService *services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

// Create registers a new user
func (uc *UserController) Create(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := decodeJSON(r, &input); err != nil {
		sendServiceError(w, err)
		return
	}

	user, err := uc.userService.Register(r.Context(), input)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, user)
}

// Show returns the public summary of a user
func (uc *UserController) Show(w http.ResponseWriter, r *http.Request) {
	user, err := uc.userService.GetSummary(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, user)
}
