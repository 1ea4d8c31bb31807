// Package http provides HTTP handlers for the users module.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rai/fooddelivery-go/modules/shared/types"
	"github.com/rai/fooddelivery-go/modules/users/application/commands"
	"github.com/rai/fooddelivery-go/modules/users/application/queries"
	"github.com/rai/fooddelivery-go/modules/users/domain"
)

type Handler struct {
	registerUser  *commands.RegisterUserHandler
	updateProfile *commands.UpdateProfileHandler
	getUser       *queries.GetUserHandler
}

// RegisterRoutes registers the users module routes to the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	registerUser *commands.RegisterUserHandler,
	updateProfile *commands.UpdateProfileHandler,
	getUser *queries.GetUserHandler,
) {
	h := &Handler{registerUser: registerUser, updateProfile: updateProfile, getUser: getUser}

	mux.HandleFunc("POST /users", h.handleRegisterUser)
	mux.HandleFunc("GET /users/{id}", h.handleGetUser)
	mux.HandleFunc("PUT /users/{id}", h.handleUpdateProfile)
}

type registerUserRequest struct {
	Email          string `json:"email"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	DefaultAddress string `json:"default_address"`
}

type updateProfileRequest struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	DefaultAddress string `json:"default_address"`
}

type createdResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.registerUser.Handle(r.Context(), commands.RegisterUserCommand{
		Email:          req.Email,
		Name:           req.Name,
		Phone:          req.Phone,
		DefaultAddress: req.DefaultAddress,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.getUser.Handle(r.Context(), queries.GetUserQuery{UserID: r.PathValue("id")})
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.updateProfile.Handle(r.Context(), commands.UpdateProfileCommand{
		UserID:         r.PathValue("id"),
		Name:           req.Name,
		Phone:          req.Phone,
		DefaultAddress: req.DefaultAddress,
	})
	if err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, types.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidName):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
