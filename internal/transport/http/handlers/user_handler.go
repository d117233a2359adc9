package handlers

import (
	"log"
	"net/http"

	"github.com/dkoss/relay/internal/service"
	"github.com/dkoss/relay/internal/transport/http/middleware"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns the user directory, excluding the caller.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	users, err := h.userService.ListUsers(r.Context(), identity)
	if err != nil {
		log.Printf("ERROR list users: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, users)
}
