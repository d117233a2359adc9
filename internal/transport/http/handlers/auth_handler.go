package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/dkoss/relay/internal/service"
	"github.com/dkoss/relay/internal/transport/http/middleware"
	"github.com/dkoss/relay/pkg/validator"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input service.SignupInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validator.ValidateSignup(input.Email, input.UserName, input.Password); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	if _, err := h.authService.Signup(r.Context(), input); err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			writeMsg(w, http.StatusBadRequest, "Email already registered")
		case errors.Is(err, service.ErrUserNameTaken):
			writeMsg(w, http.StatusBadRequest, "User already registered")
		default:
			log.Printf("ERROR signup: %v", err)
			writeMsg(w, http.StatusInternalServerError, "Something went wrong")
		}
		return
	}

	writeMsg(w, http.StatusOK, "User created successfully")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validator.ValidateLogin(input.UserName, input.Password); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	token, err := h.authService.Login(r.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCreds) {
			writeMsg(w, http.StatusUnauthorized, "Incorrect user or password")
		} else {
			log.Printf("ERROR login: %v", err)
			writeMsg(w, http.StatusInternalServerError, "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"access_token": token})
}

// Protected echoes the identity claim bound to the caller's token.
func (h *AuthHandler) Protected(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	writeJSON(w, http.StatusOK, identity)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	var input struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
		ConfirmPassword string `json:"confirm_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validator.ValidateChangePassword(input.CurrentPassword, input.NewPassword, input.ConfirmPassword); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	err := h.authService.ChangePassword(r.Context(), identity, input.CurrentPassword, input.NewPassword, input.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			writeMessage(w, http.StatusUnauthorized, "Incorrect current password")
		case errors.Is(err, service.ErrPasswordMismatch):
			writeMessage(w, http.StatusBadRequest, "New password and confirm password do not match")
		default:
			log.Printf("ERROR change password: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Something went wrong")
		}
		return
	}

	writeMessage(w, http.StatusOK, "Password changed successfully")
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeMsg uses the "msg" key; writeMessage uses "message". The two key
// names are part of the wire contract and not interchangeable.
func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"msg": msg})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func writeValidationErrors(w http.ResponseWriter, errs validator.ValidationErrors) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"msg":    "Validation failed",
		"fields": errs,
	})
}
