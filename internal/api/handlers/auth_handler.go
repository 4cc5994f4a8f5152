package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/leafguard/leafguard-be/internal/auth"
	"github.com/leafguard/leafguard-be/internal/services"
)

// AuthHandler handles signup, login and profile requests.
type AuthHandler struct {
	users  services.UserServiceProvider
	tokens *auth.TokenManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// SignupPayload defines the structure for signup requests.
type SignupPayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles new user registration.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload SignupPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.FirstName == "" || payload.LastName == "" || payload.Email == "" || payload.Password == "" {
		writeMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}

	_, err := h.users.SignUp(r.Context(), payload.FirstName, payload.LastName, payload.Email, payload.Password)
	if err != nil {
		writeServiceError(w, err, "Error creating user")
		return
	}

	writeMessage(w, http.StatusCreated, "User created successfully")
}

// Login handles user authentication and token issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.Authenticate(r.Context(), payload.Email, payload.Password)
	if err != nil {
		log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
		writeServiceError(w, err, "Error logging in")
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to issue token")
		writeMessage(w, http.StatusInternalServerError, "Error logging in")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"user":    user.Public(),
	})
}

// Profile returns the authenticated user's profile. The row is re-fetched on
// every call; a user deleted after token issuance gets a 404.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		log.Error().Msg("Profile reached without an authenticated user ID")
		writeMessage(w, http.StatusInternalServerError, "Error fetching user profile")
		return
	}

	profile, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "Error fetching user profile")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
