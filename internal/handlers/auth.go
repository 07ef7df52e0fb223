package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/crucial707/sharebnb/internal/auth"
	"github.com/crucial707/sharebnb/internal/repo"
)

// ==========================
// AuthHandler
// ==========================
type AuthHandler struct {
	Users    *repo.UserRepo
	Secret   []byte
	TokenTTL time.Duration
}

// ==========================
// Login (username + password; returns token and user)
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	fields := make(map[string]string)
	if input.Username == "" {
		fields["username"] = "required"
	}
	if input.Password == "" {
		fields["password"] = "required"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	user, err := h.Users.Authenticate(r.Context(), input.Username, input.Password)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	token, err := auth.CreateToken(h.Secret, user.Username, user.UserType, h.TokenTTL)
	if err != nil {
		JSONError(w, "failed to issue token", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}
