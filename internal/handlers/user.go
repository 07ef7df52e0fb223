package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/crucial707/sharebnb/internal/auth"
	"github.com/crucial707/sharebnb/internal/metrics"
	"github.com/crucial707/sharebnb/internal/middleware"
	"github.com/crucial707/sharebnb/internal/models"
	"github.com/crucial707/sharebnb/internal/repo"
	"github.com/go-chi/chi/v5"
)

// maxUsernameLen matches the VARCHAR(25) users.username column.
const maxUsernameLen = 25

// ==========================
// UserHandler
// ==========================
type UserHandler struct {
	Repo     *repo.UserRepo
	Secret   []byte
	TokenTTL time.Duration
}

// ==========================
// Create User (signup; returns the new user plus a signed token)
// ==========================
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username  string `json:"username"`
		Password  string `json:"password"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		UserType  string `json:"userType"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	fields := make(map[string]string)
	if input.Username == "" {
		fields["username"] = "required"
	} else if len(input.Username) > maxUsernameLen {
		fields["username"] = "must be at most 25 characters"
	}
	if len(input.Password) < 5 {
		fields["password"] = "must be at least 5 characters"
	}
	if input.FirstName == "" {
		fields["firstName"] = "required"
	}
	if input.LastName == "" {
		fields["lastName"] = "required"
	}
	if !strings.Contains(input.Email, "@") {
		fields["email"] = "must be a valid email address"
	}
	if input.UserType != models.UserTypeHost && input.UserType != models.UserTypeRenter {
		fields["userType"] = "must be host or renter"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	user, err := h.Repo.Create(r.Context(), models.User{
		Username:  input.Username,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		UserType:  input.UserType,
	})
	if err != nil {
		writeRepoError(w, err)
		return
	}

	token, err := auth.CreateToken(h.Secret, user.Username, user.UserType, h.TokenTTL)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.RecordWrite("user", "create")
	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// ==========================
// List Users
// ==========================
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Repo.List(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

// ==========================
// Get User
// ==========================
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	user, err := h.Repo.Get(r.Context(), username)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// ==========================
// Me (requires JWT)
// ==========================
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsername(r.Context())
	if !ok {
		JSONError(w, "missing authentication", http.StatusUnauthorized)
		return
	}
	user, err := h.Repo.Get(r.Context(), username)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// ==========================
// Update User (partial)
// ==========================
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var patch models.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	fields := make(map[string]string)
	if patch.Password != nil && len(*patch.Password) < 5 {
		fields["password"] = "must be at least 5 characters"
	}
	if patch.Email != nil && !strings.Contains(*patch.Email, "@") {
		fields["email"] = "must be a valid email address"
	}
	if patch.UserType != nil && *patch.UserType != models.UserTypeHost && *patch.UserType != models.UserTypeRenter {
		fields["userType"] = "must be host or renter"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	user, err := h.Repo.Update(r.Context(), username, patch)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// ==========================
// Delete User
// ==========================
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if err := h.Repo.Delete(r.Context(), username); err != nil {
		writeRepoError(w, err)
		return
	}
	metrics.RecordWrite("user", "delete")
	WriteJSON(w, http.StatusOK, map[string]string{"deleted": username})
}
