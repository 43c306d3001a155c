package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alex/dev-tools-portal/internal/api/middleware"
	"github.com/alex/dev-tools-portal/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	pair, err := h.authService.SignIn(r.Context(), service.SignInInput{
		Email:    req.Email,
		Password: req.Password,
		ClientIP: middleware.ClientIP(r),
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		http.Error(w, "Something went wrong", http.StatusBadRequest)
		return
	}

	writeJSON(w, TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.RefreshToken == "" {
		http.Error(w, "Refresh token is required", http.StatusBadRequest)
		return
	}

	pair, err := h.authService.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			http.Error(w, "Invalid token", http.StatusBadRequest)
		case errors.Is(err, service.ErrTokenReuse):
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
		default:
			http.Error(w, "Invalid refresh token", http.StatusUnauthorized)
		}
		return
	}

	writeJSON(w, TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.authService.Logout(r.Context(), principal.UserID, principal.SessionID); err != nil {
		http.Error(w, "Session not found", http.StatusUnauthorized)
		return
	}

	writeJSON(w, map[string]bool{"success": true})
}

// LogoutOthers revokes every session of the caller except the current one.
func (h *AuthHandler) LogoutOthers(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	keep := principal.SessionID
	if err := h.authService.DestroySessions(r.Context(), principal.UserID, &keep); err != nil {
		http.Error(w, "Something went wrong", http.StatusBadRequest)
		return
	}

	writeJSON(w, map[string]bool{"success": true})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
