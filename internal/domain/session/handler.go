package session

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"ubs-medicacoes/internal/domain/users"
	"ubs-medicacoes/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterPublicRoutes monta o login (sem autenticação).
func RegisterPublicRoutes(r chi.Router, svc *Service) {
	r.Post("/auth/login", loginHandler(svc))
}

// RegisterRoutes monta /me. O chamador aplica RequireAuth.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/me", meHandler(svc))
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"senha"`
}

type LoginResponse struct {
	Token     string                `json:"token"`
	ExpiresAt time.Time             `json:"expires_at"`
	User      users.AccountResponse `json:"user"`
}

// loginHandler godoc
// @Summary  Login com email e senha
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body loginRequest true "credenciais"
// @Success  200 {object} LoginResponse
// @Failure  401 {string} string
// @Router   /auth/login [post]
func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		tok, acc, err := svc.Login(r.Context(), req.Login, req.Password)
		if err != nil {
			if errors.Is(err, ErrUnavailable) {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
			users.WriteError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, LoginResponse{
			Token:     tok.Value,
			ExpiresAt: tok.ExpiresAt,
			User:      users.ToResponse(acc),
		})
	}
}

// meHandler godoc
// @Summary  Usuário autenticado e UBS vinculadas
// @Tags     auth
// @Produce  json
// @Success  200 {object} users.AccountResponse
// @Security BearerAuth
// @Router   /me [get]
func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		acc, err := svc.Me(r.Context(), claims.UserID)
		if err != nil {
			users.WriteError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, users.ToResponse(acc))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
