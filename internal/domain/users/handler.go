package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"ubs-medicacoes/internal/middleware"
	"ubs-medicacoes/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta o CRUD de contas. O chamador aplica RequireRole(admin).
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/users", func(ur chi.Router) {
		ur.Post("/", createUserHandler(svc))
		ur.Get("/", listUsersHandler(svc))
		ur.Get("/{userID}", getUserHandler(svc))
		ur.Patch("/{userID}", updateUserHandler(svc))
		ur.Delete("/{userID}", deleteUserHandler(svc))
	})
}

type createUserRequest struct {
	Login    string    `json:"login"`
	Password string    `json:"senha"`
	Name     string    `json:"nome"`
	Role     auth.Role `json:"tipo"`
	UnitIDs  []string  `json:"ubs_vinculadas"`
}

type updateUserRequest struct {
	Login    *string    `json:"login"`
	Password *string    `json:"senha"`
	Name     *string    `json:"nome"`
	Role     *auth.Role `json:"tipo"`
	UnitIDs  *[]string  `json:"ubs_vinculadas"`
}

// AccountResponse nunca carrega a senha.
type AccountResponse struct {
	ID        string    `json:"id"`
	Login     string    `json:"login"`
	Name      string    `json:"nome"`
	Role      auth.Role `json:"tipo"`
	UnitIDs   []string  `json:"ubs_vinculadas"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// createUserHandler godoc
// @Summary  Cria uma conta (admin ou responsável)
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    body body createUserRequest true "conta"
// @Success  201 {object} AccountResponse
// @Failure  409 {string} string "email já cadastrado"
// @Security BearerAuth
// @Router   /users [post]
func createUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), CreateInput{
			Email:    req.Login,
			Password: req.Password,
			Name:     req.Name,
			Role:     req.Role,
			UnitIDs:  req.UnitIDs,
		})
		if err != nil {
			WriteError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, ToResponse(a))
	}
}

func listUsersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		// ?tipo=responsavel filtra por papel (lista de vinculação do painel)
		role := auth.Role(r.URL.Query().Get("tipo"))

		out := make([]AccountResponse, 0, len(items))
		for _, a := range items {
			if role != "" && a.Role != role {
				continue
			}
			out = append(out, ToResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetAccount(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			WriteError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(a))
	}
}

func updateUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Update(r.Context(), chi.URLParam(r, "userID"), UpdateInput{
			Email:    req.Login,
			Password: req.Password,
			Name:     req.Name,
			Role:     req.Role,
			UnitIDs:  req.UnitIDs,
		})
		if err != nil {
			WriteError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(a))
	}
}

func deleteUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		if err := svc.Delete(r.Context(), claims.UserID, chi.URLParam(r, "userID")); err != nil {
			WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ToResponse(a Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Login:     a.Email,
		Name:      a.Name,
		Role:      a.Role,
		UnitIDs:   a.UnitIDs,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// Erros vindos do linker (pacote links) carregam o próprio status.
type statusCoder interface {
	HTTPStatus() int
}

// WriteError mapeia erros de conta para status HTTP.
func WriteError(w http.ResponseWriter, err error) {
	var sc statusCoder
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrSelfDelete):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrInvalidCredentials):
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
	case errors.As(err, &sc):
		http.Error(w, err.Error(), sc.HTTPStatus())
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
