package units

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta o CRUD de UBS. O chamador aplica RequireRole(admin).
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/units", func(ur chi.Router) {
		ur.Post("/", createUnitHandler(svc))
		ur.Get("/", listUnitsHandler(svc))
		ur.Get("/{unitID}", getUnitHandler(svc))
		ur.Patch("/{unitID}", updateUnitHandler(svc))
		ur.Delete("/{unitID}", deleteUnitHandler(svc))
	})
}

type createUnitRequest struct {
	Name     string `json:"nome"`
	Locality string `json:"localidade"`
	Hours    string `json:"horarios"`
	Contact  string `json:"contato"`
	Status   Status `json:"status"`
}

type updateUnitRequest struct {
	Name     *string `json:"nome"`
	Locality *string `json:"localidade"`
	Hours    *string `json:"horarios"`
	Contact  *string `json:"contato"`
	Status   *Status `json:"status"`
}

type UnitResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nome"`
	Locality  string    `json:"localidade"`
	Hours     string    `json:"horarios"`
	Contact   string    `json:"contato,omitempty"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// createUnitHandler godoc
// @Summary  Cria uma UBS
// @Tags     units
// @Accept   json
// @Produce  json
// @Param    body body createUnitRequest true "UBS"
// @Success  201 {object} UnitResponse
// @Failure  400 {string} string
// @Security BearerAuth
// @Router   /units [post]
func createUnitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUnitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.Create(r.Context(), CreateInput{
			Name:     req.Name,
			Locality: req.Locality,
			Hours:    req.Hours,
			Contact:  req.Contact,
			Status:   req.Status,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, ToResponse(u))
	}
}

func listUnitsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]UnitResponse, 0, len(items))
		for _, u := range items {
			out = append(out, ToResponse(u))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getUnitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.GetByID(r.Context(), chi.URLParam(r, "unitID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(u))
	}
}

// updateUnitHandler godoc
// @Summary  Atualiza campos de uma UBS (PATCH parcial)
// @Tags     units
// @Accept   json
// @Produce  json
// @Param    unitID path string true "ID da UBS"
// @Param    body body updateUnitRequest true "campos"
// @Success  200 {object} UnitResponse
// @Security BearerAuth
// @Router   /units/{unitID} [patch]
func updateUnitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateUnitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.Update(r.Context(), chi.URLParam(r, "unitID"), UpdateInput{
			Name:     req.Name,
			Locality: req.Locality,
			Hours:    req.Hours,
			Contact:  req.Contact,
			Status:   req.Status,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(u))
	}
}

func deleteUnitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "unitID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ToResponse é exportado porque o diretório público e o painel do responsável
// embutem a mesma representação.
func ToResponse(u Unit) UnitResponse {
	return UnitResponse{
		ID:        u.ID,
		Name:      u.Name,
		Locality:  u.Locality,
		Hours:     u.Hours,
		Contact:   u.Contact,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "unit not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
