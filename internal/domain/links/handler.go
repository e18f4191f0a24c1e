package links

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta as rotas de vinculação. O chamador aplica RequireRole(admin).
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Put("/units/{unitID}/responsible", setUnitResponsibleHandler(svc))
	r.Put("/users/{userID}/units", setUserUnitsHandler(svc))
	r.Post("/users/{userID}/units/{unitID}/toggle", toggleLinkHandler(svc))
}

type setResponsibleRequest struct {
	UserID *string `json:"user_id"` // null = desvincular
}

type setUserUnitsRequest struct {
	UnitIDs []string `json:"unit_ids"`
}

type unitLinkResponse struct {
	UnitID string `json:"unit_id"`
	UserID string `json:"user_id,omitempty"`
}

type userUnitsResponse struct {
	UserID  string   `json:"user_id"`
	UnitIDs []string `json:"unit_ids"`
}

type toggleResponse struct {
	UserID string `json:"user_id"`
	UnitID string `json:"unit_id"`
	Linked bool   `json:"linked"`
}

// setUnitResponsibleHandler godoc
// @Summary  Define o responsável (1:1) de uma UBS
// @Tags     links
// @Accept   json
// @Produce  json
// @Param    unitID path string true "ID da UBS"
// @Param    body body setResponsibleRequest true "user_id ou null"
// @Success  200 {object} unitLinkResponse
// @Security BearerAuth
// @Router   /units/{unitID}/responsible [put]
func setUnitResponsibleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setResponsibleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		unitID := chi.URLParam(r, "unitID")
		userID := ""
		if req.UserID != nil {
			userID = *req.UserID
		}

		if err := svc.SetUnitResponsible(r.Context(), unitID, userID); err != nil {
			writeError(w, err)
			return
		}

		current, err := svc.ResponsibleOf(r.Context(), unitID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, unitLinkResponse{UnitID: unitID, UserID: current})
	}
}

func setUserUnitsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setUserUnitsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		userID := chi.URLParam(r, "userID")
		if err := svc.SetUserUnits(r.Context(), userID, req.UnitIDs); err != nil {
			writeError(w, err)
			return
		}

		ids, err := svc.UnitsOf(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, userUnitsResponse{UserID: userID, UnitIDs: ids})
	}
}

func toggleLinkHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")
		unitID := chi.URLParam(r, "unitID")

		linked, err := svc.Toggle(r.Context(), userID, unitID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toggleResponse{UserID: userID, UnitID: unitID, Linked: linked})
	}
}

func writeError(w http.ResponseWriter, err error) {
	var le *Error
	switch {
	case errors.As(err, &le):
		http.Error(w, le.Error(), le.HTTPStatus())
	case errors.Is(err, ErrNotFound):
		http.Error(w, "link not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
