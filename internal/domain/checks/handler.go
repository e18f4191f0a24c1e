package checks

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"ubs-medicacoes/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta as checagens do responsável. O chamador aplica RequireAuth.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/me/units/{unitID}/checks/{period}", markHandler(svc))
	r.Get("/me/units/{unitID}/checks", todayHandler(svc))
}

type Response struct {
	UnitID      string     `json:"unit_id"`
	Day         string     `json:"dia"`
	Morning     bool       `json:"manha"`
	Afternoon   bool       `json:"tarde"`
	MorningAt   *time.Time `json:"manha_em,omitempty"`
	AfternoonAt *time.Time `json:"tarde_em,omitempty"`
	Complete    bool       `json:"completo"`
}

// markHandler godoc
// @Summary  Marca a checagem do turno (manha|tarde) de hoje
// @Tags     checks
// @Produce  json
// @Param    unitID path string true "ID da UBS"
// @Param    period path string true "manha ou tarde"
// @Success  200 {object} Response
// @Failure  403 {string} string
// @Failure  409 {string} string "turno já marcado"
// @Security BearerAuth
// @Router   /me/units/{unitID}/checks/{period} [post]
func markHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		unitID := chi.URLParam(r, "unitID")
		period := Period(chi.URLParam(r, "period"))

		c, err := svc.Mark(r.Context(), claims.UserID, unitID, period)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(c))
	}
}

func todayHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		c, err := svc.Today(r.Context(), claims.UserID, chi.URLParam(r, "unitID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(c))
	}
}

func ToResponse(c DailyCheck) Response {
	return Response{
		UnitID:      c.UnitID,
		Day:         c.Day,
		Morning:     c.Morning,
		Afternoon:   c.Afternoon,
		MorningAt:   c.MorningAt,
		AfternoonAt: c.AfternoonAt,
		Complete:    c.Complete(),
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrAlreadyMarked):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
