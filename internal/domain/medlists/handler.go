package medlists

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"ubs-medicacoes/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// folga para os cabeçalhos multipart além do próprio arquivo
const multipartOverhead = 1 << 20

// RegisterRoutes monta o upload. O chamador aplica RequireAuth;
// o Service exige admin ou o responsável vinculado à UBS.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/me/units/{unitID}/pdf", uploadHandler(svc))
	r.Get("/me/units/{unitID}/pdf", getHandler(svc))
}

type Response struct {
	UnitID     string    `json:"unit_id"`
	URL        string    `json:"url"`
	FileName   string    `json:"nome_arquivo"`
	SizeBytes  int64     `json:"tamanho"`
	UploadedBy string    `json:"enviado_por"`
	UploadedAt time.Time `json:"data_upload"`
}

// uploadHandler godoc
// @Summary  Envia o PDF de medicações da UBS (substitui o anterior)
// @Tags     medlists
// @Accept   multipart/form-data
// @Produce  json
// @Param    unitID path string true "ID da UBS"
// @Param    file formData file true "PDF (máx. 10MB)"
// @Success  201 {object} Response
// @Failure  413 {string} string
// @Failure  415 {string} string
// @Security BearerAuth
// @Router   /me/units/{unitID}/pdf [post]
func uploadHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		unitID := chi.URLParam(r, "unitID")

		// antes de ler o corpo multipart
		if err := svc.Authorize(r.Context(), claims.UserID, claims.IsAdmin(), unitID); err != nil {
			writeError(w, err)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, svc.MaxBytes()+multipartOverhead)
		file, header, err := r.FormFile("file")
		if err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				http.Error(w, ErrTooLarge.Error(), http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "multipart field 'file' is required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		m, err := svc.Upload(r.Context(), UploadInput{
			UnitID:      unitID,
			ActorID:     claims.UserID,
			ActorAdmin:  claims.IsAdmin(),
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        file,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, ToResponse(m))
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		unitID := chi.URLParam(r, "unitID")

		if err := svc.Authorize(r.Context(), claims.UserID, claims.IsAdmin(), unitID); err != nil {
			writeError(w, err)
			return
		}

		m, err := svc.Get(r.Context(), unitID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(m))
	}
}

func ToResponse(m MedicationList) Response {
	return Response{
		UnitID:     m.UnitID,
		URL:        m.URL,
		FileName:   m.FileName,
		SizeBytes:  m.SizeBytes,
		UploadedBy: m.UploadedBy,
		UploadedAt: m.UploadedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUnitNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrNotPDF):
		http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
	case errors.Is(err, ErrTooLarge):
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
