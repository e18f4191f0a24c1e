package directory

import (
	"encoding/json"
	"errors"
	"net/http"

	"ubs-medicacoes/internal/domain/units"
	"ubs-medicacoes/internal/middleware"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"
)

// RegisterPublicRoutes monta o portal público (sem login).
func RegisterPublicRoutes(r chi.Router, svc *Service) {
	r.Route("/public/units", func(pr chi.Router) {
		pr.Get("/", searchHandler(svc))
		pr.Get("/{unitID}", getCardHandler(svc))
		pr.Get("/{unitID}/pdf", pdfRedirectHandler(svc))
		pr.Get("/{unitID}/qrcode.png", qrCodeHandler(svc))
	})
}

// RegisterRoutes monta o painel do responsável. O chamador aplica RequireAuth.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/me/units", myUnitsHandler(svc))
}

type TodayResponse struct {
	Morning   bool `json:"manha"`
	Afternoon bool `json:"tarde"`
	Complete  bool `json:"completo"`
}

type CardResponse struct {
	units.UnitResponse

	Responsible   string        `json:"responsavel"`
	ResponsibleID string        `json:"responsavel_id,omitempty"`
	PDFURL        string        `json:"pdf_url,omitempty"`
	DownloadName  string        `json:"nome_download,omitempty"`
	LastUpdate    string        `json:"ultima_atualizacao,omitempty"`
	Today         TodayResponse `json:"checagem_hoje"`
}

// searchHandler godoc
// @Summary  Busca pública de UBS por nome, localidade ou responsável
// @Tags     public
// @Produce  json
// @Param    q query string false "texto da busca"
// @Success  200 {array} CardResponse
// @Router   /public/units [get]
func searchHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Search(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponses(svc, items))
	}
}

func getCardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.Get(r.Context(), chi.URLParam(r, "unitID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(svc, c))
	}
}

// pdfRedirectHandler godoc
// @Summary  Redireciona para o PDF vigente da UBS
// @Tags     public
// @Param    unitID path string true "ID da UBS"
// @Success  302
// @Failure  404 {string} string
// @Router   /public/units/{unitID}/pdf [get]
func pdfRedirectHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, link, err := svc.PDFLink(r.Context(), chi.URLParam(r, "unitID"))
		if err != nil {
			writeError(w, err)
			return
		}
		http.Redirect(w, r, link, http.StatusFound)
	}
}

// qrCodeHandler godoc
// @Summary  QR code (PNG) apontando para o PDF da UBS
// @Tags     public
// @Produce  png
// @Param    unitID path string true "ID da UBS"
// @Param    size query int false "lado em pixels (64..1024)"
// @Success  200 {file} binary
// @Failure  404 {string} string
// @Router   /public/units/{unitID}/qrcode.png [get]
func qrCodeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		size, err := QRCodeSize(r.URL.Query().Get("size"))
		if err != nil {
			writeError(w, err)
			return
		}

		_, link, err := svc.PDFLink(r.Context(), chi.URLParam(r, "unitID"))
		if err != nil {
			writeError(w, err)
			return
		}

		png, err := qrcode.Encode(link, qrcode.Highest, size)
		if err != nil {
			http.Error(w, "qr code error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(png)
	}
}

// myUnitsHandler godoc
// @Summary  UBS do responsável autenticado, com PDF e checagens de hoje
// @Tags     dashboard
// @Produce  json
// @Success  200 {array} CardResponse
// @Security BearerAuth
// @Router   /me/units [get]
func myUnitsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		items, err := svc.ForResponsible(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponses(svc, items))
	}
}

func ToResponse(svc *Service, c Card) CardResponse {
	return CardResponse{
		UnitResponse:  units.ToResponse(c.Unit),
		Responsible:   c.ResponsibleName,
		ResponsibleID: c.ResponsibleID,
		PDFURL:        c.PDFURL,
		DownloadName:  c.DownloadName,
		LastUpdate:    svc.FormatDate(c.UpdatedAt),
		Today: TodayResponse{
			Morning:   c.Morning,
			Afternoon: c.Afternoon,
			Complete:  c.CheckedToday(),
		},
	}
}

func toResponses(svc *Service, items []Card) []CardResponse {
	out := make([]CardResponse, 0, len(items))
	for _, c := range items {
		out = append(out, ToResponse(svc, c))
	}
	return out
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNoPDF):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInvalidSize):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
