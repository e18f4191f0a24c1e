package router

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	_ "ubs-medicacoes/docs"
	memblob "ubs-medicacoes/internal/adapters/blob/memory"
	mem "ubs-medicacoes/internal/adapters/storage/memory"
	pg "ubs-medicacoes/internal/adapters/storage/postgres"
	"ubs-medicacoes/internal/domain/checks"
	"ubs-medicacoes/internal/domain/directory"
	"ubs-medicacoes/internal/domain/links"
	"ubs-medicacoes/internal/domain/medlists"
	"ubs-medicacoes/internal/domain/session"
	"ubs-medicacoes/internal/domain/units"
	"ubs-medicacoes/internal/domain/users"
	"ubs-medicacoes/internal/middleware"
	"ubs-medicacoes/internal/platform/logger"
	"ubs-medicacoes/internal/ports/auth"
	"ubs-medicacoes/internal/ports/blob"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/handlers"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // pode ser nil (modo dev, headers de debug)
	TokenIssuer  auth.TokenIssuer  // nil desliga /auth/login

	// Opcional: se vier, usa Postgres. Senão, in-memory.
	DB *sql.DB

	// Opcional: nil = blob em memória servido em /files.
	Blob blob.Store

	Logger        logger.Logger
	Location      *time.Location
	MaxPDFBytes   int64
	CORSOrigins   []string
	PublicBaseURL string

	// Opcional: serviços já montados (testes e create-admin usam os mesmos).
	Services *Services
}

// Services agrupa os serviços de domínio ligados entre si.
type Services struct {
	Units     *units.Service
	Users     *users.Service
	Links     *links.Service
	MedLists  *medlists.Service
	Checks    *checks.Service
	Session   *session.Service
	Directory *directory.Service

	blob blob.Store
}

// NewServices monta repositórios e serviços. A ordem importa: links precisa
// dos repos de units/users, e units/users recebem os módulos dependentes
// para limpar vínculos, PDFs e checagens ao apagar.
func NewServices(opts Options) *Services {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	var (
		unitRepo  units.Repository
		userRepo  users.Repository
		linkRepo  links.Repository
		medRepo   medlists.Repository
		checkRepo checks.Repository
	)
	if opts.DB != nil {
		unitRepo = pg.NewUnitsRepo(opts.DB)
		userRepo = pg.NewUsersRepo(opts.DB)
		linkRepo = pg.NewLinksRepo(opts.DB)
		medRepo = pg.NewMedListsRepo(opts.DB)
		checkRepo = pg.NewChecksRepo(opts.DB)
	} else {
		unitRepo = mem.NewUnitRepo()
		userRepo = mem.NewUserRepo()
		linkRepo = mem.NewLinkRepo()
		medRepo = mem.NewMedListRepo()
		checkRepo = mem.NewCheckRepo()
	}

	store := opts.Blob
	if store == nil {
		store = memblob.New("")
	}

	linksSvc := links.NewService(linkRepo, unitRepo, userRepo)
	medSvc := medlists.NewService(medRepo, store, unitRepo, linksSvc, opts.MaxPDFBytes, log.With(map[string]any{"module": "medlists"}))
	checksSvc := checks.NewService(checkRepo, linksSvc, opts.Location)
	unitsSvc := units.NewService(unitRepo, linksSvc, medSvc, checksSvc)
	usersSvc := users.NewService(userRepo, linksSvc, linksSvc, checksSvc)
	sessionSvc := session.NewService(usersSvc, opts.TokenIssuer, log.With(map[string]any{"module": "session"}))
	dirSvc := directory.NewService(directory.Deps{
		Units:         unitsSvc,
		Users:         userRepo,
		Links:         linksSvc,
		MedLists:      medSvc,
		Checks:        checksSvc,
		PublicBaseURL: opts.PublicBaseURL,
	})

	return &Services{
		Units:     unitsSvc,
		Users:     usersSvc,
		Links:     linksSvc,
		MedLists:  medSvc,
		Checks:    checksSvc,
		Session:   sessionSvc,
		Directory: dirSvc,
		blob:      store,
	}
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	svcs := opts.Services
	if svcs == nil {
		svcs = NewServices(opts)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.Recover(log))

	r.Use(middleware.AuthContext(opts.AuthVerifier))
	if opts.AuthVerifier != nil {
		// o papel vem da conta, não do token
		r.Use(middleware.CurrentRole(svcs.Users))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	if ms, ok := svcs.blob.(*memblob.Store); ok {
		r.Get("/files/*", filesHandler(ms))
	}

	// Rotas públicas
	session.RegisterPublicRoutes(r, svcs.Session)
	directory.RegisterPublicRoutes(r, svcs.Directory)

	// Qualquer usuário autenticado
	r.Group(func(ar chi.Router) {
		ar.Use(middleware.RequireAuth)

		session.RegisterRoutes(ar, svcs.Session)
		directory.RegisterRoutes(ar, svcs.Directory)
		medlists.RegisterRoutes(ar, svcs.MedLists)
		checks.RegisterRoutes(ar, svcs.Checks)
	})

	// Administração
	r.Group(func(ar chi.Router) {
		ar.Use(middleware.RequireRole(auth.RoleAdmin))

		units.RegisterRoutes(ar, svcs.Units)
		users.RegisterRoutes(ar, svcs.Users)
		links.RegisterRoutes(ar, svcs.Links)
	})

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)(r)
}

// filesHandler serve os PDFs do blob em memória (dev e testes).
func filesHandler(store *memblob.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		b, err := store.Get(path)
		if err != nil {
			if errors.Is(err, blob.ErrNotFound) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", medlists.ContentTypePDF)
		w.Header().Set("Content-Disposition", "inline")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}
}
