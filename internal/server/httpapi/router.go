// Package httpapi exposes Bookwise over HTTP using the chi router.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/bookwise/internal/common"
	"github.com/dmitrijs2005/bookwise/internal/logging"
	"github.com/dmitrijs2005/bookwise/internal/server/auth"
	"github.com/dmitrijs2005/bookwise/internal/server/models"
	"github.com/dmitrijs2005/bookwise/internal/server/services"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// UserService registers and logs in users.
type UserService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.Session, error)
}

// Recommender answers recommendation queries.
type Recommender interface {
	Recommend(ctx context.Context, user *models.User, q models.RecommendationQuery) ([]models.Book, error)
}

// SavedBookService manages saved books.
type SavedBookService interface {
	Save(ctx context.Context, user *models.User, book models.Book) (*models.SavedBook, error)
	List(ctx context.Context, user *models.User) ([]*models.SavedBook, error)
	Delete(ctx context.Context, user *models.User, id string) error
	Check(ctx context.Context, user *models.User, title, author string) (bool, string, error)
	Export(ctx context.Context, user *models.User) (*services.Export, error)
}

// Deps are the collaborators of the HTTP API. Observer and Gatherer are
// optional.
type Deps struct {
	Users           UserService
	Recommendations Recommender
	SavedBooks      SavedBookService
	Guard           *auth.Guard
	Logger          logging.Logger
	Observer        HTTPObserver
	Gatherer        prometheus.Gatherer

	CORSAllowedOrigins []string
	RateLimitRequests  int
	RateLimitWindow    time.Duration
}

type handler struct {
	users UserService
	recs  Recommender
	saved SavedBookService
}

// NewRouter builds the HTTP handler tree.
func NewRouter(d Deps) http.Handler {
	h := &handler{
		users: d.Users,
		recs:  d.Recommendations,
		saved: d.SavedBooks,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(accessLog(d.Logger.With("module", "http_access"), d.Observer))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", common.AuthorizationHeaderName},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", h.health)
	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}
	r.Get("/recommendations/filters", h.filters)

	r.Group(func(r chi.Router) {
		if d.RateLimitRequests > 0 {
			r.Use(httprate.Limit(d.RateLimitRequests, d.RateLimitWindow,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
					writeJSON(w, http.StatusTooManyRequests, ErrorResponse{Error: "rate_limited", Message: "too many requests"})
				}),
			))
		}

		r.Post("/auth/register", h.register)
		r.Post("/auth/login", h.login)

		r.Group(func(r chi.Router) {
			r.Use(requireUser(d.Guard))

			r.Get("/auth/me", h.me)
			r.Post("/auth/logout", h.logout)
			r.Post("/recommendations", h.recommend)
			r.Post("/recommendations/quick", h.quickRecommend)
			r.Get("/recommendations/search", h.searchRecommend)

			r.Route("/saved-books", func(r chi.Router) {
				r.Post("/", h.saveBook)
				r.Get("/", h.listSaved)
				r.Get("/check", h.checkSaved)
				r.Post("/export", h.exportSaved)
				r.Delete("/{id}", h.deleteSaved)
			})
		})
	})

	return r
}
