// Package v1 wires the HTTP surface of the library service.
// It keeps handlers thin, delegating business rules to the service layer.
package v1

import (
	"log/slog"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tinoosan/booksapi/internal/docstore"
	"github.com/tinoosan/booksapi/internal/service/adherent"
	"github.com/tinoosan/booksapi/internal/service/author"
	"github.com/tinoosan/booksapi/internal/service/book"
	"github.com/tinoosan/booksapi/internal/service/loan"
)

// DefaultMaxPageSize caps the limit query parameter when Options leaves it unset.
const DefaultMaxPageSize = 100

// DefaultPageSize is the limit applied when the query omits it.
const DefaultPageSize = 10

// Options tunes behaviour that differs between deployments.
type Options struct {
	// EmptyListNotFound answers 404 instead of 200 [] when a list or
	// traversal matches nothing.
	EmptyListNotFound bool
	MaxPageSize       int64
	CORSOrigins       []string
}

// Server wires handlers and middleware using Chi.
type Server struct {
	authors   author.Service
	books     book.Service
	adherents adherent.Service
	loans     loan.Service
	tokens    TokenAuthority
	ready     ReadyChecker
	opts      Options
	log       *slog.Logger
	rt        *chi.Mux
}

// New constructs the HTTP server with routes and middleware.
// The logger is used by request logging, panic recovery and internal error reporting.
func New(store docstore.Store, hasher adherent.PasswordHasher, tokens TokenAuthority, opts Options, logger *slog.Logger) *Server {
	if opts.MaxPageSize <= 0 {
		opts.MaxPageSize = DefaultMaxPageSize
	}
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
		}))
	}

	s := &Server{
		authors:   author.New(store.Authors(), store.Books()),
		books:     book.New(store.Books(), store.Authors()),
		adherents: adherent.New(store.Adherents(), store.Loans(), hasher, tokens),
		loans:     loan.New(store.Loans()),
		tokens:    tokens,
		ready:     store,
		opts:      opts,
		log:       logger,
		rt:        r,
	}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints and attaches any per-route middleware.
func (s *Server) routes() {
	s.rt.Route("/authors", func(r chi.Router) {
		r.With(s.validateListAuthors()).Get("/", s.listAuthors)
		r.With(s.validateAuthorBody()).Post("/", s.postAuthor)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(s.validateID("author"))
			r.Get("/", s.getAuthor)
			r.With(s.validateAuthorBody()).Put("/", s.putAuthor)
			r.Delete("/", s.deleteAuthor)
			r.Get("/books", s.getAuthorBooks)
		})
	})
	s.rt.Route("/books", func(r chi.Router) {
		r.With(s.validateListBooks()).Get("/", s.listBooks)
		r.With(s.validateBookBody()).Post("/", s.postBook)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(s.validateID("book"))
			r.Get("/", s.getBook)
			r.With(s.validateBookBody()).Put("/", s.putBook)
			r.Delete("/", s.deleteBook)
			r.Get("/author", s.getBookAuthor)
		})
	})
	s.rt.Route("/adherents", func(r chi.Router) {
		r.With(s.validateListAdherents()).Get("/", s.listAdherents)
		r.With(s.validateAdherentBody()).Post("/", s.postAdherent)
		r.With(s.validateLoginBody()).Post("/login", s.login)
		r.Get("/me", s.me)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(s.validateID("adherent"))
			r.Get("/", s.getAdherent)
			r.With(s.validateAdherentBody()).Put("/", s.putAdherent)
			r.Delete("/", s.deleteAdherent)
			r.Get("/loans", s.getAdherentLoans)
		})
	})
	s.rt.Route("/loans", func(r chi.Router) {
		r.With(s.validateListLoans()).Get("/", s.listLoans)
		r.With(s.validateLoanBody()).Post("/", s.postLoan)
		r.With(s.validateListLoans()).Delete("/", s.deleteLoans)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(s.validateID("loan"))
			r.Get("/", s.getLoan)
			r.With(s.validateLoanBody()).Put("/", s.putLoan)
			r.Delete("/", s.deleteLoan)
		})
	})
	// Dictionary
	s.rt.Get("/dictionary/book-types", s.getBookTypesDictionary)
	s.rt.Get("/dictionary/roles", s.getRolesDictionary)
	// Health (unversioned)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	s.rt.Handle("/metrics", metricsHandler())
}
