// Package server exposes maple over a JSON REST API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/maple-budget/maple/internal/activity"
	"github.com/maple-budget/maple/internal/budget"
	"github.com/maple-budget/maple/internal/coach"
	"github.com/maple-budget/maple/internal/debt"
	"github.com/maple-budget/maple/internal/model"
	"github.com/maple-budget/maple/internal/networth"
)

// UserStore creates and looks up users.
type UserStore interface {
	CreateUser(ctx context.Context, u model.User) error
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	Ping(ctx context.Context) error
}

// Deps are the services behind the API. Coach may be nil when no LLM is configured.
type Deps struct {
	Users    UserStore
	Debts    *debt.Service
	NetWorth *networth.Service
	Budgets  *budget.Service
	Coach    *coach.Service
	// Activity records user sign-ups. Nil discards them.
	Activity activity.Recorder
}

// Options tune the API.
type Options struct {
	// UserHeader names the header carrying the authenticated user's email.
	UserHeader string
	// Province fills calculator requests that leave it out.
	Province     model.Province
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Logger       *zap.Logger
}

// Server routes API requests to the services.
type Server struct {
	deps   Deps
	opts   Options
	logger *zap.Logger
	router chi.Router
	now    func() time.Time
}

// New builds a Server and its routes.
func New(deps Deps, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if deps.Activity == nil {
		deps.Activity = activity.Nop{}
	}
	if opts.UserHeader == "" {
		opts.UserHeader = "X-User-Email"
	}
	if opts.Province == "" {
		opts.Province = model.ProvinceON
	}
	s := &Server{deps: deps, opts: opts, logger: opts.Logger, now: time.Now}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", s.handleCreateUser)

		r.Route("/calculators", func(r chi.Router) {
			r.Post("/tax", s.handleTax)
			r.Post("/min-payment", s.handleMinPayment)
			r.Post("/loan-payoff", s.handleLoanPayoff)
			r.Post("/loan", s.handleLoan)
			r.Post("/mortgage", s.handleMortgage)
			r.Post("/affordability", s.handleAffordability)
			r.Post("/rrsp-tfsa", s.handleRRSPTFSA)
			r.Post("/buy-vs-rent", s.handleBuyVsRent)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireUser)

			r.Route("/debts", func(r chi.Router) {
				r.Get("/", s.handleListDebts)
				r.Post("/", s.handleCreateDebt)
				r.Get("/payoff", s.handleDebtPayoff)
				r.Get("/{id}", s.handleGetDebt)
				r.Put("/{id}", s.handleUpdateDebt)
				r.Delete("/{id}", s.handleDeleteDebt)
			})
			r.Route("/assets", func(r chi.Router) {
				r.Get("/", s.handleListAssets)
				r.Post("/", s.handleCreateAsset)
				r.Get("/{id}", s.handleGetAsset)
				r.Put("/{id}", s.handleUpdateAsset)
				r.Delete("/{id}", s.handleDeleteAsset)
			})
			r.Route("/liabilities", func(r chi.Router) {
				r.Get("/", s.handleListLiabilities)
				r.Post("/", s.handleCreateLiability)
				r.Get("/{id}", s.handleGetLiability)
				r.Put("/{id}", s.handleUpdateLiability)
				r.Delete("/{id}", s.handleDeleteLiability)
			})
			r.Get("/net-worth", s.handleNetWorth)
			r.Route("/budgets", func(r chi.Router) {
				r.Get("/", s.handleListBudgets)
				r.Post("/", s.handleCreateBudget)
				r.Get("/{id}", s.handleGetBudget)
				r.Put("/{id}", s.handleUpdateBudget)
				r.Delete("/{id}", s.handleDeleteBudget)
				r.Get("/{id}/summary", s.handleBudgetSummary)
			})
			r.Route("/ai-coach", func(r chi.Router) {
				r.Get("/audit", s.handleListAudits)
				r.Post("/audit", s.handleCreateAudit)
				r.Post("/audit/{id}/complete", s.handleCompleteAudit)
				r.Post("/chat", s.handleChat)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.respondError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	return r
}

// Serve serves the API on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		ErrorLog:     zap.NewStdLog(s.logger),
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.logger.Info("api listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errc:
		return fmt.Errorf("serving api: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down api: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving api: %w", err)
	}
	s.logger.Info("api stopped")
	return nil
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Users.Ping(r.Context()); err != nil {
		s.logger.Error("health check failed", zap.Error(err))
		s.respondError(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"}, "")
}
