package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/opsdeck/console/internal/console/domain"
	"github.com/opsdeck/console/internal/console/service"
	"github.com/opsdeck/console/internal/console/store"
	"github.com/opsdeck/console/pkg/httpx"
	"github.com/opsdeck/console/pkg/slogx"

	_ "github.com/opsdeck/console/api/console" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	SessionService *service.SessionService
	AccountService *service.AccountService
	UserService    *service.UserService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerAccount()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Admin Console API
//	@version		0.1.0
//	@description	Backend for the admin console: account registration with e-mail
//	@description	verification, password reset, cookie-based sign-in and the
//	@description	server-paginated user management grid.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						ss-id
//	@description				Server-side session id set by the sign-in endpoint.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AccountService: r.AccountService}

	// POST /auth - strict rate limit by IP (account creation)
	r.Mux.Handle("POST /api/v1/auth",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// DELETE /auth - token redemption from mailed links, moderate by IP
	r.Mux.Handle("DELETE /api/v1/auth",
		httpx.Chain(http.HandlerFunc(h.HandleVerify),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// PATCH /auth - reset-flow password change, strict by IP
	r.Mux.Handle("PATCH /api/v1/auth",
		httpx.Chain(http.HandlerFunc(h.HandleChange),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /auth/resend and /auth/reset - mail senders, strict by IP
	r.Mux.Handle("POST /api/v1/auth/resend",
		httpx.Chain(http.HandlerFunc(h.HandleResend),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/v1/auth/reset",
		httpx.Chain(http.HandlerFunc(h.HandleReset),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /auth/sign-in - strict rate limit by IP (authentication attempts)
	r.Mux.Handle("POST /api/v1/auth/sign-in",
		httpx.Chain(http.HandlerFunc(h.HandleSignIn),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	// Admin-only grid endpoints, moderate rate limit by user
	admin := func(next http.Handler) http.Handler {
		return httpx.Chain(next,
			httpx.SessionAuthn(r.SessionService),
			httpx.RequireRole(domain.RoleAdmin),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /api/v1/users", admin(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("POST /api/v1/users", admin(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("PATCH /api/v1/users/{id}", admin(http.HandlerFunc(h.HandleUpdate)))
	r.Mux.Handle("DELETE /api/v1/users/{id}", admin(http.HandlerFunc(h.HandleDelete)))
}

func (r *Router) registerAccount() {
	h := &AccountHandler{UserService: r.UserService}

	// Self-service endpoints, any signed-in role; the handler checks the
	// caller owns the account. Moderate rate limit by user.
	secured := func(next http.Handler) http.Handler {
		return httpx.Chain(next,
			httpx.SessionAuthn(r.SessionService),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("PATCH /api/v1/users/{id}/email", secured(http.HandlerFunc(h.HandleEmail)))
	r.Mux.Handle("PATCH /api/v1/users/{id}/password", secured(http.HandlerFunc(h.HandlePassword)))
	r.Mux.Handle("PATCH /api/v1/users/{id}/profile", secured(http.HandlerFunc(h.HandleProfile)))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
