package adapthttp

import (
	"net/http"

	"brewlog/internal/app"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// OIDCConfig carries the optional SSO configuration. Enabled is false
// when no issuer was configured.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config *oauth2.Config
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	authSvc    *app.AuthService
	beans      *app.BeanService
	grinders   *app.GrinderService
	brews      *app.BrewService
	stats      *app.StatsService
	oidcConfig OIDCConfig
	webDir     string

	// disableAuth skips session checks; only set by handler tests.
	disableAuth bool
}

// New creates a Server wired to the given application services.
func New(auth *app.AuthService, beans *app.BeanService, grinders *app.GrinderService, brews *app.BrewService, stats *app.StatsService, oidcCfg OIDCConfig, webDir string) *Server {
	return &Server{
		authSvc:    auth,
		beans:      beans,
		grinders:   grinders,
		brews:      brews,
		stats:      stats,
		oidcConfig: oidcCfg,
		webDir:     webDir,
	}
}

// WithoutAuth disables session checks. Handler tests use it to reach
// private routes directly; everything then belongs to user 1.
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	// Public surface: auth entry points and the read-only share path.
	api.HandleFunc("POST /auth/signup", s.handleSignup)
	api.HandleFunc("POST /auth/login", s.handleLogin)
	api.HandleFunc("POST /auth/logout", s.handleLogout)
	api.HandleFunc("GET /auth/config", s.handleAuthConfig)
	api.HandleFunc("GET /auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("GET /auth/sso/callback", s.handleSSOCallback)
	api.HandleFunc("GET /share/brews/{brewId}", s.handleSharedBrew)

	// Everything else requires a session.
	private := http.NewServeMux()
	private.HandleFunc("GET /me", s.handleMe)

	private.HandleFunc("GET /dashboard", s.handleDashboard)
	private.HandleFunc("GET /stats/streak", s.handleStreak)
	private.HandleFunc("GET /stats/methods", s.handleFavoriteMethods)
	private.HandleFunc("GET /stats/beans", s.handleTopBeans)

	private.HandleFunc("GET /beans", s.handleListBeans)
	private.HandleFunc("POST /beans", s.handleCreateBean)
	private.HandleFunc("GET /beans/{beanId}", s.handleGetBean)
	private.HandleFunc("PUT /beans/{beanId}", s.handleUpdateBean)
	private.HandleFunc("DELETE /beans/{beanId}", s.handleDeleteBean)

	private.HandleFunc("GET /grinders", s.handleListGrinders)
	private.HandleFunc("POST /grinders", s.handleCreateGrinder)
	private.HandleFunc("PUT /grinders/{grinderId}", s.handleUpdateGrinder)

	private.HandleFunc("GET /brews", s.handleListBrews)
	private.HandleFunc("POST /brews", s.handleCreateBrew)
	private.HandleFunc("GET /brews/{brewId}", s.handleGetBrew)
	private.HandleFunc("PUT /brews/{brewId}", s.handleUpdateBrew)
	private.HandleFunc("DELETE /brews/{brewId}", s.handleDeleteBrew)
	private.HandleFunc("POST /brews/{brewId}/share", s.handleShareBrew)

	api.Handle("/", s.authMiddleware(private))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}
