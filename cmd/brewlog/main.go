package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	adapthttp "brewlog/internal/adapter/http"
	"brewlog/internal/adapter/postgres"
	"brewlog/internal/app"
	"brewlog/internal/config"

	"github.com/coreos/go-oidc/v3/oidc"
	_ "github.com/joho/godotenv/autoload"
	"golang.org/x/oauth2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer func() { _ = db.Close() }()

	sessionRepo := postgres.NewSessionRepo(db)

	authSvc := app.NewAuthService(db, sessionRepo)
	beanSvc := app.NewBeanService(db, db)
	grinderSvc := app.NewGrinderService(db)
	brewSvc := app.NewBrewService(db, db)
	statsSvc := app.NewStatsService(db, db)

	oidcCfg, err := buildOIDC(cfg)
	if err != nil {
		log.Fatalf("oidc: %v", err)
	}

	go cleanupSessions(authSvc)

	h := adapthttp.New(authSvc, beanSvc, grinderSvc, brewSvc, statsSvc, oidcCfg, cfg.WebDir).Handler()
	log.Printf("listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func buildOIDC(cfg *config.Config) (adapthttp.OIDCConfig, error) {
	if !cfg.SSOEnabled() {
		return adapthttp.OIDCConfig{}, nil
	}

	provider, err := oidc.NewProvider(context.Background(), cfg.OIDCIssuer)
	if err != nil {
		return adapthttp.OIDCConfig{}, err
	}

	return adapthttp.OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: &oauth2.Config{
			ClientID:     cfg.OIDCClientID,
			ClientSecret: cfg.OIDCClientSecret,
			RedirectURL:  cfg.OIDCRedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}

// cleanupSessions drops expired sessions once an hour.
func cleanupSessions(authSvc *app.AuthService) {
	for {
		time.Sleep(time.Hour)
		if err := authSvc.CleanupExpiredSessions(context.Background()); err != nil {
			log.Printf("session cleanup: %v", err)
		}
	}
}
