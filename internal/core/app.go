package core

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/akstore/bookstore-admin/internal/apiclient"
	"github.com/akstore/bookstore-admin/internal/config"
	"github.com/akstore/bookstore-admin/internal/i18n"
	"github.com/akstore/bookstore-admin/internal/session"
)

// App holds the core components of the application shared by every
// request: the configuration, the backend API client, the cookie store
// and the localization tables.
type App struct {
	Config     *config.Config
	API        *apiclient.Client
	Sessions   *session.Store
	Translator *i18n.Translator
	Version    string
}

// New sets up and returns a new App instance. It loads the .env file
// (if present), the configuration and the locale tables. A missing
// backend origin or session secret fails here, before the server
// accepts a single request.
func New() (*App, error) {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment overrides from .env")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	translator, err := i18n.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load locales: %w", err)
	}

	log.Printf("Core application setup complete (backend %s).", cfg.APIURL)
	return &App{
		Config:     cfg,
		API:        apiclient.New(cfg.APIURL),
		Sessions:   session.NewStore(cfg.Session.Secret, cfg.IsProduction()),
		Translator: translator,
	}, nil
}
