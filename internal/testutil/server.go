package testutil

import (
	"net/http/httptest"
	"testing"

	"github.com/akstore/bookstore-admin/internal/apiclient"
	"github.com/akstore/bookstore-admin/internal/config"
	"github.com/akstore/bookstore-admin/internal/core"
	"github.com/akstore/bookstore-admin/internal/i18n"
	"github.com/akstore/bookstore-admin/internal/session"
	"github.com/akstore/bookstore-admin/internal/web"
)

// SetupTestServer spins up a FakeBackend plus the admin web server
// wired against it, returning both so a test can drive the UI with an
// HTTP client and inspect or seed backend state directly.
func SetupTestServer(t *testing.T) (*httptest.Server, *FakeBackend, *core.App) {
	t.Helper()

	backend := NewFakeBackend(t)

	cfg := &config.Config{
		Port:        0,
		APIURL:      backend.URL(),
		Environment: "test",
	}
	cfg.Session.Secret = "test-secret-key-for-cookie-signing"

	translator, err := i18n.Load()
	if err != nil {
		t.Fatalf("Failed to load locales: %v", err)
	}

	app := &core.App{
		Config:     cfg,
		API:        apiclient.New(cfg.APIURL),
		Sessions:   session.NewStore(cfg.Session.Secret, cfg.IsProduction()),
		Translator: translator,
		Version:    "test",
	}

	ts := httptest.NewServer(web.NewServer(app).Router())
	t.Cleanup(ts.Close)
	return ts, backend, app
}
