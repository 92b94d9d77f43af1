package web_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akstore/bookstore-admin/internal/core"
	"github.com/akstore/bookstore-admin/internal/session"
)

// popFlash decodes the toast set by an action response, using the
// app's own cookie store.
func popFlash(t *testing.T, app *core.App, resp *http.Response) *session.Flash {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range resp.Cookies() {
		if c.Name == "flash" {
			req.AddCookie(c)
		}
	}
	return app.Sessions.PopFlash(httptest.NewRecorder(), req)
}

func requireRedirect(t *testing.T, resp *http.Response, target string) {
	t.Helper()

	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("Expected status 303, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != target {
		t.Fatalf("Expected redirect to %q, got %q", target, loc)
	}
}
