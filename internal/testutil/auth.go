package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

// NoRedirectClient returns an HTTP client that reports redirects back
// to the test instead of following them, so handlers' 303s can be
// asserted directly.
func NoRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// AuthCookies logs in against the admin UI with the fake backend's
// credentials and returns the session cookies to attach to subsequent
// requests.
func AuthCookies(t *testing.T, ts *httptest.Server) []*http.Cookie {
	t.Helper()

	form := url.Values{}
	form.Set("email", TestEmail)
	form.Set("password", TestPassword)

	resp, err := NoRedirectClient().Post(
		ts.URL+"/login",
		"application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		t.Fatalf("Failed to log in: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("Expected redirect after login, got status %d", resp.StatusCode)
	}
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		t.Fatal("Expected session cookies after login, got none")
	}
	return cookies
}

// AuthedRequest builds a request against the test server with the
// session cookies attached.
func AuthedRequest(t *testing.T, method, target string, body *strings.Reader, cookies []*http.Cookie) *http.Request {
	t.Helper()

	var req *http.Request
	var err error
	if body == nil {
		req, err = http.NewRequest(method, target, nil)
	} else {
		req, err = http.NewRequest(method, target, body)
	}
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	if method == http.MethodPost && body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return req
}
