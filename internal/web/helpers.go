package web

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/akstore/bookstore-admin/internal/apiclient"
	"github.com/akstore/bookstore-admin/internal/i18n"
	"github.com/akstore/bookstore-admin/internal/session"
	"github.com/akstore/bookstore-admin/internal/util"
)

// parsePage reads a page query parameter, defaulting to 1. Localized
// digits are normalized first so "٢" paginates like "2".
func parsePage(raw string) int {
	page, err := strconv.Atoi(util.NormalizeDigits(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// errorView is the payload of the dedicated error page shown when a
// list screen fails to load.
type errorView struct {
	StatusCode int
	Message    string
}

// renderLoaderError maps a failed read to user-visible behavior: a 401
// clears the stale session and forces re-login; everything else renders
// the error page with the status and message instead of a blank screen.
func (s *Server) renderLoaderError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		s.app.Sessions.Clear(w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	log.Printf("Loader error on %s: %v", r.URL.Path, err)

	view := errorView{StatusCode: http.StatusBadGateway}
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		view.StatusCode = apiErr.StatusCode
		view.Message = apiErr.Message
	}
	if view.Message == "" {
		view.Message = s.app.Translator.T(i18n.Lang(r), "error.generic")
	}

	s.render(w, r, "error", &viewData{Title: "error.title", StatusCode: view.StatusCode, Data: view})
}

// actionRedirect finishes a write action: flash the outcome and send
// the browser back to the given screen (POST-redirect-GET).
func (s *Server) actionRedirect(w http.ResponseWriter, r *http.Request, target string, flash session.Flash) {
	// A stale session on a write also goes back to login, not to a toast.
	if flash.Type == "error" && flash.Message == "" {
		flash.Message = s.app.Translator.T(i18n.Lang(r), "error.generic")
	}
	s.app.Sessions.SetFlash(w, flash)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// actionError translates a failed endpoint call into either a forced
// re-login (401) or an error toast on the target screen.
func (s *Server) actionError(w http.ResponseWriter, r *http.Request, target string, err error) {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		s.app.Sessions.Clear(w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	log.Printf("Action error on %s: %v", r.URL.Path, err)

	message := ""
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		message = apiErr.Message
	}
	s.actionRedirect(w, r, target, session.Flash{Type: "error", Message: message})
}

// redirectIfUnauthorized handles the stale-session case for actions
// that re-render a form on other failures. It reports whether the
// request was redirected.
func (s *Server) redirectIfUnauthorized(w http.ResponseWriter, r *http.Request, err error) bool {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		s.app.Sessions.Clear(w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return true
	}
	return false
}

// backendMessage extracts a displayable message from a failed endpoint
// call, falling back to a generic one.
func backendMessage(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "the request failed, please try again"
}

// toast builds a translated success flash.
func (s *Server) toast(r *http.Request, key string) session.Flash {
	return session.Flash{Type: "success", Message: s.app.Translator.T(i18n.Lang(r), key)}
}
