package web

import (
	"net/http"
	"strings"

	"github.com/akstore/bookstore-admin/internal/i18n"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	// An already-authenticated visitor goes straight to the dashboard.
	if s.app.Sessions.FromRequest(r).Authenticated() {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	s.render(w, r, "login", &viewData{Title: "login.title"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		s.renderLoginError(w, r)
		return
	}

	result, err := s.app.API.Login(r.Context(), email, password)
	if err != nil {
		// Wrong credentials and backend rejections look the same to the
		// visitor; the details are in the server log.
		s.renderLoginError(w, r)
		return
	}

	if err := s.app.Sessions.Issue(w, result.Token, result.Roles); err != nil {
		http.Error(w, "failed to create session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) renderLoginError(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "login", &viewData{
		Title:      "login.title",
		StatusCode: http.StatusUnprocessableEntity,
		FormError:  s.app.Translator.T(i18n.Lang(r), "login.failed"),
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.app.Sessions.Clear(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleSetLanguage stores the cosmetic language preference and goes
// back to the referring screen.
func (s *Server) handleSetLanguage(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("to")
	switch lang {
	case "en", "ar", "ku":
		http.SetCookie(w, &http.Cookie{
			Name:     "lang",
			Value:    lang,
			Path:     "/",
			MaxAge:   365 * 24 * 60 * 60,
			SameSite: http.SameSiteLaxMode,
		})
	}
	// Only same-site paths; "//host" is a protocol-relative URL, not a path.
	back := r.URL.Query().Get("from")
	if !strings.HasPrefix(back, "/") || strings.HasPrefix(back, "//") {
		back = "/dashboard"
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}
