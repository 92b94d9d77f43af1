package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"github.com/akstore/bookstore-admin/internal/assets"
	"github.com/akstore/bookstore-admin/internal/i18n"
	"github.com/akstore/bookstore-admin/internal/session"
	"github.com/akstore/bookstore-admin/internal/util"
)

// templateSet holds one parsed template tree per page, each combined
// with the shared layout.
type templateSet struct {
	pages map[string]*template.Template
}

// viewData is what every template receives. Data carries the
// page-specific payload. StatusCode overrides the response status when
// non-zero; render writes it after the cookies and headers, since
// anything set after WriteHeader is dropped.
type viewData struct {
	Title      string
	Lang       string
	RTL        bool
	Path       string
	Query      string
	Flash      *session.Flash
	FormError  string
	StatusCode int
	Data       interface{}
}

func parseTemplates(translator *i18n.Translator) (*templateSet, error) {
	funcs := template.FuncMap{
		"t":     translator.T,
		"money": util.FormatThousands,
		"add":   func(a, b int) int { return a + b },
		"sub":   func(a, b int) int { return a - b },
	}

	root, err := fs.Sub(assets.TemplatesFS, "templates")
	if err != nil {
		return nil, err
	}

	entries, err := fs.Glob(root, "*.html")
	if err != nil {
		return nil, err
	}

	set := &templateSet{pages: make(map[string]*template.Template)}
	for _, name := range entries {
		if name == "base.html" {
			continue
		}
		tmpl, err := template.New("base.html").Funcs(funcs).ParseFS(root, "base.html", name)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		set.pages[strings.TrimSuffix(name, ".html")] = tmpl
	}
	return set, nil
}

// render executes a page template with the shared chrome (language,
// pending toast, current path) filled in.
func (s *Server) render(w http.ResponseWriter, r *http.Request, page string, data *viewData) {
	tmpl, ok := s.templates.pages[page]
	if !ok {
		log.Printf("Unknown template %q", page)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if data == nil {
		data = &viewData{}
	}
	lang := i18n.Lang(r)
	data.Lang = lang
	data.RTL = i18n.RTL(lang)
	data.Path = r.URL.Path
	data.Query = r.URL.RawQuery
	if data.Flash == nil {
		data.Flash = s.app.Sessions.PopFlash(w, r)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if data.StatusCode != 0 {
		w.WriteHeader(data.StatusCode)
	}
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("Error rendering template %s: %v", page, err)
	}
}
