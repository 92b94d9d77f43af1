// It defines the admin web server, sets up the routes (screens)
// using chi, and links them to the handler functions.

package web

import (
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/akstore/bookstore-admin/internal/assets"
	"github.com/akstore/bookstore-admin/internal/core"
)

// Server holds the dependencies for the admin UI.
type Server struct {
	app       *core.App
	templates *templateSet
}

// NewServer creates a new Server instance. Template parsing errors are
// fatal: the binary ships its own templates, so a bad one is a build
// defect, not a runtime condition.
func NewServer(app *core.App) *Server {
	templates, err := parseTemplates(app.Translator)
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}
	return &Server{app: app, templates: templates}
}

// Router sets up and returns the main router for the application.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)    // Logs requests to the console
	r.Use(middleware.Recoverer) // Recovers from panics
	r.Use(middleware.Timeout(60 * time.Second))

	// Public routes
	r.Get("/login", s.handleLoginPage)
	r.Post("/login", s.handleLogin)
	r.Get("/lang", s.handleSetLanguage)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	// Every screen behind authentication
	r.Group(func(r chi.Router) {
		r.Use(s.RequireAuth)

		r.Get("/", s.handleIndex)
		r.Post("/logout", s.handleLogout)

		r.Get("/dashboard", s.handleDashboard)

		r.Route("/books", func(r chi.Router) {
			r.Get("/", s.handleBooksList)
			r.Get("/create", s.handleBookCreatePage)
			r.Post("/create", s.handleBookCreate)
			r.Get("/{bookID}/update", s.handleBookUpdatePage)
			r.Post("/{bookID}/update", s.handleBookUpdate)
			r.Post("/{bookID}/delete", s.handleBookDelete)
			r.Get("/{bookID}/barcode", s.handleBookBarcode)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.handleCategoriesList)
			r.Post("/create", s.handleCategoryCreate)
			r.Post("/{categoryID}/update", s.handleCategoryUpdate)
			r.Post("/{categoryID}/delete", s.handleCategoryDelete)
		})

		// Point of sale
		r.Get("/orders", s.handleOrdersPage)
		r.Post("/orders", s.handleOrderCreate)

		// Order history
		r.Route("/transaction", func(r chi.Router) {
			r.Get("/", s.handleTransactionsList)
			r.Get("/{orderID}/update", s.handleTransactionUpdatePage)
			r.Post("/{orderID}/update", s.handleTransactionUpdate)
			r.Post("/{orderID}/delete", s.handleTransactionDelete)
			r.Get("/{orderID}/return", s.handleReturnPage)
			r.Post("/{orderID}/return", s.handleReturnStock)
		})
	})

	// Static assets (debounce/cart script, stylesheet)
	staticFS, err := fs.Sub(assets.StaticFS, "static")
	if err != nil {
		log.Fatalf("Failed to create static sub-filesystem: %v", err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	return r
}
