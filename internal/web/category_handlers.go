package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/akstore/bookstore-admin/internal/models"
	"github.com/akstore/bookstore-admin/internal/session"
)

type categoriesView struct {
	Categories []models.Category
}

func (s *Server) handleCategoriesList(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)

	categories, err := s.app.API.ListCategories(r.Context(), sess)
	if err != nil {
		s.renderLoaderError(w, r, err)
		return
	}
	s.render(w, r, "categories", &viewData{
		Title: "categories.title",
		Data:  categoriesView{Categories: categories},
	})
}

func (s *Server) handleCategoryCreate(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)

	name := strings.TrimSpace(r.PostFormValue("name"))
	if name == "" {
		s.actionRedirect(w, r, "/categories", session.Flash{Type: "error", Message: "name is required"})
		return
	}
	if err := s.app.API.CreateCategory(r.Context(), sess, name); err != nil {
		s.actionError(w, r, "/categories", err)
		return
	}
	s.actionRedirect(w, r, "/categories", s.toast(r, "categories.created"))
}

func (s *Server) handleCategoryUpdate(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)
	categoryID, err := strconv.ParseInt(chi.URLParam(r, "categoryID"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	name := strings.TrimSpace(r.PostFormValue("name"))
	if name == "" {
		s.actionRedirect(w, r, "/categories", session.Flash{Type: "error", Message: "name is required"})
		return
	}
	if err := s.app.API.UpdateCategory(r.Context(), sess, categoryID, name); err != nil {
		s.actionError(w, r, "/categories", err)
		return
	}
	s.actionRedirect(w, r, "/categories", s.toast(r, "categories.updated"))
}

// handleCategoryDelete stays on the list whatever the outcome: a 404
// (or a backend refusal for an in-use category) becomes an error toast,
// never a navigation.
func (s *Server) handleCategoryDelete(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)
	categoryID, err := strconv.ParseInt(chi.URLParam(r, "categoryID"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := s.app.API.DeleteCategory(r.Context(), sess, categoryID); err != nil {
		s.actionError(w, r, "/categories", err)
		return
	}
	s.actionRedirect(w, r, "/categories", s.toast(r, "categories.deleted"))
}
