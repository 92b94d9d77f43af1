package web

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/akstore/bookstore-admin/internal/apiclient"
	"github.com/akstore/bookstore-admin/internal/models"
	"github.com/akstore/bookstore-admin/internal/session"
	"github.com/akstore/bookstore-admin/internal/util"
)

const maxCoverSize = 10 << 20 // 10 MiB upload cap for cover images

type booksView struct {
	Page *models.BookPage
}

func (s *Server) handleBooksList(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)
	page := parsePage(r.URL.Query().Get("page"))

	data, err := s.app.API.ListBooks(r.Context(), sess, page)
	if err != nil {
		s.renderLoaderError(w, r, err)
		return
	}

	// Requesting a page beyond the last one lands on page 1, never on
	// an empty table or an error.
	if len(data.Data) == 0 && data.CurrentPage > 1 {
		http.Redirect(w, r, "/books?page=1", http.StatusSeeOther)
		return
	}

	s.render(w, r, "books", &viewData{Title: "books.title", Data: booksView{Page: data}})
}

// bookFormView backs both the create and update screens. Values holds
// the raw submitted strings so a rejected form stays populated.
type bookFormView struct {
	Categories []models.Category
	Values     map[string]string
	Action     string
	IsUpdate   bool
}

func (s *Server) handleBookCreatePage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)
	categories, err := s.app.API.ListCategories(r.Context(), sess)
	if err != nil {
		s.renderLoaderError(w, r, err)
		return
	}
	s.render(w, r, "book_form", &viewData{
		Title: "books.create",
		Data: bookFormView{
			Categories: categories,
			Values:     map[string]string{},
			Action:     "/books/create",
		},
	})
}

func (s *Server) handleBookCreate(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)

	input, values, problem := s.parseBookForm(r)
	defer closeCover(input)
	if problem == "" {
		err := s.app.API.CreateBook(r.Context(), sess, input)
		if err == nil {
			s.actionRedirect(w, r, "/books", s.toast(r, "books.created"))
			return
		}
		problem = backendMessage(err)
		if s.redirectIfUnauthorized(w, r, err) {
			return
		}
	}
	s.rerenderBookForm(w, r, sess, "books.create", "/books/create", false, values, problem)
}

func (s *Server) handleBookUpdatePage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)
	bookID, err := strconv.ParseInt(chi.URLParam(r, "bookID"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	book, err := s.app.API.GetBook(r.Context(), sess, bookID)
	if err != nil {
		s.renderLoaderError(w, r, err)
		return
	}
	categories, err := s.app.API.ListCategories(r.Context(), sess)
	if err != nil {
		s.renderLoaderError(w, r, err)
		return
	}

	s.render(w, r, "book_form", &viewData{
		Title: "books.title",
		Data: bookFormView{
			Categories: categories,
			Values:     bookValues(book),
			Action:     fmt.Sprintf("/books/%d/update", book.ID),
			IsUpdate:   true,
		},
	})
}

func (s *Server) handleBookUpdate(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)
	bookID, err := strconv.ParseInt(chi.URLParam(r, "bookID"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	action := fmt.Sprintf("/books/%d/update", bookID)
	input, values, problem := s.parseBookForm(r)
	defer closeCover(input)
	if problem == "" {
		err := s.app.API.UpdateBook(r.Context(), sess, bookID, input)
		if err == nil {
			s.actionRedirect(w, r, "/books", s.toast(r, "books.updated"))
			return
		}
		problem = backendMessage(err)
		if s.redirectIfUnauthorized(w, r, err) {
			return
		}
	}
	s.rerenderBookForm(w, r, sess, "books.title", action, true, values, problem)
}

func (s *Server) handleBookDelete(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)
	bookID, err := strconv.ParseInt(chi.URLParam(r, "bookID"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	list := "/books"
	if page := r.URL.Query().Get("page"); page != "" {
		list = "/books?page=" + page
	}
	if err := s.app.API.DeleteBook(r.Context(), sess, bookID); err != nil {
		s.actionError(w, r, list, err)
		return
	}
	s.actionRedirect(w, r, list, s.toast(r, "books.deleted"))
}

// handleBookBarcode streams the printable barcode label as a file
// download with a deterministic filename.
func (s *Server) handleBookBarcode(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)
	bookID, err := strconv.ParseInt(chi.URLParam(r, "bookID"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	data, err := s.app.API.DownloadBarcode(r.Context(), sess, bookID)
	if err != nil {
		s.renderLoaderError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=barcode-%d.png", bookID))
	w.Write(data)
}

// parseBookForm validates the submitted fields and builds the endpoint
// input. It returns the raw values for repopulation and a non-empty
// problem string when validation fails. No backend call is made for
// invalid input.
func (s *Server) parseBookForm(r *http.Request) (*apiclient.BookInput, map[string]string, string) {
	if err := r.ParseMultipartForm(maxCoverSize); err != nil {
		return nil, map[string]string{}, "invalid form submission"
	}

	values := map[string]string{
		"name":         r.PostFormValue("name"),
		"description":  r.PostFormValue("description"),
		"author":       r.PostFormValue("author"),
		"translator":   r.PostFormValue("translator"),
		"publish_year": util.NormalizeDigits(r.PostFormValue("publish_year")),
		"cost":         util.NormalizeDigits(r.PostFormValue("cost")),
		"price":        util.NormalizeDigits(r.PostFormValue("price")),
		"stock":        util.NormalizeDigits(r.PostFormValue("stock")),
		"category_id":  r.PostFormValue("category_id"),
		"barcode":      util.NormalizeDigits(r.PostFormValue("barcode")),
	}

	if values["name"] == "" || values["author"] == "" || values["barcode"] == "" {
		return nil, values, "name, author and barcode are required"
	}
	if len(values["barcode"]) > 16 {
		return nil, values, "barcode must be at most 16 characters"
	}

	publishYear, err := strconv.Atoi(values["publish_year"])
	if err != nil {
		return nil, values, "publish year must be a number"
	}
	cost, err := strconv.ParseInt(values["cost"], 10, 64)
	if err != nil || cost < 0 {
		return nil, values, "cost must be a non-negative number"
	}
	price, err := strconv.ParseInt(values["price"], 10, 64)
	if err != nil || price < 0 {
		return nil, values, "price must be a non-negative number"
	}
	stock, err := strconv.Atoi(values["stock"])
	if err != nil || stock < 0 {
		return nil, values, "stock must be a non-negative number"
	}
	categoryID, err := strconv.ParseInt(values["category_id"], 10, 64)
	if err != nil {
		return nil, values, "a category must be selected"
	}

	input := &apiclient.BookInput{
		Name:        values["name"],
		Description: values["description"],
		Author:      values["author"],
		Translator:  values["translator"],
		PublishYear: publishYear,
		Cost:        cost,
		Price:       price,
		Stock:       stock,
		CategoryID:  categoryID,
		Barcode:     values["barcode"],
	}

	if file, header, err := r.FormFile("cover_image"); err == nil {
		input.Cover = file
		input.CoverName = header.Filename
	}
	return input, values, ""
}

// closeCover releases the uploaded cover file once the endpoint call
// is done with it.
func closeCover(input *apiclient.BookInput) {
	if input == nil || input.Cover == nil {
		return
	}
	if closer, ok := input.Cover.(io.Closer); ok {
		closer.Close()
	}
}

// rerenderBookForm shows the form again with the submitted values and
// an inline error so the user can correct and retry.
func (s *Server) rerenderBookForm(w http.ResponseWriter, r *http.Request, sess session.Session, title, action string, isUpdate bool, values map[string]string, problem string) {
	categories, err := s.app.API.ListCategories(r.Context(), sess)
	if err != nil {
		s.renderLoaderError(w, r, err)
		return
	}
	s.render(w, r, "book_form", &viewData{
		Title:      title,
		StatusCode: http.StatusUnprocessableEntity,
		FormError:  problem,
		Data: bookFormView{
			Categories: categories,
			Values:     values,
			Action:     action,
			IsUpdate:   isUpdate,
		},
	})
}

func bookValues(book *models.Book) map[string]string {
	return map[string]string{
		"name":         book.Name,
		"description":  book.Description,
		"author":       book.Author,
		"translator":   book.Translator,
		"publish_year": strconv.Itoa(book.PublishYear),
		"cost":         strconv.FormatInt(book.Cost, 10),
		"price":        strconv.FormatInt(book.Price, 10),
		"stock":        strconv.Itoa(book.Stock),
		"category_id":  strconv.FormatInt(book.Category.ID, 10),
		"barcode":      book.Barcode,
	}
}
