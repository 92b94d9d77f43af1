// An in-memory stand-in for the backend bookstore API, so handler and
// client tests exercise the real HTTP path end to end.

package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/akstore/bookstore-admin/internal/models"
)

const (
	TestEmail    = "admin@bookstore.test"
	TestPassword = "password"
	TestToken    = "test-token"

	backendPerPage = 10
)

// FakeBackend serves the subset of the backend REST API the admin app
// consumes, against in-memory state.
type FakeBackend struct {
	Server *httptest.Server

	mu         sync.Mutex
	nextID     int64
	Books      []models.Book
	Categories []models.Category
	Orders     []models.Order
	Report     models.Report
	Income     models.Income
}

// NewFakeBackend starts the fake backend and registers its shutdown
// with the test's cleanup.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()

	fb := &FakeBackend{nextID: 1}
	r := chi.NewRouter()

	r.Post("/api/admin/token/create", fb.handleLogin)
	r.Group(func(r chi.Router) {
		r.Use(fb.requireBearer)

		r.Get("/api/admin/books", fb.handleListBooks)
		r.Post("/api/admin/books", fb.handleCreateBook)
		r.Get("/api/admin/books/{id}", fb.handleGetBook)
		r.Post("/api/admin/books/{id}", fb.handleUpdateBook)
		r.Delete("/api/admin/books/{id}", fb.handleDeleteBook)
		r.Get("/api/admin/books/{id}/barcode", fb.handleBarcode)

		r.Get("/api/admin/categories", fb.handleListCategories)
		r.Post("/api/admin/categories", fb.handleCreateCategory)
		r.Post("/api/admin/categories/{id}", fb.handleUpdateCategory)
		r.Delete("/api/admin/categories/{id}", fb.handleDeleteCategory)

		r.Get("/api/admin/orders", fb.handleListOrders)
		r.Post("/api/admin/orders", fb.handleCreateOrder)
		r.Get("/api/admin/orders/{id}", fb.handleGetOrder)
		r.Post("/api/admin/orders/{id}", fb.handleUpdateOrder)
		r.Delete("/api/admin/orders/{id}", fb.handleDeleteOrder)
		r.Post("/api/admin/orders/{id}/order-item/{itemID}/return-stock", fb.handleReturnStock)

		r.Get("/api/admin/reports/index", fb.handleReports)
		r.Get("/api/admin/reports/income", fb.handleIncome)
	})

	fb.Server = httptest.NewServer(r)
	t.Cleanup(fb.Server.Close)
	return fb
}

// URL returns the fake backend origin.
func (fb *FakeBackend) URL() string {
	return fb.Server.URL
}

// AddBook seeds a book and returns it with an assigned id.
func (fb *FakeBackend) AddBook(book models.Book) models.Book {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	book.ID = fb.nextID
	fb.nextID++
	fb.Books = append(fb.Books, book)
	return book
}

// AddCategory seeds a category and returns it with an assigned id.
func (fb *FakeBackend) AddCategory(name string) models.Category {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	cat := models.Category{ID: fb.nextID, Name: name}
	fb.nextID++
	fb.Categories = append(fb.Categories, cat)
	return cat
}

// AddOrder seeds an order and returns it with an assigned id.
func (fb *FakeBackend) AddOrder(order models.Order) models.Order {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	order.ID = fb.nextID
	fb.nextID++
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	fb.Orders = append(fb.Orders, order)
	return order
}

func (fb *FakeBackend) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+TestToken {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (fb *FakeBackend) handleLogin(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	if r.PostFormValue("email") != TestEmail || r.PostFormValue("password") != TestPassword {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{"token": TestToken, "roles": []string{"admin"}},
	})
}

func (fb *FakeBackend) handleListBooks(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	search := r.URL.Query().Get("search")
	var matched []models.Book
	for _, b := range fb.Books {
		if search == "" || strings.Contains(b.Name, search) || strings.Contains(b.Barcode, search) {
			matched = append(matched, b)
		}
	}
	writeJSON(w, http.StatusOK, paginate(matched, pageParam(r)))
}

func (fb *FakeBackend) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "expected multipart form data"})
		return
	}
	book, errMsg := fb.bookFromForm(r)
	if errMsg != "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": errMsg})
		return
	}

	fb.mu.Lock()
	book.ID = fb.nextID
	fb.nextID++
	fb.Books = append(fb.Books, book)
	fb.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]interface{}{"data": book})
}

func (fb *FakeBackend) handleGetBook(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	id := idParam(r, "id")
	for _, b := range fb.Books {
		if b.ID == id {
			writeJSON(w, http.StatusOK, map[string]interface{}{"data": b})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Book not found"})
}

func (fb *FakeBackend) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "expected multipart form data"})
		return
	}
	if r.PostFormValue("_method") != "PATCH" {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"message": "missing method override"})
		return
	}
	updated, errMsg := fb.bookFromForm(r)
	if errMsg != "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": errMsg})
		return
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()
	id := idParam(r, "id")
	for i, b := range fb.Books {
		if b.ID == id {
			updated.ID = id
			fb.Books[i] = updated
			writeJSON(w, http.StatusOK, map[string]interface{}{"data": updated})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Book not found"})
}

func (fb *FakeBackend) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	id := idParam(r, "id")
	for i, b := range fb.Books {
		if b.ID == id {
			fb.Books = append(fb.Books[:i], fb.Books[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Book not found"})
}

func (fb *FakeBackend) handleBarcode(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	id := idParam(r, "id")
	for _, b := range fb.Books {
		if b.ID == id {
			w.Header().Set("Content-Type", "image/png")
			w.Write([]byte{0x89, 'P', 'N', 'G'})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Book not found"})
}

func (fb *FakeBackend) handleListCategories(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	cats := fb.Categories
	if cats == nil {
		cats = []models.Category{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": cats})
}

func (fb *FakeBackend) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	name := r.PostFormValue("name")
	if name == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "The name field is required."})
		return
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()
	for _, c := range fb.Categories {
		if c.Name == name {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "The name has already been taken."})
			return
		}
	}
	cat := models.Category{ID: fb.nextID, Name: name}
	fb.nextID++
	fb.Categories = append(fb.Categories, cat)
	writeJSON(w, http.StatusCreated, map[string]interface{}{"data": cat})
}

func (fb *FakeBackend) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	if r.PostFormValue("_method") != "PATCH" {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"message": "missing method override"})
		return
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()
	id := idParam(r, "id")
	for i := range fb.Categories {
		if fb.Categories[i].ID == id {
			fb.Categories[i].Name = r.PostFormValue("name")
			writeJSON(w, http.StatusOK, map[string]interface{}{"data": fb.Categories[i]})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Category not found"})
}

func (fb *FakeBackend) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	id := idParam(r, "id")
	for i, c := range fb.Categories {
		if c.ID == id {
			fb.Categories = append(fb.Categories[:i], fb.Categories[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Category not found"})
}

func (fb *FakeBackend) handleListOrders(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	status := r.URL.Query().Get("status")
	search := r.URL.Query().Get("search")
	var matched []models.Order
	for _, o := range fb.Orders {
		if status != "" && o.Status != status {
			continue
		}
		if search != "" && !strings.Contains(o.CustomerName, search) &&
			!strings.Contains(o.CustomerPhoneNumber, search) {
			continue
		}
		matched = append(matched, o)
	}
	writeJSON(w, http.StatusOK, paginate(matched, pageParam(r)))
}

// handleCreateOrder reconstructs the indexed books[i][...] form fields
// into line items, the way the real backend does.
func (fb *FakeBackend) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "expected multipart form data"})
		return
	}

	paid, err := strconv.ParseInt(r.PostFormValue("paid"), 10, 64)
	if err != nil || paid < 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "The paid field is invalid."})
		return
	}

	order := models.Order{
		CustomerName:        r.PostFormValue("customer_name"),
		CustomerPhoneNumber: r.PostFormValue("customer_phone_number"),
		Status:              models.OrderStatusPending,
		Paid:                paid,
	}

	for i := 0; ; i++ {
		rawID := r.PostFormValue(fmt.Sprintf("books[%d][id]", i))
		if rawID == "" {
			break
		}
		bookID, _ := strconv.ParseInt(rawID, 10, 64)
		price, _ := strconv.ParseInt(r.PostFormValue(fmt.Sprintf("books[%d][price]", i)), 10, 64)
		quantity, _ := strconv.Atoi(r.PostFormValue(fmt.Sprintf("books[%d][quantity]", i)))
		order.Items = append(order.Items, models.OrderItem{
			BookID: bookID, PriceAtSale: price, Quantity: quantity,
		})
		order.Total += price * int64(quantity)
	}
	if len(order.Items) == 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "The books field is required."})
		return
	}

	fb.mu.Lock()
	order.ID = fb.nextID
	fb.nextID++
	for i := range order.Items {
		order.Items[i].ID = fb.nextID
		fb.nextID++
		// Decrement stock for seeded books.
		for j := range fb.Books {
			if fb.Books[j].ID == order.Items[i].BookID {
				fb.Books[j].Stock -= order.Items[i].Quantity
			}
		}
	}
	fb.Orders = append(fb.Orders, order)
	fb.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{"data": order})
}

func (fb *FakeBackend) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	id := idParam(r, "id")
	for _, o := range fb.Orders {
		if o.ID == id {
			writeJSON(w, http.StatusOK, map[string]interface{}{"data": o})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Order not found"})
}

func (fb *FakeBackend) handleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	if r.PostFormValue("_method") != "PATCH" {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"message": "missing method override"})
		return
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()
	id := idParam(r, "id")
	for i := range fb.Orders {
		if fb.Orders[i].ID == id {
			if paid, err := strconv.ParseInt(r.PostFormValue("paid"), 10, 64); err == nil {
				fb.Orders[i].Paid = paid
			}
			if status := r.PostFormValue("status"); status != "" {
				fb.Orders[i].Status = status
			}
			writeJSON(w, http.StatusOK, map[string]interface{}{"data": fb.Orders[i]})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Order not found"})
}

func (fb *FakeBackend) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	id := idParam(r, "id")
	for i, o := range fb.Orders {
		if o.ID == id {
			fb.Orders = append(fb.Orders[:i], fb.Orders[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Order not found"})
}

func (fb *FakeBackend) handleReturnStock(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	quantity, err := strconv.Atoi(r.PostFormValue("stock"))
	if err != nil || quantity <= 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "The stock field is invalid."})
		return
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()
	orderID := idParam(r, "id")
	itemID := idParam(r, "itemID")
	for i := range fb.Orders {
		if fb.Orders[i].ID != orderID {
			continue
		}
		for j := range fb.Orders[i].Items {
			item := &fb.Orders[i].Items[j]
			if item.ID != itemID {
				continue
			}
			if quantity > item.Quantity {
				writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "Cannot return more than sold."})
				return
			}
			item.Quantity -= quantity
			fb.Orders[i].Total -= item.PriceAtSale * int64(quantity)
			for k := range fb.Books {
				if fb.Books[k].ID == item.BookID {
					fb.Books[k].Stock += quantity
				}
			}
			writeJSON(w, http.StatusOK, map[string]interface{}{"data": fb.Orders[i]})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Order item not found"})
}

func (fb *FakeBackend) handleReports(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	report := fb.Report
	report.TotalBooks = len(fb.Books)
	report.TotalCategories = len(fb.Categories)
	writeJSON(w, http.StatusOK, report)
}

func (fb *FakeBackend) handleIncome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("from") == "" || r.URL.Query().Get("to") == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "The from and to fields are required."})
		return
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	writeJSON(w, http.StatusOK, fb.Income)
}

func (fb *FakeBackend) bookFromForm(r *http.Request) (models.Book, string) {
	stock, err := strconv.Atoi(r.PostFormValue("stock"))
	if err != nil || stock < 0 {
		return models.Book{}, "The stock field is invalid."
	}
	price, _ := strconv.ParseInt(r.PostFormValue("price"), 10, 64)
	cost, _ := strconv.ParseInt(r.PostFormValue("cost"), 10, 64)
	year, _ := strconv.Atoi(r.PostFormValue("publish_year"))
	categoryID, _ := strconv.ParseInt(r.PostFormValue("category_id"), 10, 64)

	book := models.Book{
		Barcode:     r.PostFormValue("barcode"),
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		Author:      r.PostFormValue("author"),
		Translator:  r.PostFormValue("translator"),
		PublishYear: year,
		Cost:        cost,
		Price:       price,
		Stock:       stock,
	}
	for _, c := range fb.Categories {
		if c.ID == categoryID {
			book.Category = c
		}
	}
	if book.Category.ID == 0 {
		book.Category = models.Category{ID: categoryID}
	}
	if files, ok := r.MultipartForm.File["cover_image"]; ok && len(files) > 0 {
		book.Cover = "/covers/" + files[0].Filename
	}
	return book, ""
}

// --- small helpers -----------------------------------------------------

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func idParam(r *http.Request, name string) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

type pageEnvelope struct {
	Data        interface{} `json:"data"`
	CurrentPage int         `json:"current_page"`
	LastPage    int         `json:"last_page"`
	PerPage     int         `json:"per_page"`
	Total       int         `json:"total"`
}

func paginate[T any](items []T, page int) pageEnvelope {
	total := len(items)
	lastPage := (total + backendPerPage - 1) / backendPerPage
	if lastPage < 1 {
		lastPage = 1
	}

	start := (page - 1) * backendPerPage
	if start > total {
		start = total
	}
	end := start + backendPerPage
	if end > total {
		end = total
	}

	data := items[start:end]
	if data == nil {
		data = []T{}
	}
	return pageEnvelope{
		Data:        data,
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     backendPerPage,
		Total:       total,
	}
}
