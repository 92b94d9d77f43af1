package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/akstore/bookstore-admin/internal/apiclient"
	"github.com/akstore/bookstore-admin/internal/models"
	"github.com/akstore/bookstore-admin/internal/session"
	"github.com/akstore/bookstore-admin/internal/util"
)

// ordersView backs the point-of-sale screen: a search-driven book list
// next to the client-side cart.
type ordersView struct {
	Books  *models.BookPage
	Search string
	Stock  string
}

func (s *Server) handleOrdersPage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)

	// Barcode scanners and Arabic keyboards both feed this box.
	search := util.NormalizeDigits(r.URL.Query().Get("search"))
	stock := r.URL.Query().Get("stock")
	page := parsePage(r.URL.Query().Get("page"))

	view := ordersView{Search: search, Stock: stock, Books: &models.BookPage{CurrentPage: 1, LastPage: 1}}
	if search != "" {
		books, err := s.app.API.SearchBooks(r.Context(), sess, page, search, stock)
		if err != nil {
			s.renderLoaderError(w, r, err)
			return
		}
		view.Books = books
	}

	s.render(w, r, "orders", &viewData{Title: "orders.title", Data: view})
}

// handleOrderCreate receives the finished cart. The cart travels as a
// single JSON array in the "items" field; amounts and the phone number
// may carry Arabic-Indic digits and are normalized before validation.
func (s *Server) handleOrderCreate(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)

	if err := r.ParseForm(); err != nil {
		s.actionRedirect(w, r, "/orders", session.Flash{Type: "error", Message: "invalid form submission"})
		return
	}

	customerName := r.PostFormValue("customer_name")
	customerPhone := util.NormalizeDigits(util.FilterNumeric(r.PostFormValue("customer_phone_number")))
	if customerName == "" || customerPhone == "" {
		s.actionRedirect(w, r, "/orders", session.Flash{Type: "error", Message: "customer name and phone number are required"})
		return
	}

	var lines []apiclient.OrderLine
	if err := json.Unmarshal([]byte(r.PostFormValue("items")), &lines); err != nil || len(lines) == 0 {
		s.actionRedirect(w, r, "/orders", session.Flash{Type: "error", Message: "the cart is empty"})
		return
	}
	for _, line := range lines {
		if line.BookID <= 0 || line.Quantity <= 0 || line.Price < 0 {
			s.actionRedirect(w, r, "/orders", session.Flash{Type: "error", Message: "invalid cart line"})
			return
		}
	}

	input := &apiclient.OrderInput{
		CustomerName:        customerName,
		CustomerPhoneNumber: customerPhone,
		Lines:               lines,
	}

	// Paid defaults to the full total; "pay later" orders submit a
	// smaller explicit amount.
	input.Paid = input.Total()
	if rawPaid := r.PostFormValue("paid"); rawPaid != "" {
		paid, err := strconv.ParseInt(util.NormalizeDigits(rawPaid), 10, 64)
		if err != nil || paid < 0 {
			s.actionRedirect(w, r, "/orders", session.Flash{Type: "error", Message: "invalid payment amount"})
			return
		}
		input.Paid = paid
	}

	if err := s.app.API.CreateOrder(r.Context(), sess, input); err != nil {
		s.actionError(w, r, "/orders", err)
		return
	}
	s.actionRedirect(w, r, "/orders", s.toast(r, "orders.created"))
}
