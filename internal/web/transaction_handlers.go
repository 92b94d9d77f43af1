package web

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/akstore/bookstore-admin/internal/models"
	"github.com/akstore/bookstore-admin/internal/session"
	"github.com/akstore/bookstore-admin/internal/util"
)

type transactionsView struct {
	Page   *models.OrderPage
	Search string
	Status string
}

func (s *Server) handleTransactionsList(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)

	page := parsePage(r.URL.Query().Get("page"))
	search := util.NormalizeDigits(r.URL.Query().Get("search"))
	status := r.URL.Query().Get("status")
	if status != models.OrderStatusCompleted {
		status = models.OrderStatusPending
	}

	data, err := s.app.API.ListOrders(r.Context(), sess, page, status, search)
	if err != nil {
		s.renderLoaderError(w, r, err)
		return
	}

	if len(data.Data) == 0 && data.CurrentPage > 1 {
		back := url.Values{}
		back.Set("page", "1")
		back.Set("status", status)
		if search != "" {
			back.Set("search", search)
		}
		http.Redirect(w, r, "/transaction?"+back.Encode(), http.StatusSeeOther)
		return
	}

	s.render(w, r, "transactions", &viewData{
		Title: "transaction.title",
		Data:  transactionsView{Page: data, Search: search, Status: status},
	})
}

type transactionView struct {
	Order *models.Order
}

func (s *Server) handleTransactionUpdatePage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	order, err := s.app.API.GetOrder(r.Context(), sess, orderID)
	if err != nil {
		s.renderLoaderError(w, r, err)
		return
	}
	s.render(w, r, "transaction_update", &viewData{
		Title: "transaction.title",
		Data:  transactionView{Order: order},
	})
}

func (s *Server) handleTransactionUpdate(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	paid, err := strconv.ParseInt(util.NormalizeDigits(r.PostFormValue("paid")), 10, 64)
	if err != nil || paid < 0 {
		s.actionRedirect(w, r, "/transaction", session.Flash{Type: "error", Message: "invalid payment amount"})
		return
	}
	status := r.PostFormValue("status")
	if status != models.OrderStatusPending && status != models.OrderStatusCompleted {
		s.actionRedirect(w, r, "/transaction", session.Flash{Type: "error", Message: "invalid status"})
		return
	}

	if err := s.app.API.UpdateOrder(r.Context(), sess, orderID, paid, status); err != nil {
		s.actionError(w, r, "/transaction", err)
		return
	}
	s.actionRedirect(w, r, "/transaction", s.toast(r, "transaction.updated"))
}

func (s *Server) handleTransactionDelete(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := s.app.API.DeleteOrder(r.Context(), sess, orderID); err != nil {
		s.actionError(w, r, "/transaction", err)
		return
	}
	s.actionRedirect(w, r, "/transaction", s.toast(r, "transaction.deleted"))
}

func (s *Server) handleReturnPage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	order, err := s.app.API.GetOrder(r.Context(), sess, orderID)
	if err != nil {
		s.renderLoaderError(w, r, err)
		return
	}
	s.render(w, r, "transaction_return", &viewData{
		Title: "transaction.return",
		Data:  transactionView{Order: order},
	})
}

// handleReturnStock reverses part of one order line. The backend
// restores book stock; this layer only validates the quantity.
func (s *Server) handleReturnStock(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	back := fmt.Sprintf("/transaction/%d/return", orderID)
	itemID, err := strconv.ParseInt(r.PostFormValue("orderItemId"), 10, 64)
	if err != nil {
		s.actionRedirect(w, r, back, session.Flash{Type: "error", Message: "invalid order item"})
		return
	}
	quantity, err := strconv.Atoi(util.NormalizeDigits(r.PostFormValue("stock")))
	if err != nil || quantity <= 0 {
		s.actionRedirect(w, r, back, session.Flash{Type: "error", Message: "please enter a valid quantity to return"})
		return
	}

	if err := s.app.API.ReturnStock(r.Context(), sess, orderID, itemID, quantity); err != nil {
		s.actionError(w, r, back, err)
		return
	}
	s.actionRedirect(w, r, "/transaction", s.toast(r, "transaction.returned"))
}
