package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/url"
	"strconv"

	"github.com/akstore/bookstore-admin/internal/models"
	"github.com/akstore/bookstore-admin/internal/session"
)

// OrderLine is one cart line at submission time.
type OrderLine struct {
	BookID   int64 `json:"id"`
	Price    int64 `json:"price"`
	Quantity int   `json:"quantity"`
}

// OrderInput is a finished cart ready for submission.
type OrderInput struct {
	CustomerName        string
	CustomerPhoneNumber string
	Paid                int64
	Lines               []OrderLine
}

// Total is the sum of line price x quantity. The backend recomputes it;
// this value exists so the UI total and the submission always agree.
func (in *OrderInput) Total() int64 {
	var total int64
	for _, line := range in.Lines {
		total += line.Price * int64(line.Quantity)
	}
	return total
}

// CreateOrder submits a cart. The backend expects multipart form data
// with the cart flattened into indexed fields
// (books[i][id], books[i][price], books[i][quantity]).
func (c *Client) CreateOrder(ctx context.Context, sess session.Session, input *OrderInput) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	writer.WriteField("customer_name", input.CustomerName)
	writer.WriteField("customer_phone_number", input.CustomerPhoneNumber)
	writer.WriteField("paid", strconv.FormatInt(input.Paid, 10))
	for i, line := range input.Lines {
		writer.WriteField(fmt.Sprintf("books[%d][id]", i), strconv.FormatInt(line.BookID, 10))
		writer.WriteField(fmt.Sprintf("books[%d][price]", i), strconv.FormatInt(line.Price, 10))
		writer.WriteField(fmt.Sprintf("books[%d][quantity]", i), strconv.Itoa(line.Quantity))
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, sess, "POST", "/api/admin/orders", nil, &body, writer.FormDataContentType())
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// ListOrders fetches one page of the transaction history, filtered by
// status (pending/completed) and an optional search term.
func (c *Client) ListOrders(ctx context.Context, sess session.Session, page int, status, search string) (*models.OrderPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	if status != "" {
		query.Set("status", status)
	}
	if search != "" {
		query.Set("search", search)
	}

	var result models.OrderPage
	if err := c.getJSON(ctx, sess, "/api/admin/orders", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetOrder fetches a single order with its line items.
func (c *Client) GetOrder(ctx context.Context, sess session.Session, id int64) (*models.Order, error) {
	var envelope struct {
		Data models.Order `json:"data"`
	}
	if err := c.getJSON(ctx, sess, fmt.Sprintf("/api/admin/orders/%d", id), nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// UpdateOrder adjusts the paid amount and/or status of an order via the
// POST method-override convention.
func (c *Client) UpdateOrder(ctx context.Context, sess session.Session, id int64, paid int64, status string) error {
	form := url.Values{}
	form.Set("paid", strconv.FormatInt(paid, 10))
	form.Set("status", status)
	form.Set("_method", "PATCH")
	return c.postForm(ctx, sess, fmt.Sprintf("/api/admin/orders/%d", id), form, nil)
}

// DeleteOrder removes an order from the history.
func (c *Client) DeleteOrder(ctx context.Context, sess session.Session, id int64) error {
	return c.delete(ctx, sess, fmt.Sprintf("/api/admin/orders/%d", id))
}

// ReturnStock reverses part of an order line: the backend decrements
// the sold quantity and restores book stock.
func (c *Client) ReturnStock(ctx context.Context, sess session.Session, orderID, itemID int64, quantity int) error {
	form := url.Values{}
	form.Set("stock", strconv.Itoa(quantity))
	return c.postForm(ctx, sess,
		fmt.Sprintf("/api/admin/orders/%d/order-item/%d/return-stock", orderID, itemID), form, nil)
}
