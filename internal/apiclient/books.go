package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/akstore/bookstore-admin/internal/models"
	"github.com/akstore/bookstore-admin/internal/session"
)

// BookInput is the form payload for creating or updating a book. Cover
// is optional; when set it is sent as the multipart file part.
type BookInput struct {
	Name        string
	Description string
	Author      string
	Translator  string
	PublishYear int
	Cost        int64
	Price       int64
	Stock       int
	CategoryID  int64
	Barcode     string
	CoverName   string
	Cover       io.Reader
}

// fields returns the string fields in backend naming.
func (in *BookInput) fields() map[string]string {
	return map[string]string{
		"name":         in.Name,
		"description":  in.Description,
		"author":       in.Author,
		"translator":   in.Translator,
		"publish_year": strconv.Itoa(in.PublishYear),
		"cost":         strconv.FormatInt(in.Cost, 10),
		"price":        strconv.FormatInt(in.Price, 10),
		"stock":        strconv.Itoa(in.Stock),
		"category_id":  strconv.FormatInt(in.CategoryID, 10),
		"barcode":      in.Barcode,
	}
}

// ListBooks fetches one page of the catalog.
func (c *Client) ListBooks(ctx context.Context, sess session.Session, page int) (*models.BookPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))

	var result models.BookPage
	if err := c.getJSON(ctx, sess, "/api/admin/books", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchBooks fetches a page of books matching a search term, optionally
// restricted to in-stock entries. Used by the POS screen.
func (c *Client) SearchBooks(ctx context.Context, sess session.Session, page int, search, stock string) (*models.BookPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("search", search)
	if stock != "" {
		query.Set("stock", stock)
	}

	var result models.BookPage
	if err := c.getJSON(ctx, sess, "/api/admin/books", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetBook fetches a single book by id.
func (c *Client) GetBook(ctx context.Context, sess session.Session, id int64) (*models.Book, error) {
	var envelope struct {
		Data models.Book `json:"data"`
	}
	if err := c.getJSON(ctx, sess, fmt.Sprintf("/api/admin/books/%d", id), nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// CreateBook submits a new book as multipart form data so the cover
// image can ride along.
func (c *Client) CreateBook(ctx context.Context, sess session.Session, input *BookInput) error {
	return c.postBookForm(ctx, sess, "/api/admin/books", input, false)
}

// UpdateBook updates a book. The backend accepts PATCH only via the
// POST method-override convention, so a synthetic _method field is
// appended to the form.
func (c *Client) UpdateBook(ctx context.Context, sess session.Session, id int64, input *BookInput) error {
	return c.postBookForm(ctx, sess, fmt.Sprintf("/api/admin/books/%d", id), input, true)
}

// DeleteBook removes a book from the catalog.
func (c *Client) DeleteBook(ctx context.Context, sess session.Session, id int64) error {
	return c.delete(ctx, sess, fmt.Sprintf("/api/admin/books/%d", id))
}

// DownloadBarcode fetches the printable barcode label for a book as a
// binary PNG. This is the one endpoint that does not speak JSON.
func (c *Client) DownloadBarcode(ctx context.Context, sess session.Session, id int64) ([]byte, error) {
	req, err := c.newRequest(ctx, sess, http.MethodGet, fmt.Sprintf("/api/admin/books/%d/barcode", id), nil, nil, "")
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "image/png")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) postBookForm(ctx context.Context, sess session.Session, path string, input *BookInput, methodOverride bool) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for key, value := range input.fields() {
		if err := writer.WriteField(key, value); err != nil {
			return err
		}
	}
	if methodOverride {
		if err := writer.WriteField("_method", "PATCH"); err != nil {
			return err
		}
	}
	if input.Cover != nil {
		part, err := writer.CreateFormFile("cover_image", input.CoverName)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, input.Cover); err != nil {
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}

	// The multipart writer owns the Content-Type so the boundary matches.
	req, err := c.newRequest(ctx, sess, http.MethodPost, path, nil, &body, writer.FormDataContentType())
	if err != nil {
		return err
	}
	return c.do(req, nil)
}
