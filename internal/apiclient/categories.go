package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/akstore/bookstore-admin/internal/models"
	"github.com/akstore/bookstore-admin/internal/session"
)

// ListCategories returns every category. The list is small enough that
// the backend does not paginate it.
func (c *Client) ListCategories(ctx context.Context, sess session.Session) ([]models.Category, error) {
	var envelope struct {
		Data []models.Category `json:"data"`
	}
	if err := c.getJSON(ctx, sess, "/api/admin/categories", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// CreateCategory adds a category.
func (c *Client) CreateCategory(ctx context.Context, sess session.Session, name string) error {
	form := url.Values{}
	form.Set("name", name)
	return c.postForm(ctx, sess, "/api/admin/categories", form, nil)
}

// UpdateCategory renames a category via the POST method-override
// convention.
func (c *Client) UpdateCategory(ctx context.Context, sess session.Session, id int64, name string) error {
	form := url.Values{}
	form.Set("name", name)
	form.Set("_method", "PATCH")
	return c.postForm(ctx, sess, fmt.Sprintf("/api/admin/categories/%d", id), form, nil)
}

// DeleteCategory removes a category. Whether the backend blocks or
// cascades deletion of an in-use category is its contract, not ours; a
// rejection comes back as an *APIError and is surfaced as a toast.
func (c *Client) DeleteCategory(ctx context.Context, sess session.Session, id int64) error {
	return c.delete(ctx, sess, fmt.Sprintf("/api/admin/categories/%d", id))
}
