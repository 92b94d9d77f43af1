package apiclient

import (
	"context"
	"net/url"

	"github.com/akstore/bookstore-admin/internal/models"
	"github.com/akstore/bookstore-admin/internal/session"
)

// GetReports fetches the dashboard snapshot.
func (c *Client) GetReports(ctx context.Context, sess session.Session) (*models.Report, error) {
	var result models.Report
	if err := c.getJSON(ctx, sess, "/api/admin/reports/index", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetIncome fetches the income aggregate for an inclusive date range
// (YYYY-MM-DD).
func (c *Client) GetIncome(ctx context.Context, sess session.Session, from, to string) (*models.Income, error) {
	query := url.Values{}
	query.Set("from", from)
	query.Set("to", to)

	var result models.Income
	if err := c.getJSON(ctx, sess, "/api/admin/reports/income", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
