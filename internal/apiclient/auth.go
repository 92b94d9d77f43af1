package apiclient

import (
	"context"
	"net/url"

	"github.com/akstore/bookstore-admin/internal/session"
)

// LoginResult is the payload of a successful token creation.
type LoginResult struct {
	Token string   `json:"token"`
	Roles []string `json:"roles"`
}

// Login exchanges credentials for a bearer token. It is the only
// endpoint called without a session.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)

	var envelope struct {
		Data LoginResult `json:"data"`
	}
	if err := c.postForm(ctx, session.Session{}, "/api/admin/token/create", form, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}
