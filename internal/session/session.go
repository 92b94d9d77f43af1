// Package session reads and writes the signed cookies that carry the
// backend bearer token and role claims between requests. The server keeps
// no other state: losing a cookie just means logging in again.

package session

import (
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

const (
	tokenCookieName = "token"
	rolesCookieName = "roles"

	// Cookies live for a week, matching the backend token lifetime.
	maxAge = 7 * 24 * time.Hour
)

// Session is the decoded cookie state for one inbound request. A zero
// Session means "unauthenticated".
type Session struct {
	Token string
	Roles []string
}

// Authenticated reports whether the session carries a bearer token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// HasRole reports whether the session claims the given role.
func (s Session) HasRole(role string) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Store signs and verifies the session cookies. One instance is created
// at startup from the configured secret and shared by all requests.
type Store struct {
	codec  *securecookie.SecureCookie
	secure bool
}

// NewStore creates a cookie store. secure controls the Secure cookie
// flag and should be true in production.
func NewStore(secret string, secure bool) *Store {
	codec := securecookie.New([]byte(secret), nil)
	codec.MaxAge(int(maxAge.Seconds()))
	return &Store{codec: codec, secure: secure}
}

// FromRequest decodes the token and roles cookies. Missing, tampered or
// expired cookies degrade to a zero Session; they are never an error,
// callers treat the result as "unauthenticated" and redirect to login.
func (st *Store) FromRequest(r *http.Request) Session {
	var sess Session
	if c, err := r.Cookie(tokenCookieName); err == nil {
		var token string
		if err := st.codec.Decode(tokenCookieName, c.Value, &token); err == nil {
			sess.Token = token
		}
	}
	if c, err := r.Cookie(rolesCookieName); err == nil {
		var roles []string
		if err := st.codec.Decode(rolesCookieName, c.Value, &roles); err == nil {
			sess.Roles = roles
		}
	}
	return sess
}

// Issue sets the signed token and roles cookies on the response.
func (st *Store) Issue(w http.ResponseWriter, token string, roles []string) error {
	encodedToken, err := st.codec.Encode(tokenCookieName, token)
	if err != nil {
		return err
	}
	http.SetCookie(w, st.cookie(tokenCookieName, encodedToken, int(maxAge.Seconds())))

	encodedRoles, err := st.codec.Encode(rolesCookieName, roles)
	if err != nil {
		return err
	}
	http.SetCookie(w, st.cookie(rolesCookieName, encodedRoles, int(maxAge.Seconds())))
	return nil
}

// Clear expires both cookies on the client. Used at logout.
func (st *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, st.cookie(tokenCookieName, "", -1))
	http.SetCookie(w, st.cookie(rolesCookieName, "", -1))
}

func (st *Store) cookie(name, value string, maxAgeSeconds int) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAgeSeconds,
		HttpOnly: true,
		Secure:   st.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if maxAgeSeconds < 0 {
		c.Expires = time.Unix(0, 0)
	}
	return c
}
