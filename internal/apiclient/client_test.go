package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akstore/bookstore-admin/internal/session"
)

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[]}`))
	}))
	defer backend.Close()

	client := New(backend.URL)

	t.Run("Bearer token attached for valid session", func(t *testing.T) {
		sess := session.Session{Token: "token-abc"}
		_, err := client.ListBooks(context.Background(), sess, 1)
		require.NoError(t, err)

		assert.Equal(t, "Bearer token-abc", got.Get("Authorization"))
		assert.Equal(t, "application/json", got.Get("Accept"))
		assert.Equal(t, backend.URL, got.Get("Referer"))
		assert.Equal(t, "Web-Browser", got.Get("X-Application-Platform"))
	})

	t.Run("No Authorization header without a session", func(t *testing.T) {
		_, err := client.ListBooks(context.Background(), session.Session{}, 1)
		require.NoError(t, err)

		_, present := got["Authorization"]
		assert.False(t, present, "Authorization header must be absent without a token")
	})
}

func TestErrorTranslation(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/books":
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Unauthenticated."}`))
		case "/api/admin/categories":
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"message":"The name has already been taken."}`))
		case "/api/admin/categories/42":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Category not found"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`not json`))
		}
	}))
	defer backend.Close()

	client := New(backend.URL)
	sess := session.Session{Token: "token-abc"}

	t.Run("401 becomes ErrUnauthorized", func(t *testing.T) {
		_, err := client.ListBooks(context.Background(), sess, 1)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("422 carries the backend error body", func(t *testing.T) {
		err := client.CreateCategory(context.Background(), sess, "Novels")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
		assert.Equal(t, "The name has already been taken.", apiErr.Message)
		assert.NotErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("404 is detectable", func(t *testing.T) {
		err := client.DeleteCategory(context.Background(), sess, 42)
		assert.True(t, IsNotFound(err))
	})

	t.Run("Unparseable error body still yields the status", func(t *testing.T) {
		_, err := client.GetReports(context.Background(), sess)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
		assert.Empty(t, apiErr.Message)
	})
}

func TestTransportFailure(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	backend.Close() // connection refused from here on

	client := New(backend.URL)
	_, err := client.ListBooks(context.Background(), session.Session{Token: "t"}, 1)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestMalformedResponseIsAnError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>definitely not json</html>`))
	}))
	defer backend.Close()

	client := New(backend.URL)
	_, err := client.ListBooks(context.Background(), session.Session{Token: "t"}, 1)
	assert.Error(t, err, "a 2xx with a non-JSON body must not be swallowed")
}
