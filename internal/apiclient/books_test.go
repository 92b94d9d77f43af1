package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akstore/bookstore-admin/internal/session"
)

func TestListBooksQuery(t *testing.T) {
	var query url.Values
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(`{"data":[{"id":1,"name":"Kite Runner"}],"current_page":3,"last_page":7,"per_page":15,"total":98}`))
	}))
	defer backend.Close()

	client := New(backend.URL)
	sess := session.Session{Token: "t"}

	page, err := client.ListBooks(context.Background(), sess, 3)
	require.NoError(t, err)
	assert.Equal(t, "3", query.Get("page"))
	assert.Equal(t, 3, page.CurrentPage)
	assert.Equal(t, 7, page.LastPage)
	assert.Equal(t, "Kite Runner", page.Data[0].Name)

	_, err = client.SearchBooks(context.Background(), sess, 1, "123", "1")
	require.NoError(t, err)
	assert.Equal(t, "123", query.Get("search"))
	assert.Equal(t, "1", query.Get("stock"))
}

func TestCreateBookMultipart(t *testing.T) {
	var (
		form     url.Values
		fileName string
		fileBody string
	)
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("Expected multipart form data: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		form = r.MultipartForm.Value
		if files := r.MultipartForm.File["cover_image"]; len(files) > 0 {
			fileName = files[0].Filename
			f, _ := files[0].Open()
			defer f.Close()
			var sb strings.Builder
			buf := make([]byte, 64)
			for {
				n, err := f.Read(buf)
				sb.Write(buf[:n])
				if err != nil {
					break
				}
			}
			fileBody = sb.String()
		}
		w.Write([]byte(`{"data":{"id":10}}`))
	}))
	defer backend.Close()

	client := New(backend.URL)
	sess := session.Session{Token: "t"}

	input := &BookInput{
		Name:        "A",
		Author:      "B",
		PublishYear: 2020,
		Cost:        800,
		Price:       1000,
		Stock:       5,
		CategoryID:  2,
		Barcode:     "1234567890123",
		CoverName:   "cover.jpg",
		Cover:       strings.NewReader("jpegbytes"),
	}

	t.Run("Create sends every field as a string", func(t *testing.T) {
		require.NoError(t, client.CreateBook(context.Background(), sess, input))

		assert.Equal(t, "A", form.Get("name"))
		assert.Equal(t, "B", form.Get("author"))
		assert.Equal(t, "2020", form.Get("publish_year"))
		assert.Equal(t, "1000", form.Get("price"))
		assert.Equal(t, "5", form.Get("stock"))
		assert.Equal(t, "2", form.Get("category_id"))
		assert.Equal(t, "1234567890123", form.Get("barcode"))
		assert.Empty(t, form.Get("_method"), "create must not carry a method override")
		assert.Equal(t, "cover.jpg", fileName)
		assert.Equal(t, "jpegbytes", fileBody)
	})

	t.Run("Update appends _method=PATCH", func(t *testing.T) {
		require.NoError(t, client.UpdateBook(context.Background(), sess, 10, &BookInput{Name: "A2", Barcode: "99"}))
		assert.Equal(t, "PATCH", form.Get("_method"))
		assert.Equal(t, "A2", form.Get("name"))
	})
}

func TestDownloadBarcode(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', 0, 1, 2, 3}
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/books/7/barcode" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"not found"}`))
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	}))
	defer backend.Close()

	client := New(backend.URL)
	sess := session.Session{Token: "t"}

	data, err := client.DownloadBarcode(context.Background(), sess, 7)
	require.NoError(t, err)
	assert.Equal(t, png, data)

	_, err = client.DownloadBarcode(context.Background(), sess, 8)
	assert.True(t, IsNotFound(err))
}
