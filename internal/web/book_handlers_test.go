package web_test

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/akstore/bookstore-admin/internal/models"
	"github.com/akstore/bookstore-admin/internal/testutil"
)

// postBookForm submits the book form as the browser would: multipart,
// with the session cookies attached.
func postBookForm(t *testing.T, ts string, path string, cookies []*http.Cookie, fields map[string]string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	mw.Close()

	req, err := http.NewRequest(http.MethodPost, ts+path, &buf)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := testutil.NoRedirectClient().Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	return resp
}

func validBookFields(categoryID int64) map[string]string {
	return map[string]string{
		"name":         "The Blind Owl",
		"author":       "Sadegh Hedayat",
		"translator":   "D. P. Costello",
		"description":  "A classic.",
		"publish_year": "1937",
		"cost":         "4000",
		"price":        "6000",
		"stock":        "12",
		"category_id":  fmt.Sprintf("%d", categoryID),
		"barcode":      "9780802131805",
	}
}

func TestBookCreate(t *testing.T) {
	ts, backend, app := testutil.SetupTestServer(t)
	cookies := testutil.AuthCookies(t, ts)
	cat := backend.AddCategory("Fiction")

	t.Run("valid form creates the book and redirects to the list", func(t *testing.T) {
		resp := postBookForm(t, ts.URL, "/books/create", cookies, validBookFields(cat.ID))
		defer resp.Body.Close()

		requireRedirect(t, resp, "/books")
		if flash := popFlash(t, app, resp); flash == nil || flash.Type != "success" {
			t.Fatalf("Expected a success toast, got %+v", flash)
		}

		if len(backend.Books) != 1 {
			t.Fatalf("Expected 1 book in the backend, got %d", len(backend.Books))
		}
		book := backend.Books[0]
		if book.Name != "The Blind Owl" || book.Stock != 12 || book.Price != 6000 {
			t.Errorf("Book fields not forwarded correctly: %+v", book)
		}
		if book.Category.ID != cat.ID {
			t.Errorf("Expected category %d, got %d", cat.ID, book.Category.ID)
		}
	})

	t.Run("a cover image rides along as the file part", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fields := validBookFields(cat.ID)
		fields["name"] = "Covered"
		for k, v := range fields {
			mw.WriteField(k, v)
		}
		part, err := mw.CreateFormFile("cover_image", "cover.png")
		if err != nil {
			t.Fatalf("Failed to build file part: %v", err)
		}
		part.Write([]byte{0x89, 'P', 'N', 'G'})
		mw.Close()

		req, err := http.NewRequest(http.MethodPost, ts.URL+"/books/create", &buf)
		if err != nil {
			t.Fatalf("Failed to build request: %v", err)
		}
		req.Header.Set("Content-Type", mw.FormDataContentType())
		for _, c := range cookies {
			req.AddCookie(c)
		}
		resp, err := testutil.NoRedirectClient().Do(req)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		defer resp.Body.Close()

		requireRedirect(t, resp, "/books")
		book := backend.Books[len(backend.Books)-1]
		if book.Cover != "/covers/cover.png" {
			t.Errorf("Expected the cover file to reach the backend, got %q", book.Cover)
		}
	})

	t.Run("localized digits are normalized before submission", func(t *testing.T) {
		fields := validBookFields(cat.ID)
		fields["name"] = "Localized"
		fields["stock"] = "٣"
		fields["price"] = "٥٠٠٠"
		fields["barcode"] = "١٢٣٤٥٦"

		resp := postBookForm(t, ts.URL, "/books/create", cookies, fields)
		defer resp.Body.Close()

		requireRedirect(t, resp, "/books")
		book := backend.Books[len(backend.Books)-1]
		if book.Stock != 3 || book.Price != 5000 || book.Barcode != "123456" {
			t.Errorf("Expected normalized digits, got stock=%d price=%d barcode=%q",
				book.Stock, book.Price, book.Barcode)
		}
	})

	t.Run("missing required fields re-render the form without a backend call", func(t *testing.T) {
		before := len(backend.Books)
		fields := validBookFields(cat.ID)
		fields["name"] = ""

		resp := postBookForm(t, ts.URL, "/books/create", cookies, fields)
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Fatalf("Expected status 422, got %d", resp.StatusCode)
		}
		body, _ := io.ReadAll(resp.Body)
		if !strings.Contains(string(body), "name, author and barcode are required") {
			t.Error("Expected the validation message in the response body")
		}
		// The rejected value stays in the form.
		if !strings.Contains(string(body), "Sadegh Hedayat") {
			t.Error("Expected submitted values to be repopulated")
		}
		if len(backend.Books) != before {
			t.Error("Expected no book to be created for invalid input")
		}
	})

	t.Run("overlong barcode is rejected", func(t *testing.T) {
		fields := validBookFields(cat.ID)
		fields["barcode"] = strings.Repeat("9", 17)

		resp := postBookForm(t, ts.URL, "/books/create", cookies, fields)
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Fatalf("Expected status 422, got %d", resp.StatusCode)
		}
	})
}

func TestBookUpdate(t *testing.T) {
	ts, backend, app := testutil.SetupTestServer(t)
	cookies := testutil.AuthCookies(t, ts)
	cat := backend.AddCategory("Fiction")
	book := backend.AddBook(models.Book{Name: "Old Name", Author: "A", Barcode: "111", Category: cat, Stock: 1})

	t.Run("update page shows the current values", func(t *testing.T) {
		req := testutil.AuthedRequest(t, http.MethodGet, fmt.Sprintf("%s/books/%d/update", ts.URL, book.ID), nil, cookies)
		resp, err := testutil.NoRedirectClient().Do(req)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if !strings.Contains(string(body), "Old Name") {
			t.Error("Expected the current book name in the form")
		}
	})

	t.Run("valid update is forwarded with a method override", func(t *testing.T) {
		fields := validBookFields(cat.ID)
		fields["name"] = "New Name"

		resp := postBookForm(t, ts.URL, fmt.Sprintf("/books/%d/update", book.ID), cookies, fields)
		defer resp.Body.Close()

		requireRedirect(t, resp, "/books")
		if flash := popFlash(t, app, resp); flash == nil || flash.Type != "success" {
			t.Fatalf("Expected a success toast, got %+v", flash)
		}
		if backend.Books[0].Name != "New Name" {
			t.Errorf("Expected the book to be renamed, got %q", backend.Books[0].Name)
		}
	})
}

func TestBooksList(t *testing.T) {
	ts, backend, _ := testutil.SetupTestServer(t)
	cookies := testutil.AuthCookies(t, ts)
	cat := backend.AddCategory("Fiction")
	for i := 0; i < 3; i++ {
		backend.AddBook(models.Book{Name: fmt.Sprintf("Book %d", i), Barcode: fmt.Sprintf("%d", i), Category: cat})
	}

	t.Run("lists the current page", func(t *testing.T) {
		req := testutil.AuthedRequest(t, http.MethodGet, ts.URL+"/books", nil, cookies)
		resp, err := testutil.NoRedirectClient().Do(req)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}
		body, _ := io.ReadAll(resp.Body)
		if !strings.Contains(string(body), "Book 0") {
			t.Error("Expected the first book in the list")
		}
	})

	t.Run("a page beyond the last redirects to page 1", func(t *testing.T) {
		req := testutil.AuthedRequest(t, http.MethodGet, ts.URL+"/books?page=99", nil, cookies)
		resp, err := testutil.NoRedirectClient().Do(req)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		defer resp.Body.Close()
		requireRedirect(t, resp, "/books?page=1")
	})

	t.Run("a localized page number paginates normally", func(t *testing.T) {
		req := testutil.AuthedRequest(t, http.MethodGet, ts.URL+"/books?page=%D9%A1", nil, cookies)
		resp, err := testutil.NoRedirectClient().Do(req)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200 for page ١, got %d", resp.StatusCode)
		}
	})
}

func TestBookDelete(t *testing.T) {
	ts, backend, app := testutil.SetupTestServer(t)
	cookies := testutil.AuthCookies(t, ts)
	cat := backend.AddCategory("Fiction")
	book := backend.AddBook(models.Book{Name: "Doomed", Barcode: "1", Category: cat})

	req := testutil.AuthedRequest(t, http.MethodPost,
		fmt.Sprintf("%s/books/%d/delete?page=2", ts.URL, book.ID), strings.NewReader(""), cookies)
	resp, err := testutil.NoRedirectClient().Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	// Deleting from page 2 goes back to page 2.
	requireRedirect(t, resp, "/books?page=2")
	if flash := popFlash(t, app, resp); flash == nil || flash.Type != "success" {
		t.Fatalf("Expected a success toast, got %+v", flash)
	}
	if len(backend.Books) != 0 {
		t.Errorf("Expected the book to be deleted, %d remain", len(backend.Books))
	}
}

func TestBookBarcode(t *testing.T) {
	ts, backend, _ := testutil.SetupTestServer(t)
	cookies := testutil.AuthCookies(t, ts)
	cat := backend.AddCategory("Fiction")
	book := backend.AddBook(models.Book{Name: "Labeled", Barcode: "42", Category: cat})

	req := testutil.AuthedRequest(t, http.MethodGet,
		fmt.Sprintf("%s/books/%d/barcode", ts.URL, book.ID), nil, cookies)
	resp, err := testutil.NoRedirectClient().Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %q", ct)
	}
	want := fmt.Sprintf("attachment; filename=barcode-%d.png", book.ID)
	if cd := resp.Header.Get("Content-Disposition"); cd != want {
		t.Errorf("Expected Content-Disposition %q, got %q", want, cd)
	}
	data, _ := io.ReadAll(resp.Body)
	if len(data) == 0 {
		t.Error("Expected barcode image bytes")
	}
}
