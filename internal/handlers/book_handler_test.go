package handlers_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luisnguyen2k9-alt/LibraNCT/internal/catalog"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/handlers"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/models"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/store"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func newBookRouter(t *testing.T) (*mux.Router, *catalog.Service, *store.Store) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.New(t.TempDir(), log)
	cat := catalog.New(st, log)

	handler := handlers.NewBookHandler(cat)
	router := mux.NewRouter()
	router.HandleFunc("/search-books", handler.SearchBooks).Methods("GET")
	router.HandleFunc("/api/admin/all-books", handler.GetAllBooks).Methods("GET")
	router.HandleFunc("/api/admin/books/add", handler.AddBook).Methods("POST")
	router.HandleFunc("/api/admin/books/update", handler.UpdateBook).Methods("POST")
	router.HandleFunc("/api/admin/books/delete", handler.DeleteBook).Methods("POST")
	return router, cat, st
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAddBookEndpoint(t *testing.T) {
	router, cat, _ := newBookRouter(t)

	res := doJSON(t, router, http.MethodPost, "/api/admin/books/add",
		`{"title":"Dune","author":"Frank Herbert","quantity":2}`)

	require.Equal(t, http.StatusOK, res.Code)

	books, err := cat.All()
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, 2, books[0].Quantity)
}

func TestAddBookEndpointValidation(t *testing.T) {
	router, _, _ := newBookRouter(t)

	testCases := []struct {
		name string
		body string
	}{
		{"missing quantity", `{"title":"Dune"}`},
		{"missing title", `{"quantity":1}`},
		{"non numeric quantity", `{"title":"Dune","quantity":"lots"}`},
		{"negative quantity", `{"title":"Dune","quantity":-1}`},
		{"not json", `nope`},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			res := doJSON(t, router, http.MethodPost, "/api/admin/books/add", tt.body)
			assert.Equal(t, http.StatusBadRequest, res.Code)
		})
	}
}

func TestSearchBooksEndpoint(t *testing.T) {
	router, cat, _ := newBookRouter(t)
	book, err := cat.Add("Dune", "Frank Herbert", 1)
	require.NoError(t, err)

	res := doJSON(t, router, http.MethodGet, "/search-books?q=dune", "")
	require.Equal(t, http.StatusOK, res.Code)

	var results []catalog.SearchResult
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, book.BookID, results[0].ID)
	assert.Equal(t, models.StatusAvailable, results[0].Status)
}

func TestUpdateBookEndpoint(t *testing.T) {
	router, cat, _ := newBookRouter(t)
	book, err := cat.Add("Dune", "Frank Herbert", 1)
	require.NoError(t, err)

	res := doJSON(t, router, http.MethodPost, "/api/admin/books/update",
		`{"book_id":"`+book.BookID+`","quantity":9}`)
	require.Equal(t, http.StatusOK, res.Code)

	books, err := cat.All()
	require.NoError(t, err)
	assert.Equal(t, 9, books[0].Quantity)
}

func TestUpdateBookEndpointNotFound(t *testing.T) {
	router, _, _ := newBookRouter(t)

	res := doJSON(t, router, http.MethodPost, "/api/admin/books/update",
		`{"book_id":"B0","quantity":9}`)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestDeleteBookEndpointConflict(t *testing.T) {
	router, cat, st := newBookRouter(t)
	book, err := cat.Add("Dune", "Frank Herbert", 1)
	require.NoError(t, err)

	var books []models.Book
	require.NoError(t, st.Load(store.BooksSet, &books))
	books[0].IsBorrowed = true
	books[0].ReturnDate = "09/09/2026"
	require.NoError(t, st.Save(store.BooksSet, books))

	res := doJSON(t, router, http.MethodPost, "/api/admin/books/delete",
		`{"book_id":"`+book.BookID+`"}`)
	assert.Equal(t, http.StatusConflict, res.Code)
}
