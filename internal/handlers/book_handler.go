package handlers

import (
	encjson "encoding/json"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/luisnguyen2k9-alt/LibraNCT/internal/catalog"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/liberr"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// BookHandler serves catalog search and the admin book mutations.
type BookHandler struct {
	Catalog *catalog.Service
}

func NewBookHandler(cat *catalog.Service) *BookHandler {
	return &BookHandler{Catalog: cat}
}

// GET /search-books?q=
func (h *BookHandler) SearchBooks(w http.ResponseWriter, r *http.Request) {
	results, err := h.Catalog.Search(r.URL.Query().Get("q"))
	if err != nil {
		utils.JSONError(w, err.Error(), liberr.HTTPStatus(err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, results)
}

// GET /api/admin/all-books
func (h *BookHandler) GetAllBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.Catalog.All()
	if err != nil {
		utils.JSONError(w, err.Error(), liberr.HTTPStatus(err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, books)
}

type addBookRequest struct {
	Title    string         `json:"title"`
	Author   string         `json:"author"`
	Quantity encjson.Number `json:"quantity"`
}

// POST /api/admin/books/add
func (h *BookHandler) AddBook(w http.ResponseWriter, r *http.Request) {
	var req addBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if req.Quantity == "" {
		utils.JSONError(w, "Book title and quantity are required.", http.StatusBadRequest)
		return
	}
	quantity, err := req.Quantity.Int64()
	if err != nil {
		utils.JSONError(w, "Quantity must be a number.", http.StatusBadRequest)
		return
	}

	if _, err := h.Catalog.Add(req.Title, req.Author, int(quantity)); err != nil {
		utils.JSONError(w, err.Error(), liberr.HTTPStatus(err))
		return
	}
	utils.JSONSuccess(w, "Book added successfully.")
}

type updateBookRequest struct {
	BookID   string          `json:"book_id"`
	Title    *string         `json:"title"`
	Author   *string         `json:"author"`
	Quantity *encjson.Number `json:"quantity"`
}

// POST /api/admin/books/update
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	var req updateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if req.BookID == "" {
		utils.JSONError(w, "Book ID is required.", http.StatusBadRequest)
		return
	}

	upd := catalog.BookUpdate{Title: req.Title, Author: req.Author}
	if req.Quantity != nil {
		quantity, err := req.Quantity.Int64()
		if err != nil {
			utils.JSONError(w, "Quantity must be a number.", http.StatusBadRequest)
			return
		}
		q := int(quantity)
		upd.Quantity = &q
	}

	if _, err := h.Catalog.Update(req.BookID, upd); err != nil {
		utils.JSONError(w, err.Error(), liberr.HTTPStatus(err))
		return
	}
	utils.JSONSuccess(w, "Book updated.")
}

type deleteBookRequest struct {
	BookID string `json:"book_id"`
}

// POST /api/admin/books/delete
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	var req deleteBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if req.BookID == "" {
		utils.JSONError(w, "Book ID is required.", http.StatusBadRequest)
		return
	}

	if err := h.Catalog.Delete(req.BookID); err != nil {
		utils.JSONError(w, err.Error(), liberr.HTTPStatus(err))
		return
	}
	utils.JSONSuccess(w, "Book deleted.")
}
