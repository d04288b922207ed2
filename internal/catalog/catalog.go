package catalog

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/luisnguyen2k9-alt/LibraNCT/internal/liberr"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/models"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/store"
)

// Service owns the book record set: search, add, update, delete.
// Lending state (IsBorrowed, ReturnDate) belongs to the lending engine
// and is never touched here beyond the delete-while-borrowed guard.
type Service struct {
	store *store.Store
	log   *slog.Logger
	now   func() time.Time
}

func New(st *store.Store, log *slog.Logger) *Service {
	return &Service{store: st, log: log, now: time.Now}
}

// SearchResult is the trimmed-down row returned by Search.
type SearchResult struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Quantity int               `json:"quantity"`
	Status   models.BookStatus `json:"status"`
}

// Search matches query case-insensitively against book IDs and titles.
// Results follow storage order; an empty query matches everything.
func (s *Service) Search(query string) ([]SearchResult, error) {
	var books []models.Book
	if err := s.store.Load(store.BooksSet, &books); err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	results := make([]SearchResult, 0)
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Title), q) || strings.Contains(strings.ToLower(b.BookID), q) {
			results = append(results, SearchResult{
				ID:       b.BookID,
				Title:    b.Title,
				Quantity: b.Quantity,
				Status:   b.Status(),
			})
		}
	}
	return results, nil
}

// All returns every book in storage order.
func (s *Service) All() ([]models.Book, error) {
	var books []models.Book
	if err := s.store.Load(store.BooksSet, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// Add creates a new book with a fresh time-derived ID. The ID is unique
// because issuance is serialized under the books lock and collides at
// worst once per second, which the retry below steps past.
func (s *Service) Add(title, author string, quantity int) (models.Book, error) {
	if strings.TrimSpace(title) == "" {
		return models.Book{}, liberr.Validationf("title is required")
	}
	if quantity < 0 {
		return models.Book{}, liberr.Validationf("quantity must not be negative")
	}
	if author == "" {
		author = models.AuthorUnknown
	}

	var created models.Book
	err := s.store.WithLock(store.BooksSet, func() error {
		var books []models.Book
		if err := s.store.Load(store.BooksSet, &books); err != nil {
			return err
		}

		id := s.freshBookID(books)
		created = models.Book{
			BookID:     id,
			Title:      title,
			Author:     author,
			Quantity:   quantity,
			IsBorrowed: false,
		}
		books = append(books, created)
		return s.store.Save(store.BooksSet, books)
	})
	if err != nil {
		return models.Book{}, err
	}

	s.log.Info("book added", "book_id", created.BookID, "title", created.Title)
	return created, nil
}

func (s *Service) freshBookID(books []models.Book) string {
	taken := make(map[string]bool, len(books))
	for _, b := range books {
		taken[b.BookID] = true
	}
	ts := s.now().Unix()
	for {
		id := fmt.Sprintf("B%d", ts)
		if !taken[id] {
			return id
		}
		ts++
	}
}

// BookUpdate carries the optional fields of a partial update. Nil fields
// are left unchanged.
type BookUpdate struct {
	Title    *string
	Author   *string
	Quantity *int
}

// Update applies a partial update to the identified book. Lending fields
// cannot be changed through here.
func (s *Service) Update(bookID string, upd BookUpdate) (models.Book, error) {
	if bookID == "" {
		return models.Book{}, liberr.Validationf("book ID is required")
	}
	if upd.Quantity != nil && *upd.Quantity < 0 {
		return models.Book{}, liberr.Validationf("quantity must not be negative")
	}

	var updated models.Book
	err := s.store.WithLock(store.BooksSet, func() error {
		var books []models.Book
		if err := s.store.Load(store.BooksSet, &books); err != nil {
			return err
		}

		idx := findBook(books, bookID)
		if idx < 0 {
			return liberr.NotFoundf("book %s", bookID)
		}

		if upd.Title != nil {
			books[idx].Title = *upd.Title
		}
		if upd.Author != nil {
			books[idx].Author = *upd.Author
		}
		if upd.Quantity != nil {
			books[idx].Quantity = *upd.Quantity
		}
		updated = books[idx]
		return s.store.Save(store.BooksSet, books)
	})
	if err != nil {
		return models.Book{}, err
	}
	return updated, nil
}

// Delete removes a book entirely. Books currently on loan cannot be
// deleted.
func (s *Service) Delete(bookID string) error {
	if bookID == "" {
		return liberr.Validationf("book ID is required")
	}

	return s.store.WithLock(store.BooksSet, func() error {
		var books []models.Book
		if err := s.store.Load(store.BooksSet, &books); err != nil {
			return err
		}

		idx := findBook(books, bookID)
		if idx < 0 {
			return liberr.NotFoundf("book %s", bookID)
		}
		if books[idx].IsBorrowed {
			return liberr.Conflictf("book %s is currently borrowed", bookID)
		}

		books = append(books[:idx], books[idx+1:]...)
		return s.store.Save(store.BooksSet, books)
	})
}

func findBook(books []models.Book, bookID string) int {
	for i := range books {
		if books[i].BookID == bookID {
			return i
		}
	}
	return -1
}
