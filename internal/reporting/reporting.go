package reporting

import (
	"log/slog"
	"sort"
	"time"

	"github.com/luisnguyen2k9-alt/LibraNCT/internal/lending"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/models"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/store"
)

// RecommendationLimit caps the dashboard recommendation list.
const RecommendationLimit = 6

// RecentBorrowalLimit caps the admin stats recent-transaction list.
const RecentBorrowalLimit = 5

// Service derives read-only views by joining the book and transaction
// sets. Nothing here mutates state, so reads need no coordination beyond
// the store's atomic file swap.
type Service struct {
	store *store.Store
	log   *slog.Logger
	now   func() time.Time
}

func New(st *store.Store, log *slog.Logger) *Service {
	return &Service{store: st, log: log, now: time.Now}
}

// BorrowedBook is one row of the dashboard's current-loans list.
type BorrowedBook struct {
	BookTitle  string `json:"book_title"`
	ReturnDate string `json:"return_date"`
}

// DueSoonBook is one row of the dashboard's due-soon list.
type DueSoonBook struct {
	Title    string `json:"title"`
	DaysLeft int    `json:"days_left"`
}

// Dashboard is the user-facing view for one borrower identity.
type Dashboard struct {
	BorrowedBooks   []BorrowedBook `json:"borrowed_books"`
	DueSoonBooks    []DueSoonBook  `json:"due_soon_books"`
	Recommendations []models.Book  `json:"recommendations"`
}

// BuildDashboard joins the identity's transactions against current book
// state. A transaction counts as an active loan only while its book is
// still flagged borrowed.
func (s *Service) BuildDashboard(email string) (Dashboard, error) {
	books, txs, err := s.loadAll()
	if err != nil {
		return Dashboard{}, err
	}

	byID := indexBooks(books)
	today := s.now()

	dash := Dashboard{
		BorrowedBooks:   []BorrowedBook{},
		DueSoonBooks:    []DueSoonBook{},
		Recommendations: []models.Book{},
	}

	borrowedIDs := make(map[string]bool)
	for _, tx := range txs {
		if tx.OriginalEmail != email {
			continue
		}
		borrowedIDs[tx.BookID] = true

		book, ok := byID[tx.BookID]
		if !ok || !book.IsBorrowed {
			continue
		}
		dash.BorrowedBooks = append(dash.BorrowedBooks, BorrowedBook{
			BookTitle:  tx.BookTitle,
			ReturnDate: book.ReturnDate,
		})
		if days, ok := lending.DaysLeft(book.ReturnDate, today); ok && lending.IsDueSoon(days) {
			dash.DueSoonBooks = append(dash.DueSoonBooks, DueSoonBook{
				Title:    tx.BookTitle,
				DaysLeft: days,
			})
		}
	}

	sort.SliceStable(dash.DueSoonBooks, func(i, j int) bool {
		return dash.DueSoonBooks[i].DaysLeft < dash.DueSoonBooks[j].DaysLeft
	})

	// First-N available books the user has not borrowed, storage order.
	for _, b := range books {
		if len(dash.Recommendations) == RecommendationLimit {
			break
		}
		if borrowedIDs[b.BookID] || !b.Available() {
			continue
		}
		dash.Recommendations = append(dash.Recommendations, b)
	}

	return dash, nil
}

// UserBorrowedBook is one row of the user's active-loan listing.
type UserBorrowedBook struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	ReturnDate string `json:"return_date"`
}

// UserBorrowedBooks lists the identity's loans that are still open.
func (s *Service) UserBorrowedBooks(email string) ([]UserBorrowedBook, error) {
	books, txs, err := s.loadAll()
	if err != nil {
		return nil, err
	}

	byID := indexBooks(books)
	list := []UserBorrowedBook{}
	for _, tx := range txs {
		if tx.OriginalEmail != email {
			continue
		}
		book, ok := byID[tx.BookID]
		if !ok || !book.IsBorrowed {
			continue
		}
		list = append(list, UserBorrowedBook{
			ID:         tx.BookID,
			Title:      tx.BookTitle,
			ReturnDate: tx.ReturnDate,
		})
	}
	return list, nil
}

// Stats is the admin aggregate view.
type Stats struct {
	TotalBooks      int                  `json:"total_books"`
	AvailableBooks  int                  `json:"available_books"`
	BorrowedBooks   int                  `json:"borrowed_books"`
	OverdueCount    int                  `json:"overdue_count"`
	RecentBorrowals []models.Transaction `json:"recent_borrowals"`
}

// BuildStats counts book states and picks the most recent transactions.
// Recency ordering relies on borrow codes sorting chronologically as
// strings.
func (s *Service) BuildStats() (Stats, error) {
	books, txs, err := s.loadAll()
	if err != nil {
		return Stats{}, err
	}

	today := s.now()
	stats := Stats{TotalBooks: len(books), RecentBorrowals: []models.Transaction{}}
	for _, b := range books {
		if b.IsBorrowed {
			stats.BorrowedBooks++
		}
		if lending.IsOverdue(b, today) {
			stats.OverdueCount++
		}
	}
	stats.AvailableBooks = stats.TotalBooks - stats.BorrowedBooks

	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].BorrowCode > txs[j].BorrowCode
	})
	if len(txs) > RecentBorrowalLimit {
		txs = txs[:RecentBorrowalLimit]
	}
	stats.RecentBorrowals = append(stats.RecentBorrowals, txs...)

	return stats, nil
}

// BorrowalRecord is a transaction annotated with its derived returned
// state.
type BorrowalRecord struct {
	models.Transaction
	IsReturned bool `json:"is_returned"`
}

// AllBorrowals lists the full transaction history. A record counts as
// returned when its book is no longer flagged borrowed (including books
// since deleted).
func (s *Service) AllBorrowals() ([]BorrowalRecord, error) {
	books, txs, err := s.loadAll()
	if err != nil {
		return nil, err
	}

	byID := indexBooks(books)
	records := make([]BorrowalRecord, 0, len(txs))
	for _, tx := range txs {
		book, ok := byID[tx.BookID]
		records = append(records, BorrowalRecord{
			Transaction: tx,
			IsReturned:  !ok || !book.IsBorrowed,
		})
	}
	return records, nil
}

func (s *Service) loadAll() ([]models.Book, []models.Transaction, error) {
	var books []models.Book
	if err := s.store.Load(store.BooksSet, &books); err != nil {
		return nil, nil, err
	}
	var txs []models.Transaction
	if err := s.store.Load(store.TransactionsSet, &txs); err != nil {
		return nil, nil, err
	}
	return books, txs, nil
}

func indexBooks(books []models.Book) map[string]models.Book {
	byID := make(map[string]models.Book, len(books))
	for _, b := range books {
		byID[b.BookID] = b
	}
	return byID
}
