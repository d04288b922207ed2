package lending

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/luisnguyen2k9-alt/LibraNCT/internal/liberr"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/models"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/store"
)

// DefaultBorrowDays is the fallback loan duration when none is
// configured.
const DefaultBorrowDays = 7

// Notifier delivers the borrow receipt after a loan has been committed.
// Delivery is best effort: a failing notifier never rolls back a loan.
type Notifier interface {
	Notify(ctx context.Context, recipients []string, tx models.Transaction) error
}

// Service is the borrow/return state machine over the book and
// transaction record sets.
type Service struct {
	store       *store.Store
	log         *slog.Logger
	notifier    Notifier
	defaultDays int
	now         func() time.Time

	codeMu   sync.Mutex
	lastCode time.Time
}

// New builds a lending service. notifier may be nil, in which case no
// receipts are sent. defaultDays is the loan duration applied when a
// borrow request leaves it unset; non-positive values fall back to
// DefaultBorrowDays.
func New(st *store.Store, log *slog.Logger, notifier Notifier, defaultDays int) *Service {
	if defaultDays <= 0 {
		defaultDays = DefaultBorrowDays
	}
	return &Service{store: st, log: log, notifier: notifier, defaultDays: defaultDays, now: time.Now}
}

// BorrowRequest carries the borrower identity and loan parameters for one
// borrow attempt. A nil DurationDays means the borrower did not pick a
// duration and the service default applies; an explicit zero is honored
// and makes the loan due the same day.
type BorrowRequest struct {
	BookID         string
	StudentName    string
	StudentClass   string
	ContactEmail   string
	OriginalEmail  string
	LibraryCardURL string
	DurationDays   *int
}

// Borrow transitions an available book to borrowed, records the
// transaction, and triggers the notification pipeline. The book mutation
// and the transaction append happen under the per-set locks, books
// before transactions, so two borrow attempts for the same book cannot
// both succeed.
func (s *Service) Borrow(ctx context.Context, req BorrowRequest) (models.Transaction, error) {
	if req.BookID == "" {
		return models.Transaction{}, liberr.Validationf("book ID is required")
	}
	duration := s.defaultDays
	if req.DurationDays != nil {
		if *req.DurationDays < 0 {
			return models.Transaction{}, liberr.Validationf("borrow duration must not be negative")
		}
		duration = *req.DurationDays
	}

	var tx models.Transaction
	err := s.store.WithLock(store.BooksSet, func() error {
		var books []models.Book
		if err := s.store.Load(store.BooksSet, &books); err != nil {
			return err
		}

		idx := -1
		for i := range books {
			if books[i].BookID == req.BookID {
				idx = i
				break
			}
		}
		if idx < 0 || !books[idx].Available() {
			return liberr.Conflictf("book %s is not available", req.BookID)
		}

		now := s.now()
		due := DueDate(now, duration)
		books[idx].IsBorrowed = true
		books[idx].ReturnDate = models.FormatDate(due)
		if err := s.store.Save(store.BooksSet, books); err != nil {
			return err
		}

		tx = models.Transaction{
			BorrowCode:     s.nextBorrowCode(),
			BookID:         books[idx].BookID,
			BookTitle:      books[idx].Title,
			StudentName:    req.StudentName,
			StudentClass:   req.StudentClass,
			ContactEmail:   req.ContactEmail,
			OriginalEmail:  req.OriginalEmail,
			LibraryCardURL: req.LibraryCardURL,
			BorrowDate:     models.FormatDate(now),
			ReturnDate:     books[idx].ReturnDate,
		}

		return s.store.WithLock(store.TransactionsSet, func() error {
			var txs []models.Transaction
			if err := s.store.Load(store.TransactionsSet, &txs); err != nil {
				return err
			}
			txs = append(txs, tx)
			return s.store.Save(store.TransactionsSet, txs)
		})
	})
	if err != nil {
		return models.Transaction{}, err
	}

	s.log.Info("borrow committed", "borrow_code", tx.BorrowCode, "book_id", tx.BookID, "due", tx.ReturnDate)

	if s.notifier != nil {
		recipients := []string{req.OriginalEmail, req.ContactEmail}
		if err := s.notifier.Notify(ctx, recipients, tx); err != nil {
			// The loan is already committed; notification failure is not fatal.
			s.log.Error("borrow notification failed", "borrow_code", tx.BorrowCode, "error", err)
		}
	}

	return tx, nil
}

// Return transitions a borrowed book back to available and clears its
// due date. No transaction is written; the history stays append-only and
// the returned state is derived from the book flag.
func (s *Service) Return(ctx context.Context, bookID string) error {
	if bookID == "" {
		return liberr.Validationf("book ID is required")
	}

	return s.store.WithLock(store.BooksSet, func() error {
		var books []models.Book
		if err := s.store.Load(store.BooksSet, &books); err != nil {
			return err
		}

		idx := -1
		for i := range books {
			if books[i].BookID == bookID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return liberr.NotFoundf("book %s", bookID)
		}
		if !books[idx].IsBorrowed {
			return liberr.Conflictf("book %s is already returned", bookID)
		}

		books[idx].IsBorrowed = false
		books[idx].ReturnDate = ""
		if err := s.store.Save(store.BooksSet, books); err != nil {
			return err
		}

		s.log.Info("return committed", "book_id", bookID)
		return nil
	})
}

// DueDate computes the loan due date: durationDays calendar days from
// `from`, nudged off the weekend. A Saturday result moves back to Friday,
// a Sunday result forward to Monday, so a due date never lands on a
// weekend.
func DueDate(from time.Time, durationDays int) time.Time {
	due := from.AddDate(0, 0, durationDays)
	switch due.Weekday() {
	case time.Saturday:
		due = due.AddDate(0, 0, -1)
	case time.Sunday:
		due = due.AddDate(0, 0, 1)
	}
	return due
}

// nextBorrowCode issues a fresh borrow code. Codes are formatted from the
// current timestamp so they sort chronologically as strings; issuance is
// serialized and the clock second is bumped on collision, which keeps
// codes strictly increasing within the process.
func (s *Service) nextBorrowCode() string {
	s.codeMu.Lock()
	defer s.codeMu.Unlock()

	t := s.now().Truncate(time.Second)
	if !t.After(s.lastCode) {
		t = s.lastCode.Add(time.Second)
	}
	s.lastCode = t
	return "M" + t.Format("060102150405")
}
