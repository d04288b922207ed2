package models

// BookStatus is the availability label reported by catalog search.
type BookStatus string

const (
	StatusAvailable   BookStatus = "available"
	StatusUnavailable BookStatus = "unavailable"
)

// AuthorUnknown is the sentinel recorded when a book is added without an author.
const AuthorUnknown = "unknown"

// Book is one catalog entry covering all physical copies of a title.
// Lending state is a single flag: ReturnDate is set if and only if
// IsBorrowed is true, and Quantity is an informational copy count that
// does not enable multiple simultaneous loans.
type Book struct {
	BookID     string `json:"book_id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	Quantity   int    `json:"quantity"`
	IsBorrowed bool   `json:"is_borrowed"`
	ReturnDate string `json:"return_date,omitempty"`
}

// Available reports whether the book can be lent right now.
// A book with zero copies is never borrowable regardless of its flag.
func (b Book) Available() bool {
	return !b.IsBorrowed && b.Quantity > 0
}

// Status is the search-facing availability label.
func (b Book) Status() BookStatus {
	if b.Available() {
		return StatusAvailable
	}
	return StatusUnavailable
}
