package models

// Transaction is an immutable record of one borrow event. Transactions are
// append-only history: whether a loan is still open is derived by joining
// the referenced book's current IsBorrowed flag, never stored here.
type Transaction struct {
	BorrowCode     string `json:"borrow_code"`
	BookID         string `json:"book_id"`
	BookTitle      string `json:"book_title"`
	StudentName    string `json:"student_name"`
	StudentClass   string `json:"student_class"`
	ContactEmail   string `json:"contact_email"`
	OriginalEmail  string `json:"original_email"`
	LibraryCardURL string `json:"library_card_url,omitempty"`
	BorrowDate     string `json:"borrow_date"`
	ReturnDate     string `json:"return_date"`
}
