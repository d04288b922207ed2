package handlers

import (
	encjson "encoding/json"
	"net/http"

	"github.com/luisnguyen2k9-alt/LibraNCT/internal/lending"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/liberr"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/reporting"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/utils"
)

// LoanHandler serves the borrow and return endpoints plus the user's
// active-loan listing.
type LoanHandler struct {
	Lending   *lending.Service
	Reporting *reporting.Service
}

func NewLoanHandler(lend *lending.Service, rep *reporting.Service) *LoanHandler {
	return &LoanHandler{Lending: lend, Reporting: rep}
}

type borrowRequest struct {
	Book struct {
		ID string `json:"id"`
	} `json:"book"`
	Form struct {
		Name           string         `json:"name"`
		Class          string         `json:"class"`
		Email          string         `json:"email"`
		BorrowDuration encjson.Number `json:"borrow_duration"`
		LibraryCardURL string         `json:"library_card_url"`
	} `json:"form"`
	UserEmail string `json:"userEmail"`
}

// POST /process-borrow-request
func (h *LoanHandler) ProcessBorrow(w http.ResponseWriter, r *http.Request) {
	var req borrowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	// An empty duration means "use the default"; zero is a valid choice
	// and must reach the service as-is.
	var duration *int
	if req.Form.BorrowDuration != "" {
		d, err := req.Form.BorrowDuration.Int64()
		if err != nil {
			utils.JSONError(w, "Borrow duration must be a number.", http.StatusBadRequest)
			return
		}
		v := int(d)
		duration = &v
	}

	_, err := h.Lending.Borrow(r.Context(), lending.BorrowRequest{
		BookID:         req.Book.ID,
		StudentName:    req.Form.Name,
		StudentClass:   req.Form.Class,
		ContactEmail:   req.Form.Email,
		OriginalEmail:  req.UserEmail,
		LibraryCardURL: req.Form.LibraryCardURL,
		DurationDays:   duration,
	})
	if err != nil {
		utils.JSONError(w, err.Error(), liberr.HTTPStatus(err))
		return
	}
	utils.JSONSuccess(w, "Borrow request processed and email sent successfully.")
}

type returnRequest struct {
	BookID string `json:"book_id"`
}

// POST /process-return-request
func (h *LoanHandler) ProcessReturn(w http.ResponseWriter, r *http.Request) {
	var req returnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if req.BookID == "" {
		utils.JSONError(w, "Book ID is required.", http.StatusBadRequest)
		return
	}

	if err := h.Lending.Return(r.Context(), req.BookID); err != nil {
		utils.JSONError(w, err.Error(), liberr.HTTPStatus(err))
		return
	}
	utils.JSONSuccess(w, "Book returned successfully.")
}

// GET /user-borrowed-books?email=
func (h *LoanHandler) UserBorrowedBooks(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		utils.JSONError(w, "Email is required", http.StatusBadRequest)
		return
	}

	list, err := h.Reporting.UserBorrowedBooks(email)
	if err != nil {
		utils.JSONError(w, err.Error(), liberr.HTTPStatus(err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}
