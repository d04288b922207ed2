package handlers_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luisnguyen2k9-alt/LibraNCT/internal/catalog"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/handlers"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/lending"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/reporting"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/store"
)

func TestGetDashboardEndpoint(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.New(t.TempDir(), log)
	cat := catalog.New(st, log)
	lend := lending.New(st, log, &stubNotifier{}, 0)
	rep := reporting.New(st, log)

	router := mux.NewRouter()
	router.HandleFunc("/dashboard-data/{email}", handlers.NewDashboardHandler(rep).GetDashboard).Methods("GET")

	b1, err := cat.Add("Nhà Giả Kim", "Paulo Coelho", 1)
	require.NoError(t, err)
	_, err = cat.Add("Dế Mèn Phiêu Lưu Ký", "Tô Hoài", 2)
	require.NoError(t, err)

	_, err = lend.Borrow(context.Background(), lending.BorrowRequest{
		BookID:        b1.BookID,
		StudentName:   "Nguyễn Văn An",
		StudentClass:  "10A1",
		ContactEmail:  "parent@example.com",
		OriginalEmail: "an@example.com",
	})
	require.NoError(t, err)

	res := doJSON(t, router, http.MethodGet, "/dashboard-data/an@example.com", "")
	require.Equal(t, http.StatusOK, res.Code)

	var body struct {
		Status string `json:"status"`
		reporting.Dashboard
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	require.Len(t, body.BorrowedBooks, 1)
	assert.Equal(t, "Nhà Giả Kim", body.BorrowedBooks[0].BookTitle)
	require.Len(t, body.Recommendations, 1)
	assert.Equal(t, "Dế Mèn Phiêu Lưu Ký", body.Recommendations[0].Title)

	// The default loan runs a week, so the fresh borrow is never due soon.
	assert.Empty(t, body.DueSoonBooks)
}

func TestGetDashboardEndpointUnknownUser(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.New(t.TempDir(), log)
	rep := reporting.New(st, log)

	router := mux.NewRouter()
	router.HandleFunc("/dashboard-data/{email}", handlers.NewDashboardHandler(rep).GetDashboard).Methods("GET")

	res := doJSON(t, router, http.MethodGet, "/dashboard-data/nobody@example.com", "")
	require.Equal(t, http.StatusOK, res.Code)

	var body struct {
		reporting.Dashboard
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Empty(t, body.BorrowedBooks)
	assert.Empty(t, body.DueSoonBooks)
}
