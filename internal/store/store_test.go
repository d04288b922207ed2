package store_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luisnguyen2k9-alt/LibraNCT/internal/models"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/store"
)

func newStore(t *testing.T) (*store.Store, string) {
	t.Helper()
	dir := t.TempDir()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return store.New(dir, log), dir
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	st, _ := newStore(t)

	var books []models.Book
	err := st.Load(store.BooksSet, &books)

	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestLoadCorruptFileIsEmpty(t *testing.T) {
	st, dir := newStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "books.json"), []byte("{not json"), 0o644))

	var books []models.Book
	err := st.Load(store.BooksSet, &books)

	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st, _ := newStore(t)

	in := []models.Book{
		{BookID: "B1700000000", Title: "Dune", Author: "Frank Herbert", Quantity: 2},
		{BookID: "B1700000001", Title: "Nhà Giả Kim", Author: "Paulo Coelho", Quantity: 1, IsBorrowed: true, ReturnDate: "05/09/2026"},
	}
	require.NoError(t, st.Save(store.BooksSet, in))

	var out []models.Book
	require.NoError(t, st.Load(store.BooksSet, &out))

	assert.Equal(t, in, out)
}

func TestSaveCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.New(dir, log)

	require.NoError(t, st.Save(store.TransactionsSet, []models.Transaction{}))

	_, err := os.Stat(filepath.Join(dir, "borrowers.json"))
	assert.NoError(t, err)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	st, dir := newStore(t)
	require.NoError(t, st.Save(store.BooksSet, []models.Book{{BookID: "B1", Title: "Dune"}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "books.json", entries[0].Name())
}

func TestSaveOverwritesWholeSet(t *testing.T) {
	st, _ := newStore(t)
	require.NoError(t, st.Save(store.BooksSet, []models.Book{{BookID: "B1"}, {BookID: "B2"}}))
	require.NoError(t, st.Save(store.BooksSet, []models.Book{{BookID: "B3"}}))

	var out []models.Book
	require.NoError(t, st.Load(store.BooksSet, &out))

	require.Len(t, out, 1)
	assert.Equal(t, "B3", out[0].BookID)
}

func TestWithLockSerializesWriters(t *testing.T) {
	st, _ := newStore(t)
	require.NoError(t, st.Save(store.BooksSet, []models.Book{}))

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			err := st.WithLock(store.BooksSet, func() error {
				var books []models.Book
				if err := st.Load(store.BooksSet, &books); err != nil {
					return err
				}
				books = append(books, models.Book{BookID: "B", Quantity: 1})
				return st.Save(store.BooksSet, books)
			})
			assert.NoError(t, err)
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	var books []models.Book
	require.NoError(t, st.Load(store.BooksSet, &books))
	assert.Len(t, books, 10)
}
