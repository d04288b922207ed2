package handlers_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luisnguyen2k9-alt/LibraNCT/internal/handlers"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/imaging"
)

func newMediaRouter(t *testing.T, ocrHandler http.HandlerFunc) *mux.Router {
	t.Helper()
	srv := httptest.NewServer(ocrHandler)
	t.Cleanup(srv.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ocr := imaging.NewOCRClient("test-key", srv.URL, log)
	signer := imaging.NewSigner("demo-cloud", "key-123", "s3cret")

	handler := handlers.NewMediaHandler(ocr, signer)
	router := mux.NewRouter()
	router.HandleFunc("/ocr-book-cover", handler.OCRBookCover).Methods("POST")
	router.HandleFunc("/generate-upload-signature", handler.GetUploadSignature).Methods("GET")
	return router
}

func TestOCRBookCoverEndpoint(t *testing.T) {
	router := newMediaRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"IsErroredOnProcessing":false,"ParsedResults":[{"ParsedText":"NHÀ GIẢ KIM"}]}`))
	})

	res := doJSON(t, router, http.MethodPost, "/ocr-book-cover", `{"image_data":"aGVsbG8="}`)
	require.Equal(t, http.StatusOK, res.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "NHÀ GIẢ KIM", body["text"])
}

func TestOCRBookCoverEndpointNoImage(t *testing.T) {
	router := newMediaRouter(t, func(w http.ResponseWriter, r *http.Request) {})

	res := doJSON(t, router, http.MethodPost, "/ocr-book-cover", `{}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestOCRBookCoverEndpointUpstreamFailure(t *testing.T) {
	router := newMediaRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	res := doJSON(t, router, http.MethodPost, "/ocr-book-cover", `{"image_data":"aGVsbG8="}`)
	assert.Equal(t, http.StatusInternalServerError, res.Code)
}

func TestGetUploadSignatureEndpoint(t *testing.T) {
	router := newMediaRouter(t, func(w http.ResponseWriter, r *http.Request) {})

	res := doJSON(t, router, http.MethodGet, "/generate-upload-signature", "")
	require.Equal(t, http.StatusOK, res.Code)

	var body struct {
		Status string `json:"status"`
		imaging.UploadSignature
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.NotEmpty(t, body.Signature)
	assert.Equal(t, "demo-cloud", body.CloudName)
	assert.NotZero(t, body.Timestamp)
}
