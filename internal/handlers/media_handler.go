package handlers

import (
	"net/http"

	"github.com/luisnguyen2k9-alt/LibraNCT/internal/imaging"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/utils"
)

// MediaHandler serves the image collaborators: cover OCR and signed
// uploads for library card photos.
type MediaHandler struct {
	OCR    *imaging.OCRClient
	Signer *imaging.Signer
}

func NewMediaHandler(ocr *imaging.OCRClient, signer *imaging.Signer) *MediaHandler {
	return &MediaHandler{OCR: ocr, Signer: signer}
}

type ocrRequest struct {
	ImageData string `json:"image_data"`
}

// POST /ocr-book-cover
func (h *MediaHandler) OCRBookCover(w http.ResponseWriter, r *http.Request) {
	var req ocrRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ImageData == "" {
		utils.JSONError(w, "No image data.", http.StatusBadRequest)
		return
	}

	text, err := h.OCR.RecognizeCover(r.Context(), req.ImageData)
	if err != nil {
		utils.JSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "success",
		"text":   text,
	})
}

type signatureResponse struct {
	Status string `json:"status"`
	imaging.UploadSignature
}

// GET /generate-upload-signature
func (h *MediaHandler) GetUploadSignature(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, signatureResponse{
		Status:          "success",
		UploadSignature: h.Signer.SignUpload(),
	})
}
