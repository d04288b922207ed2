package imaging

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultOCREndpoint is the OCR.space parse endpoint.
const DefaultOCREndpoint = "https://api.ocr.space/parse/image"

// OCRClient extracts text from book cover photos through an OCR.space
// style HTTP API.
type OCRClient struct {
	apiKey   string
	endpoint string
	client   *http.Client
	log      *slog.Logger
}

func NewOCRClient(apiKey, endpoint string, log *slog.Logger) *OCRClient {
	if endpoint == "" {
		endpoint = DefaultOCREndpoint
	}
	return &OCRClient{
		apiKey:   apiKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
		log:      log,
	}
}

type ocrResponse struct {
	IsErroredOnProcessing bool        `json:"IsErroredOnProcessing"`
	ErrorMessage          interface{} `json:"ErrorMessage"`
	ParsedResults         []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
}

// RecognizeCover sends the base64-encoded JPEG to the OCR service and
// returns the cleaned-up text most likely to identify the book.
func (c *OCRClient) RecognizeCover(ctx context.Context, base64Image string) (string, error) {
	form := url.Values{}
	form.Set("apikey", c.apiKey)
	form.Set("language", "vie+eng")
	form.Set("base64image", "data:image/jpeg;base64,"+base64Image)
	form.Set("OCREngine", "2")
	form.Set("detectOrientation", "true")
	form.Set("scale", "true")
	form.Set("filetype", "JPG")
	form.Set("isOverlayRequired", "false")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.Wrap(err, "build ocr request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "ocr request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("ocr service returned status %d", resp.StatusCode)
	}

	var parsed ocrResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", errors.Wrap(err, "decode ocr response")
	}
	if parsed.IsErroredOnProcessing {
		return "", errors.Errorf("ocr processing failed: %v", parsed.ErrorMessage)
	}
	if len(parsed.ParsedResults) == 0 {
		return "", nil
	}

	return CleanBookText(parsed.ParsedResults[0].ParsedText), nil
}

// CleanBookText strips common OCR artifacts and picks the line most
// likely to be the book title or ID.
func CleanBookText(raw string) string {
	if raw == "" {
		return ""
	}

	artifacts := []string{"|||", "||", "|", ".....", "....", "...", "-----", "----", "---", "_____", "____", "___"}
	cleaned := raw
	for _, a := range artifacts {
		cleaned = strings.ReplaceAll(cleaned, a, " ")
	}

	best := ""
	for _, line := range strings.Split(cleaned, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if len(line) <= 5 {
			continue
		}
		if !looksLikeBookInfo(line) {
			continue
		}
		if len(line) > len(best) {
			best = line
		}
	}
	if best != "" {
		return best
	}

	for _, line := range strings.Split(cleaned, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			return line
		}
	}
	return ""
}

func looksLikeBookInfo(line string) bool {
	if strings.ToUpper(line) == line {
		return true
	}
	for _, r := range line {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return len(strings.Fields(line)) >= 2
}
