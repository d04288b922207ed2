package imaging

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"
)

// CardFolder is the image-host folder library card uploads go into.
const CardFolder = "library_cards"

// Signer produces upload signatures for the image host so the frontend
// can upload library card photos directly without seeing the API secret.
type Signer struct {
	cloudName string
	apiKey    string
	apiSecret string
	now       func() time.Time
}

func NewSigner(cloudName, apiKey, apiSecret string) *Signer {
	return &Signer{cloudName: cloudName, apiKey: apiKey, apiSecret: apiSecret, now: time.Now}
}

// UploadSignature is everything the frontend needs for a signed direct
// upload.
type UploadSignature struct {
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp"`
	CloudName string `json:"cloud_name"`
	APIKey    string `json:"api_key"`
}

// SignUpload signs the upload params the Cloudinary way: params sorted
// by key, joined as key=value with '&', then SHA-1 over that string plus
// the API secret.
func (s *Signer) SignUpload() UploadSignature {
	ts := s.now().Unix()
	params := map[string]string{
		"folder":    CardFolder,
		"timestamp": fmt.Sprintf("%d", ts),
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + s.apiSecret))
	return UploadSignature{
		Signature: hex.EncodeToString(sum[:]),
		Timestamp: ts,
		CloudName: s.cloudName,
		APIKey:    s.apiKey,
	}
}
