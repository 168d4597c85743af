// Package cloudinary signs direct upload requests so that browsers can
// upload images to Cloudinary without the API secret ever leaving the server.
package cloudinary

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// UploadFolder is the Cloudinary folder all community uploads land in.
const UploadFolder = "codevimarsh"

// ErrNotConfigured is returned when the Cloudinary credentials are missing.
var ErrNotConfigured = errors.New("cloudinary credentials are not configured")

// UploadSignature is the payload a browser needs to perform a signed
// direct upload.
type UploadSignature struct {
	Timestamp int64  `json:"timestamp"`
	Signature string `json:"signature"`
	APIKey    string `json:"apiKey"`
	CloudName string `json:"cloudName"`
	Folder    string `json:"folder"`
}

// Signer produces Cloudinary API signatures.
type Signer struct {
	cfg Config
	now func() time.Time // injectable for tests
}

// NewSigner creates a Signer for the given credentials.
func NewSigner(cfg Config) *Signer {
	return &Signer{cfg: cfg, now: time.Now}
}

// SignUpload returns a signature for an upload into the community folder,
// stamped with the current time.
func (s *Signer) SignUpload() (*UploadSignature, error) {
	if !s.cfg.Configured() {
		return nil, ErrNotConfigured
	}

	ts := s.now().Unix()
	return &UploadSignature{
		Timestamp: ts,
		Signature: s.sign(map[string]string{
			"timestamp": fmt.Sprintf("%d", ts),
			"folder":    UploadFolder,
		}),
		APIKey:    s.cfg.APIKey,
		CloudName: s.cfg.CloudName,
		Folder:    UploadFolder,
	}, nil
}

// sign implements Cloudinary's API signing scheme: parameters sorted by
// key, serialized as key=value joined with &, then the API secret is
// appended and the whole string is SHA-1 hashed.
func (s *Signer) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + s.cfg.APISecret))
	return hex.EncodeToString(sum[:])
}
