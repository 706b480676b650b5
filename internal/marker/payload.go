package marker

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// PayloadVersion is written into every new payload. Readers accept any
// version and ignore fields they do not know.
const PayloadVersion = 1

// ErrUnreadablePayload is returned for a marker whose content is not a JSON payload.
var ErrUnreadablePayload = errors.New("marker payload is not JSON")

// Payload records how a replay was processed.
type Payload struct {
	Version      int    `json:"version"`
	File         string `json:"file"`
	OriginalName string `json:"original_name,omitempty"`
	Identity     string `json:"identity,omitempty"`
	State        string `json:"state"`

	Outcome         string `json:"outcome,omitempty"`
	Opponent        string `json:"opponent,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
	PeakMinerals    int    `json:"peak_minerals,omitempty"`

	Error       string    `json:"error,omitempty"`
	ProcessedAt time.Time `json:"processed_at"`
}

// Encode renders p as indented JSON, stamping the current version.
func (p *Payload) Encode() ([]byte, error) {
	cp := *p
	cp.Version = PayloadVersion
	b, err := json.MarshalIndent(&cp, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// DecodePayload parses marker content. Empty content yields (nil, nil).
func DecodePayload(b []byte) (*Payload, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, nil
	}
	var p Payload
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadablePayload, err)
	}
	return &p, nil
}

// Identity returns the content identity of the file at path:
// "sha256:<hex>". It does not depend on the file's name.
func Identity(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return "sha256:" + hex.EncodeToString(h.Sum(nil)), nil
}
