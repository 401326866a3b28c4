// Package dataset performs the one-time retrieval of the university records.
package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/stemsi/unicatalog/internal/model"
)

// maxPayloadBytes bounds remote payloads.
const maxPayloadBytes = 32 << 20

// LoadError reports that the dataset resource was unreachable or unparsable.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load dataset %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ErrDuplicateID is wrapped by a LoadError when two records share an id.
var ErrDuplicateID = errors.New("duplicate university id")

// Loader fetches and decodes the dataset. A Loader makes exactly one attempt per call.
type Loader struct {
	client   *http.Client
	validate *validator.Validate
}

// NewLoader creates a Loader. A nil client uses a 15s timeout client.
func NewLoader(client *http.Client) *Loader {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Loader{
		client:   client,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Load reads source (a file path or an http(s) URL) and returns every record.
// The payload is atomic: any unreadable, malformed or invalid record fails the whole load
// with a *LoadError.
func (l *Loader) Load(ctx context.Context, source string) ([]model.University, error) {
	raw, err := l.read(ctx, source)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}

	records, err := l.decode(raw)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	return records, nil
}

func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	if source == "" {
		return nil, errors.New("no dataset source configured")
	}
	if !isRemote(source) {
		return os.ReadFile(source)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch: unexpected status %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
}

func (l *Loader) decode(raw []byte) ([]model.University, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("payload is not a JSON array")
	}

	var records []model.University
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	seen := make(map[int]struct{}, len(records))
	for i := range records {
		if err := l.validate.Struct(records[i]); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if _, dup := seen[records[i].ID]; dup {
			return nil, fmt.Errorf("record %d: %w %d", i, ErrDuplicateID, records[i].ID)
		}
		seen[records[i].ID] = struct{}{}
	}

	if records == nil {
		records = []model.University{}
	}
	return records, nil
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
