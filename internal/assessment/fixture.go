package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"leadscope/internal/logging"
)

// FileProvider serves assessments from <Dir>/<TICKER>.json.
// A missing file behaves like the provider's 404.
type FileProvider struct {
	Dir string
}

// NewFileProvider creates a provider rooted at dir.
func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{Dir: dir}
}

// Fetch reads and decodes the fixture for the ticker.
func (p *FileProvider) Fetch(ctx context.Context, raw string) (*Assessment, error) {
	ticker, err := NormalizeTicker(raw)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, &NetworkError{Err: err}
	}

	log := logging.Get(logging.CategoryAPI)
	notFound := &ProviderError{Status: http.StatusNotFound, Message: "Company not found"}

	// Tickers name a file directly inside Dir.
	if strings.ContainsAny(ticker, `/\`) || strings.Contains(ticker, "..") {
		log.Warn("rejecting fixture ticker %q", ticker)
		return nil, notFound
	}

	path := filepath.Join(p.Dir, ticker+".json")
	log.Debug("reading fixture %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound
		}
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}

	var a Assessment
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to parse fixture %s: %w", path, err)
	}
	a.CompanyName = ticker
	return &a, nil
}
