package assessment

import "sync"

// Loader tracks the observable state of assessment fetches: a loading flag,
// the last error and the last successful assessment. The caller performs the
// fetch between Begin and Settle.
//
// A failed fetch never clears the current assessment.
type Loader struct {
	mu      sync.RWMutex
	loading bool
	err     error
	current *Assessment
}

// NewLoader creates an idle loader with no assessment.
func NewLoader() *Loader {
	return &Loader{}
}

// Begin marks the start of a fetch. Invalid tickers are recorded as the
// current error and returned without entering the loading state.
func (l *Loader) Begin(raw string) (string, error) {
	ticker, err := NormalizeTicker(raw)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.err = err
		return "", err
	}
	l.loading = true
	l.err = nil
	return ticker, nil
}

// Settle records the outcome of the fetch started by Begin.
func (l *Loader) Settle(a *Assessment, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = false
	if err != nil {
		l.err = err
		return
	}
	l.current = a
}

// Loading reports whether a fetch is in flight.
func (l *Loader) Loading() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loading
}

// Err returns the error of the last failed fetch, if not cleared since.
func (l *Loader) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}

// Current returns the last successfully fetched assessment, or nil.
func (l *Loader) Current() *Assessment {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// ClearError drops the surfaced error.
func (l *Loader) ClearError() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.err = nil
}
