package fixtures

import (
	"context"
	"sync"

	"github.com/goliatone/go-folio/internal/indexer"
)

// RecordingRegistry captures command handlers registered during wiring.
type RecordingRegistry struct {
	Handlers []any
	Err      error
}

// NewRecordingRegistry constructs an empty registry recorder.
func NewRecordingRegistry() *RecordingRegistry {
	return &RecordingRegistry{
		Handlers: make([]any, 0),
	}
}

// RegisterCommand records handler, or returns Err when set.
func (r *RecordingRegistry) RegisterCommand(handler any) error {
	if r.Err != nil {
		return r.Err
	}
	r.Handlers = append(r.Handlers, handler)
	return nil
}

// StubBuilder answers index builds with a canned result and records each
// request.
type StubBuilder struct {
	mu       sync.Mutex
	Requests []indexer.BuildRequest
	Result   *indexer.BuildResult
	Err      error
}

// Build records req and returns the configured result and error.
func (b *StubBuilder) Build(_ context.Context, req indexer.BuildRequest) (*indexer.BuildResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Requests = append(b.Requests, req)
	return b.Result, b.Err
}

// Calls reports how many builds ran.
func (b *StubBuilder) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.Requests)
}
