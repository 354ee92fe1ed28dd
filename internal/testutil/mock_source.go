// Package testutil provides testing utilities for the federated pager.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/Sternrassler/federated-pager/pkg/pageplan"
	"github.com/Sternrassler/federated-pager/pkg/pagination"
)

// MockSourceBehavior defines how a mock source answers fetches.
type MockSourceBehavior struct {
	// Delay is applied before answering; it honours context cancellation.
	Delay time.Duration
	// Err is returned instead of records when set.
	Err error
	// Drop removes this many records from the tail of every answer.
	Drop int
}

// FetchCall records one fetch made against MockSources.
type FetchCall struct {
	SourceID string
	Task     pageplan.FetchTask
}

// MockSources is a configurable SourceFetcher for testing. Sources without a
// configured behavior delegate to the wrapped fetcher unchanged.
type MockSources struct {
	delegate pagination.SourceFetcher

	mu        sync.RWMutex
	behaviors map[string]MockSourceBehavior

	// Tracking
	calls []FetchCall
}

// NewMockSources wraps delegate.
func NewMockSources(delegate pagination.SourceFetcher) *MockSources {
	return &MockSources{
		delegate:  delegate,
		behaviors: make(map[string]MockSourceBehavior),
	}
}

// SetBehavior configures how sourceID answers.
func (m *MockSources) SetBehavior(sourceID string, behavior MockSourceBehavior) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.behaviors[sourceID] = behavior
}

// Fetch implements pagination.SourceFetcher.
func (m *MockSources) Fetch(ctx context.Context, sourceID string, task pageplan.FetchTask) ([]pagination.Record, error) {
	m.mu.Lock()
	m.calls = append(m.calls, FetchCall{SourceID: sourceID, Task: task})
	behavior := m.behaviors[sourceID]
	m.mu.Unlock()

	if behavior.Delay > 0 {
		select {
		case <-time.After(behavior.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if behavior.Err != nil {
		return nil, behavior.Err
	}

	records, err := m.delegate.Fetch(ctx, sourceID, task)
	if err != nil {
		return nil, err
	}
	if behavior.Drop > 0 {
		records = records[:max(len(records)-behavior.Drop, 0)]
	}
	return records, nil
}

// Calls returns a copy of all recorded fetches in arrival order.
func (m *MockSources) Calls() []FetchCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]FetchCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallsFor returns the tasks fetched from sourceID in arrival order.
func (m *MockSources) CallsFor(sourceID string) []pageplan.FetchTask {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var tasks []pageplan.FetchTask
	for _, c := range m.calls {
		if c.SourceID == sourceID {
			tasks = append(tasks, c.Task)
		}
	}
	return tasks
}

// Reset clears all tracking.
func (m *MockSources) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}
