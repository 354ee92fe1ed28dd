package pagination

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Sternrassler/federated-pager/pkg/pageplan"
)

var (
	// ErrShortFetch is returned when a source returns a different number of
	// records than the task asked for.
	ErrShortFetch = errors.New("fetch returned unexpected record count")

	// ErrUnknownSource is returned by fetchers asked for a source they do not serve.
	ErrUnknownSource = errors.New("unknown source")
)

// Record is one opaque record returned by a source.
type Record = json.RawMessage

// SourceFetcher is the capability a data-access layer must provide: return
// exactly task.Count records starting at task.OffsetInPage within page
// task.PageNumber of the named source, in stable order.
type SourceFetcher interface {
	Fetch(ctx context.Context, sourceID string, task pageplan.FetchTask) ([]Record, error)
}

// FetcherFunc adapts a function to the SourceFetcher interface.
type FetcherFunc func(ctx context.Context, sourceID string, task pageplan.FetchTask) ([]Record, error)

// Fetch implements SourceFetcher.
func (f FetcherFunc) Fetch(ctx context.Context, sourceID string, task pageplan.FetchTask) ([]Record, error) {
	return f(ctx, sourceID, task)
}

// FetchError reports which task of which source failed.
type FetchError struct {
	SourceID string
	Task     pageplan.FetchTask
	Err      error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch source %q page %d (offset %d, count %d): %v",
		e.SourceID, e.Task.PageNumber, e.Task.OffsetInPage, e.Task.Count, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *FetchError) Unwrap() error {
	return e.Err
}
