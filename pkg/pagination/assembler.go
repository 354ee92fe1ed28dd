package pagination

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Sternrassler/federated-pager/pkg/pageplan"
)

// Config holds assembler configuration
type Config struct {
	// MaxConcurrency is the maximum number of sources fetched in parallel
	MaxConcurrency int
	// Timeout per fetch task
	Timeout time.Duration
	// Progress is called after every completed task (optional)
	Progress ProgressFunc
}

// DefaultConfig returns default assembler configuration
func DefaultConfig() Config {
	return Config{
		MaxConcurrency: 4,
		Timeout:        15 * time.Second,
	}
}

// ProgressEvent describes one completed fetch task
type ProgressEvent struct {
	SourceID  string
	Task      pageplan.FetchTask
	Records   int
	Completed int
	Total     int
}

// ProgressFunc observes assembly progress. Calls are serialized.
type ProgressFunc func(ProgressEvent)

// Page is an assembled global page
type Page struct {
	Plan    *pageplan.ResolvedPlan
	Records []Record
}

// Assembler executes resolved plans against a SourceFetcher
type Assembler struct {
	fetcher SourceFetcher
	config  Config
}

// NewAssembler creates a new assembler
func NewAssembler(fetcher SourceFetcher, config Config) *Assembler {
	if fetcher == nil {
		panic("source fetcher cannot be nil")
	}
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = 4
	}
	if config.Timeout <= 0 {
		config.Timeout = 15 * time.Second
	}

	return &Assembler{
		fetcher: fetcher,
		config:  config,
	}
}

// Assemble runs every task of plan and returns the concatenated records.
// A NoData plan yields an empty page without touching the fetcher. On the
// first failure outstanding fetches are cancelled and the error is returned
// as a *FetchError. Logs go to the logger attached to ctx, if any.
func (a *Assembler) Assemble(ctx context.Context, plan *pageplan.ResolvedPlan) (*Page, error) {
	if plan == nil {
		return nil, errors.New("plan cannot be nil")
	}
	start := time.Now()
	logger := loggerFrom(ctx)

	if plan.NoData {
		logger.Debug().
			Int("page", plan.Request.PageNumber).
			Int("start_index", plan.StartIndex).
			Int("total", plan.Total).
			Msg("Page past end of data - nothing to fetch")
		Assembles.WithLabelValues("no_data").Inc()
		return &Page{Plan: plan}, nil
	}

	logger.Info().
		Int("page", plan.Request.PageNumber).
		Int("page_size", plan.Request.PageSize).
		Int("sources", len(plan.Sources)).
		Int("tasks", plan.TaskCount()).
		Msg("Starting page assembly")

	// One slot per source keeps source order regardless of completion order
	parts := make([][]Record, len(plan.Sources))
	progress := &progressTracker{total: plan.TaskCount(), fn: a.config.Progress, logger: logger}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.MaxConcurrency)
	for i, sp := range plan.Sources {
		i, sp := i, sp
		g.Go(func() error {
			records, err := a.fetchSource(gctx, sp, progress)
			if err != nil {
				return err
			}
			parts[i] = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Warn().
			Err(err).
			Int("page", plan.Request.PageNumber).
			Int("completed_tasks", progress.completedCount()).
			Int("total_tasks", plan.TaskCount()).
			Msg("Page assembly failed")
		Assembles.WithLabelValues("error").Inc()
		return nil, err
	}

	records := make([]Record, 0, plan.RecordCount())
	for _, part := range parts {
		records = append(records, part...)
	}

	duration := time.Since(start)
	AssembleDuration.Observe(duration.Seconds())
	Assembles.WithLabelValues("ok").Inc()

	logger.Info().
		Int("page", plan.Request.PageNumber).
		Int("records", len(records)).
		Dur("duration", duration).
		Msg("Page assembly complete")

	return &Page{Plan: plan, Records: records}, nil
}

// fetchSource runs the tasks of one source in order
func (a *Assembler) fetchSource(ctx context.Context, sp pageplan.SourcePlan, progress *progressTracker) ([]Record, error) {
	sourceID := sp.Range.SourceID
	records := make([]Record, 0, sp.Range.Len())

	for _, task := range sp.Tasks {
		if err := ctx.Err(); err != nil {
			progress.logger.Debug().
				Str("source", sourceID).
				Int("page", task.PageNumber).
				Msg("Source fetch stopping (context cancelled)")
			return nil, &FetchError{SourceID: sourceID, Task: task, Err: err}
		}

		taskCtx, cancel := context.WithTimeout(ctx, a.config.Timeout)
		got, err := a.fetcher.Fetch(taskCtx, sourceID, task)
		cancel()

		if err != nil {
			FetchTasks.WithLabelValues("error").Inc()
			progress.logger.Warn().
				Err(err).
				Str("source", sourceID).
				Int("page", task.PageNumber).
				Msg("Fetch task failed")
			return nil, &FetchError{SourceID: sourceID, Task: task, Err: err}
		}
		if len(got) != task.Count {
			FetchTasks.WithLabelValues("short").Inc()
			return nil, &FetchError{
				SourceID: sourceID,
				Task:     task,
				Err:      fmt.Errorf("%w: got %d, want %d", ErrShortFetch, len(got), task.Count),
			}
		}

		FetchTasks.WithLabelValues("ok").Inc()
		RecordsFetched.Add(float64(len(got)))
		records = append(records, got...)
		progress.report(sourceID, task, len(got))
	}

	return records, nil
}

// progressTracker counts completed tasks across sources
type progressTracker struct {
	mu        sync.Mutex
	completed int
	total     int
	fn        ProgressFunc
	logger    *zerolog.Logger
}

func (p *progressTracker) report(sourceID string, task pageplan.FetchTask, records int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.completed++

	p.logger.Debug().
		Str("source", sourceID).
		Int("page", task.PageNumber).
		Int("records", records).
		Int("completed", p.completed).
		Int("total", p.total).
		Msg("Fetch task complete")

	if p.fn != nil {
		p.fn(ProgressEvent{
			SourceID:  sourceID,
			Task:      task,
			Records:   records,
			Completed: p.completed,
			Total:     p.total,
		})
	}
}

func (p *progressTracker) completedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.completed
}

// loggerFrom returns the logger attached to ctx, or the global logger when
// ctx carries none.
func loggerFrom(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &log.Logger
}
