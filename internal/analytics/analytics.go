// Package analytics records search telemetry off the response path.
// Events go through a bounded queue drained by a single worker; when
// the queue is full the event is dropped and counted, never blocking
// a response.
package analytics

import (
	"time"

	"go.uber.org/zap"

	"github.com/dealhive/dealsearch/internal/domain/search/query"
	"github.com/dealhive/dealsearch/internal/domain/search/result"
	"github.com/dealhive/dealsearch/internal/metrics"
	"github.com/dealhive/dealsearch/internal/usecase/search"
)

// DefaultQueueSize bounds the in-flight event queue.
const DefaultQueueSize = 1024

type event struct {
	queryText    string
	kind         string
	source       string
	totalResults int
	elapsed      time.Duration
	failedParams query.Params
	err          error
}

// Recorder implements the orchestrator's analytics contract.
type Recorder struct {
	log    *zap.Logger
	events chan event
	done   chan struct{}
}

var _ search.Analytics = (*Recorder)(nil)

// NewRecorder starts the drain worker. A non-positive queueSize uses
// DefaultQueueSize.
func NewRecorder(log *zap.Logger, queueSize int) *Recorder {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	r := &Recorder{
		log:    log,
		events: make(chan event, queueSize),
		done:   make(chan struct{}),
	}
	go r.drain()
	return r
}

// RecordSearch enqueues a successful search event. Never blocks.
func (r *Recorder) RecordSearch(q *query.Query, res *result.SearchResult, elapsed time.Duration, source search.Source) {
	r.enqueue(event{
		queryText:    q.Text(),
		kind:         string(q.Kind()),
		source:       string(source),
		totalResults: res.TotalResults,
		elapsed:      elapsed,
	})
}

// RecordError enqueues a failed search event with the raw parameters.
// Never blocks.
func (r *Recorder) RecordError(params query.Params, err error, elapsed time.Duration) {
	r.enqueue(event{
		failedParams: params,
		err:          err,
		elapsed:      elapsed,
	})
}

func (r *Recorder) enqueue(e event) {
	select {
	case r.events <- e:
	default:
		metrics.AnalyticsDroppedTotal.Inc()
	}
}

// Close stops the worker after draining queued events.
func (r *Recorder) Close() {
	close(r.events)
	<-r.done
}

func (r *Recorder) drain() {
	defer close(r.done)
	for e := range r.events {
		if e.err != nil {
			r.log.Info("search_failed",
				zap.Any("params", e.failedParams),
				zap.Duration("elapsed", e.elapsed),
				zap.Error(e.err))
			continue
		}
		r.log.Info("search_executed",
			zap.String("query", e.queryText),
			zap.String("kind", e.kind),
			zap.String("source", e.source),
			zap.Int("total_results", e.totalResults),
			zap.Duration("elapsed", e.elapsed))
	}
}
