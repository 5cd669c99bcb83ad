package analytics

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dealhive/dealsearch/internal/domain/search/query"
	"github.com/dealhive/dealsearch/internal/domain/search/result"
	"github.com/dealhive/dealsearch/internal/usecase/search"
)

func TestRecorder_DrainsSearchEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := NewRecorder(zap.New(core), 8)

	q, _ := query.New(query.Params{"q": "laptop"})
	res := result.New("laptop")
	res.TotalResults = 5

	r.RecordSearch(q, res, 12*time.Millisecond, search.SourceDatabase)
	r.Close()

	entries := logs.FilterMessage("search_executed").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 search event, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["query"] != "laptop" {
		t.Errorf("query field = %v", fields["query"])
	}
	if fields["source"] != string(search.SourceDatabase) {
		t.Errorf("source field = %v", fields["source"])
	}
	if fields["total_results"] != int64(5) {
		t.Errorf("total_results field = %v", fields["total_results"])
	}
}

func TestRecorder_DrainsErrorEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := NewRecorder(zap.New(core), 8)

	r.RecordError(query.Params{"sort": "bogus"}, errors.New("validation failed"), time.Millisecond)
	r.Close()

	entries := logs.FilterMessage("search_failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 error event, got %d", len(entries))
	}
}

func TestRecorder_FullQueueNeverBlocks(t *testing.T) {
	// No worker will drain a closed-over channel faster than this loop
	// fills it; the point is that every call returns immediately.
	r := NewRecorder(zap.NewNop(), 1)

	q, _ := query.New(query.Params{"q": "x"})
	res := result.New("x")

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10000; i++ {
			r.RecordSearch(q, res, 0, search.SourceCache)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("recorder blocked the caller")
	}
	r.Close()
}
