package consumer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/resilience"
)

type fakeIndex struct {
	docs    map[string]bool
	dumps   int
	dumpErr error
}

func (f *fakeIndex) DocumentPurged(docname string) bool {
	known := f.docs[docname]
	delete(f.docs, docname)
	return known
}

func (f *fakeIndex) Dump(context.Context) (indexer.Summary, error) {
	if f.dumpErr != nil {
		return indexer.Summary{}, f.dumpErr
	}
	f.dumps++
	return indexer.Summary{Docs: len(f.docs), Terms: 7, Format: "msgpack", EnvVersion: "1"}, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []kafka.IndexComplete
	fails  int
}

func (p *fakePublisher) PublishIndexComplete(_ context.Context, ev kafka.IndexComplete) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fails > 0 {
		p.fails--
		return errors.New("broker unavailable")
	}
	p.events = append(p.events, ev)
	return nil
}

func newMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

func TestHandlePurge(t *testing.T) {
	idx := &fakeIndex{docs: map[string]bool{"intro": true, "api": true}}
	pub := &fakePublisher{fails: 1}
	m := newMetrics()
	handle := HandleMessage(idx, pub, m)

	err := handle(context.Background(), []byte("intro"), []byte(`{"type":"purged","docname":"intro"}`))
	require.NoError(t, err)

	assert.Equal(t, 1, idx.dumps)
	assert.NotContains(t, idx.docs, "intro")
	require.Len(t, pub.events, 1)
	assert.Equal(t, 1, pub.events[0].Docs)
	assert.Equal(t, "msgpack", pub.events[0].Format)
	assert.NotEmpty(t, pub.events[0].BuildID)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsTotal.WithLabelValues("purged", "ok")))
}

func TestHandleUnknownDocumentSkipsDump(t *testing.T) {
	idx := &fakeIndex{docs: map[string]bool{}}
	m := newMetrics()

	err := HandleMessage(idx, nil, m)(context.Background(), nil, []byte(`{"type":"purged","docname":"ghost"}`))
	require.NoError(t, err)
	assert.Zero(t, idx.dumps)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsTotal.WithLabelValues("purged", "ignored")))
}

func TestHandleInvalidEvents(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"malformed", `{"type":`},
		{"unknown type", `{"type":"renamed","docname":"intro"}`},
		{"missing docname", `{"type":"purged"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := &fakeIndex{docs: map[string]bool{"intro": true}}
			err := HandleMessage(idx, nil, newMetrics())(context.Background(), nil, []byte(tt.value))
			assert.ErrorIs(t, err, kafka.ErrSkip)
			assert.Contains(t, idx.docs, "intro")
		})
	}
}

func TestHandleDumpFailureIsRedelivered(t *testing.T) {
	idx := &fakeIndex{docs: map[string]bool{"intro": true}, dumpErr: errors.New("disk full")}
	m := newMetrics()

	handle := HandleMessage(idx, nil, m)

	err := handle(context.Background(), nil, []byte(`{"type":"purged","docname":"intro"}`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, kafka.ErrSkip)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsTotal.WithLabelValues("purged", "error")))

	idx.dumpErr = nil
	err = handle(context.Background(), nil, []byte(`{"type":"purged","docname":"intro"}`))
	require.NoError(t, err)
	assert.Equal(t, 1, idx.dumps)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsTotal.WithLabelValues("purged", "ok")))
}

func TestGuardFailsFastWhenOpen(t *testing.T) {
	pub := &fakePublisher{fails: 100}
	guarded := Guard(pub, resilience.NewBreaker("index-complete", resilience.BreakerConfig{Threshold: 2, Cooldown: time.Hour}))
	ev := kafka.IndexComplete{BuildID: "b-1"}

	require.Error(t, guarded.PublishIndexComplete(context.Background(), ev))
	require.Error(t, guarded.PublishIndexComplete(context.Background(), ev))
	err := guarded.PublishIndexComplete(context.Background(), ev)
	assert.ErrorIs(t, err, resilience.ErrOpen)
	assert.Equal(t, 98, pub.fails)

	start := time.Now()
	Announce(context.Background(), guarded, "b-1", indexer.Summary{})
	assert.Less(t, time.Since(start), time.Second)
}
