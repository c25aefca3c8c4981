package metrics

import (
	"context"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.DocsFedTotal.Add(3)
	m.MergesTotal.WithLabelValues("conflict").Inc()
	m.IndexTerms.WithLabelValues("body").Set(17)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.DocsFedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MergesTotal.WithLabelValues("conflict")))
	assert.Equal(t, 17.0, testutil.ToFloat64(m.IndexTerms.WithLabelValues("body")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNewTwiceOnSameRegistryPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}

func TestServe(t *testing.T) {
	shutdown, err := Serve(0, Route{Path: "/health", Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("up"))
	})})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
