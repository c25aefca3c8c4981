package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeLifecycleEvent(t *testing.T) {
	ev, err := DecodeJSON[LifecycleEvent]([]byte(`{"type":"purged","docname":"usage/install"}`))
	require.NoError(t, err)
	assert.Equal(t, LifecycleEvent{Type: EventPurged, Docname: "usage/install"}, ev)
	assert.NoError(t, ev.Validate())
}

func TestDecodeMalformedIsSkipped(t *testing.T) {
	_, err := DecodeJSON[LifecycleEvent]([]byte(`{"type":`))
	assert.ErrorIs(t, err, ErrSkip)
}

func TestLifecycleEventValidate(t *testing.T) {
	tests := []struct {
		name string
		ev   LifecycleEvent
	}{
		{"unknown type", LifecycleEvent{Type: "renamed", Docname: "a"}},
		{"missing docname", LifecycleEvent{Type: EventPurged}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.ev.Validate(), ErrSkip)
		})
	}
}
