package kafka

import "fmt"

// Lifecycle event types understood by the index builder.
const (
	EventPurged = "purged"
)

// LifecycleEvent is a message on the document lifecycle topic.
type LifecycleEvent struct {
	Type    string `json:"type"`
	Docname string `json:"docname"`
}

// Validate rejects events the builder cannot act on.
func (e LifecycleEvent) Validate() error {
	if e.Type != EventPurged {
		return fmt.Errorf("unsupported lifecycle event type %q: %w", e.Type, ErrSkip)
	}
	if e.Docname == "" {
		return fmt.Errorf("lifecycle event without docname: %w", ErrSkip)
	}
	return nil
}

// IndexComplete is published after a snapshot and its artifact were written.
type IndexComplete struct {
	BuildID    string `json:"build_id"`
	Docs       int    `json:"docs"`
	Terms      int    `json:"terms"`
	Format     string `json:"format"`
	EnvVersion string `json:"envversion"`
}
