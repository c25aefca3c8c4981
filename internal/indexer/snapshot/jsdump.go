package snapshot

import (
	"fmt"
	"io"

	"github.com/ugorji/go/codec"

	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/index"
	apperrors "github.com/Adithya-Monish-Kumar-K/searchindex/pkg/errors"
)

// JS writes the index as a script for the browser search client. It cannot
// be loaded back.
var JS Format = jsFormat{}

type jsFormat struct{}

// jsonHandle escapes <, > and & so the output is safe inside a script tag.
func jsonHandle() *codec.JsonHandle {
	h := &codec.JsonHandle{MapKeyAsString: true}
	h.Canonical = true
	return h
}

func (jsFormat) Name() string { return "js" }

func (jsFormat) Dump(w io.Writer, f *index.Frozen) error {
	if f == nil {
		return fmt.Errorf("dumping empty snapshot: %w", apperrors.ErrInvalidInput)
	}
	body, err := JSLiteral(toWire(f))
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, "Search.setIndex("+body+")"); err != nil {
		return fmt.Errorf("writing script: %w: %w", apperrors.ErrSnapshotIO, err)
	}
	return nil
}

func (jsFormat) Load(io.Reader) (*index.Frozen, error) {
	return nil, fmt.Errorf("loading js index: %w", apperrors.ErrUnsupported)
}

// JSLiteral renders v as a JavaScript literal.
func JSLiteral(v any) (string, error) {
	var out []byte
	if err := codec.NewEncoderBytes(&out, jsonHandle()).Encode(v); err != nil {
		return "", fmt.Errorf("encoding js literal: %w", err)
	}
	return string(out), nil
}
