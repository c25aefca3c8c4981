package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/golang/snappy"
	"github.com/ugorji/go/codec"

	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/index"
	apperrors "github.com/Adithya-Monish-Kumar-K/searchindex/pkg/errors"
)

// Header layout of a structured snapshot, little endian:
// magic [4]byte, version uint32, payload length uint64, payload crc32 uint32.
const (
	FormatVersion uint32 = 1
	HeaderSize    int    = 20
	// MaxPayloadSize bounds the compressed payload a header may announce.
	MaxPayloadSize uint64 = 1 << 32
)

var Magic = [4]byte{'S', 'I', 'D', 'X'}

// Msgpack is the structured snapshot format.
var Msgpack Format = msgpackFormat{}

type msgpackFormat struct{}

func msgpackHandle() *codec.MsgpackHandle {
	h := &codec.MsgpackHandle{WriteExt: true}
	h.Canonical = true
	h.RawToString = true
	h.SignedInteger = true
	return h
}

func (msgpackFormat) Name() string { return "msgpack" }

// Dump writes f as a header followed by the snappy-compressed msgpack
// document. Map keys are written in sorted order so equal indexes produce
// equal bytes.
func (msgpackFormat) Dump(w io.Writer, f *index.Frozen) error {
	if f == nil {
		return fmt.Errorf("dumping empty snapshot: %w", apperrors.ErrInvalidInput)
	}
	var payload []byte
	if err := codec.NewEncoderBytes(&payload, msgpackHandle()).Encode(toWire(f)); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	compressed := snappy.Encode(nil, payload)

	header := make([]byte, HeaderSize)
	copy(header[0:4], Magic[:])
	binary.LittleEndian.PutUint32(header[4:8], FormatVersion)
	binary.LittleEndian.PutUint64(header[8:16], uint64(len(compressed)))
	binary.LittleEndian.PutUint32(header[16:20], crc32.ChecksumIEEE(compressed))

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w: %w", apperrors.ErrSnapshotIO, err)
	}
	if _, err := w.Write(compressed); err != nil {
		return fmt.Errorf("writing payload: %w: %w", apperrors.ErrSnapshotIO, err)
	}
	return nil
}

// Load reads a snapshot written by Dump. Anything that is not a complete,
// intact snapshot of the current format version fails with ErrFormat.
func (msgpackFormat) Load(r io.Reader) (*index.Frozen, error) {
	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, readError("reading header", err)
	}
	if !bytes.Equal(header[0:4], Magic[:]) {
		return nil, fmt.Errorf("bad magic bytes %x: %w", header[0:4], apperrors.ErrFormat)
	}
	if v := binary.LittleEndian.Uint32(header[4:8]); v != FormatVersion {
		return nil, fmt.Errorf("format version %d, want %d: %w", v, FormatVersion, apperrors.ErrFormat)
	}
	size := binary.LittleEndian.Uint64(header[8:16])
	if size > MaxPayloadSize {
		return nil, fmt.Errorf("payload of %d bytes exceeds limit: %w", size, apperrors.ErrFormat)
	}
	checksum := binary.LittleEndian.Uint32(header[16:20])

	compressed, err := io.ReadAll(io.LimitReader(r, int64(size)))
	if err != nil {
		return nil, readError("reading payload", err)
	}
	if uint64(len(compressed)) != size {
		return nil, fmt.Errorf("payload has %d of %d bytes: truncated snapshot: %w", len(compressed), size, apperrors.ErrFormat)
	}
	if got := crc32.ChecksumIEEE(compressed); got != checksum {
		return nil, fmt.Errorf("checksum %08x, header says %08x: %w", got, checksum, apperrors.ErrFormat)
	}
	payload, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("decompressing payload: %w: %w", apperrors.ErrFormat, err)
	}

	var fields map[string]any
	if err := codec.NewDecoderBytes(payload, msgpackHandle()).Decode(&fields); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w: %w", apperrors.ErrFormat, err)
	}
	for _, name := range requiredFields {
		if _, ok := fields[name]; !ok {
			return nil, fmt.Errorf("snapshot lacks %q: %w", name, apperrors.ErrFormat)
		}
	}
	var w wire
	if err := codec.NewDecoderBytes(payload, msgpackHandle()).Decode(&w); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w: %w", apperrors.ErrFormat, err)
	}
	return fromWire(&w)
}

func readError(op string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%s: truncated snapshot: %w", op, apperrors.ErrFormat)
	}
	return fmt.Errorf("%s: %w: %w", op, apperrors.ErrSnapshotIO, err)
}
