package snapshot

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang/snappy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ugorji/go/codec"

	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/index"
	apperrors "github.com/Adithya-Monish-Kumar-K/searchindex/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/redis"
)

func sampleFrozen() *index.Frozen {
	return &index.Frozen{
		Docnames:   []string{"api", "intro"},
		Filenames:  []string{"api.rst", "intro.rst"},
		Titles:     []string{"API <b>&</b>", "Introduction"},
		Terms:      map[string][]int{"widget": {0, 1}, "great": {1}},
		TitleTerms: map[string][]int{"introduct": {1}},
		Objects: map[string][]index.Object{
			"pkg": {{DocIndex: 0, TypeIndex: 0, Priority: 1, Anchor: "", Name: "Cls"}},
		},
		ObjTypes:   map[int]string{0: "py:class"},
		ObjNames:   map[int]index.ObjName{0: {Domain: "py", Type: "class", Display: "Python class"}},
		EnvVersion: "1",
	}
}

func dump(t *testing.T, f Format, frozen *index.Frozen) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, f.Dump(&buf, frozen))
	return buf.Bytes()
}

// frame compresses an encoded payload and prepends a valid header.
func frame(payload []byte) []byte {
	return frameRaw(snappy.Encode(nil, payload))
}

func frameRaw(compressed []byte) []byte {
	out := make([]byte, HeaderSize, HeaderSize+len(compressed))
	copy(out, Magic[:])
	binary.LittleEndian.PutUint32(out[4:8], FormatVersion)
	binary.LittleEndian.PutUint64(out[8:16], uint64(len(compressed)))
	binary.LittleEndian.PutUint32(out[16:20], crc32.ChecksumIEEE(compressed))
	return append(out, compressed...)
}

func TestMsgpackRoundTrip(t *testing.T) {
	data := dump(t, Msgpack, sampleFrozen())
	assert.Equal(t, Magic[:], data[:4])

	got, err := Msgpack.Load(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, sampleFrozen(), got)
}

func TestMsgpackIsDeterministic(t *testing.T) {
	assert.Equal(t, dump(t, Msgpack, sampleFrozen()), dump(t, Msgpack, sampleFrozen()))
}

func TestMsgpackEmptyIndex(t *testing.T) {
	empty := &index.Frozen{EnvVersion: "1"}
	got, err := Msgpack.Load(bytes.NewReader(dump(t, Msgpack, empty)))
	require.NoError(t, err)
	assert.Empty(t, got.Docnames)
	assert.Empty(t, got.Terms)
	assert.Equal(t, "1", got.EnvVersion)
}

func TestMsgpackRejectsDamagedInput(t *testing.T) {
	good := dump(t, Msgpack, sampleFrozen())
	damage := func(fn func([]byte) []byte) []byte {
		return fn(append([]byte(nil), good...))
	}

	missingField, err := encodeMsgpack(map[string]any{"docnames": []string{}, "envversion": "1"})
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short header", good[:10]},
		{"bad magic", damage(func(b []byte) []byte { b[0] = 'X'; return b })},
		{"newer version", damage(func(b []byte) []byte { b[4] = 9; return b })},
		{"truncated payload", good[:len(good)-3]},
		{"checksum mismatch", damage(func(b []byte) []byte { b[len(b)-1] ^= 0xff; return b })},
		{"not snappy", frameRaw([]byte{0xff, 0xff, 0xff, 0xff})},
		{"missing field", frame(missingField)},
		{"not a map", frame([]byte{0x93, 0x01, 0x02, 0x03})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Msgpack.Load(bytes.NewReader(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrFormat)
			assert.True(t, apperrors.Recoverable(err))
		})
	}
}

func encodeMsgpack(v any) ([]byte, error) {
	var out []byte
	err := codec.NewEncoderBytes(&out, msgpackHandle()).Encode(v)
	return out, err
}

func TestMsgpackRejectsBadPostings(t *testing.T) {
	payload, err := encodeMsgpack(map[string]any{
		"docnames":   []string{"a"},
		"filenames":  []string{"a.rst"},
		"titles":     []string{"A"},
		"terms":      map[string]any{"word": "zero"},
		"titleterms": map[string]any{},
		"envversion": "1",
	})
	require.NoError(t, err)

	_, err = Msgpack.Load(bytes.NewReader(frame(payload)))
	assert.ErrorIs(t, err, apperrors.ErrFormat)
}

func TestJSDump(t *testing.T) {
	out := string(dump(t, JS, sampleFrozen()))

	assert.True(t, strings.HasPrefix(out, "Search.setIndex({"))
	assert.True(t, strings.HasSuffix(out, "})"))
	assert.Contains(t, out, `"docnames":["api","intro"]`)
	assert.Contains(t, out, `"great":1`)
	assert.Contains(t, out, `"widget":[0,1]`)
	assert.Contains(t, out, `"objects":{"pkg":[[0,0,1,"","Cls"]]}`)
	assert.Contains(t, out, `"objnames":{"0":["py","class","Python class"]}`)
	assert.Contains(t, out, `"objtypes":{"0":"py:class"}`)
	assert.Contains(t, out, `API \u003cb\u003e\u0026\u003c/b\u003e`)
	assert.NotContains(t, out, "<b>")
	assert.Less(t, strings.Index(out, `"docnames"`), strings.Index(out, `"titles"`))
}

func TestJSLoadUnsupported(t *testing.T) {
	_, err := JS.Load(strings.NewReader("Search.setIndex({})"))
	assert.ErrorIs(t, err, apperrors.ErrUnsupported)
}

func TestJSLiteral(t *testing.T) {
	got, err := JSLiteral([]string{"a", "</script>"})
	require.NoError(t, err)
	assert.Equal(t, `["a","\u003c/script\u003e"]`, got)
}

func TestLookup(t *testing.T) {
	for name, want := range map[string]string{"msgpack": "msgpack", "pickle": "msgpack", "js": "js", "jsdump": "js"} {
		f, err := Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, f.Name())
	}
	_, err := Lookup("xml")
	assert.ErrorIs(t, err, apperrors.ErrUnsupported)
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "build")
	st := NewFileStore(dir)

	_, err := st.Get(ctx, "searchindex.sidx")
	assert.ErrorIs(t, err, apperrors.ErrNotExist)

	require.NoError(t, Save(ctx, st, "searchindex.sidx", Msgpack, sampleFrozen()))
	got, err := Fetch(ctx, st, "searchindex.sidx", Msgpack)
	require.NoError(t, err)
	assert.Equal(t, sampleFrozen(), got)

	_, err = os.Stat(st.Path("searchindex.sidx") + ".tmp")
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, st.Put(ctx, "searchindex.sidx", []byte("garbage")))
	_, err = Fetch(ctx, st, "searchindex.sidx", Msgpack)
	assert.ErrorIs(t, err, apperrors.ErrFormat)
}

func TestRedisStore(t *testing.T) {
	srv := miniredis.RunT(t)
	client, err := redis.NewClient(context.Background(), config.RedisConfig{Addr: srv.Addr(), PoolSize: 1})
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	st := NewRedisStore(client, "si:", 0)

	_, err = st.Get(ctx, "searchindex.js")
	assert.ErrorIs(t, err, apperrors.ErrNotExist)

	require.NoError(t, Save(ctx, st, "searchindex.js", JS, sampleFrozen()))
	assert.True(t, srv.Exists("si:searchindex.js"))

	data, err := st.Get(ctx, "searchindex.js")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("Search.setIndex(")))
}
