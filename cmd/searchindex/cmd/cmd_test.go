package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Adithya-Monish-Kumar-K/searchindex/pkg/errors"
)

const docTemplate = `docname: %s
filename: %s.rst
title: %s
tree:
  kind: document
  children:
    - kind: section
      children:
        - kind: title
          children:
            - kind: text
              text: %s
        - kind: paragraph
          children:
            - kind: text
              text: %s
`

type workspace struct {
	config string
	docs   string
	out    string
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	dir := t.TempDir()
	ws := &workspace{
		config: filepath.Join(dir, "searchindex.yaml"),
		docs:   filepath.Join(dir, "docs"),
		out:    filepath.Join(dir, "out"),
	}
	cfg := fmt.Sprintf("index:\n  language: en\n  workers: 2\nstorage:\n  backend: file\n  dir: %s\nlogging:\n  level: error\n", ws.out)
	require.NoError(t, os.WriteFile(ws.config, []byte(cfg), 0o644))
	require.NoError(t, os.MkdirAll(ws.docs, 0o755))
	ws.writeDoc(t, "intro", "Introduction", "Loading kernel modules")
	ws.writeDoc(t, "guide", "Guide", "Building kernel drivers")
	return ws
}

func (ws *workspace) writeDoc(t *testing.T, docname, title, body string) {
	t.Helper()
	src := fmt.Sprintf(docTemplate, docname, docname, title, title, body)
	require.NoError(t, os.WriteFile(filepath.Join(ws.docs, docname+".yaml"), []byte(src), 0o644))
}

func (ws *workspace) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", ws.config}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestBuildInspectPurge(t *testing.T) {
	ws := newWorkspace(t)

	out, err := ws.run(t, "build", "--docs", ws.docs)
	require.NoError(t, err)
	assert.Contains(t, out, "documents:   2")
	for _, name := range []string{"searchindex.msgpack", "searchindex.js", "language_data.js"} {
		_, err := os.Stat(filepath.Join(ws.out, name))
		assert.NoError(t, err, name)
	}

	out, err = ws.run(t, "inspect", "--json", "--term", "kernel")
	require.NoError(t, err)
	assert.Contains(t, out, `"docs":2`)
	assert.Contains(t, out, `"kernel":["guide","intro"]`)

	out, err = ws.run(t, "purge", "intro", "missing")
	require.NoError(t, err)
	assert.Contains(t, out, "missing: not indexed")
	assert.Contains(t, out, "documents:   1")

	out, err = ws.run(t, "inspect", "--term", "kernel")
	require.NoError(t, err)
	assert.Contains(t, out, "documents:   1")
	assert.Contains(t, out, "kernel: [guide]")
}

func TestBuildOnlyKeepsCurrentDocuments(t *testing.T) {
	ws := newWorkspace(t)
	_, err := ws.run(t, "build", "--docs", ws.docs)
	require.NoError(t, err)

	ws.writeDoc(t, "intro", "Introduction", "Loading firmware blobs")
	ws.writeDoc(t, "guide", "Guide", "this change is not picked up")
	_, err = ws.run(t, "build", "--docs", ws.docs, "--only", "intro")
	require.NoError(t, err)

	out, err := ws.run(t, "inspect", "--term", "kernel", "--term", "firmware")
	require.NoError(t, err)
	assert.Contains(t, out, "kernel: [guide]")
	assert.Contains(t, out, "firmware: [intro]")
}

func TestPurgeWithoutIndex(t *testing.T) {
	ws := newWorkspace(t)

	out, err := ws.run(t, "purge", "intro")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing to purge")
}

func TestInspectWithoutIndex(t *testing.T) {
	ws := newWorkspace(t)

	_, err := ws.run(t, "inspect")
	assert.ErrorIs(t, err, apperrors.ErrNotExist)
	assert.Equal(t, apperrors.ExitIO, apperrors.ExitCode(err))
}

func TestWatchNeedsKafka(t *testing.T) {
	ws := newWorkspace(t)

	_, err := ws.run(t, "watch")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
