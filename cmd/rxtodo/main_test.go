package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baxromumarov/rxstate/internal/cliconfig"
	"github.com/baxromumarov/rxstate/internal/render"
	"github.com/baxromumarov/rxstate/internal/todo"
	"github.com/baxromumarov/rxstate/log"
)

func testConfig(format string) cliconfig.Config {
	cfg := cliconfig.DefaultConfig()
	cfg.Format = format
	return cfg
}

func TestRunQuietPrintsFinalState(t *testing.T) {
	cfg := testConfig(cliconfig.FormatJSON)
	cfg.Quiet = true
	cfg.Seed = []string{"bread"}

	in := strings.NewReader("milk\n:add\neggs\n:add\n:rm 1\n")
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, in, &out, log.NewConsole(io.Discard, "error")))

	var got render.Snapshot
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, []todo.Todo{{ID: "2", Text: "milk"}, {ID: "3", Text: "eggs"}}, got.Todos)
	assert.Equal(t, "", got.Text)
}

func TestRunRendersEveryChange(t *testing.T) {
	cfg := testConfig(cliconfig.FormatText)

	in := strings.NewReader("a\n:add\n:bogus\n:quit\nignored\n")
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, in, &out, log.NewConsole(io.Discard, "error")))

	want := "todos (0)\n> \n" +
		"todos (0)\n> a\n" +
		"todos (1)\n  [1] a\n> \n"
	assert.Equal(t, want, out.String())
}

func TestRunImportsInbox(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inbox.txt")
	require.NoError(t, os.WriteFile(path, []byte("from inbox\n"), 0o600))

	cfg := testConfig(cliconfig.FormatJSON)
	cfg.Quiet = true
	cfg.Inbox = path
	cfg.InboxDebounce = 0

	// Input stays open until the inbox line has been imported.
	pr, pw := io.Pipe()
	var out bytes.Buffer
	done := make(chan error, 1)
	go func() { done <- run(context.Background(), cfg, pr, &out, log.NewConsole(io.Discard, "error")) }()

	time.Sleep(200 * time.Millisecond)
	_, err := pw.Write([]byte(":quit\n"))
	require.NoError(t, err)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return")
	}
	_ = pw.Close()

	var got render.Snapshot
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, []todo.Todo{{ID: "1", Text: "from inbox"}}, got.Todos)
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	err := run(ctx, testConfig(cliconfig.FormatText), pr, &out, log.NewConsole(io.Discard, "error"))
	assert.NoError(t, err)
}
