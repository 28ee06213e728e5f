package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Flags(t *testing.T) {
	t.Setenv("RELAY_URL", "http://relay.internal:8080")
	cmd := newRootCmd()

	require.NoError(t, cmd.ParseFlags([]string{"--timestamps=false", "--timeout=0"}))

	f := cmd.Flags()
	url, _ := f.GetString("url")
	assert.Equal(t, "http://relay.internal:8080", url)
	ts, _ := f.GetBool("timestamps")
	assert.False(t, ts)
	toggle, _ := f.GetBool("theme-toggle")
	assert.True(t, toggle)
	timeout, _ := f.GetDuration("timeout")
	assert.Equal(t, time.Duration(0), timeout)
}

func TestRun_BadLogFile(t *testing.T) {
	err := run(t.Context(), &options{logFile: t.TempDir() + "/missing/dir/chat.log"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "open log file")
}

func TestExecute_ReportsErrorOnStderr(t *testing.T) {
	var stderr bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "missing", "dir", "chat.log")

	err := execute(t.Context(), []string{"--log-file", logFile}, &stderr)

	require.Error(t, err)
	assert.Contains(t, stderr.String(), "chat: open log file")
}

func TestExecute_ReportsBadFlagOnStderr(t *testing.T) {
	var stderr bytes.Buffer

	err := execute(t.Context(), []string{"--timeout", "soon"}, &stderr)

	require.Error(t, err)
	assert.Contains(t, stderr.String(), "invalid argument")
}
