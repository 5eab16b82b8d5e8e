package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func writeRecord(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "record.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags([]string{"-simple", "-record", "a.json", "-record", "b.json", "-c", "3", "https://example.com"})
	require.NoError(t, err)
	assert.True(t, cfg.simple)
	assert.Equal(t, 3, cfg.concurrency)
	assert.Equal(t, recordFlags{"a.json", "b.json"}, cfg.records)
	assert.Equal(t, []string{"https://example.com"}, cfg.urls)

	_, err = parseFlags(nil)
	assert.Error(t, err)
}

func TestRunTable(t *testing.T) {
	path := writeRecord(t, `{"navigationStart": 0, "fetchStart": 1234}`)

	var out bytes.Buffer
	err := run(&out, zap.NewNop(), config{simple: true, timeout: time.Second, records: recordFlags{path}})
	require.NoError(t, err)
	assert.Contains(t, out.String(), path)
	assert.Contains(t, out.String(), "readyStart")
	assert.Contains(t, out.String(), "1,234.00")
}

func TestRunJSON(t *testing.T) {
	path := writeRecord(t, `{"timing": {"navigationStart": 0, "fetchStart": 20}}`)
	missing := filepath.Join(t.TempDir(), "missing.json")

	var out bytes.Buffer
	err := run(&out, zap.NewNop(), config{json: true, timeout: time.Second, records: recordFlags{path, missing}})
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 1)

	var reports []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &reports))
	require.Len(t, reports, 2)
	metrics := reports[0]["metrics"].(map[string]any)
	assert.Equal(t, map[string]any{"ms": 20.0, "s": 0.02}, metrics["readyStart"])
	assert.Contains(t, reports[1], "error")
}
