package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"testing"

	timing "github.com/Veerl1br/timing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	rows := []timing.Row{
		{Name: timing.LoadTime, MS: math.NaN(), S: math.NaN()},
		{Name: timing.RequestTime, MS: 1234, S: 1.23},
	}
	entries := []timing.Entry{{"name": "https://example.com/", "duration": 12.5}}
	reports := []Report{
		NewReport(timing.Result{Source: "https://example.com/"}, rows, entries),
		NewReport(timing.Result{Source: "https://down.example/", Err: errors.New("connection refused")}, nil, nil),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, reports))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)

	metrics := decoded[0]["metrics"].(map[string]any)
	assert.Equal(t, map[string]any{"ms": nil, "s": nil}, metrics[timing.LoadTime])
	assert.Equal(t, map[string]any{"ms": 1234.0, "s": 1.23}, metrics[timing.RequestTime])
	assert.Len(t, decoded[0]["entries"], 1)
	assert.NotContains(t, decoded[0], "error")

	assert.Equal(t, "connection refused", decoded[1]["error"])
	assert.NotContains(t, decoded[1], "metrics")
}

func TestNumberMarshal(t *testing.T) {
	for in, want := range map[float64]string{
		1.5:          "1.5",
		-8:           "-8",
		math.Inf(1):  "null",
		math.Inf(-1): "null",
	} {
		got, err := Number(in).MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, want, string(got))
	}
}
