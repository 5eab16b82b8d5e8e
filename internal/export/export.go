package export

import (
	"encoding/json"
	"io"
	"math"
	"strconv"

	timing "github.com/Veerl1br/timing"
)

// Number is a metric value. NaN and infinities, which JSON cannot carry,
// are written as null.
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'f', -1, 64), nil
}

type Cell struct {
	MS Number `json:"ms"`
	S  Number `json:"s"`
}

// Report is the display form of one measured navigation.
type Report struct {
	Source  string          `json:"source"`
	Metrics map[string]Cell `json:"metrics,omitempty"`
	Entries []timing.Entry  `json:"entries,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// NewReport renders the rows and entries read from one result.
func NewReport(result timing.Result, rows []timing.Row, entries []timing.Entry) Report {
	r := Report{Source: result.Source}
	if result.Err != nil {
		r.Error = result.Err.Error()
		return r
	}
	r.Metrics = make(map[string]Cell, len(rows))
	for _, row := range rows {
		r.Metrics[row.Name] = Cell{MS: Number(row.MS), S: Number(row.S)}
	}
	r.Entries = entries
	return r
}

// WriteJSON writes reports to w as an indented JSON array.
func WriteJSON(w io.Writer, reports []Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}
