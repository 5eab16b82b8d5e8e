package fetch

import (
	"encoding/json"
	"fmt"
	"os"

	timing "github.com/Veerl1br/timing"
)

// capture is a record saved from a browser, either
// {"timing": ..., "entries": [...], "chrome": {...}} or a bare timing object.
type capture struct {
	Timing  timing.Record     `json:"timing"`
	Entries []timing.Entry    `json:"entries"`
	Chrome  *timing.LoadTimes `json:"chrome"`
}

// Load reads a timing record captured with JSON.stringify in a browser.
func Load(path string) (timing.Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return timing.Result{}, err
	}
	return Decode(path, content)
}

// Decode parses a captured record. source names it in the result.
func Decode(source string, content []byte) (timing.Result, error) {
	var c capture
	if err := json.Unmarshal(content, &c); err != nil {
		return timing.Result{}, fmt.Errorf("decode %s: %w", source, err)
	}
	if c.Timing == nil {
		var bare timing.Record
		if err := json.Unmarshal(content, &bare); err != nil {
			return timing.Result{}, fmt.Errorf("decode %s: %w", source, err)
		}
		c.Timing = bare
		c.Entries = nil
		c.Chrome = nil
	}
	return timing.Result{
		Source:   source,
		Snapshot: &timing.Snapshot{Record: c.Timing, Resources: c.Entries},
		Chrome:   c.Chrome,
	}, nil
}
