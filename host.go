package timing

// DefaultBindings lists the host bindings probed for a performance facility,
// standard binding first.
var DefaultBindings = []string{
	"performance",
	"webkitPerformance",
	"msPerformance",
	"mozPerformance",
}

// Environment is the host the reader runs in.
type Environment interface {
	// Performance returns the facility published under name, if any.
	Performance(name string) (Performance, bool)
	// LoadTimes reports the Chrome-specific load-times signal.
	LoadTimes() (LoadTimes, bool)
}

// Performance is a host performance-measurement facility.
type Performance interface {
	// Timing returns the navigation timing record or nil.
	Timing() Record
}

// EntryLister is implemented by facilities that can list recorded entries.
type EntryLister interface {
	Entries() []Entry
}

// LoadTimes is the result of chrome.loadTimes().
type LoadTimes struct {
	// FirstPaintTime is in seconds since the Unix epoch.
	FirstPaintTime float64 `json:"firstPaintTime"`
}

// Entry is a single performance entry as recorded by the host.
type Entry map[string]any

// Host is an in-memory Environment.
type Host struct {
	Bindings map[string]Performance
	Chrome   *LoadTimes
}

func (h Host) Performance(name string) (Performance, bool) {
	p, ok := h.Bindings[name]
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}

func (h Host) LoadTimes() (LoadTimes, bool) {
	if h.Chrome == nil {
		return LoadTimes{}, false
	}
	return *h.Chrome, true
}

// Snapshot is an in-memory facility holding a captured record and entries.
type Snapshot struct {
	Record    Record  `json:"timing"`
	Resources []Entry `json:"entries"`
}

func (s *Snapshot) Timing() Record {
	return s.Record
}

func (s *Snapshot) Entries() []Entry {
	return s.Resources
}

// NewHost returns a Host publishing p under the standard binding.
func NewHost(p Performance, chrome *LoadTimes) Host {
	return Host{
		Bindings: map[string]Performance{DefaultBindings[0]: p},
		Chrome:   chrome,
	}
}
