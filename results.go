package timing

// Result is one measured navigation: the captured facility and the host
// signals that came with it.
type Result struct {
	Source   string     `json:"source"`
	Snapshot *Snapshot  `json:"-"`
	Chrome   *LoadTimes `json:"-"`
	Err      error      `json:"-"`
}

// Host returns an environment publishing the result's snapshot.
func (r Result) Host() Host {
	if r.Snapshot == nil {
		return Host{Chrome: r.Chrome}
	}
	return NewHost(r.Snapshot, r.Chrome)
}
