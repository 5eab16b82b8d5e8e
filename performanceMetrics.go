package timing

// Metrics maps a metric name to a duration in milliseconds. Values may be
// negative or NaN when the underlying record is incomplete.
type Metrics map[string]float64

// Metric names produced by the reader.
const (
	FirstPaint       = "firstPaint"
	FirstPaintTime   = "firstPaintTime"
	LoadTime         = "loadTime"
	DomReadyTime     = "domReadyTime"
	ReadyStart       = "readyStart"
	RedirectTime     = "redirectTime"
	AppcacheTime     = "appcacheTime"
	UnloadEventTime  = "unloadEventTime"
	LookupDomainTime = "lookupDomainTime"
	ConnectTime      = "connectTime"
	RequestTime      = "requestTime"
	InitDomTreeTime  = "initDomTreeTime"
	LoadEventTime    = "loadEventTime"
)

// interval is a derived duration: end - start on the timing record.
type interval struct {
	name  string
	end   string
	start string
}

var intervals = []interval{
	// total time from start to load
	{LoadTime, "loadEventEnd", "fetchStart"},
	// time spent constructing the DOM tree
	{DomReadyTime, "domComplete", "domInteractive"},
	// time consumed preparing the new page
	{ReadyStart, "fetchStart", "navigationStart"},
	{RedirectTime, "redirectEnd", "redirectStart"},
	{AppcacheTime, "domainLookupStart", "fetchStart"},
	// time spent unloading the previous document
	{UnloadEventTime, "unloadEventEnd", "unloadEventStart"},
	// DNS query
	{LookupDomainTime, "domainLookupEnd", "domainLookupStart"},
	// TCP connection
	{ConnectTime, "connectEnd", "connectStart"},
	{RequestTime, "responseEnd", "requestStart"},
	// request to completion of DOM loading
	{InitDomTreeTime, "domInteractive", "responseEnd"},
	{LoadEventTime, "loadEventEnd", "loadEventStart"},
}

func (m Metrics) derive(r Record) {
	for _, iv := range intervals {
		m[iv.name] = r.field(iv.end) - r.field(iv.start)
	}
}

// Summary is the curated subset of metrics. A nil field is a metric the
// host did not produce.
type Summary struct {
	AppcacheTime     *float64 `json:"appcacheTime"`
	ConnectTime      *float64 `json:"connectTime"`
	DomReadyTime     *float64 `json:"domReadyTime"`
	FirstPaintTime   *float64 `json:"firstPaintTime"`
	InitDomTreeTime  *float64 `json:"initDomTreeTime"`
	LoadEventTime    *float64 `json:"loadEventTime"`
	LoadTime         *float64 `json:"loadTime"`
	LookupDomainTime *float64 `json:"lookupDomainTime"`
	RedirectTime     *float64 `json:"redirectTime"`
	RequestTime      *float64 `json:"requestTime"`
	UnloadEventTime  *float64 `json:"unloadEventTime"`
}

func (m Metrics) lookup(name string) *float64 {
	v, ok := m[name]
	if !ok {
		return nil
	}
	return &v
}

func summarize(m Metrics) Summary {
	return Summary{
		AppcacheTime:     m.lookup(AppcacheTime),
		ConnectTime:      m.lookup(ConnectTime),
		DomReadyTime:     m.lookup(DomReadyTime),
		FirstPaintTime:   m.lookup(FirstPaintTime),
		InitDomTreeTime:  m.lookup(InitDomTreeTime),
		LoadEventTime:    m.lookup(LoadEventTime),
		LoadTime:         m.lookup(LoadTime),
		LookupDomainTime: m.lookup(LookupDomainTime),
		RedirectTime:     m.lookup(RedirectTime),
		RequestTime:      m.lookup(RequestTime),
		UnloadEventTime:  m.lookup(UnloadEventTime),
	}
}

// Map returns every curated metric keyed by name, nil where undefined.
func (s Summary) Map() map[string]*float64 {
	return map[string]*float64{
		AppcacheTime:     s.AppcacheTime,
		ConnectTime:      s.ConnectTime,
		DomReadyTime:     s.DomReadyTime,
		FirstPaintTime:   s.FirstPaintTime,
		InitDomTreeTime:  s.InitDomTreeTime,
		LoadEventTime:    s.LoadEventTime,
		LoadTime:         s.LoadTime,
		LookupDomainTime: s.LookupDomainTime,
		RedirectTime:     s.RedirectTime,
		RequestTime:      s.RequestTime,
		UnloadEventTime:  s.UnloadEventTime,
	}
}
