package fetch

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net/http"
	"net/http/httptrace"
	"time"

	timing "github.com/Veerl1br/timing"
)

type traceTimings struct {
	navigationStart time.Time
	redirectStart   time.Time
	redirectEnd     time.Time
	fetchStart      time.Time
	dnsStart        time.Time
	dnsDone         time.Time
	connectStart    time.Time
	connectDone     time.Time
	tlsStart        time.Time
	gotConn         time.Time
	firstByte       time.Time
	responseEnd     time.Time
}

const maxRedirects = 10

var errTooManyRedirects = errors.New("stopped after 10 redirects")

var defaultTransport = &http.Transport{
	Proxy:                 http.ProxyFromEnvironment,
	MaxIdleConns:          100,
	MaxConnsPerHost:       32,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
}

var httpClient = &http.Client{
	Transport: defaultTransport,
	Timeout:   15 * time.Second,
}

func millis(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Millisecond)
}

// orElse returns t, or fallback when t was never observed.
func orElse(t, fallback time.Time) time.Time {
	if t.IsZero() {
		return fallback
	}
	return t
}

// Fetch performs one traced GET of url and returns the navigation it
// produced as a timing snapshot.
func Fetch(ctx context.Context, url string) timing.Result {
	return fetch(ctx, httpClient, url)
}

func fetch(ctx context.Context, base *http.Client, url string) timing.Result {
	var timings traceTimings

	trace := &httptrace.ClientTrace{
		DNSStart: func(info httptrace.DNSStartInfo) {
			timings.dnsStart = time.Now()
		},
		DNSDone: func(info httptrace.DNSDoneInfo) {
			timings.dnsDone = time.Now()
		},
		ConnectStart: func(network, addr string) {
			timings.connectStart = time.Now()
		},
		ConnectDone: func(network, addr string, err error) {
			timings.connectDone = time.Now()
		},
		TLSHandshakeStart: func() {
			timings.tlsStart = time.Now()
		},
		TLSHandshakeDone: func(state tls.ConnectionState, err error) {
			timings.connectDone = time.Now()
		},
		GotConn: func(info httptrace.GotConnInfo) {
			timings.gotConn = time.Now()
		},
		GotFirstResponseByte: func() {
			timings.firstByte = time.Now()
		},
	}

	// Each redirect restarts the fetch; the phases of earlier hops are
	// folded into redirectTime.
	client := *base
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if timings.redirectStart.IsZero() {
			timings.redirectStart = timings.navigationStart
		}
		timings.redirectEnd = time.Now()
		timings = traceTimings{
			navigationStart: timings.navigationStart,
			redirectStart:   timings.redirectStart,
			redirectEnd:     timings.redirectEnd,
			fetchStart:      time.Now(),
		}
		if base.CheckRedirect != nil {
			return base.CheckRedirect(req, via)
		}
		if len(via) >= maxRedirects {
			return errTooManyRedirects
		}
		return nil
	}

	req, err := http.NewRequestWithContext(httptrace.WithClientTrace(ctx, trace), http.MethodGet, url, nil)
	if err != nil {
		return timing.Result{Source: url, Err: err}
	}

	timings.navigationStart = time.Now()
	timings.fetchStart = timings.navigationStart
	resp, err := client.Do(req)
	if err != nil {
		return timing.Result{Source: url, Err: err}
	}
	defer resp.Body.Close()

	n, err := io.Copy(io.Discard, resp.Body)
	if err != nil {
		return timing.Result{Source: url, Err: err}
	}
	timings.responseEnd = time.Now()

	if resp.ContentLength >= 0 {
		n = resp.ContentLength
	}

	snap := &timing.Snapshot{
		Record:    timings.record(),
		Resources: []timing.Entry{timings.entry(resp.Request.URL.String(), resp.StatusCode, n)},
	}
	return timing.Result{Source: url, Snapshot: snap}
}

// record lays the trace out as a navigation timing record. Phases that did
// not happen (reused connection, literal address) collapse onto fetchStart,
// and no DOM is built so dom and load event fields are absent.
func (t traceTimings) record() timing.Record {
	rec := timing.Record{
		"navigationStart":       millis(t.navigationStart),
		"unloadEventStart":      0.0,
		"unloadEventEnd":        0.0,
		"redirectStart":         0.0,
		"redirectEnd":           0.0,
		"fetchStart":            millis(t.fetchStart),
		"domainLookupStart":     millis(orElse(t.dnsStart, t.fetchStart)),
		"domainLookupEnd":       millis(orElse(t.dnsDone, t.fetchStart)),
		"connectStart":          millis(orElse(t.connectStart, t.fetchStart)),
		"connectEnd":            millis(orElse(t.connectDone, t.fetchStart)),
		"secureConnectionStart": 0.0,
		"requestStart":          millis(orElse(t.gotConn, t.fetchStart)),
		"responseStart":         millis(orElse(t.firstByte, t.responseEnd)),
		"responseEnd":           millis(t.responseEnd),
	}
	if !t.redirectEnd.IsZero() {
		rec["redirectStart"] = millis(t.redirectStart)
		rec["redirectEnd"] = millis(t.redirectEnd)
	}
	if !t.tlsStart.IsZero() {
		rec["secureConnectionStart"] = millis(t.tlsStart)
	}
	return rec
}

func (t traceTimings) entry(name string, status int, size int64) timing.Entry {
	return timing.Entry{
		"name":           name,
		"entryType":      "navigation",
		"startTime":      0.0,
		"duration":       millis(t.responseEnd) - millis(t.navigationStart),
		"transferSize":   size,
		"responseStatus": status,
	}
}
