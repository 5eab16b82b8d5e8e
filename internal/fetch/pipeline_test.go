package fetch

import (
	"context"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	timing "github.com/Veerl1br/timing"
	"github.com/stretchr/testify/assert"
)

func TestPipeline(t *testing.T) {
	var inFlight, peak int32
	fake := func(ctx context.Context, url string) timing.Result {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return timing.Result{Source: url}
	}

	urls := []string{"a", "b", "c", "d", "e", "f", "g"}
	var got []string
	for r := range pipeline(context.Background(), 2, fake, urls...) {
		got = append(got, r.Source)
	}

	sort.Strings(got)
	assert.Equal(t, urls, got)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestPipelineCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fake := func(ctx context.Context, url string) timing.Result {
		return timing.Result{Source: url}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range pipeline(ctx, 1, fake, "a", "b", "c") {
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pipeline did not close after cancellation")
	}
}
