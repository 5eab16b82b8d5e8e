package fetch

import (
	"context"
	"sync"

	timing "github.com/Veerl1br/timing"
)

// DefaultConcurrency bounds the number of fetches in flight.
const DefaultConcurrency = 5

// Pipeline fetches urls concurrently, at most concurrency at a time. The
// returned channel is closed once every fetch finished or ctx is done.
func Pipeline(ctx context.Context, concurrency int, urls ...string) <-chan timing.Result {
	return pipeline(ctx, concurrency, Fetch, urls...)
}

func pipeline(ctx context.Context, concurrency int, fetch func(context.Context, string) timing.Result, urls ...string) <-chan timing.Result {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	result := make(chan timing.Result)
	wg := &sync.WaitGroup{}
	sem := make(chan struct{}, concurrency)

	for _, url := range urls {
		wg.Add(1)
		go func(url string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case sem <- struct{}{}:
			}
			defer func() {
				<-sem
			}()

			select {
			case <-ctx.Done():
				return
			case result <- fetch(ctx, url):
			}
		}(url)
	}

	go func() {
		wg.Wait()
		close(result)
	}()

	return result
}
