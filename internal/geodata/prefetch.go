package geodata

import (
	"context"
	"sync"
	"time"
)

// DefaultPrefetchBatchSize bounds how many fetches run concurrently during a
// timeline prefetch, to avoid saturating the metadata endpoint.
const DefaultPrefetchBatchSize = 3

// PrefetchOptions controls a timeline prefetch
type PrefetchOptions struct {
	BatchSize int
	Timeout   time.Duration
}

// Prefetch warms the cache for a list of frame timestamps. Timestamps are
// partitioned into consecutive batches; fetches within a batch run
// concurrently and the batch is awaited in full before the next one starts.
// Returns a timestamp -> metadata map covering every requested frame.
func (f *Fetcher) Prefetch(ctx context.Context, domainID, productID string, timestamps []string, opts *PrefetchOptions) map[string]*FrameMetadata {
	batchSize := DefaultPrefetchBatchSize
	fetchOpts := DefaultOptions()
	if opts != nil {
		if opts.BatchSize > 0 {
			batchSize = opts.BatchSize
		}
		if opts.Timeout > 0 {
			fetchOpts.Timeout = opts.Timeout
		}
	}

	results := make(map[string]*FrameMetadata, len(timestamps))
	var mu sync.Mutex

	for start := 0; start < len(timestamps); start += batchSize {
		end := start + batchSize
		if end > len(timestamps) {
			end = len(timestamps)
		}

		var wg sync.WaitGroup
		for _, ts := range timestamps[start:end] {
			wg.Add(1)
			go func(ts string) {
				defer wg.Done()
				frame := f.FetchFrame(ctx, domainID, productID, ts, &fetchOpts)
				mu.Lock()
				results[ts] = frame
				mu.Unlock()
			}(ts)
		}
		wg.Wait()
	}

	return results
}
