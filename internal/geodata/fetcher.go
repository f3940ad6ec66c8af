package geodata

import (
	"context"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultFetchTimeout bounds a single metadata fetch
	DefaultFetchTimeout = 10 * time.Second

	// MetadataExtension replaces the image extension when deriving the
	// metadata URL from a frame's base image URL
	MetadataExtension = ".json"

	// maxMetadataBytes caps a response body read; geodata documents with
	// sampled grids stay well under this
	maxMetadataBytes = 64 << 20
)

// imageExtensions are the base-image suffixes the URL derivation recognizes
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

// ImageURLProvider derives the base image URL for a frame. Implemented by
// the imagery layer outside this package.
type ImageURLProvider interface {
	ImageURL(domainID, productID, timestamp string) string
}

// Options controls a single fetch
type Options struct {
	Timeout           time.Duration
	UseCache          bool
	FallbackOnFailure bool
}

// DefaultOptions returns the standard fetch behavior
func DefaultOptions() Options {
	return Options{
		Timeout:           DefaultFetchTimeout,
		UseCache:          true,
		FallbackOnFailure: true,
	}
}

// Fetcher retrieves, validates and caches per-frame geospatial metadata.
// Concurrent fetches for the same key are not coalesced; each performs an
// independent request until the first result lands in the cache.
type Fetcher struct {
	client   *http.Client
	store    *Store
	disk     *DiskCache // optional
	registry *Registry
	urls     ImageURLProvider
}

// NewFetcher creates a fetcher around the given cache layers and URL
// collaborator. disk may be nil to run memory-only.
func NewFetcher(store *Store, disk *DiskCache, registry *Registry, urls ImageURLProvider) *Fetcher {
	// Respect system proxy settings; per-request deadlines come from the
	// request context rather than a client-wide timeout
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
	}
	return &Fetcher{
		client:   &http.Client{Transport: transport},
		store:    store,
		disk:     disk,
		registry: registry,
		urls:     urls,
	}
}

// MetadataURL derives the metadata document URL from a base image URL by
// swapping the trailing image extension. Returns "" when no derivation is
// possible.
func MetadataURL(imageURL string) string {
	if imageURL == "" {
		return ""
	}
	lower := strings.ToLower(imageURL)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return imageURL[:len(imageURL)-len(ext)] + MetadataExtension
		}
	}
	return ""
}

// FetchFrame returns the geospatial metadata for one frame, consulting the
// memory cache, then the disk cache, then the network. Every failure mode
// (underivable URL, timeout, non-success status, malformed body) synthesizes
// fallback metadata from the domain's configured bounds and caches it, so UI
// re-renders do not hammer a missing endpoint. Returns nil only when
// fallback is disabled or the domain is unknown.
func (f *Fetcher) FetchFrame(ctx context.Context, domainID, productID, timestamp string, opts *Options) *FrameMetadata {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
		if o.Timeout <= 0 {
			o.Timeout = DefaultFetchTimeout
		}
	}

	key := Key(domainID, productID, timestamp)

	if o.UseCache {
		if frame := f.store.Get(key); frame != nil {
			return frame
		}
		if f.disk != nil {
			if frame := f.disk.Get(key); frame != nil {
				f.store.Put(key, frame)
				return frame
			}
		}
	}

	metaURL := MetadataURL(f.urls.ImageURL(domainID, productID, timestamp))
	if metaURL == "" {
		log.Printf("No metadata URL derivable for %s, using fallback bounds", key)
		return f.fallback(key, domainID, timestamp, o)
	}

	frame, err := f.fetch(ctx, metaURL, o.Timeout)
	if err != nil {
		log.Printf("Geodata fetch failed for %s: %v", key, err)
		return f.fallback(key, domainID, timestamp, o)
	}

	if frame.Timestamp == "" {
		frame.Timestamp = timestamp
	}

	if o.UseCache {
		f.store.Put(key, frame)
		if f.disk != nil {
			if err := f.disk.Put(key, frame); err != nil {
				log.Printf("Failed to persist geodata for %s: %v", key, err)
			}
		}
	}
	return frame
}

// fetch performs the bounded network request and normalizes the body
func (f *Fetcher) fetch(ctx context.Context, url string, timeout time.Duration) (*FrameMetadata, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &statusError{status: resp.StatusCode, url: url}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxMetadataBytes))
	if err != nil {
		return nil, err
	}
	return ParseFrame(body)
}

// fallback synthesizes degraded metadata from registry bounds and caches it
// so repeated lookups short-circuit.
func (f *Fetcher) fallback(key, domainID, timestamp string, o Options) *FrameMetadata {
	if !o.FallbackOnFailure {
		return nil
	}
	domain, ok := f.registry.Lookup(domainID)
	if !ok {
		log.Printf("Unknown domain %q, cannot synthesize fallback metadata", domainID)
		return nil
	}

	frame := FallbackFrame(domain, timestamp)
	if o.UseCache {
		f.store.Put(key, frame)
	}
	return frame
}

type statusError struct {
	status int
	url    string
}

func (e *statusError) Error() string {
	return http.StatusText(e.status) + " fetching " + e.url
}
