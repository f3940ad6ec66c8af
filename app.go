package main

import (
	"context"
	"fmt"
	"log"
	goruntime "runtime"
	"strings"
	"time"

	"github.com/posthog/posthog-go"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"satprobe-desktop/internal/common"
	"satprobe-desktop/internal/config"
	"satprobe-desktop/internal/geo"
	"satprobe-desktop/internal/geodata"
)

// Linker flags
var (
	PostHogKey  string
	PostHogHost string
	AppVersion  string = "0.0.0-dev"
)

// templateURLProvider derives frame image URLs from the configured template.
// It stands in for the imagery layer that owns base-image URL generation.
type templateURLProvider struct {
	template string
}

func (p *templateURLProvider) ImageURL(domainID, productID, timestamp string) string {
	if p.template == "" {
		return ""
	}
	url := strings.ReplaceAll(p.template, "{domain}", domainID)
	url = strings.ReplaceAll(url, "{product}", productID)
	url = strings.ReplaceAll(url, "{timestamp}", timestamp)
	return url
}

// App struct
type App struct {
	ctx       context.Context
	settings  *config.UserSettings
	registry  *geodata.Registry
	geoStore  *geodata.Store
	diskCache *geodata.DiskCache
	fetcher   *geodata.Fetcher
	phClient  posthog.Client
	devMode   bool // Enable verbose logging in dev mode only
}

// NewApp creates a new App application struct
func NewApp() *App {
	// Load user settings
	settings, err := config.LoadSettings()
	if err != nil {
		log.Printf("Failed to load settings, using defaults: %v", err)
		settings = config.DefaultSettings()
	}
	log.Printf("Settings loaded from: %s", config.GetSettingsPath())

	// Geodata cache with settings-driven lifecycle
	geoStore := geodata.NewStore(
		settings.GeoCacheMaxEntries,
		time.Duration(settings.GeoCacheTTLMinutes)*time.Minute,
		time.Duration(settings.GeoCacheSweepMinutes)*time.Minute,
	)

	var diskCache *geodata.DiskCache
	if settings.DiskCacheEnabled {
		diskCache, err = geodata.NewDiskCache(
			config.GetGeoCacheDir(),
			time.Duration(settings.DiskCacheTTLHours)*time.Hour,
		)
		if err != nil {
			log.Printf("Failed to initialize geodata disk cache: %v", err)
			diskCache = nil // Continue memory-only
		} else {
			log.Printf("Geodata disk cache initialized at %s", config.GetGeoCacheDir())
		}
	}

	registry := geodata.DefaultRegistry()
	fetcher := geodata.NewFetcher(geoStore, diskCache, registry, &templateURLProvider{
		template: settings.ImageBaseURL,
	})

	// Initialize PostHog
	var phClient posthog.Client
	if PostHogKey != "" && settings.AnalyticsEnabled {
		phConfig := posthog.Config{
			Endpoint: PostHogHost,
		}
		client, err := posthog.NewWithConfig(PostHogKey, phConfig)
		if err != nil {
			log.Printf("Failed to initialize PostHog: %v", err)
		} else {
			phClient = client
		}
	}

	return &App{
		settings:  settings,
		registry:  registry,
		geoStore:  geoStore,
		diskCache: diskCache,
		fetcher:   fetcher,
		phClient:  phClient,
	}
}

// startup is called when the app starts
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	a.geoStore.StartCleanup()
	wailsRuntime.LogInfo(ctx, "Geodata cache cleanup running")

	// Track app start
	a.TrackEvent("app_started", map[string]interface{}{
		"version": AppVersion,
		"os":      goruntime.GOOS,
		"arch":    goruntime.GOARCH,
	})
}

// TrackEvent sends an event to PostHog
func (a *App) TrackEvent(event string, props map[string]interface{}) {
	if a.phClient != nil {
		a.phClient.Enqueue(posthog.Capture{
			DistinctId: "backend_user",
			Event:      event,
			Properties: props,
		})
	}
}

// Shutdown cleans up resources
func (a *App) Shutdown(ctx context.Context) {
	a.geoStore.StopCleanup()
	if a.phClient != nil {
		a.phClient.Close()
	}
}

// GetAppVersion returns the current application version
func (a *App) GetAppVersion() string {
	return AppVersion
}

// logf logs verbose messages in dev mode only
func (a *App) logf(format string, args ...interface{}) {
	if a.devMode {
		log.Printf(format, args...)
	}
}

// GetDomains returns the configured imaging sectors
func (a *App) GetDomains() []geodata.Domain {
	return a.registry.Domains()
}

// fetchOptions builds fetch options from the current settings
func (a *App) fetchOptions() *geodata.Options {
	opts := geodata.DefaultOptions()
	if a.settings.FetchTimeoutMs > 0 {
		opts.Timeout = time.Duration(a.settings.FetchTimeoutMs) * time.Millisecond
	}
	return &opts
}

// GetGeoData returns the geospatial metadata for one frame, fetching and
// caching it as needed. Fallback metadata is returned when the endpoint is
// unreachable so the UI can keep projecting against domain bounds.
func (a *App) GetGeoData(domainID, productID, timestamp string) *geodata.FrameMetadata {
	if _, err := common.ParseFrameTimestamp(timestamp); err != nil {
		a.logf("Rejecting geodata request with bad timestamp %q: %v", timestamp, err)
		return nil
	}
	frame := a.fetcher.FetchFrame(a.appCtx(), domainID, productID, timestamp, a.fetchOptions())
	if frame != nil && frame.IsFallback {
		a.TrackEvent("geodata_fallback", map[string]interface{}{
			"domain":  domainID,
			"product": productID,
		})
	}
	return frame
}

// PrefetchGeoData warms the metadata cache for a frame timeline
func (a *App) PrefetchGeoData(domainID, productID string, timestamps []string) map[string]*geodata.FrameMetadata {
	opts := &geodata.PrefetchOptions{
		BatchSize: a.settings.PrefetchBatchSize,
		Timeout:   time.Duration(a.settings.FetchTimeoutMs) * time.Millisecond,
	}
	a.logf("Prefetching %d frames for %s/%s", len(timestamps), domainID, productID)
	return a.fetcher.Prefetch(a.appCtx(), domainID, productID, timestamps, opts)
}

// GeoCacheStats represents cache statistics for the frontend
type GeoCacheStats struct {
	Entries    int `json:"entries"`
	MaxEntries int `json:"maxEntries"`
}

// GetGeoCacheStats returns current geodata cache statistics
func (a *App) GetGeoCacheStats() GeoCacheStats {
	return GeoCacheStats{
		Entries:    a.geoStore.Size(),
		MaxEntries: a.settings.GeoCacheMaxEntries,
	}
}

// ClearGeoCache empties both cache tiers
func (a *App) ClearGeoCache() error {
	a.geoStore.Clear()
	if a.diskCache != nil {
		if err := a.diskCache.Clear(); err != nil {
			return fmt.Errorf("failed to clear disk cache: %w", err)
		}
	}
	return nil
}

// PixelForCoordinate projects a geographic coordinate onto a frame's image.
// Returns nil when the frame has no resolution or the projection needs grids
// the frame does not carry.
func (a *App) PixelForCoordinate(domainID, productID, timestamp string, lat, lon float64) *geo.Pixel {
	frame := a.GetGeoData(domainID, productID, timestamp)
	if frame == nil {
		return nil
	}
	return geo.Forward(lat, lon, &frame.Bounds, frame.Size(), frame.Projection, frame.Grids())
}

// CoordinateForPixel maps an image pixel back to a geographic coordinate
func (a *App) CoordinateForPixel(domainID, productID, timestamp string, x, y float64) *geo.Point {
	frame := a.GetGeoData(domainID, productID, timestamp)
	if frame == nil {
		return nil
	}
	return geo.Inverse(x, y, &frame.Bounds, frame.Size(), frame.Projection, frame.Grids())
}

// PolygonPixels projects every vertex of a frame's annotation polygons into
// image space, preserving vertex order. Unmappable vertices stay nil.
type PolygonPixels struct {
	Type       string                 `json:"type"`
	Pixels     []*geo.Pixel           `json:"pixels"`
	Properties map[string]interface{} `json:"properties"`
}

// GetPolygonPixels returns the frame's annotations projected to pixels
func (a *App) GetPolygonPixels(domainID, productID, timestamp string) []PolygonPixels {
	frame := a.GetGeoData(domainID, productID, timestamp)
	if frame == nil {
		return nil
	}

	out := make([]PolygonPixels, 0, len(frame.Polygons))
	for _, poly := range frame.Polygons {
		out = append(out, PolygonPixels{
			Type:       poly.Type,
			Pixels:     geo.CoordinatesToPixels(poly.Coordinates, &frame.Bounds, frame.Size(), frame.Projection, frame.Grids()),
			Properties: poly.Properties,
		})
	}
	return out
}

// DataValue is a physical value sampled from a frame's data grid
type DataValue struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
	Name  string  `json:"name"`
}

// GetValueAtPixel samples the frame's numeric data grid at an image pixel.
// Returns nil when the frame carries no data grid or the pixel is outside
// the image.
func (a *App) GetValueAtPixel(domainID, productID, timestamp string, x, y float64) *DataValue {
	frame := a.GetGeoData(domainID, productID, timestamp)
	if frame == nil {
		return nil
	}

	v := geo.DataAtPixel(frame.DataValues, x, y, frame.Size())
	if v == nil {
		return nil
	}
	return &DataValue{Value: *v, Unit: frame.DataUnit, Name: frame.DataName}
}

// IsPointInDomain reports whether a coordinate falls inside a domain's
// configured bounds
func (a *App) IsPointInDomain(domainID string, lat, lon float64) bool {
	domain, ok := a.registry.Lookup(domainID)
	if !ok {
		return false
	}
	return geo.PointInBounds(lat, lon, &domain.Bounds)
}

// FormatTimestamp renders a compact frame timestamp for UI display,
// passing unparsable input through unchanged
func (a *App) FormatTimestamp(ts string) string {
	t, err := common.ParseFrameTimestamp(ts)
	if err != nil {
		return ts
	}
	return common.FormatDisplayTimestamp(t)
}

// appCtx returns the wails context once startup has run, falling back to a
// background context for calls that arrive before it
func (a *App) appCtx() context.Context {
	if a.ctx != nil {
		return a.ctx
	}
	return context.Background()
}
