package geodata

import (
	"sync"

	"satprobe-desktop/internal/common"
	"satprobe-desktop/internal/geo"
)

// Domain describes one imaging sector: the fixed geographic extent frames of
// that sector cover and the projection its base imagery is rendered in.
type Domain struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Bounds     geo.Bounds `json:"bounds"`
	Projection string     `json:"projection"`
}

// Registry maps domain identifiers to their static configuration. It is
// populated once at startup; lookups after that are read-only.
type Registry struct {
	mu      sync.RWMutex
	domains map[string]Domain
}

// NewRegistry creates an empty domain registry
func NewRegistry() *Registry {
	return &Registry{domains: make(map[string]Domain)}
}

// Register adds or replaces a domain
func (r *Registry) Register(d Domain) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.domains[d.ID] = d
}

// Lookup returns the domain configuration for an identifier
func (r *Registry) Lookup(id string) (Domain, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.domains[id]
	return d, ok
}

// Domains returns all registered domains
func (r *Registry) Domains() []Domain {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Domain, 0, len(r.domains))
	for _, d := range r.domains {
		out = append(out, d)
	}
	return out
}

// DefaultRegistry returns a registry populated with the GOES-East sectors
// the app ships with. Mesoscale sectors float, so their bounds here are the
// nominal defaults; real extents arrive with each frame's metadata.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Domain{
		ID:         common.DomainCONUS,
		Name:       common.DisplayNameCONUS,
		Bounds:     geo.Bounds{MinLat: 14.57, MaxLat: 56.76, MinLon: -152.11, MaxLon: -52.95},
		Projection: geo.ProjectionGeostationary,
	})
	r.Register(Domain{
		ID:         common.DomainFullDisk,
		Name:       common.DisplayNameFullDisk,
		Bounds:     geo.Bounds{MinLat: -81.33, MaxLat: 81.33, MinLon: -156.30, MaxLon: -6.30},
		Projection: geo.ProjectionGeostationary,
	})
	r.Register(Domain{
		ID:         common.DomainMesoscale1,
		Name:       common.DisplayNameMesoscale1,
		Bounds:     geo.Bounds{MinLat: 25.0, MaxLat: 35.0, MinLon: -100.0, MaxLon: -88.0},
		Projection: geo.ProjectionGeostationary,
	})
	r.Register(Domain{
		ID:         common.DomainMesoscale2,
		Name:       common.DisplayNameMesoscale2,
		Bounds:     geo.Bounds{MinLat: 35.0, MaxLat: 45.0, MinLon: -90.0, MaxLon: -78.0},
		Projection: geo.ProjectionGeostationary,
	})
	return r
}
