package provider

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Registry is a thread-safe registry of data providers.
// It maps provider names to Provider instances and maintains an index
// of which providers supply which capabilities.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider     // name → provider
	capIdx    map[Capability][]string // capability → provider names (registration order)
}

// NewRegistry creates a new empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
		capIdx:    make(map[Capability][]string),
	}
}

// Register adds a provider to the registry.
// Duplicate registrations overwrite the previous entry.
func (r *Registry) Register(p Provider) error {
	info := p.Info()
	if info.Name == "" {
		return fmt.Errorf("provider name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.providers[info.Name] = p

	for _, c := range CapabilitiesOf(p) {
		existing := r.capIdx[c]
		found := false
		for _, name := range existing {
			if name == info.Name {
				found = true
				break
			}
		}
		if !found {
			r.capIdx[c] = append(existing, info.Name)
		}
	}

	return nil
}

// Get returns a provider by name, or an error if not found.
func (r *Registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	if !ok {
		return nil, &ErrProviderNotFound{Name: name}
	}
	return p, nil
}

// List returns info about all registered providers, sorted by name.
func (r *Registry) List() []ProviderInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]ProviderInfo, 0, len(r.providers))
	for _, p := range r.providers {
		info := p.Info()
		info.Capabilities = CapabilitiesOf(p)
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}

// ProvidersFor returns the names of providers with the given capability,
// in registration order.
func (r *Registry) ProvidersFor(c Capability) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := r.capIdx[c]
	result := make([]string, len(names))
	copy(result, names)
	return result
}

// Universe returns the named provider as a UniverseSource.
func (r *Registry) Universe(name string) (UniverseSource, error) {
	p, err := r.lookup(name, CapabilityUniverse)
	if err != nil {
		return nil, err
	}
	return p.(UniverseSource), nil
}

// Earnings returns the named provider as an EarningsSource.
func (r *Registry) Earnings(name string) (EarningsSource, error) {
	p, err := r.lookup(name, CapabilityEarnings)
	if err != nil {
		return nil, err
	}
	return p.(EarningsSource), nil
}

// News returns the named provider as a NewsSource.
func (r *Registry) News(name string) (NewsSource, error) {
	p, err := r.lookup(name, CapabilityNews)
	if err != nil {
		return nil, err
	}
	return p.(NewsSource), nil
}

func (r *Registry) lookup(name string, c Capability) (Provider, error) {
	p, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	for _, have := range CapabilitiesOf(p) {
		if have == c {
			return p, nil
		}
	}
	return nil, &ErrCapabilityNotSupported{Provider: name, Capability: c}
}

// PingAll pings every registered provider concurrently and returns the
// result per provider name (nil on success).
func (r *Registry) PingAll(ctx context.Context) map[string]error {
	r.mu.RLock()
	providers := make(map[string]Provider, len(r.providers))
	for name, p := range r.providers {
		providers[name] = p
	}
	r.mu.RUnlock()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]error, len(providers))
	)
	for name, p := range providers {
		wg.Add(1)
		go func(name string, p Provider) {
			defer wg.Done()
			err := p.Ping(ctx)
			mu.Lock()
			results[name] = err
			mu.Unlock()
		}(name, p)
	}
	wg.Wait()
	return results
}
