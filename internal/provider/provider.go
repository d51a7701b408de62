// Package provider defines the upstream data-source abstraction.
// A Provider describes itself and can be pinged; it additionally
// implements one or more capability interfaces (UniverseSource,
// EarningsSource, NewsSource). The Registry indexes providers by the
// capabilities they implement.
package provider

import (
	"context"
	"fmt"

	"github.com/seenimoa/earningstracker/pkg/models"
)

// Capability names a kind of data a provider can supply.
type Capability string

const (
	CapabilityUniverse Capability = "universe"
	CapabilityEarnings Capability = "earnings"
	CapabilityNews     Capability = "news"
)

// ProviderInfo holds metadata about a registered provider.
type ProviderInfo struct {
	Name         string       `json:"name"`        // e.g., "yfinance", "wikipedia"
	Description  string       `json:"description"` // human-readable description
	Website      string       `json:"website"`
	Capabilities []Capability `json:"capabilities"`
}

// Provider is the interface that all data providers must implement.
type Provider interface {
	// Info returns metadata about this provider.
	Info() ProviderInfo

	// Ping verifies the provider's connectivity.
	Ping(ctx context.Context) error
}

// UniverseSource lists the ticker symbols tracked by the service.
type UniverseSource interface {
	Tickers(ctx context.Context) ([]string, error)
}

// EarningsSource returns the reported and scheduled earnings rows for a ticker,
// in the order the upstream lists them.
type EarningsSource interface {
	EarningsHistory(ctx context.Context, ticker string) ([]models.EarningsEvent, error)
}

// NewsSource returns recent headlines for a ticker in upstream order.
type NewsSource interface {
	CompanyNews(ctx context.Context, ticker string) ([]models.NewsItem, error)
}

// CapabilitiesOf reports which capability interfaces p implements.
func CapabilitiesOf(p Provider) []Capability {
	var caps []Capability
	if _, ok := p.(UniverseSource); ok {
		caps = append(caps, CapabilityUniverse)
	}
	if _, ok := p.(EarningsSource); ok {
		caps = append(caps, CapabilityEarnings)
	}
	if _, ok := p.(NewsSource); ok {
		caps = append(caps, CapabilityNews)
	}
	return caps
}

// --- Error types ---

// ErrProviderNotFound is returned when a requested provider doesn't exist.
type ErrProviderNotFound struct {
	Name string
}

func (e *ErrProviderNotFound) Error() string {
	return fmt.Sprintf("provider %q not found", e.Name)
}

// ErrCapabilityNotSupported is returned when a provider lacks a capability.
type ErrCapabilityNotSupported struct {
	Provider   string
	Capability Capability
}

func (e *ErrCapabilityNotSupported) Error() string {
	return fmt.Sprintf("provider %q does not supply %s data", e.Provider, e.Capability)
}
