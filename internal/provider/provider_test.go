package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/seenimoa/earningstracker/pkg/models"
)

// mockProvider implements Provider plus whichever capabilities a test needs.
type mockProvider struct {
	BaseProvider
	pingErr error
}

func newMockProvider(name string) *mockProvider {
	return &mockProvider{BaseProvider: NewBaseProvider(name, "Mock "+name, "https://example.com")}
}

func (m *mockProvider) Ping(context.Context) error { return m.pingErr }

type mockUniverse struct{ *mockProvider }

func (mockUniverse) Tickers(context.Context) ([]string, error) { return []string{"AAPL"}, nil }

type mockFull struct{ *mockProvider }

func (mockFull) EarningsHistory(context.Context, string) ([]models.EarningsEvent, error) {
	return nil, nil
}

func (mockFull) CompanyNews(context.Context, string) ([]models.NewsItem, error) {
	return nil, nil
}

// --- Capabilities ---

func TestCapabilitiesOf(t *testing.T) {
	tests := []struct {
		name string
		p    Provider
		want []Capability
	}{
		{"none", newMockProvider("bare"), nil},
		{"universe", mockUniverse{newMockProvider("u")}, []Capability{CapabilityUniverse}},
		{"earnings and news", mockFull{newMockProvider("f")}, []Capability{CapabilityEarnings, CapabilityNews}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CapabilitiesOf(tt.p)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("capability %d: got %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// --- Registry Tests ---

func TestRegistryRegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(mockFull{newMockProvider("yahoo")}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	got, err := reg.Get("yahoo")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Info().Name != "yahoo" {
		t.Errorf("expected name yahoo, got %s", got.Info().Name)
	}
}

func TestRegistryRegisterEmptyName(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(newMockProvider("")); err == nil {
		t.Error("expected error for empty provider name")
	}
}

func TestRegistryGetNotFound(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Get("missing")

	var nf *ErrProviderNotFound
	if !errors.As(err, &nf) {
		t.Fatalf("expected ErrProviderNotFound, got %v", err)
	}
	if nf.Name != "missing" {
		t.Errorf("Name: got %q", nf.Name)
	}
}

func TestRegistryCapabilityLookup(t *testing.T) {
	reg := NewRegistry()
	_ = reg.Register(mockUniverse{newMockProvider("wiki")})
	_ = reg.Register(mockFull{newMockProvider("yahoo")})

	if _, err := reg.Universe("wiki"); err != nil {
		t.Errorf("Universe(wiki): %v", err)
	}
	if _, err := reg.Earnings("yahoo"); err != nil {
		t.Errorf("Earnings(yahoo): %v", err)
	}
	if _, err := reg.News("yahoo"); err != nil {
		t.Errorf("News(yahoo): %v", err)
	}

	_, err := reg.News("wiki")
	var ns *ErrCapabilityNotSupported
	if !errors.As(err, &ns) {
		t.Fatalf("expected ErrCapabilityNotSupported, got %v", err)
	}
	if ns.Capability != CapabilityNews {
		t.Errorf("Capability: got %s", ns.Capability)
	}

	if _, err := reg.Earnings("nobody"); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestRegistryListAndProvidersFor(t *testing.T) {
	reg := NewRegistry()
	_ = reg.Register(mockFull{newMockProvider("zeta")})
	_ = reg.Register(mockUniverse{newMockProvider("alpha")})
	_ = reg.Register(mockFull{newMockProvider("beta")})

	infos := reg.List()
	if len(infos) != 3 {
		t.Fatalf("expected 3 providers, got %d", len(infos))
	}
	if infos[0].Name != "alpha" || infos[2].Name != "zeta" {
		t.Errorf("List not sorted: %v", infos)
	}
	if len(infos[0].Capabilities) != 1 || infos[0].Capabilities[0] != CapabilityUniverse {
		t.Errorf("alpha capabilities: got %v", infos[0].Capabilities)
	}

	news := reg.ProvidersFor(CapabilityNews)
	if len(news) != 2 || news[0] != "zeta" || news[1] != "beta" {
		t.Errorf("ProvidersFor(news): got %v, want [zeta beta]", news)
	}
}

func TestRegistryPingAll(t *testing.T) {
	reg := NewRegistry()
	up := newMockProvider("up")
	down := newMockProvider("down")
	down.pingErr = errors.New("connection refused")
	_ = reg.Register(up)
	_ = reg.Register(down)

	results := reg.PingAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results["up"] != nil {
		t.Errorf("up: got %v", results["up"])
	}
	if results["down"] == nil {
		t.Error("down: expected error")
	}
}
