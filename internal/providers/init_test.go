package providers

import (
	"errors"
	"testing"

	"github.com/seenimoa/earningstracker/internal/config"
	"github.com/seenimoa/earningstracker/internal/infra"
	"github.com/seenimoa/earningstracker/internal/provider"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("FMP_API_KEY", "")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	return cfg
}

func TestRegisterAllTo(t *testing.T) {
	reg := provider.NewRegistry()
	if err := RegisterAllTo(reg, infra.NewClient(), testConfig(t)); err != nil {
		t.Fatalf("RegisterAllTo: %v", err)
	}

	for _, name := range []string{Wikipedia, YFinance, YahooRSS} {
		p, err := reg.Get(name)
		if err != nil {
			t.Fatalf("%s not registered: %v", name, err)
		}
		if p.Info().Name != name {
			t.Errorf("wrong provider name: got %s, want %s", p.Info().Name, name)
		}
	}
}

func TestRegisterAllToCapabilityCoverage(t *testing.T) {
	reg := provider.NewRegistry()
	if err := RegisterAllTo(reg, infra.NewClient(), testConfig(t)); err != nil {
		t.Fatalf("RegisterAllTo: %v", err)
	}

	if _, err := reg.Universe(Wikipedia); err != nil {
		t.Errorf("universe: %v", err)
	}
	if _, err := reg.Earnings(YFinance); err != nil {
		t.Errorf("earnings: %v", err)
	}
	for _, source := range []string{"search", "rss"} {
		if _, err := reg.News(NewsProviderName(source)); err != nil {
			t.Errorf("news source %s: %v", source, err)
		}
	}

	if got := reg.ProvidersFor(provider.CapabilityNews); len(got) != 2 {
		t.Errorf("expected 2 news providers, got %v", got)
	}
}

func TestRegisterAllIdempotent(t *testing.T) {
	reg := provider.NewRegistry()
	cfg := testConfig(t)
	if err := RegisterAllTo(reg, infra.NewClient(), cfg); err != nil {
		t.Fatalf("first RegisterAllTo: %v", err)
	}
	// Registering again should overwrite without error.
	if err := RegisterAllTo(reg, infra.NewClient(), cfg); err != nil {
		t.Fatalf("second RegisterAllTo: %v", err)
	}

	if n := len(reg.List()); n != 3 {
		t.Errorf("expected 3 providers, got %d", n)
	}
	if got := reg.ProvidersFor(provider.CapabilityEarnings); len(got) != 1 {
		t.Errorf("expected 1 earnings provider, got %v", got)
	}
}

func TestRegisterAllToWithFMPKey(t *testing.T) {
	cfg := testConfig(t)
	cfg.Upstream.FMPAPIKey = "demo"

	reg := provider.NewRegistry()
	if err := RegisterAllTo(reg, infra.NewClient(), cfg); err != nil {
		t.Fatalf("RegisterAllTo: %v", err)
	}
	if _, err := reg.Universe(FMP); err != nil {
		t.Errorf("fmp universe: %v", err)
	}
	if _, err := reg.Earnings(FMP); err != nil {
		t.Errorf("fmp earnings: %v", err)
	}
	if got := reg.ProvidersFor(provider.CapabilityUniverse); len(got) != 2 {
		t.Errorf("expected 2 universe providers, got %v", got)
	}
}

func TestRegisterAllToWithoutFMPKey(t *testing.T) {
	reg := provider.NewRegistry()
	if err := RegisterAllTo(reg, infra.NewClient(), testConfig(t)); err != nil {
		t.Fatalf("RegisterAllTo: %v", err)
	}
	var notFound *provider.ErrProviderNotFound
	if _, err := reg.Get(FMP); !errors.As(err, &notFound) {
		t.Errorf("expected fmp to be absent, got %v", err)
	}
}

func TestNewsProviderName(t *testing.T) {
	tests := map[string]string{
		"search": YFinance,
		"rss":    YahooRSS,
		"fmp":    FMP,
		"":       YFinance,
	}
	for source, want := range tests {
		if got := NewsProviderName(source); got != want {
			t.Errorf("NewsProviderName(%q) = %q, want %q", source, got, want)
		}
	}
}
