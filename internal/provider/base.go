package provider

// BaseProvider carries the static metadata of a provider.
// Embed it in concrete providers to get Info for free.
type BaseProvider struct {
	name        string
	description string
	website     string
}

// NewBaseProvider creates a base provider with the given metadata.
func NewBaseProvider(name, description, website string) BaseProvider {
	return BaseProvider{
		name:        name,
		description: description,
		website:     website,
	}
}

// Info returns metadata about this provider. Capabilities are filled in
// by the Registry, which sees the concrete type.
func (b *BaseProvider) Info() ProviderInfo {
	return ProviderInfo{
		Name:        b.name,
		Description: b.description,
		Website:     b.website,
	}
}
