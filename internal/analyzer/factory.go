package analyzer

import (
	"fmt"

	"testreport/internal/config"
	"testreport/internal/port"
)

// ProviderFactory is a function that creates a FailureAnalyzer from a provider config.
type ProviderFactory func(cfg *config.AnalyzerProviderConfig) (port.FailureAnalyzer, error)

// registry of analyzer provider factories, populated by init() in each
// provider package or explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers an analyzer provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// New creates a FailureAnalyzer from a provider config using the registered factory.
func New(cfg *config.AnalyzerProviderConfig) (port.FailureAnalyzer, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown analyzer provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
