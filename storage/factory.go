package storage

import (
	"fmt"
	"sort"
	"sync"

	"github.com/siri1404/OSPSD-Spring-26/logger"
)

// Factory constructs an ObjectClient from configuration.
type Factory func(cfg *Config, log *logger.Logger) (ObjectClient, error)

var (
	factoryMu sync.RWMutex
	factories = map[string]Factory{}
)

// RegisterFactory makes a backend constructor available under the given
// provider name. Backends call this from their Register function; callers
// choose which backends to link by calling those Register functions from
// their composition root.
func RegisterFactory(provider string, factory Factory) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	factories[provider] = factory
}

// Providers returns the registered provider names in sorted order.
func Providers() []string {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds an ObjectClient for the configured provider. The configuration
// has defaults applied and is validated before the factory runs.
func New(cfg *Config, log *logger.Logger) (ObjectClient, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	factoryMu.RLock()
	factory, ok := factories[cfg.Provider]
	factoryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: no factory registered for provider %q (registered: %v)", cfg.Provider, Providers())
	}
	return factory(cfg, log)
}
