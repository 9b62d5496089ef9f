package storage

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	apperrors "github.com/siri1404/OSPSD-Spring-26/errors"
)

// DefaultName is the registry name used when callers do not pick one.
const DefaultName = "default"

// ClientFactory produces an ObjectClient on first use. It runs at most once
// per registered name; the result is cached until the name is unregistered
// or the registry is reset.
type ClientFactory func() (ObjectClient, error)

// registry maps names to client factories and caches constructed clients.
// Guarded by a mutex so concurrent Client calls construct at most once.
type registry struct {
	mu        sync.Mutex
	factories map[string]ClientFactory
	clients   map[string]ObjectClient
}

var defaultRegistry = &registry{
	factories: map[string]ClientFactory{},
	clients:   map[string]ObjectClient{},
}

// RegisterClient binds a factory to a name, replacing any previous binding
// and dropping any cached client for that name. Registration is an explicit
// call made from the application's composition root.
func RegisterClient(name string, factory ClientFactory) {
	defaultRegistry.register(name, factory)
}

// Client returns the client registered under name, constructing it on first
// use. Construction failures are returned each call and never cached.
func Client(name string) (ObjectClient, error) {
	return defaultRegistry.client(name)
}

// Default returns the client registered under DefaultName.
func Default() (ObjectClient, error) {
	return Client(DefaultName)
}

// UnregisterClient removes the factory and cached client for name.
func UnregisterClient(name string) {
	defaultRegistry.unregister(name)
}

// ResetClients clears all registrations and cached clients. Intended for
// tests that need isolation between cases.
func ResetClients() {
	defaultRegistry.reset()
}

func (r *registry) register(name string, factory ClientFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
	delete(r.clients, name)
}

func (r *registry) client(name string) (ObjectClient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.clients[name]; ok {
		return c, nil
	}
	factory, ok := r.factories[name]
	if !ok {
		return nil, apperrors.Configuration(fmt.Sprintf(
			"no storage client registered under %q (registered: %s)",
			name, r.registeredLocked()))
	}
	c, err := factory()
	if err != nil {
		return nil, err
	}
	r.clients[name] = c
	return c, nil
}

func (r *registry) unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.factories, name)
	delete(r.clients, name)
}

func (r *registry) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories = map[string]ClientFactory{}
	r.clients = map[string]ObjectClient{}
}

func (r *registry) registeredLocked() string {
	if len(r.factories) == 0 {
		return "none"
	}
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
