package di

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/siri1404/OSPSD-Spring-26/logger"
)

// RegistrationMode determines how a component should be resolved.
type RegistrationMode int

const (
	Eager     RegistrationMode = iota // Initialize immediately on registration
	Lazy                              // Initialize on first resolve
	Singleton                         // Pre-created instance
)

// Container defines the interface for a dependency injection container.
type Container interface {
	Register(key string, constructor interface{}) error
	RegisterLazy(key string, constructor interface{}) error
	RegisterEager(key string, constructor interface{}) error
	RegisterSingleton(key string, instance interface{}) error
	Resolve(key string) (interface{}, error)
	Close() error

	// Introspection
	Registrations() []RegistrationInfo

	// InvalidateCache drops a cached lazy instance so the next Resolve
	// re-runs the constructor. Used for test isolation.
	InvalidateCache(name string) error
	MustResolve(name string) interface{}
}

// RegistrationInfo describes a registered component for introspection.
type RegistrationInfo struct {
	Key         string
	Mode        RegistrationMode
	Initialized bool
}

// UnifiedContainer is the single DI container implementation.
type UnifiedContainer struct {
	components map[string]*ComponentRegistration
	singletons map[string]interface{}
	mutex      sync.RWMutex
}

// ComponentRegistration holds a registered constructor and its cached instance.
type ComponentRegistration struct {
	key         string
	constructor interface{}
	mode        RegistrationMode
	instance    interface{}
	mutex       sync.RWMutex
	initialized bool
}

// NewContainer creates an empty DI container.
func NewContainer() Container {
	return &UnifiedContainer{
		components: make(map[string]*ComponentRegistration),
		singletons: make(map[string]interface{}),
	}
}

// Register registers a component with lazy loading (the common case).
func (c *UnifiedContainer) Register(key string, constructor interface{}) error {
	return c.RegisterLazy(key, constructor)
}

// RegisterLazy registers a component for initialization on first resolve.
// Last registration for a key wins.
func (c *UnifiedContainer) RegisterLazy(key string, constructor interface{}) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.components[key] = &ComponentRegistration{
		key:         key,
		constructor: constructor,
		mode:        Lazy,
	}
	return nil
}

// RegisterEager registers a component and initializes it immediately.
func (c *UnifiedContainer) RegisterEager(key string, constructor interface{}) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	instance, err := c.callConstructor(constructor)
	if err != nil {
		return fmt.Errorf("failed to initialize eager component '%s': %w", key, err)
	}

	c.components[key] = &ComponentRegistration{
		key:         key,
		constructor: constructor,
		mode:        Eager,
		instance:    instance,
		initialized: true,
	}
	return nil
}

// RegisterSingleton registers a pre-created instance.
func (c *UnifiedContainer) RegisterSingleton(key string, instance interface{}) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.singletons[key] = instance
	return nil
}

// Resolve gets a component instance, constructing and caching lazy
// components on first call.
func (c *UnifiedContainer) Resolve(key string) (interface{}, error) {
	c.mutex.RLock()
	if singleton, exists := c.singletons[key]; exists {
		c.mutex.RUnlock()
		return singleton, nil
	}

	registration, exists := c.components[key]
	c.mutex.RUnlock()

	if !exists {
		return nil, fmt.Errorf("component not registered: %s", key)
	}

	return c.resolveComponent(registration)
}

func (c *UnifiedContainer) resolveComponent(registration *ComponentRegistration) (interface{}, error) {
	registration.mutex.RLock()
	if registration.initialized && registration.instance != nil {
		instance := registration.instance
		registration.mutex.RUnlock()
		return instance, nil
	}
	registration.mutex.RUnlock()

	if registration.mode == Eager {
		return nil, fmt.Errorf("eager component not properly initialized: %s", registration.key)
	}

	return c.initializeLazy(registration)
}

// initializeLazy constructs a lazy component once, under a double-check lock.
// Construction failure surfaces immediately to the caller; no retry.
func (c *UnifiedContainer) initializeLazy(registration *ComponentRegistration) (interface{}, error) {
	registration.mutex.Lock()
	defer registration.mutex.Unlock()

	if registration.initialized && registration.instance != nil {
		return registration.instance, nil
	}

	instance, err := c.callConstructor(registration.constructor)
	if err != nil {
		logger.Debug("Lazy component initialization failed", map[string]interface{}{
			"component": registration.key,
			"error":     err.Error(),
		})
		return nil, fmt.Errorf("failed to initialize lazy component '%s': %w", registration.key, err)
	}

	registration.instance = instance
	registration.initialized = true

	logger.Debug("Lazy component initialized", map[string]interface{}{
		"component": registration.key,
	})
	return instance, nil
}

func (c *UnifiedContainer) callConstructor(constructor interface{}) (interface{}, error) {
	fn := reflect.ValueOf(constructor)
	if fn.Kind() != reflect.Func {
		return nil, fmt.Errorf("constructor must be a function")
	}

	fnType := fn.Type()

	// Handle different constructor signatures
	switch fnType.NumIn() {
	case 0:
		// Simple constructor: func() (Service, error) or func() Service
		results := fn.Call(nil)
		return c.handleConstructorResults(results)

	case 1:
		// Context-aware constructor: func(context.Context) (Service, error)
		if fnType.In(0).String() == "context.Context" {
			ctx := context.Background()
			results := fn.Call([]reflect.Value{reflect.ValueOf(ctx)})
			return c.handleConstructorResults(results)
		}
		fallthrough

	default:
		// DI-aware constructor: func(Container) (Service, error)
		results := fn.Call([]reflect.Value{reflect.ValueOf(c)})
		return c.handleConstructorResults(results)
	}
}

func (c *UnifiedContainer) handleConstructorResults(results []reflect.Value) (interface{}, error) {
	switch len(results) {
	case 1:
		return results[0].Interface(), nil
	case 2:
		instance := results[0].Interface()
		if err := results[1].Interface(); err != nil {
			return nil, err.(error)
		}
		return instance, nil
	default:
		return nil, fmt.Errorf("constructor must return either (instance) or (instance, error)")
	}
}

// Registrations returns info about all registered components for introspection.
func (c *UnifiedContainer) Registrations() []RegistrationInfo {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	result := make([]RegistrationInfo, 0, len(c.components)+len(c.singletons))

	for key, reg := range c.components {
		reg.mutex.RLock()
		result = append(result, RegistrationInfo{
			Key:         key,
			Mode:        reg.mode,
			Initialized: reg.initialized,
		})
		reg.mutex.RUnlock()
	}

	for key := range c.singletons {
		result = append(result, RegistrationInfo{
			Key:         key,
			Mode:        Singleton,
			Initialized: true,
		})
	}

	return result
}

// Close closes all initialized components that implement io.Closer.
func (c *UnifiedContainer) Close() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for _, registration := range c.components {
		if registration.initialized && registration.instance != nil {
			if closer, ok := registration.instance.(interface{ Close() error }); ok {
				closer.Close() //nolint:errcheck // best-effort shutdown
			}
		}
	}

	for _, singleton := range c.singletons {
		if closer, ok := singleton.(interface{ Close() error }); ok {
			closer.Close() //nolint:errcheck // best-effort shutdown
		}
	}

	return nil
}

// InvalidateCache drops the cached instance for a lazy component or removes
// a singleton, so tests can force re-construction.
func (c *UnifiedContainer) InvalidateCache(name string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if registration, exists := c.components[name]; exists {
		registration.mutex.Lock()
		registration.initialized = false
		registration.instance = nil
		registration.mutex.Unlock()
		return nil
	}

	if _, exists := c.singletons[name]; exists {
		delete(c.singletons, name)
		return nil
	}

	return fmt.Errorf("component '%s' not registered", name)
}

// MustResolve resolves a component, panicking on error.
func (c *UnifiedContainer) MustResolve(name string) interface{} {
	instance, err := c.Resolve(name)
	if err != nil {
		panic(err)
	}
	return instance
}
