package storage

import (
	"context"
	"fmt"

	"github.com/siri1404/OSPSD-Spring-26/component"
	"github.com/siri1404/OSPSD-Spring-26/logger"
)

// Component wraps an ObjectClient and implements component.Component for
// lifecycle management.
type Component struct {
	client ObjectClient
	cfg    *Config
	log    *logger.Logger
}

// NewComponent creates a storage component for use with the component registry.
func NewComponent(cfg *Config, log *logger.Logger) *Component {
	return &Component{
		cfg: cfg,
		log: log.WithComponent("storage"),
	}
}

// Client returns the underlying ObjectClient, or nil if not started.
func (c *Component) Client() ObjectClient {
	return c.client
}

// ensure Component satisfies component.Component.
var _ component.Component = (*Component)(nil)

// Name returns the component name.
func (c *Component) Name() string { return "storage" }

// Start initializes the storage backend.
func (c *Component) Start(_ context.Context) error {
	if !c.cfg.Enabled {
		c.log.Info("storage component is disabled")
		return nil
	}

	client, err := New(c.cfg, c.log)
	if err != nil {
		return fmt.Errorf("storage start: %w", err)
	}
	c.client = client
	return nil
}

// Stop gracefully shuts down the storage component.
func (c *Component) Stop(_ context.Context) error {
	c.client = nil
	return nil
}

// Health returns the current health status of the storage component.
func (c *Component) Health(ctx context.Context) component.Health {
	if !c.cfg.Enabled {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusHealthy,
			Message: "disabled",
		}
	}

	if c.client == nil {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: "storage not initialized",
		}
	}

	// Probe with a metadata lookup on a sentinel key. A missing object is
	// fine; only misconfiguration or backend failure is unhealthy.
	if _, err := c.client.Head(ctx, ".health"); err != nil {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: fmt.Sprintf("health probe failed: %v", err),
		}
	}

	return component.Health{
		Name:   c.Name(),
		Status: component.StatusHealthy,
	}
}

// Describe returns infrastructure summary info for the bootstrap display.
func (c *Component) Describe() component.Description {
	details := fmt.Sprintf("provider=%s", c.cfg.Provider)
	if c.cfg.Bucket != "" {
		details += fmt.Sprintf(" bucket=%s", c.cfg.Bucket)
	}
	return component.Description{
		Name:    "Storage",
		Type:    "storage",
		Details: details,
	}
}
