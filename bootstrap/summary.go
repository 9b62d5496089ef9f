package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/siri1404/OSPSD-Spring-26/component"
	"github.com/siri1404/OSPSD-Spring-26/di"
	"github.com/siri1404/OSPSD-Spring-26/logger"
)

// InfrastructureInfo holds detailed infrastructure component information.
type InfrastructureInfo struct {
	Name    string
	Type    string // e.g. "storage", "config"
	Details string
	Healthy bool
}

// Summary tracks and displays the application bootstrap process.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	infrastructure  []InfrastructureInfo
}

// NewSummary creates a new bootstrap summary tracker.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{
		serviceName:    serviceName,
		version:        version,
		infrastructure: make([]InfrastructureInfo, 0),
	}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// TrackInfrastructure adds an infrastructure component with detailed metadata.
func (s *Summary) TrackInfrastructure(name, componentType, details string, healthy bool) {
	s.infrastructure = append(s.infrastructure, InfrastructureInfo{
		Name:    name,
		Type:    componentType,
		Details: details,
		Healthy: healthy,
	})
}

// DisplaySummary prints the bootstrap summary. Describable components from
// the registry and registrations from the DI container are collected
// automatically alongside anything tracked by hand.
func (s *Summary) DisplaySummary(registry *component.Registry, container di.Container, log *logger.Logger) {
	infra := append([]InfrastructureInfo(nil), s.infrastructure...)

	var health []component.Health
	if registry != nil {
		health = registry.HealthAll(context.Background())
		healthy := make(map[string]bool, len(health))
		for _, h := range health {
			healthy[h.Name] = h.Status == component.StatusHealthy
		}
		for _, c := range registry.All() {
			if d, ok := c.(component.Describable); ok {
				desc := d.Describe()
				name := desc.Name
				if name == "" {
					name = c.Name()
				}
				infra = append(infra, InfrastructureInfo{
					Name:    name,
					Type:    desc.Type,
					Details: desc.Details,
					Healthy: healthy[c.Name()],
				})
			}
		}
	}

	fmt.Printf("\n%s v%s started in %.2fs\n\n",
		s.serviceName, s.version, s.startupDuration.Seconds())

	if len(infra) > 0 {
		fmt.Printf("Infrastructure\n")
		for i, inf := range infra {
			fmt.Printf("   %s %s %s: %s\n", treePrefix(i, len(infra)), healthMark(inf.Healthy), inf.Name, inf.Details)
		}
		fmt.Printf("\n")
	}

	if container != nil {
		regs := container.Registrations()
		if len(regs) > 0 {
			fmt.Printf("Dependencies (%d)\n", len(regs))
			for i, r := range regs {
				state := "lazy"
				if r.Initialized {
					state = "initialized"
				}
				fmt.Printf("   %s %s (%s)\n", treePrefix(i, len(regs)), r.Key, state)
			}
			fmt.Printf("\n")
		}
	}

	if len(health) > 0 {
		fmt.Printf("Health\n")
		for i, h := range health {
			msg := ""
			if h.Message != "" {
				msg = " - " + h.Message
			}
			fmt.Printf("   %s %s %s: %s%s\n", treePrefix(i, len(health)),
				healthMark(h.Status == component.StatusHealthy), h.Name,
				strings.ToLower(string(h.Status)), msg)
		}
		fmt.Printf("\n")
	}
}

func treePrefix(i, total int) string {
	if i == total-1 {
		return "└──"
	}
	return "├──"
}

func healthMark(healthy bool) string {
	if healthy {
		return "[ok]"
	}
	return "[!!]"
}
