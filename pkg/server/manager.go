package server

import (
	"context"
	"fmt"
	"sync"

	"hello-actions/internal/config"
)

// Manager keeps one container alive across warm Lambda invocations
type Manager struct {
	container *Container
	mu        sync.RWMutex
	load      func() (*config.Config, error)
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// GetManager returns the process-wide manager, loading configuration for the
// current deployment mode on first use.
func GetManager() *Manager {
	managerOnce.Do(func() {
		globalManager = NewManager(config.GetOptimizedConfig)
	})
	return globalManager
}

// NewManager creates a manager that builds its container from load
func NewManager(load func() (*config.Config, error)) *Manager {
	return &Manager{load: load}
}

// GetContainer returns the container, building it on first use
func (m *Manager) GetContainer(ctx context.Context) (*Container, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	container := m.container
	m.mu.RUnlock()
	if container != nil {
		return container, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.container != nil {
		return m.container, nil
	}

	cfg, err := m.load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	container, err = NewContainer(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize container: %w", err)
	}

	m.container = container
	return container, nil
}

// Cleanup closes the container; the next GetContainer builds a fresh one
func (m *Manager) Cleanup() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.container != nil {
		if err := m.container.Close(); err != nil {
			return err
		}
		m.container.Logger.Info("Container closed")
		m.container = nil
	}

	return nil
}

// Shutdown is the Lambda SIGTERM callback: it releases the container and logs failures
func (m *Manager) Shutdown() {
	m.mu.RLock()
	container := m.container
	m.mu.RUnlock()

	if err := m.Cleanup(); err != nil && container != nil {
		container.Logger.WithField("error", err.Error()).Error("Failed to close container")
	}
}
