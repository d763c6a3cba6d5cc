package server

import (
	"context"
	"errors"
	"sync"
	"testing"

	"hello-actions/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Stage:       "dev",
		Log:         config.LogConfig{Level: "error", Format: "text"},
		Greeting: config.GreetingConfig{
			DefaultName:  config.DefaultName,
			DefaultPlace: config.DefaultPlace,
		},
	}
}

// TestNewContainer verifies that the container can be created successfully
func TestNewContainer(t *testing.T) {
	container, err := NewContainer(testConfig())
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}

	if container.Logger == nil {
		t.Error("Logger is nil")
	}
	if container.Dispatcher == nil {
		t.Error("Dispatcher is nil")
	}
	if container.GreetingService == nil {
		t.Error("GreetingService is nil")
	}
	if container.ConductorHandler == nil {
		t.Error("ConductorHandler is nil")
	}
	if container.GreetingHandler == nil {
		t.Error("GreetingHandler is nil")
	}

	if err := container.Close(); err != nil {
		t.Errorf("Failed to close container: %v", err)
	}
}

// TestNewContainerRejectsBadConfig verifies configuration is validated
func TestNewContainerRejectsBadConfig(t *testing.T) {
	if _, err := NewContainer(nil); err == nil {
		t.Error("Expected error for nil config")
	}

	cfg := testConfig()
	cfg.Log.Format = "xml"
	if _, err := NewContainer(cfg); err == nil {
		t.Error("Expected error for invalid log format")
	}
}

// TestManagerReusesContainer verifies warm invocations share one container
func TestManagerReusesContainer(t *testing.T) {
	loads := 0
	var mu sync.Mutex
	m := NewManager(func() (*config.Config, error) {
		mu.Lock()
		loads++
		mu.Unlock()
		return testConfig(), nil
	})

	var wg sync.WaitGroup
	containers := make([]*Container, 8)
	for i := range containers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := m.GetContainer(context.Background())
			if err != nil {
				t.Errorf("GetContainer failed: %v", err)
				return
			}
			containers[i] = c
		}(i)
	}
	wg.Wait()

	if loads != 1 {
		t.Errorf("Expected configuration to load once, loaded %d times", loads)
	}
	for _, c := range containers {
		if c != containers[0] {
			t.Fatal("Expected every invocation to share the same container")
		}
	}
	if err := m.Cleanup(); err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if m.container != nil {
		t.Error("Cleanup should drop the container")
	}

	again, err := m.GetContainer(context.Background())
	if err != nil {
		t.Fatalf("GetContainer after cleanup failed: %v", err)
	}
	if again == containers[0] {
		t.Error("Expected a fresh container after cleanup")
	}
	if loads != 2 {
		t.Errorf("Expected a second configuration load, got %d", loads)
	}
}

// TestManagerLoadError verifies configuration errors are surfaced
func TestManagerLoadError(t *testing.T) {
	m := NewManager(func() (*config.Config, error) {
		return nil, errors.New("no config")
	})

	if _, err := m.GetContainer(context.Background()); err == nil {
		t.Fatal("Expected an error when configuration fails to load")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.GetContainer(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

// TestManagerShutdown verifies the SIGTERM callback releases the container
func TestManagerShutdown(t *testing.T) {
	m := NewManager(func() (*config.Config, error) { return testConfig(), nil })

	// Nothing built yet
	m.Shutdown()

	if _, err := m.GetContainer(context.Background()); err != nil {
		t.Fatalf("GetContainer failed: %v", err)
	}
	m.Shutdown()

	if m.container != nil {
		t.Error("Shutdown should drop the container")
	}
}
