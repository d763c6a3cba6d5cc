package server

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"hello-actions/internal/conductor"
	"hello-actions/internal/config"
	"hello-actions/internal/greeting"
	"hello-actions/internal/handlers"
)

// Container holds all action dependencies
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Dispatcher      *conductor.Dispatcher
	GreetingService *greeting.Handler

	ConductorHandler *handlers.ConductorHandler
	GreetingHandler  *handlers.GreetingHandler
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := cfg.NewLogger()

	dispatcher := conductor.NewDispatcher(cfg.Greeting, logger)
	greetingService := greeting.NewHandler(logger)

	container := &Container{
		Config:           cfg,
		Logger:           logger,
		Dispatcher:       dispatcher,
		GreetingService:  greetingService,
		ConductorHandler: handlers.NewConductorHandler(dispatcher),
		GreetingHandler:  handlers.NewGreetingHandler(greetingService, logger),
	}

	sc := config.GetServerlessConfig()
	logger.WithFields(logrus.Fields{
		"environment":     cfg.Environment,
		"stage":           cfg.Stage,
		"deployment_mode": config.GetDeploymentMode(),
		"function_name":   sc.FunctionName,
		"region":          sc.Region,
	}).Info("Container initialized")

	return container, nil
}

// Close releases container resources. The actions hold none today.
func (c *Container) Close() error {
	return nil
}
