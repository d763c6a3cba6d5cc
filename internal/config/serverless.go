package config

import (
	"os"
	"sync"
)

// ServerlessConfig holds serverless-specific configuration
type ServerlessConfig struct {
	IsLambda     bool
	FunctionName string
	Region       string
	Stage        string
}

// Global serverless configuration
var (
	serverlessConfig *ServerlessConfig
	serverlessOnce   sync.Once
)

// GetServerlessConfig returns the serverless configuration
func GetServerlessConfig() *ServerlessConfig {
	serverlessOnce.Do(func() {
		serverlessConfig = loadServerlessConfig()
	})
	return serverlessConfig
}

func loadServerlessConfig() *ServerlessConfig {
	return &ServerlessConfig{
		IsLambda:     isRunningInLambda(),
		FunctionName: os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
		Region:       os.Getenv("AWS_REGION"),
		Stage:        GetEnv("STAGE", "dev"),
	}
}

// isRunningInLambda detects if the process runs inside AWS Lambda.
// SERVERLESS_MODE overrides the detection for local emulators.
func isRunningInLambda() bool {
	return GetEnvAsBool("SERVERLESS_MODE", os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "")
}

// IsServerlessMode returns true if running in serverless mode
func IsServerlessMode() bool {
	return GetServerlessConfig().IsLambda
}

// GetDeploymentMode returns the current deployment mode
func GetDeploymentMode() string {
	if IsServerlessMode() {
		return "serverless"
	}
	return "local"
}

// AdaptConfigForServerless modifies configuration for serverless deployment
func AdaptConfigForServerless(config *Config, sc *ServerlessConfig) *Config {
	if sc == nil || !sc.IsLambda {
		return config
	}

	// CloudWatch indexes JSON fields
	config.Log.Format = "json"

	if sc.Stage != "" {
		config.Stage = sc.Stage
	}

	return config
}

// GetOptimizedConfig returns configuration optimized for the current deployment mode
func GetOptimizedConfig() (*Config, error) {
	config, err := Load()
	if err != nil {
		return nil, err
	}

	return AdaptConfigForServerless(config, GetServerlessConfig()), nil
}
