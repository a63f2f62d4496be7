package main

import "os"

// Environment variables recognized by the CLI.
const (
	envAPIKey = "COVERLETTER_API_KEY"
	envConfig = "COVERLETTER_CONFIG"
)

// envConfig holds configuration from environment variables, providing
// CI-friendly overrides without a config file. Flags still win.
type envConfigValues struct {
	APIKey     string
	ConfigPath string
}

func loadEnvConfig() envConfigValues {
	return envConfigValues{
		APIKey:     os.Getenv(envAPIKey),
		ConfigPath: os.Getenv(envConfig),
	}
}
