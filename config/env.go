package config

import (
	"os"
	"strings"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment reads CI=true first, then ENV. Unknown values mean development.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}

	switch env := Environment(strings.ToLower(strings.TrimSpace(os.Getenv("ENV")))); env {
	case Production, Test, CI:
		return env
	default:
		return Development
	}
}

func IsDevelopment() bool {
	return GetEnvironment() == Development
}

func IsProduction() bool {
	return GetEnvironment() == Production
}
