// Package flags provides feature flag evaluation backed by environment
// variables. It is the simplest possible ports.FeatureFlags provider;
// swapping in a hosted provider only requires a new adapter.
package flags

import (
	"context"
	"os"
	"strconv"
	"strings"
)

// envPrefix namespaces flag variables: the flag "log-quote-content"
// reads FLAG_LOG_QUOTE_CONTENT.
const envPrefix = "FLAG_"

// Env evaluates feature flags from environment variables.
// Values are read on every evaluation, so tests can toggle flags with
// t.Setenv without rebuilding the evaluator.
type Env struct{}

// NewEnv creates an environment-backed flag evaluator.
func NewEnv() *Env {
	return &Env{}
}

// IsEnabled checks a boolean flag. Unset or unparseable values fall back
// to defaultValue.
func (e *Env) IsEnabled(_ context.Context, flag string, defaultValue bool) bool {
	raw, ok := os.LookupEnv(envName(flag))
	if !ok {
		return defaultValue
	}

	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultValue
	}

	return enabled
}

// GetString retrieves a string flag value.
func (e *Env) GetString(_ context.Context, flag string, defaultValue string) string {
	raw, ok := os.LookupEnv(envName(flag))
	if !ok {
		return defaultValue
	}

	return raw
}

// GetInt retrieves an integer flag value. Unset or unparseable values
// fall back to defaultValue.
func (e *Env) GetInt(_ context.Context, flag string, defaultValue int) int {
	raw, ok := os.LookupEnv(envName(flag))
	if !ok {
		return defaultValue
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}

	return n
}

// envName converts a flag name to its environment variable name.
func envName(flag string) string {
	name := strings.ToUpper(flag)
	name = strings.ReplaceAll(name, "-", "_")
	name = strings.ReplaceAll(name, ".", "_")

	return envPrefix + name
}
