package config

import (
	"github.com/caarlos0/env/v11"
)

// envPrefix namespaces every server environment variable.
const envPrefix = "SIGNALWARS_"

// parseEnv overlays Config fields from environment variables. Variables that
// are not set leave the current value untouched.
func parseEnv(cfg *Config) {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		panic(err)
	}
}
