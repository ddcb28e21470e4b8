package utils

import (
	"os"
)

type ServerConfig struct {
	Addr      string
	StaticDir string
}

// LoadServerConfig reads the API server settings from the environment,
// with dev defaults.
func LoadServerConfig() ServerConfig {
	addr := os.Getenv("ROGUEDEX_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	staticDir := os.Getenv("ROGUEDEX_STATIC_DIR")
	if staticDir == "" {
		staticDir = "web"
	}

	return ServerConfig{
		Addr:      addr,
		StaticDir: staticDir,
	}
}
