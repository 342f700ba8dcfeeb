package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// StoreBackend is a custom type to represent which record store
// implementation the server runs against. Selected purely by
// configuration; no other component knows which one is active.
type StoreBackend int

const (
	// BackendMemory is the ephemeral store, cleared on restart.
	BackendMemory StoreBackend = iota
	// BackendFile is the durable JSON-file store.
	BackendFile
	// BackendBolt is the durable BoltDB store.
	BackendBolt
)

type Config struct {
	ServerAddr   string
	StoreBackend StoreBackend
	// backend specific settings
	DataFile string
	BoltPath string
	// http settings
	EnableCORS bool
}

// change here only as it populates both default and env aware configs
var cfgDefaults = map[string]string{
	"SERVER_ADDR":   ":8080",
	"STORE_BACKEND": "file",
	"DATA_FILE":     "guestbook.json",
	"BOLT_PATH":     "guestbook.db",
	"ENABLE_CORS":   "false",
}

// Default returns a configuration object with defaults so tests can
// bypass .env files and env vars.
func Default() *Config {
	// safe to ignore the errors as the defaults are defined by us just above
	defaultBackend, _ := parseStoreBackend(cfgDefaults["STORE_BACKEND"])
	defaultEnableCORS, _ := strconv.ParseBool(cfgDefaults["ENABLE_CORS"])

	return &Config{
		ServerAddr:   cfgDefaults["SERVER_ADDR"],
		StoreBackend: defaultBackend,
		DataFile:     cfgDefaults["DATA_FILE"],
		BoltPath:     cfgDefaults["BOLT_PATH"],
		EnableCORS:   defaultEnableCORS,
	}
}

// Load creates a config by loading values from env vars falling back
// to defaults if these don't exist. A ".env" file is honoured when
// present but its absence is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("could not load .env file: %w", err)
	}

	backendStr := getEnv("STORE_BACKEND", cfgDefaults["STORE_BACKEND"])
	backend, err := parseStoreBackend(backendStr)
	if err != nil {
		return nil, err
	}

	corsStr := getEnv("ENABLE_CORS", cfgDefaults["ENABLE_CORS"])
	enableCORS, err := strconv.ParseBool(corsStr)
	if err != nil {
		return nil, fmt.Errorf(`ENABLE_CORS should be "true" or "false"`)
	}

	cfg := &Config{
		ServerAddr:   getEnv("SERVER_ADDR", cfgDefaults["SERVER_ADDR"]),
		StoreBackend: backend,
		DataFile:     getEnv("DATA_FILE", cfgDefaults["DATA_FILE"]),
		BoltPath:     getEnv("BOLT_PATH", cfgDefaults["BOLT_PATH"]),
		EnableCORS:   enableCORS,
	}
	return cfg, nil
}

func parseStoreBackend(backendStr string) (StoreBackend, error) {
	var backend StoreBackend
	switch strings.ToLower(backendStr) {
	case "memory":
		backend = BackendMemory
	case "file":
		backend = BackendFile
	case "bolt":
		backend = BackendBolt
	default:
		return 0, fmt.Errorf("invalid STORE_BACKEND: '%s'. valid options are 'memory', 'file', 'bolt'", backendStr)
	}

	return backend, nil
}

// getEnv returns the value of an environment var or the default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
