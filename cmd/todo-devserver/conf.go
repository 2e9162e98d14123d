package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/benjamonnguyen/todo/internal/fakeapi"
	"github.com/joho/godotenv"
)

const (
	KeyPort     = "TODO_DEVSERVER_PORT"
	KeySecret   = "TODO_DEVSERVER_SECRET"
	KeyTokenTTL = "TODO_DEVSERVER_TOKEN_TTL"
	KeyLogLevel = "TODO_DEVSERVER_LOG_LEVEL"
)

type Config struct {
	Port     int
	Secret   string
	TokenTTL time.Duration
	LogLevel string
}

// LoadConf reads the dotenv-format src if it exists; environment variables
// take precedence over it.
func LoadConf(src string) (Config, error) {
	values := map[string]string{}
	if src != "" {
		var err error
		values, err = godotenv.Read(src)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to read conf file %s: %w", src, err)
		}
	}
	get := func(key, def string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		if v := values[key]; v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Secret:   get(KeySecret, ""),
		LogLevel: get(KeyLogLevel, "INFO"),
	}
	if cfg.Secret == "" {
		return Config{}, fmt.Errorf("%s is required", KeySecret)
	}

	port, err := strconv.Atoi(get(KeyPort, "8000"))
	if err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid %s: %q", KeyPort, get(KeyPort, ""))
	}
	cfg.Port = port

	cfg.TokenTTL, err = time.ParseDuration(get(KeyTokenTTL, fakeapi.DefaultTokenTTL.String()))
	if err != nil || cfg.TokenTTL <= 0 {
		return Config{}, fmt.Errorf("invalid %s: %q", KeyTokenTTL, get(KeyTokenTTL, ""))
	}
	return cfg, nil
}
