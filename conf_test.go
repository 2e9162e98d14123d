package todo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearConfigEnv(t *testing.T) {
	for _, key := range []string{KeyAPIBaseURL, KeyLogLevel, KeyLogPath, KeyTokenDBURL, KeySessionKey, KeyDevMode} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigWritesDefaults(t *testing.T) {
	clearConfigEnv(t)
	confFile := filepath.Join(t.TempDir(), "todo", "todo.conf")

	cfg, err := LoadConfig(confFile)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if _, err := os.Stat(confFile); err != nil {
		t.Fatalf("default conf file not created: %v", err)
	}

	if cfg.APIBaseURL != DefaultAPIBaseURL {
		t.Errorf("APIBaseURL = %q, want %q", cfg.APIBaseURL, DefaultAPIBaseURL)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.TokenDBURL != DefaultTokenDBURL {
		t.Errorf("TokenDBURL = %q, want %q", cfg.TokenDBURL, DefaultTokenDBURL)
	}
	if !strings.HasPrefix(cfg.SessionKey, "ppid-") {
		t.Errorf("SessionKey = %q, want ppid- prefix", cfg.SessionKey)
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	clearConfigEnv(t)
	confFile := filepath.Join(t.TempDir(), "todo.conf")
	content := "TODO_API_BASE_URL=http://file:9000/\nTODO_LOG_LEVEL=INFO\nTODO_SESSION_KEY=from-file\n"
	if err := os.WriteFile(confFile, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(KeyLogLevel, "ERROR")

	cfg, err := LoadConfig(confFile)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.APIBaseURL != "http://file:9000" {
		t.Errorf("APIBaseURL = %q, want trailing slash trimmed file value", cfg.APIBaseURL)
	}
	if cfg.LogLevel != "ERROR" {
		t.Errorf("LogLevel = %q, env should win over file", cfg.LogLevel)
	}
	if cfg.SessionKey != "from-file" {
		t.Errorf("SessionKey = %q, want from-file", cfg.SessionKey)
	}
}

func TestLoadConfigDevMode(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv(KeyDevMode, "1")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "todo.conf"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !cfg.DevMode || cfg.LogLevel != "DEBUG" {
		t.Errorf("expected dev mode with DEBUG level, got %+v", cfg)
	}
}
