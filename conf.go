package todo

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL string
	LogLevel   string
	LogPath    string
	TokenDBURL string
	SessionKey string
	DevMode    bool
}

const (
	KeyAPIBaseURL = "TODO_API_BASE_URL"
	KeyLogLevel   = "TODO_LOG_LEVEL"
	KeyLogPath    = "TODO_LOG_PATH"
	KeyTokenDBURL = "TODO_TOKEN_DB_URL"
	KeySessionKey = "TODO_SESSION_KEY"
	KeyDevMode    = "TODO_DEV_MODE"
)

const (
	DefaultAPIBaseURL = "http://localhost:8000"
	DefaultLogLevel   = "WARN"
)

var (
	userHome, _    = os.UserHomeDir()
	DefaultLogPath = path.Join(userHome, ".todo", "todo.log")
	// the temp dir does not survive a reboot, which scopes the stored token
	// to the login session
	DefaultTokenDBURL = path.Join(os.TempDir(), "todo-session.db")
)

// DefaultSessionKey identifies the invoking shell so concurrent terminals
// keep separate tokens.
func DefaultSessionKey() string {
	return fmt.Sprintf("ppid-%d", os.Getppid())
}

// DefaultConfFile returns the location of the config file, creating nothing.
func DefaultConfFile() string {
	cfgDir, _ := os.UserConfigDir()
	return path.Join(cfgDir, "todo", "todo.conf")
}

// LoadConfig merges environment, the dotenv-format confFile and defaults, in
// that order of precedence. A default conf file is written if none exists.
func LoadConfig(confFile string) (Config, error) {
	confFromEnv := configFrom(os.Getenv)

	if _, err := os.Stat(confFile); err != nil {
		if err := writeDefaultConf(confFile); err != nil {
			return Config{}, fmt.Errorf("failed to create default conf file: %w", err)
		}
	}
	values, err := godotenv.Read(confFile)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read conf file %s: %w", confFile, err)
	}
	confFromFile := configFrom(func(key string) string {
		return values[key]
	})

	cfg := Config{
		APIBaseURL: coalesce(confFromEnv.APIBaseURL, confFromFile.APIBaseURL, DefaultAPIBaseURL),
		LogLevel:   coalesce(confFromEnv.LogLevel, confFromFile.LogLevel, DefaultLogLevel),
		LogPath:    coalesce(confFromEnv.LogPath, confFromFile.LogPath, DefaultLogPath),
		TokenDBURL: coalesce(confFromEnv.TokenDBURL, confFromFile.TokenDBURL, DefaultTokenDBURL),
		SessionKey: coalesce(confFromEnv.SessionKey, confFromFile.SessionKey, DefaultSessionKey()),
		DevMode:    confFromEnv.DevMode || confFromFile.DevMode,
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	if cfg.DevMode {
		cfg.LogLevel = "DEBUG"
	}

	return cfg, nil
}

func configFrom(get func(string) string) Config {
	return Config{
		APIBaseURL: get(KeyAPIBaseURL),
		LogLevel:   get(KeyLogLevel),
		LogPath:    get(KeyLogPath),
		TokenDBURL: get(KeyTokenDBURL),
		SessionKey: get(KeySessionKey),
		DevMode:    get(KeyDevMode) != "",
	}
}

func writeDefaultConf(confFile string) error {
	if err := os.MkdirAll(path.Dir(confFile), 0o744); err != nil {
		return err
	}
	return godotenv.Write(map[string]string{
		KeyAPIBaseURL: DefaultAPIBaseURL,
		KeyLogLevel:   DefaultLogLevel,
		KeyLogPath:    DefaultLogPath,
	}, confFile)
}

func coalesce(args ...string) string {
	for _, s := range args {
		if s != "" {
			return s
		}
	}
	return ""
}
