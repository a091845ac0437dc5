package update

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

type RuntimeConfig struct {
	DBPath        string `toml:"db_path"`
	LogFile       string `toml:"log_file"`
	LogLevel      string `toml:"log_level"`
	MarkdownStyle string `toml:"markdown_style"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DBPath:        "taskform.db",
		LogFile:       "",
		LogLevel:      "info",
		MarkdownStyle: "dark",
	}
}

// LoadRuntimeConfig layers defaults, the TOML file named by TASKFORM_CONFIG
// and TASKFORM_* environment overrides, in that order.
func LoadRuntimeConfig() (RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()
	if path, ok := getEnvString("TASKFORM_CONFIG"); ok {
		fromFile, err := RuntimeConfigFromFile(path, cfg)
		if err != nil {
			return RuntimeConfig{}, err
		}
		cfg = fromFile
	}
	return RuntimeConfigFromEnv(cfg), nil
}

// RuntimeConfigFromFile overlays the non-empty keys of a TOML file on base.
// A missing file leaves base unchanged.
func RuntimeConfigFromFile(path string, base RuntimeConfig) (RuntimeConfig, error) {
	var fileCfg RuntimeConfig
	if _, err := toml.DecodeFile(path, &fileCfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return base, nil
		}
		return RuntimeConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return overlay(base, fileCfg), nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("TASKFORM_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("TASKFORM_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvString("TASKFORM_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvString("TASKFORM_MARKDOWN_STYLE"); ok {
		cfg.MarkdownStyle = v
	}
	return cfg
}

func overlay(base, top RuntimeConfig) RuntimeConfig {
	out := base
	if s := strings.TrimSpace(top.DBPath); s != "" {
		out.DBPath = s
	}
	if s := strings.TrimSpace(top.LogFile); s != "" {
		out.LogFile = s
	}
	if s := strings.TrimSpace(top.LogLevel); s != "" {
		out.LogLevel = s
	}
	if s := strings.TrimSpace(top.MarkdownStyle); s != "" {
		out.MarkdownStyle = s
	}
	return out
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}
