package cliconfig

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process
// environment. Variables that are already set are left untouched.
func LoadEnvFile(path string) error {
	return godotenv.Load(path)
}

// ApplyEnvConfig applies configuration from environment variables (CURLITE_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("user-agent", os.Getenv(EnvPrefix+"USER_AGENT"), &cfg.UserAgent)
	s.setString("log-level", os.Getenv(EnvPrefix+"LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-file", os.Getenv(EnvPrefix+"LOG_FILE"), &cfg.LogFile)
	s.setStrings("header", splitHeaders(os.Getenv(EnvPrefix+"HEADERS")), &cfg.Headers)

	if err := s.setDuration("timeout", os.Getenv(EnvPrefix+"TIMEOUT"), &cfg.Timeout); err != nil {
		return err
	}

	if err := s.setIntFromString("log-max-size", os.Getenv(EnvPrefix+"LOG_MAX_SIZE_MB"), &cfg.LogMaxSizeMB); err != nil {
		return err
	}
	if err := s.setIntFromString("log-max-backups", os.Getenv(EnvPrefix+"LOG_MAX_BACKUPS"), &cfg.LogMaxBackups); err != nil {
		return err
	}

	s.setBoolFromString("no-color", os.Getenv(EnvPrefix+"NO_COLOR"), &cfg.NoColor)

	return nil
}

// splitHeaders splits CURLITE_HEADERS on newlines; blank lines are dropped.
func splitHeaders(v string) []string {
	var out []string
	for _, line := range strings.Split(v, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
