package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
)

const (
	defaultAPIURL  = "https://jsonplaceholder.typicode.com"
	defaultRetries = 2
	defaultTimeout = 10 * time.Second
)

// Config holds application-level configuration.
type Config struct {
	APIURL      string        // e.g. "https://jsonplaceholder.typicode.com"
	Token       string        // Inline bearer token, optional
	TokenPath   string        // File holding a bearer token, optional
	Retries     int           // GET retries on transport errors and 5xx
	Timeout     time.Duration // Per-request timeout
	LogFile     string
	LogLevel    log.Level
	UIStatePath string
}

// fileConfig mirrors the optional TOML file. Empty values fall through to
// the defaults.
type fileConfig struct {
	APIURL    string `toml:"api_url"`
	Token     string `toml:"token"`
	TokenPath string `toml:"token_path"`
	Retries   *int   `toml:"retries"`
	Timeout   string `toml:"timeout"`
	LogFile   string `toml:"log_file"`
	LogLevel  string `toml:"log_level"`
}

// Load reads the optional config file, then environment variables, which
// take precedence.
//
//	POSTBOARD_CONFIG    : TOML file (default: ~/.config/postboard/config.toml)
//	POSTBOARD_API_URL   : API base URL (default: JSONPlaceholder)
//	POSTBOARD_TOKEN     : bearer token
//	POSTBOARD_TOKEN_FILE: path to a bearer token file
//	POSTBOARD_RETRIES   : GET retries (default: 2)
//	POSTBOARD_TIMEOUT   : request timeout (default: 10s)
//	POSTBOARD_LOG_FILE  : log destination (default: ~/.local/state/postboard/postboard.log)
//	POSTBOARD_LOG_LEVEL : logrus level (default: info)
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
	}

	path := os.Getenv("POSTBOARD_CONFIG")
	if path == "" {
		path = filepath.Join(home, ".config", "postboard", "config.toml")
	}
	fc, err := readFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Token:       firstNonEmpty(os.Getenv("POSTBOARD_TOKEN"), fc.Token),
		TokenPath:   firstNonEmpty(os.Getenv("POSTBOARD_TOKEN_FILE"), fc.TokenPath),
		LogFile:     firstNonEmpty(os.Getenv("POSTBOARD_LOG_FILE"), fc.LogFile, filepath.Join(home, ".local", "state", "postboard", "postboard.log")),
		UIStatePath: filepath.Join(home, ".config", "postboard", "ui_state.json"),
	}

	cfg.APIURL, err = normalizeAPIURL(firstNonEmpty(os.Getenv("POSTBOARD_API_URL"), fc.APIURL, defaultAPIURL))
	if err != nil {
		return Config{}, err
	}

	cfg.Retries = defaultRetries
	if fc.Retries != nil {
		cfg.Retries = *fc.Retries
	}
	if raw := os.Getenv("POSTBOARD_RETRIES"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid POSTBOARD_RETRIES: %w", err)
		}
		cfg.Retries = n
	}
	if cfg.Retries < 0 {
		return Config{}, fmt.Errorf("invalid retries: must not be negative")
	}

	cfg.Timeout = defaultTimeout
	if raw := firstNonEmpty(os.Getenv("POSTBOARD_TIMEOUT"), fc.Timeout); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid timeout %q: must be a positive duration", raw)
		}
		cfg.Timeout = d
	}

	cfg.LogLevel, err = log.ParseLevel(firstNonEmpty(os.Getenv("POSTBOARD_LOG_LEVEL"), fc.LogLevel, "info"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid log level: %w", err)
	}

	return cfg, nil
}

func readFile(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fc, nil
	}
	if err != nil {
		return fc, fmt.Errorf("reading config file: %w", err)
	}
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return fc, nil
}

// normalizeAPIURL checks for an absolute http(s) URL and trims the
// trailing slash.
func normalizeAPIURL(raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid API URL %q: must be an absolute URL", raw)
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return "", fmt.Errorf("invalid API URL %q: only http and https are allowed", raw)
	}
	return strings.TrimRight(parsed.String(), "/"), nil
}

// WithAPIURL overrides the API URL, e.g. from a command-line flag.
func (c Config) WithAPIURL(raw string) (Config, error) {
	u, err := normalizeAPIURL(raw)
	if err != nil {
		return c, err
	}
	c.APIURL = u
	return c, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
