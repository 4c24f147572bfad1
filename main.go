package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/CrestNiraj12/postboard/infra/auth"
	"github.com/CrestNiraj12/postboard/infra/config"
	"github.com/CrestNiraj12/postboard/infra/editor"
	"github.com/CrestNiraj12/postboard/infra/jsonapi"
	"github.com/CrestNiraj12/postboard/store"
	"github.com/CrestNiraj12/postboard/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func rootApp() *cli.App {
	return &cli.App{
		Name:  "postboard",
		Usage: "Read and write blog posts from the terminal",
		Description: `postboard loads every post from a JSONPlaceholder-style REST API,
keeps them newest first, and lets you react, filter by author, create,
edit and delete posts.

Settings come from ~/.config/postboard/config.toml and POSTBOARD_*
environment variables; flags override both.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to a TOML config file",
				EnvVars: []string{"POSTBOARD_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "api-url",
				Usage: "base URL of the posts API",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "file to write logs to",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (trace, debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			versionCmd(),
		},
		Action: run,
	}
}

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(ctx *cli.Context) error {
			v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
			fmt.Fprintf(ctx.App.Writer, "postboard %s\ncommit: %s\nbuilt: %s\n", v, c, d)
			return nil
		},
	}
}

func run(ctx *cli.Context) error {
	if path := ctx.String("config"); path != "" {
		os.Setenv("POSTBOARD_CONFIG", path)
	}

	// 1. Load config from file and environment, then apply flags.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	cfg, err = applyFlags(cfg, ctx.String("api-url"), ctx.String("log-file"), ctx.String("log-level"))
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logFile, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	// 2. Build infrastructure.
	logger := log.WithField("component", "postboard")
	client := jsonapi.NewClient(cfg.APIURL, auth.Resolve(cfg.Token, cfg.TokenPath),
		jsonapi.WithRetries(cfg.Retries),
		jsonapi.WithTimeout(cfg.Timeout),
		jsonapi.WithLogger(logger.WithField("component", "jsonapi")),
	)
	posts := store.NewPosts(jsonapi.NewPostService(client),
		store.WithLogger(logger.WithField("component", "store")),
	)

	uiState, err := config.LoadUIState(cfg.UIStatePath)
	if err != nil {
		logger.WithError(err).Warn("Ignoring unreadable UI state")
	}

	// 3. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Posts:     posts,
		Editor:    editor.NewEnvEditor(),
		UIState:   uiState,
		StatePath: cfg.UIStatePath,
		Log:       logger,
	})

	logger.WithFields(log.Fields{
		"api_url": cfg.APIURL,
		"retries": cfg.Retries,
		"timeout": cfg.Timeout,
	}).Info("Starting")

	// 4. Run.
	p := tea.NewProgram(rootModel, tea.WithAltScreen(), tea.WithContext(ctx.Context))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// applyFlags overrides config values with any non-empty flag.
func applyFlags(cfg config.Config, apiURL, logFile, logLevel string) (config.Config, error) {
	var err error
	if apiURL != "" {
		if cfg, err = cfg.WithAPIURL(apiURL); err != nil {
			return cfg, err
		}
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	if logLevel != "" {
		lvl, err := log.ParseLevel(logLevel)
		if err != nil {
			return cfg, fmt.Errorf("invalid log level: %w", err)
		}
		cfg.LogLevel = lvl
	}
	return cfg, nil
}

// setupLogging sends logrus output to the configured file; the terminal
// belongs to the TUI.
func setupLogging(cfg config.Config) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	log.SetOutput(f)
	log.SetLevel(cfg.LogLevel)
	log.SetFormatter(&log.TextFormatter{DisableColors: true, FullTimestamp: true})
	return f, nil
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

func main() {
	if err := rootApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "postboard: %v\n", err)
		os.Exit(1)
	}
}
