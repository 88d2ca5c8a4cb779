package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/atomicstack/sysctl-control/internal/app"
	"github.com/atomicstack/sysctl-control/internal/sysctl"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	File    string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

// fileConfig mirrors the YAML configuration file. Durations are milliseconds.
type fileConfig struct {
	TickRate       int    `yaml:"tick-rate"`
	MessageTimeout int    `yaml:"message-timeout"`
	Root           string `yaml:"root"`
	Docs           string `yaml:"docs"`
	DocsGlob       string `yaml:"docs-glob"`
	DocsPattern    string `yaml:"docs-pattern"`
	NoDocs         bool   `yaml:"no-docs"`
	Cache          string `yaml:"cache"`
	NoCache        bool   `yaml:"no-cache"`
	Section        string `yaml:"section"`
	Query          string `yaml:"query"`
	NoClipboard    bool   `yaml:"no-clipboard"`
	Footer         bool   `yaml:"footer"`
	Width          int    `yaml:"width"`
	Height         int    `yaml:"height"`
	Trace          bool   `yaml:"trace"`
	LogFile        string `yaml:"log-file"`
}

const (
	envPrefix         = "SYSCTL_CONTROL_"
	envConfig         = envPrefix + "CONFIG"
	envTickRate       = envPrefix + "TICK_RATE"
	envMessageTimeout = envPrefix + "MESSAGE_TIMEOUT"
	envRoot           = envPrefix + "ROOT"
	envDocs           = envPrefix + "DOCS"
	envDocsGlob       = envPrefix + "DOCS_GLOB"
	envDocsPattern    = envPrefix + "DOCS_PATTERN"
	envNoDocs         = envPrefix + "NO_DOCS"
	envCache          = envPrefix + "CACHE"
	envNoCache        = envPrefix + "NO_CACHE"
	envSection        = envPrefix + "SECTION"
	envQuery          = envPrefix + "QUERY"
	envNoClipboard    = envPrefix + "NO_CLIPBOARD"
	envFooter         = envPrefix + "FOOTER"
	envWidth          = envPrefix + "WIDTH"
	envHeight         = envPrefix + "HEIGHT"
	envTrace          = envPrefix + "TRACE"
	envLogFile        = envPrefix + "LOG_FILE"
)

func defaults() fileConfig {
	return fileConfig{
		TickRate:       250,
		MessageTimeout: 2000,
		Root:           sysctl.DefaultRoot,
		DocsGlob:       sysctl.DefaultDocsGlob,
		DocsPattern:    sysctl.DefaultDocsPattern,
	}
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Later layers
// win: defaults, the YAML file, the environment, then flags.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)
	values := defaults()

	file, explicit := configPath(args, env)
	if file != "" {
		if err := readFile(file, &values); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return Config{}, err
			}
			file = ""
		}
	}

	fs := flag.NewFlagSet("sysctl-control", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	fs.String("config", file, "path to a YAML configuration file")
	tickRate := fs.Int("tick-rate", envOrInt(env, envTickRate, values.TickRate), "timer interval in milliseconds")
	messageTimeout := fs.Int("message-timeout", envOrInt(env, envMessageTimeout, values.MessageTimeout), "how long status messages stay visible, in milliseconds")
	root := fs.String("root", envOrDefault(env, envRoot, values.Root), "directory holding the kernel parameters")
	docs := fs.String("docs", envOrDefault(env, envDocs, values.Docs), "kernel documentation directory (empty searches the usual locations)")
	docsGlob := fs.String("docs-glob", envOrDefault(env, envDocsGlob, values.DocsGlob), "glob selecting documentation files")
	docsPattern := fs.String("docs-pattern", envOrDefault(env, envDocsPattern, values.DocsPattern), "regular expression matching documentation headings")
	noDocs := fs.Bool("no-docs", envOrBool(env, envNoDocs, values.NoDocs), "do not load documentation")
	cachePath := fs.String("cache", envOrDefault(env, envCache, values.Cache), "documentation cache database (empty uses the user cache dir)")
	noCache := fs.Bool("no-cache", envOrBool(env, envNoCache, values.NoCache), "parse documentation without the cache")
	section := fs.String("section", envOrDefault(env, envSection, values.Section), "section shown at startup")
	query := fs.String("query", envOrDefault(env, envQuery, values.Query), "initial filter")
	noClipboard := fs.Bool("no-clipboard", envOrBool(env, envNoClipboard, values.NoClipboard), "disable clipboard support")
	footer := fs.Bool("footer", envOrBool(env, envFooter, values.Footer), "enable footer hint row")
	width := fs.Int("width", envOrInt(env, envWidth, values.Width), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, values.Height), "desired viewport height in rows (0 uses terminal height)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, values.Trace), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, values.LogFile), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			Root:           *root,
			DocsPath:       *docs,
			DocsGlob:       *docsGlob,
			DocsPattern:    *docsPattern,
			NoDocs:         *noDocs,
			CachePath:      *cachePath,
			NoCache:        *noCache,
			Width:          *width,
			Height:         *height,
			ShowFooter:     *footer,
			Section:        *section,
			Query:          *query,
			TickRate:       time.Duration(*tickRate) * time.Millisecond,
			MessageTimeout: time.Duration(*messageTimeout) * time.Millisecond,
			Clipboard:      !*noClipboard,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		File: file,
		Flags: map[string]string{
			"tick-rate":       strconv.Itoa(*tickRate),
			"message-timeout": strconv.Itoa(*messageTimeout),
			"root":            *root,
			"docs":            *docs,
			"docs-glob":       *docsGlob,
			"docs-pattern":    *docsPattern,
			"no-docs":         strconv.FormatBool(*noDocs),
			"cache":           *cachePath,
			"no-cache":        strconv.FormatBool(*noCache),
			"section":         *section,
			"query":           *query,
			"no-clipboard":    strconv.FormatBool(*noClipboard),
			"footer":          strconv.FormatBool(*footer),
			"width":           strconv.Itoa(*width),
			"height":          strconv.Itoa(*height),
			"trace":           strconv.FormatBool(*trace),
			"logFile":         *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// configPath finds the configuration file. It reports whether the path was
// asked for explicitly, in which case a missing file is an error.
func configPath(args []string, env map[string]string) (string, bool) {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		name := strings.TrimLeft(arg, "-")
		if name == arg {
			continue
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1], true
		}
		if value, ok := strings.CutPrefix(name, "config="); ok {
			return value, true
		}
	}
	if v := env[envConfig]; v != "" {
		return v, true
	}
	dir := env["XDG_CONFIG_HOME"]
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "sysctl-control", "config.yaml"), false
}

func readFile(path string, into *fileConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, into); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects values the application cannot run with.
func Validate(cfg Config) error {
	if cfg.App.TickRate <= 0 {
		return fmt.Errorf("tick-rate must be > 0 (got %s)", cfg.App.TickRate)
	}
	if cfg.App.MessageTimeout <= 0 {
		return fmt.Errorf("message-timeout must be > 0 (got %s)", cfg.App.MessageTimeout)
	}
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	if strings.TrimSpace(cfg.App.Root) == "" {
		return errors.New("root must not be empty")
	}
	if !cfg.App.NoDocs {
		if _, err := regexp.Compile(cfg.App.DocsPattern); err != nil {
			return fmt.Errorf("docs-pattern: %w", err)
		}
	}
	return nil
}
