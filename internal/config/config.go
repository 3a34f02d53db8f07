package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/atomicstack/menagerie/internal/app"
	"github.com/spf13/pflag"
)

// Config captures runtime configuration for the application.
type Config struct {
	App         app.Config
	Logging     Logging
	Diagnostics Diagnostics
	File        string
	Flags       map[string]string
	Args        []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

// Diagnostics holds the inputs of the diagnostics gate.
type Diagnostics struct {
	Requested   bool
	Environment string
	Addr        string
}

// Enabled reports whether the diagnostic surface may be exposed: it must be
// requested and the environment must not be production.
func (d Diagnostics) Enabled() bool {
	return d.Requested && d.Environment != EnvProduction
}

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DefaultDiagnosticsAddr = "127.0.0.1:6061"
	DefaultImageWidth      = 32
)

// ErrDiagnosticsInProduction is returned by Validate when diagnostics are
// requested in a production environment.
var ErrDiagnosticsInProduction = errors.New("diagnostics cannot be enabled in production")

const (
	envConfigFile      = "MENAGERIE_CONFIG"
	envCatalogue       = "MENAGERIE_CATALOGUE"
	envWidth           = "MENAGERIE_WIDTH"
	envHeight          = "MENAGERIE_HEIGHT"
	envShowFooter      = "MENAGERIE_FOOTER"
	envImages          = "MENAGERIE_IMAGES"
	envImageWidth      = "MENAGERIE_IMAGE_WIDTH"
	envCacheDir        = "MENAGERIE_CACHE_DIR"
	envTrace           = "MENAGERIE_TRACE"
	envLogFile         = "MENAGERIE_LOG_FILE"
	envEnvironment     = "MENAGERIE_ENV"
	envDiagnostics     = "MENAGERIE_DIAGNOSTICS"
	envDiagnosticsAddr = "MENAGERIE_DIAGNOSTICS_ADDR"
)

// settings is the flat form shared by the config file, the environment and
// the flags.
type settings struct {
	Catalogue       string `toml:"catalogue"`
	Width           int    `toml:"width"`
	Height          int    `toml:"height"`
	Footer          bool   `toml:"footer"`
	Images          bool   `toml:"images"`
	ImageWidth      int    `toml:"image_width"`
	CacheDir        string `toml:"cache_dir"`
	Trace           bool   `toml:"trace"`
	LogFile         string `toml:"log_file"`
	Environment     string `toml:"environment"`
	Diagnostics     bool   `toml:"diagnostics"`
	DiagnosticsAddr string `toml:"diagnostics_addr"`
}

func defaults(env map[string]string) settings {
	return settings{
		ImageWidth:      DefaultImageWidth,
		CacheDir:        defaultCacheDir(env),
		Environment:     EnvProduction,
		DiagnosticsAddr: DefaultDiagnosticsAddr,
	}
}

// RegisterFlags declares every configuration flag on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := defaults(nil)
	fs.String("config", "", "path to a TOML config file")
	fs.String("catalogue", d.Catalogue, "catalogue location: file path, http(s) URL, or empty for the bundled data")
	fs.Int("width", d.Width, "desired viewport width in cells (0 uses terminal width)")
	fs.Int("height", d.Height, "desired viewport height in rows (0 uses terminal height)")
	fs.Bool("footer", d.Footer, "show the key help footer")
	fs.Bool("images", d.Images, "render animal artwork in the detail panel")
	fs.Int("image-width", d.ImageWidth, "artwork width in cells")
	fs.String("cache-dir", "", "artwork cache directory")
	fs.Bool("trace", d.Trace, "enable verbose JSON trace logging")
	fs.String("log-file", d.LogFile, "path to the log file")
	fs.String("environment", d.Environment, "runtime environment (development|production)")
	fs.Bool("diagnostics", d.Diagnostics, "expose the diagnostics HTTP surface (development only)")
	fs.String("diagnostics-addr", d.DiagnosticsAddr, "listen address for the diagnostics surface")
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("menagerie", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return FromFlags(fs, environ)
}

// FromFlags resolves configuration from an already parsed flag set. Values
// apply in order: defaults, config file, environment, then flags the user
// set explicitly.
func FromFlags(fs *pflag.FlagSet, environ []string) (Config, error) {
	env := parseEnv(environ)
	s := defaults(env)

	path, explicit := configPath(fs, env)
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &s); err != nil {
				return Config{}, fmt.Errorf("decode config file %s: %w", path, err)
			}
		} else if explicit {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	applyEnv(&s, env)
	if err := applyFlags(&s, fs); err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			Catalogue:       s.Catalogue,
			Width:           s.Width,
			Height:          s.Height,
			ShowFooter:      s.Footer,
			Images:          s.Images,
			ImageWidth:      s.ImageWidth,
			CacheDir:        s.CacheDir,
			Environment:     s.Environment,
			DiagnosticsAddr: s.DiagnosticsAddr,
		},
		Logging: Logging{
			FilePath: s.LogFile,
			Trace:    s.Trace,
		},
		Diagnostics: Diagnostics{
			Requested:   s.Diagnostics,
			Environment: s.Environment,
			Addr:        s.DiagnosticsAddr,
		},
		File: path,
		Flags: map[string]string{
			"catalogue":       s.Catalogue,
			"width":           strconv.Itoa(s.Width),
			"height":          strconv.Itoa(s.Height),
			"footer":          strconv.FormatBool(s.Footer),
			"images":          strconv.FormatBool(s.Images),
			"imageWidth":      strconv.Itoa(s.ImageWidth),
			"cacheDir":        s.CacheDir,
			"trace":           strconv.FormatBool(s.Trace),
			"logFile":         s.LogFile,
			"environment":     s.Environment,
			"diagnostics":     strconv.FormatBool(s.Diagnostics),
			"diagnosticsAddr": s.DiagnosticsAddr,
		},
		Args: append([]string(nil), fs.Args()...),
	}
	cfg.App.Diagnostics = cfg.Diagnostics.Enabled()
	return cfg, nil
}

func configPath(fs *pflag.FlagSet, env map[string]string) (string, bool) {
	if f := fs.Lookup("config"); f != nil && f.Changed {
		return f.Value.String(), true
	}
	if v := strings.TrimSpace(env[envConfigFile]); v != "" {
		return v, true
	}
	if dir := xdgDir(env, "XDG_CONFIG_HOME", ".config"); dir != "" {
		return filepath.Join(dir, "menagerie", "config.toml"), false
	}
	return "", false
}

func defaultCacheDir(env map[string]string) string {
	if dir := xdgDir(env, "XDG_CACHE_HOME", ".cache"); dir != "" {
		return filepath.Join(dir, "menagerie")
	}
	return ""
}

func xdgDir(env map[string]string, key, fallback string) string {
	if v := env[key]; v != "" {
		return v
	}
	if home := env["HOME"]; home != "" {
		return filepath.Join(home, fallback)
	}
	return ""
}

func applyEnv(s *settings, env map[string]string) {
	s.Catalogue = envOrDefault(env, envCatalogue, s.Catalogue)
	s.Width = envOrInt(env, envWidth, s.Width)
	s.Height = envOrInt(env, envHeight, s.Height)
	s.Footer = envOrBool(env, envShowFooter, s.Footer)
	s.Images = envOrBool(env, envImages, s.Images)
	s.ImageWidth = envOrInt(env, envImageWidth, s.ImageWidth)
	s.CacheDir = envOrDefault(env, envCacheDir, s.CacheDir)
	s.Trace = envOrBool(env, envTrace, s.Trace)
	s.LogFile = envOrDefault(env, envLogFile, s.LogFile)
	s.Environment = envOrDefault(env, envEnvironment, s.Environment)
	s.Diagnostics = envOrBool(env, envDiagnostics, s.Diagnostics)
	s.DiagnosticsAddr = envOrDefault(env, envDiagnosticsAddr, s.DiagnosticsAddr)
}

func applyFlags(s *settings, fs *pflag.FlagSet) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "catalogue":
			s.Catalogue, err = fs.GetString(f.Name)
		case "width":
			s.Width, err = fs.GetInt(f.Name)
		case "height":
			s.Height, err = fs.GetInt(f.Name)
		case "footer":
			s.Footer, err = fs.GetBool(f.Name)
		case "images":
			s.Images, err = fs.GetBool(f.Name)
		case "image-width":
			s.ImageWidth, err = fs.GetInt(f.Name)
		case "cache-dir":
			s.CacheDir, err = fs.GetString(f.Name)
		case "trace":
			s.Trace, err = fs.GetBool(f.Name)
		case "log-file":
			s.LogFile, err = fs.GetString(f.Name)
		case "environment":
			s.Environment, err = fs.GetString(f.Name)
		case "diagnostics":
			s.Diagnostics, err = fs.GetBool(f.Name)
		case "diagnostics-addr":
			s.DiagnosticsAddr, err = fs.GetString(f.Name)
		}
	})
	if err != nil {
		return fmt.Errorf("read flags: %w", err)
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

// Validate ensures the resolved configuration is usable.
func Validate(cfg Config) error {
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	if cfg.App.Images && cfg.App.ImageWidth <= 0 {
		return fmt.Errorf("image-width must be > 0 when images are enabled (got %d)", cfg.App.ImageWidth)
	}
	switch cfg.Diagnostics.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("unknown environment %q (want %s or %s)", cfg.Diagnostics.Environment, EnvDevelopment, EnvProduction)
	}
	if cfg.Diagnostics.Requested {
		if cfg.Diagnostics.Environment == EnvProduction {
			return ErrDiagnosticsInProduction
		}
		if strings.TrimSpace(cfg.Diagnostics.Addr) == "" {
			return errors.New("diagnostics-addr must not be empty")
		}
	}
	return nil
}
