package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store logger in context.
type loggerKey struct{}

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// envPrefix is the prefix of environment overrides, e.g. SAMPLER_OUTPUT_DIR.
const envPrefix = "SAMPLER_"

// Flags whose values are paths relative to the working directory.
var pathFlags = map[string]string{
	"source-dir": "source_dir",
	"output-dir": "output_dir",
}

// Flags that steer loading and are not configuration keys.
var loaderFlags = map[string]bool{
	"config":      true,
	"project-dir": true,
}

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config
)

// configExistsIn returns the config file inside dir, or "".
func configExistsIn(dir string) string {
	for _, name := range configFileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// findProjectRootUpward searches upward from startDir for a sampler config file.
// Returns empty string if not found within maxUpwardSearchLevels.
func findProjectRootUpward(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if configExistsIn(dir) != "" {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// inferProjectRoot determines the project root from CLI flags and filesystem.
// Priority:
//  1. Explicit --project-dir flag
//  2. Directory of an explicit --config file
//  3. Parent of --source-dir when it holds a config file
//  4. Search upward from CWD for sampler.yaml
//  5. Current working directory
func inferProjectRoot(cfgFile string, flags *pflag.FlagSet) string {
	if flags != nil && flags.Lookup("project-dir") != nil && flags.Changed("project-dir") {
		if projectDir, _ := flags.GetString("project-dir"); projectDir != "" {
			return absOrClean(projectDir)
		}
	}

	if cfgFile != "" {
		return filepath.Dir(absOrClean(cfgFile))
	}

	if flags != nil && flags.Lookup("source-dir") != nil && flags.Changed("source-dir") {
		if sourceDir, _ := flags.GetString("source-dir"); sourceDir != "" {
			parent := filepath.Dir(absOrClean(sourceDir))
			if configExistsIn(parent) != "" {
				return parent
			}
		}
	}

	cwd, err := os.Getwd()
	if err != nil || cwd == "" {
		return "."
	}
	if root := findProjectRootUpward(cwd); root != "" {
		return root
	}
	return cwd
}

func absOrClean(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
// Returns the path unchanged if it's empty or already absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// envKey maps SAMPLER_PREVIEW_PORT to preview.port and SAMPLER_OUTPUT_DIR to output_dir.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if rest, ok := strings.CutPrefix(key, "preview_"); ok {
		return "preview." + rest
	}
	return key
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// LoadConfig loads configuration from defaults, the config file, environment
// variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")
	configFileUsed = ""

	projectRoot := inferProjectRoot(cfgFile, flags)

	// Paths given as flags are relative to the working directory, not the
	// project root.
	flagPaths := make(map[string]string)
	if flags != nil {
		for name, key := range pathFlags {
			if flags.Lookup(name) == nil || !flags.Changed(name) {
				continue
			}
			if v, _ := flags.GetString(name); v != "" {
				flagPaths[key] = absOrClean(v)
			}
		}
	}

	// 1. Defaults
	def := Default()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"source_dir":         def.SourceDir,
		"output_dir":         def.OutputDir,
		"suffix":             def.Suffix,
		"declaration_marker": def.DeclarationMarker,
		"input_marker":       def.InputMarker,
		"syntax_check":       def.SyntaxCheck,
		"manifest":           def.Manifest,
		"verbose":            def.Verbose,
		"output":             def.OutputFormat,
		"preview.port":       def.Preview.Port,
		"preview.debounce":   def.Preview.Debounce.String(),
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if cfgFile == "" {
		cfgFile = configExistsIn(projectRoot)
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
		configFileUsed = cfgFile
	}

	// 3. Environment variables
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || loaderFlags[f.Name] {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// 6. Resolve paths against the project root (the anchor pattern)
	cfg.ProjectRoot = projectRoot
	if v, ok := flagPaths["source_dir"]; ok {
		cfg.SourceDir = v
	} else {
		cfg.SourceDir = resolvePathRelativeTo(cfg.SourceDir, projectRoot)
	}
	if v, ok := flagPaths["output_dir"]; ok {
		cfg.OutputDir = v
	} else {
		cfg.OutputDir = resolvePathRelativeTo(cfg.OutputDir, projectRoot)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	currentConfig = &cfg
	return &cfg, nil
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the currently loaded configuration.
func GetCurrentConfig() *Config {
	return currentConfig
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.New(slog.DiscardHandler)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
