// Package config provides configuration management for the sampler CLI.
package config

import "time"

// Config holds all CLI configuration options.
type Config struct {
	SourceDir         string        `koanf:"source_dir"`
	OutputDir         string        `koanf:"output_dir"`
	Suffix            string        `koanf:"suffix"`
	DeclarationMarker string        `koanf:"declaration_marker"`
	InputMarker       string        `koanf:"input_marker"`
	SyntaxCheck       bool          `koanf:"syntax_check"`
	Manifest          bool          `koanf:"manifest"`
	Verbose           bool          `koanf:"verbose"`
	OutputFormat      string        `koanf:"output"`
	Preview           PreviewConfig `koanf:"preview"`

	// ProjectRoot is the directory relative paths were resolved against.
	ProjectRoot string `koanf:"-"`
}

// PreviewConfig holds configuration for the watch/preview server.
type PreviewConfig struct {
	Port     int           `koanf:"port"`
	Debounce time.Duration `koanf:"debounce"`
}

// Default configuration values
const (
	DefaultSourceDir         = "src"
	DefaultOutputDir         = "src/examples"
	DefaultSuffix            = ".component.ts"
	DefaultDeclarationMarker = "Component"
	DefaultInputMarker       = "Input"
	DefaultOutput            = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultPreviewPort       = 8770
	DefaultDebounce          = 100 * time.Millisecond
)

// configFileNames are searched in order in the project root.
var configFileNames = []string{"sampler.yaml", "sampler.yml"}

// Default returns a configuration with every default applied and no
// path resolution.
func Default() *Config {
	return &Config{
		SourceDir:         DefaultSourceDir,
		OutputDir:         DefaultOutputDir,
		Suffix:            DefaultSuffix,
		DeclarationMarker: DefaultDeclarationMarker,
		InputMarker:       DefaultInputMarker,
		SyntaxCheck:       true,
		OutputFormat:      DefaultOutput,
		Preview: PreviewConfig{
			Port:     DefaultPreviewPort,
			Debounce: DefaultDebounce,
		},
	}
}
