// Package config provides configuration management for gntree.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Vernacular: api_url, timeout, user_agent
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Source.Path, Source.Format
//   - Render.Format, Render.Output, Render.Title, Render.WithoutCompression
//   - WithCanonical, WithoutVernacular
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNTREE_ prefix with underscores for nesting:
//
//	GNTREE_VERNACULAR_API_URL=https://species.wikimedia.org/w/api.php
//	GNTREE_VERNACULAR_TIMEOUT=10
//	GNTREE_LOG_LEVEL=info
//	GNTREE_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete gntree configuration.
type Config struct {
	// Source describes where taxonomic relations come from.
	Source SourceConfig `mapstructure:"source" yaml:"source"`

	// Render contains settings of the tree output.
	Render RenderConfig `mapstructure:"render" yaml:"render"`

	// Vernacular contains settings of the common names lookup service.
	Vernacular VernacularConfig `mapstructure:"vernacular" yaml:"vernacular"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for name parsing.
	// Default value is set accoring to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// WithCanonical replaces scientific names of records and targets
	// with their simple canonical forms.
	WithCanonical bool

	// WithoutVernacular disables common names lookups. Common names
	// from a targets file are still shown.
	WithoutVernacular bool

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// SourceFormat is a shape of taxonomic relations data.
type SourceFormat string

const (
	// PairsFormat is a list of "parent -> child" lines.
	PairsFormat SourceFormat = "pairs"
	// ColDPFormat is a tab-separated NameUsage table of a Catalogue of
	// Life Data Package.
	ColDPFormat SourceFormat = "coldp"
	// SFGAFormat is a Species File Group Archive (SQLite).
	SFGAFormat SourceFormat = "sfga"
)

// SourceConfig describes the input data.
type SourceConfig struct {
	// Path is a file path (or URL for SFGA) of the data.
	Path string `mapstructure:"path" yaml:"path"`

	// Format is one of "pairs", "coldp", "sfga".
	Format SourceFormat `mapstructure:"format" yaml:"format"`
}

// RenderFormat is an output format of a tree.
type RenderFormat string

const (
	TextRender RenderFormat = "text"
	HTMLRender RenderFormat = "html"
	JSONRender RenderFormat = "json"
	YAMLRender RenderFormat = "yaml"
)

// RenderConfig contains output settings.
type RenderConfig struct {
	// Format is one of "text", "html", "json", "yaml".
	Format RenderFormat `mapstructure:"format" yaml:"format"`

	// Output is a file path for the result, empty means STDOUT.
	Output string `mapstructure:"output" yaml:"output"`

	// Title is the title of HTML pages.
	Title string `mapstructure:"title" yaml:"title"`

	// WithoutCompression keeps chains of single-child ranks as separate
	// levels.
	WithoutCompression bool `mapstructure:"without_compression" yaml:"without_compression"`
}

// VernacularConfig contains settings of the common names service.
type VernacularConfig struct {
	// APIURL is the MediaWiki API endpoint.
	APIURL string `mapstructure:"api_url" yaml:"api_url"`

	// Timeout is a limit for one lookup in seconds.
	Timeout int `mapstructure:"timeout" yaml:"timeout"`

	// UserAgent identifies gntree to the service.
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Source: SourceConfig{
			Format: PairsFormat,
		},
		Render: RenderConfig{
			Format: TextRender,
			Title:  "Tree of life",
		},
		Vernacular: VernacularConfig{
			APIURL:    "https://species.wikimedia.org/w/api.php",
			Timeout:   10,
			UserAgent: AppName + " (https://github.com/gnames/gntree)",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}
