package config

import (
	"net/url"
	"strings"

	"github.com/gnames/gn"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptSourcePath sets the location of the taxonomic data.
// Runtime-only field - not in ToOptions().
func OptSourcePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Source Path", s) {
			c.Source.Path = s
		}
	}
}

// OptSourceFormat sets the shape of the taxonomic data.
// Valid values: "pairs", "coldp", "sfga".
// Runtime-only field - not in ToOptions().
func OptSourceFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Source.Format", s) {
			c.Source.Format = SourceFormat(s)
		}
	}
}

// OptRenderFormat sets the output format.
// Valid values: "text", "html", "json", "yaml".
// Runtime-only field - not in ToOptions().
func OptRenderFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Render.Format", s) {
			c.Render.Format = RenderFormat(s)
		}
	}
}

// OptRenderOutput sets the output file. Empty string means STDOUT.
// Runtime-only field - not in ToOptions().
func OptRenderOutput(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.Render.Output = s
	}
}

// OptRenderTitle sets the title of HTML output.
// Runtime-only field - not in ToOptions().
func OptRenderTitle(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Render Title", s) {
			c.Render.Title = s
		}
	}
}

// OptRenderWithoutCompression disables collapsing of single-child ranks.
// Runtime-only field - not in ToOptions().
func OptRenderWithoutCompression(b bool) Option {
	return func(c *Config) {
		c.Render.WithoutCompression = b
	}
}

// OptVernacularAPIURL sets the MediaWiki API endpoint for common names.
func OptVernacularAPIURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidURL("Vernacular API URL", s) {
			c.Vernacular.APIURL = s
		}
	}
}

// OptVernacularTimeout sets the limit of one lookup in seconds.
func OptVernacularTimeout(i int) Option {
	return func(c *Config) {
		if isValidInt("Vernacular Timeout", i) {
			c.Vernacular.Timeout = i
		}
	}
}

// OptVernacularUserAgent sets the User-Agent header of lookups.
func OptVernacularUserAgent(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Vernacular User Agent", s) {
			c.Vernacular.UserAgent = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for name parsing.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptWithCanonical sets replacement of names by canonical forms.
// Runtime-only field - not in ToOptions().
func OptWithCanonical(b bool) Option {
	return func(c *Config) {
		c.WithCanonical = b
	}
}

// OptWithoutVernacular disables common name lookups.
// Runtime-only field - not in ToOptions().
func OptWithoutVernacular(b bool) Option {
	return func(c *Config) {
		c.WithoutVernacular = b
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}

func isValidURL(name, s string) bool {
	u, err := url.Parse(s)
	res := err == nil && (u.Scheme == "http" || u.Scheme == "https") &&
		u.Host != ""
	if !res {
		gn.Warn("<em>%s</em> is not a valid URL, ignoring '%s'", name, s)
	}
	return res
}
