// Package templates provides embedded configuration and page templates.
package templates

import _ "embed"

// ConfigYAML contains the default config.yaml template for application configuration.
//
//go:embed config.yaml
var ConfigYAML string

// PageHTML contains "head" and "foot" templates of the HTML page that
// wraps a rendered tree.
//
//go:embed page.html
var PageHTML string
