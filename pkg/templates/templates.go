// Package templates provides embedded YAML templates and data files.
package templates

import _ "embed"

// CompanionsYAML contains companion plant rules keyed by family.
//
//go:embed companions.yaml
var CompanionsYAML string

// ConfigYAML contains the default config.yaml template for application configuration.
//
//go:embed config.yaml
var ConfigYAML string
