package assets

import (
	_ "embed"
)

// DefaultConfigYAML contains the embedded default configuration, including
// the example prompt catalog.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte
