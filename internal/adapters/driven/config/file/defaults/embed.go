// Package defaults embeds the built-in prompt templates.
package defaults

import "embed"

// FS holds one <name>.txt file per prompt.
//
//go:embed *.txt
var FS embed.FS
