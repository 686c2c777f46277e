// Package data bundles the default todo dataset into the binary.
package data

import _ "embed"

// Todos is the raw JSON array served when no dataset file is configured.
//
//go:embed todos.json
var Todos []byte
