// Package web embeds the static shell served at the root.
package web

import "embed"

//go:embed static
var Files embed.FS
