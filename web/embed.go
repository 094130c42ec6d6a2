// Package web embeds the static assets served by the HTTP layer.
package web

import "embed"

//go:embed templates/*.html
var TemplatesFS embed.FS
