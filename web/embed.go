// Package web holds embedded static assets and templates for ideaboard.
package web

import "embed"

// TemplateFS contains all HTML templates.
//
//go:embed templates
var TemplateFS embed.FS

// StaticFS contains the board's CSS and JS.
//
//go:embed static
var StaticFS embed.FS
