// Package web embeds the templates, chart specs, data files and static
// assets served by the site.
package web

import "embed"

//go:embed templates charts data images static
var FS embed.FS
