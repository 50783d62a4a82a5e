// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package webui serves the embedded browser client. The client keeps a
// queue of selected files, issues one conversion request per file, and
// animates a purely cosmetic progress bar; all real state lives on the
// server.
package webui

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var assets embed.FS

// Handler serves the static client bundle.
func Handler() http.Handler {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err) // embedded tree is fixed at build time
	}
	return http.FileServer(http.FS(sub))
}
