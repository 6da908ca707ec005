// Showshelf - Streaming Catalog Cleaning, Enrichment, and Recommendations
// Copyright 2026 Showshelf Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showshelf/showshelf

package api

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"
)

//go:embed static
var staticFiles embed.FS

// serveStaticOrIndex serves the embedded UI, falling back to index.html
// for unknown routes.
func (router *Router) serveStaticOrIndex(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/")
	if path == "" {
		path = "index.html"
	}

	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		http.Error(w, "static assets unavailable", http.StatusInternalServerError)
		return
	}

	if _, err := fs.Stat(sub, path); err != nil {
		path = "index.html"
	}

	if path == "index.html" {
		w.Header().Set("Cache-Control", "public, max-age=300")
	} else if strings.HasSuffix(path, ".js") || strings.HasSuffix(path, ".css") {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	}

	r.URL.Path = "/" + path
	http.FileServerFS(sub).ServeHTTP(w, r)
}
