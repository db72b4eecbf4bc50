// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the HTTP endpoints of the theme service:
// the public stylesheet and preview pages, the published theme API, the
// editor API and the font library.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
)

// maxDocumentBytes bounds JSON request bodies. Snapshots embed fonts as
// data URLs, so this is larger than a plain token document needs.
const maxDocumentBytes = 16 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes {"error": msg} with the given status code.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeCSS writes a stylesheet. A non-empty filename makes it a download.
func writeCSS(w http.ResponseWriter, css, filename string) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	if filename != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(css))
}

// InvalidateFunc drops every cached rendering of a theme. It is called
// after a successful publish.
type InvalidateFunc func(ctx context.Context, themeID string)
