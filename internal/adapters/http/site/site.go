// Package site serves the embedded student signup page.
package site

import (
	"context"
	"net/http"
)

// IndexPath is where GET / sends browsers.
const IndexPath = "/static/index.html"

// Register attaches the root redirect and the static asset routes to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("GET /{$}", HandleRoot)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(FS())))
}

// HandleRoot redirects to the signup page.
func HandleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, IndexPath, http.StatusTemporaryRedirect)
}
