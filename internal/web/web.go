// Package web sirve el cliente del inventario embebido en el binario.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed static
var staticFiles embed.FS

// RegisterRoutes monta la landing en "/" y los assets en "/static/".
// No se usa un catch-all para que los 404 sigan saliendo del router.
func RegisterRoutes(r chi.Router) {
	assets, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}

	r.Get("/", IndexHandler(assets))
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(assets))))
}

// IndexHandler devuelve index.html.
func IndexHandler(assets fs.FS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := fs.ReadFile(assets, "index.html")
		if err != nil {
			http.Error(w, "index not found", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}
}
