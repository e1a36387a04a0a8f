package server

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var assets embed.FS

// StaticFS returns the browser client files served at the root path.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		return http.FS(embed.FS{})
	}
	return http.FS(sub)
}
