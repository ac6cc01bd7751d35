package handler

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static/public
var staticFiles embed.FS

// loginPage is the entry page served at "/" and "/login.html".
const loginPage = "login.html"

// PublicFS returns the embedded static assets rooted at the public directory.
func PublicFS() http.FileSystem {
	sub, err := fs.Sub(staticFiles, "static/public")
	if err != nil {
		// the directory is embedded at build time
		panic(err)
	}
	return http.FS(sub)
}

// RegisterStatic mounts the login page and the /public assets.
func RegisterStatic(r gin.IRoutes) {
	public := PublicFS()
	r.StaticFileFS("/", loginPage, public)
	r.StaticFileFS("/"+loginPage, loginPage, public)
	r.StaticFS("/public", public)
}
