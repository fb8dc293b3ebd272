// Package static holds the stylesheet and the page script served under /static/.
package static

import (
	"embed"
	"io/fs"
)

//go:embed app.css app.js
var files embed.FS

func FS() fs.FS { return files }
