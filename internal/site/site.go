// Package site serves the municipal site pages and static assets.
package site

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/alcaldia-cabimas/cabimas-web/pkg/config"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/logger"
	"go.uber.org/fx"
)

const (
	pagesDir        = "Pages"
	msgPageNotFound = "Página no encontrada"
)

// Routes maps clean URLs to page files under Pages/.
var Routes = map[string]string{
	"/{$}":       "home.html",
	"/home":      "home.html",
	"/aboutus":   "aboutus.html",
	"/services":  "services.html",
	"/news":      "news.html",
	"/officials": "officials.html",
	"/history":   "history.html",
	"/gazette":   "gazette.html",
}

// StaticDirs are served verbatim from the static root.
var StaticDirs = []string{"Assets", "Styles", "js"}

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type Site struct {
	fsys   fs.FS
	logger logger.Logger
}

func New(opts Opts) *Site {
	return NewWithFS(os.DirFS(opts.Config.App.StaticDir), opts.Logger)
}

func NewWithFS(fsys fs.FS, log logger.Logger) *Site {
	return &Site{
		fsys:   fsys,
		logger: log.WithComponent("Site"),
	}
}

// Register adds the page and static routes to mux.
func (s *Site) Register(mux *http.ServeMux) {
	for pattern, file := range Routes {
		mux.HandleFunc("GET "+pattern, s.page(file))
	}
	for _, dir := range StaticDirs {
		sub, err := fs.Sub(s.fsys, dir)
		if err != nil {
			s.logger.Warn("Static directory unavailable", "dir", dir, "error", err)
			continue
		}
		prefix := "/" + dir + "/"
		mux.Handle("GET "+prefix, http.StripPrefix(prefix, http.FileServerFS(sub)))
	}
	mux.HandleFunc("GET /{file}", s.htmlFile)
}

func (s *Site) page(file string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.serve(w, r, file)
	}
}

// htmlFile serves /{name}.html from Pages/, answering 404 for anything else.
func (s *Site) htmlFile(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	if !strings.HasSuffix(file, ".html") || strings.HasPrefix(file, ".") {
		notFound(w)
		return
	}
	s.serve(w, r, file)
}

func (s *Site) serve(w http.ResponseWriter, r *http.Request, file string) {
	name := path.Join(pagesDir, file)
	info, err := fs.Stat(s.fsys, name)
	if err != nil || info.IsDir() {
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.logger.Error("Failed to stat page", "page", name, "error", err)
		}
		notFound(w)
		return
	}
	http.ServeFileFS(w, r, s.fsys, name)
}

func notFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(msgPageNotFound))
}
