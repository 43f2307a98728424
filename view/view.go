package view

import (
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/diewo77/go-contracts/auth"
	"github.com/diewo77/go-contracts/i18n"
)

var (
	baseDir  string
	once     sync.Once
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}
	assetManifest     map[string]string
	assetManifestOnce sync.Once
)

// layoutBase walks upward from a template path to find the directory that contains layout.html.
// If none is found, it returns the template's own directory.
func layoutBase(mainPath string) string {
	d := filepath.Dir(mainPath)
	for {
		lp := filepath.Join(d, "layout.html")
		if fi, err := os.Stat(lp); err == nil && !fi.IsDir() {
			return d
		}
		p := filepath.Dir(d)
		if p == d { // reached filesystem root
			return filepath.Dir(mainPath)
		}
		d = p
	}
}

func detectBase() {
	candidates := []string{"templates", "../templates", "../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	baseDir = "templates"
}

// Funcs returns the standard func map including i18n and simple helpers.
func Funcs(r *http.Request) template.FuncMap {
	return template.FuncMap{
		"t":       i18n.T,
		"lang":    func() string { return i18n.Locale },
		"isAdmin": func() bool { return auth.IsAdmin(r.Context()) },
		"year":    func() int { return time.Now().Year() },
		"asset":   func(path string) string { return resolveAsset(path) },
		"euro":    func(v int) string { return fmt.Sprintf("%d €", v) },
		"date":    i18n.DateTime,
		"add":     func(a, b int) int { return a + b },
		// dict creates a map from key-value pairs for passing to sub-templates.
		// Usage: {{ template "partial" (dict "Key1" val1 "Key2" val2) }}
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			m := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				m[key] = values[i+1]
			}
			return m
		},
	}
}

// versionedAsset returns /static/<name>?v=<hash> for cache busting.
func versionedAsset(rel string) string {
	p := filepath.Join("static", rel)
	b, err := os.ReadFile(p)
	if err != nil {
		return "/static/" + rel
	}
	h := sha1.Sum(b)
	return "/static/" + rel + "?v=" + fmt.Sprintf("%x", h[:8])
}

// resolveAsset prefers a hashed filename from manifest.json then falls back to query param versioning.
func resolveAsset(rel string) string {
	if os.Getenv("DEV") == "1" {
		parseManifest() // reload each request in dev
	} else {
		assetManifestOnce.Do(parseManifest)
	}
	if assetManifest != nil {
		if h, ok := assetManifest[rel]; ok {
			return "/static/" + h
		}
	}
	return versionedAsset(rel)
}

func parseManifest() {
	b, err := os.ReadFile(filepath.Join("static", "manifest.json"))
	if err != nil {
		return
	}
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		return
	}
	assetManifest = m
}

// SetBaseDir overrides the template base directory (useful for tests or custom setups).
func SetBaseDir(path string) {
	if path == "" {
		return
	}
	baseDir = filepath.Clean(path)
	once = sync.Once{}
}

// ResetForTests clears caches and forces base dir detection to rerun.
func ResetForTests() {
	tplCache.Lock()
	tplCache.m = map[string]*template.Template{}
	tplCache.Unlock()
	baseDir = ""
	once = sync.Once{}
}

// Render executes a template with status 200.
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	return RenderStatus(w, r, http.StatusOK, name, data)
}

// RenderStatus parses (or reuses) a template wrapped in layout.html and
// executes it into a buffer, so a failing template never sends a partial page.
// name is relative to the templates root (e.g., "wizard/identity.html").
func RenderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) error {
	t, err := lookup(r, name)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return err
	}
	// Ensure data map exists and inject common defaults to avoid template errors.
	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["Year"]; !exists {
		data["Year"] = time.Now().Year()
	}
	if _, exists := data["IsAdmin"]; !exists {
		data["IsAdmin"] = auth.IsAdmin(r.Context())
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}

func lookup(r *http.Request, name string) (*template.Template, error) {
	if baseDir == "" {
		once.Do(detectBase)
	}
	devMode := os.Getenv("DEV") == "1"
	if !devMode {
		tplCache.RLock()
		t, ok := tplCache.m[name]
		tplCache.RUnlock()
		if ok && t != nil {
			return rebind(t, r)
		}
	}

	mainPath := filepath.Join(baseDir, name)
	if _, err := os.Stat(mainPath); err != nil {
		// Attempt dynamic fallback search across relative parent levels
		candidates := []string{
			filepath.Join("templates", name),
			filepath.Join("../templates", name),
			filepath.Join("../../templates", name),
			filepath.Join("../../../templates", name),
		}
		for _, c := range candidates {
			if fi, e2 := os.Stat(c); e2 == nil && !fi.IsDir() {
				mainPath = c
				break
			}
		}
		if _, err2 := os.Stat(mainPath); err2 != nil {
			return nil, err
		}
	}
	// The directory owning layout.html is the templates root.
	base := layoutBase(mainPath)
	layoutPath := filepath.Join(base, "layout.html")
	partials, _ := filepath.Glob(filepath.Join(base, "partials", "*.html"))

	files := []string{mainPath}
	if fi, err := os.Stat(layoutPath); err == nil && !fi.IsDir() {
		files = append([]string{layoutPath}, append(files, partials...)...)
	}
	// Template funcs close over the request; rebind swaps them per execution.
	t, err := template.New(filepath.Base(files[0])).Funcs(Funcs(r)).ParseFiles(files...)
	if err != nil {
		return nil, err
	}
	if !devMode {
		tplCache.Lock()
		tplCache.m[name] = t
		tplCache.Unlock()
	}
	return rebind(t, r)
}

// rebind clones a cached template so request-scoped funcs see the current request.
func rebind(t *template.Template, r *http.Request) (*template.Template, error) {
	c, err := t.Clone()
	if err != nil {
		return nil, err
	}
	return c.Funcs(Funcs(r)), nil
}
