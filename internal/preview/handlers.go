package preview

import (
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mekor-lib/sampler/internal/examples"
)

// liveReloadScript is appended to served pages.
const liveReloadScript = `<script>
;(function() {
  var es = new EventSource('/__reload');
  es.onmessage = function(e) {
    if (e.data === 'reload') {
      window.location.reload();
    }
  };
})();
</script>
`

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Examples</title>
</head>
<body>
  <h1>Examples</h1>
  <ul>
{{- range .}}
    <li><a href="/{{.}}.html">{{.}}</a></li>
{{- else}}
    <li>No examples generated yet.</li>
{{- end}}
  </ul>
</body>
</html>
`))

// InjectReload inserts the live reload script before the last </body>, or
// appends it when the page has none.
func InjectReload(page []byte) []byte {
	s := string(page)
	idx := strings.LastIndex(s, "</body>")
	if idx < 0 {
		return []byte(s + liveReloadScript)
	}
	return []byte(s[:idx] + liveReloadScript + s[idx:])
}

// exampleNames lists the pages in the output directory.
func (s *Server) exampleNames() ([]string, error) {
	entries, err := os.ReadDir(s.cfg.OutputDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != examples.HTMLExt {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), examples.HTMLExt))
	}
	sort.Strings(names)
	return names, nil
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	names, err := s.exampleNames()
	if err != nil {
		s.logger.Error("failed to list examples", "error", err)
		http.Error(w, "failed to list examples", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	if err := indexTemplate.Execute(w, names); err != nil {
		s.logger.Error("failed to render index", "error", err)
	}
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "file")
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		http.NotFound(w, r)
		return
	}

	var contentType string
	switch filepath.Ext(name) {
	case examples.HTMLExt:
		contentType = "text/html; charset=utf-8"
	case examples.ScriptExt:
		contentType = "text/javascript; charset=utf-8"
	case ".json":
		contentType = "application/json"
	default:
		http.NotFound(w, r)
		return
	}

	data, err := os.ReadFile(filepath.Join(s.cfg.OutputDir, name)) //nolint:gosec // G304: name is a single path element
	if os.IsNotExist(err) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.logger.Error("failed to read example", "file", name, "error", err)
		http.Error(w, "failed to read file", http.StatusInternalServerError)
		return
	}

	if filepath.Ext(name) == examples.HTMLExt {
		data = InjectReload(data)
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	_, _ = w.Write(data)
}

// handleSSE streams reload events.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := s.notifier.Subscribe()
	defer s.notifier.Unsubscribe(ch)

	_, _ = fmt.Fprintf(w, "data: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ch:
			_, _ = fmt.Fprintf(w, "data: reload\n\n")
			flusher.Flush()
		}
	}
}
