package preview

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/estree/estreegen/pkg/emit"
	"github.com/estree/estreegen/pkg/spec"
	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>estreegen preview</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"></script>
</head>
<body data-init="@get('/events')">
<h1>estreegen preview</h1>
{{if .Error}}<pre class="error">{{.Error}}</pre>{{end}}
<p>{{.Definitions}} definitions, generation {{.Generation}}.</p>
<ul>
{{range .Targets}}<li><a href="/{{.}}">{{.}}</a></li>
{{end}}<li><a href="/api/definitions">definitions (JSON)</a></li>
</ul>
</body>
</html>
`))

type indexData struct {
	Error       string
	Definitions int
	Generation  uint64
	Targets     []string
}

// handleIndex renders the landing page. It reloads itself on every schema
// reload.
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	data := indexData{
		Definitions: len(s.defs),
		Generation:  s.generation,
		Targets:     emit.List(),
	}
	if s.loadErr != nil {
		data.Error = s.loadErr.Error()
	}
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleEvents is the long-lived SSE endpoint. It asks the page to reload
// after every schema reload.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	updates := s.notifier.Subscribe()
	defer s.notifier.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			if err := sse.ExecuteScript("window.location.reload()"); err != nil {
				return
			}
		}
	}
}

// handleTarget renders one emitter at the requested version.
func (s *Server) handleTarget(w http.ResponseWriter, r *http.Request) {
	e, err := emit.Lookup(chi.URLParam(r, "target"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	version, err := s.version(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defs, _, err := s.snapshot()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	out, err := e.Emit(defs, version)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType(e.FileExtension()))
	_, _ = w.Write([]byte(out))
}

// definitionSummary is one row of the definitions listing.
type definitionSummary struct {
	Name    string        `json:"name"`
	Kind    string        `json:"kind"`
	Added   *spec.Version `json:"added,omitempty"`
	Section []string      `json:"section,omitempty"`
}

// handleDefinitions lists the definitions visible at the requested version.
func (s *Server) handleDefinitions(w http.ResponseWriter, r *http.Request) {
	version, err := s.version(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defs, _, err := s.snapshot()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	list := make([]definitionSummary, 0, len(defs))
	for _, d := range spec.Filter(defs, version) {
		section, _ := d.Placement()
		list = append(list, definitionSummary{
			Name:    d.DefName(),
			Kind:    spec.Kind(d),
			Added:   d.DefAdded(),
			Section: section,
		})
	}
	writeJSON(w, http.StatusOK, list)
}

// definitionDetail describes one definition at a version.
type definitionDetail struct {
	Definition spec.Definition   `json:"definition"`
	Ancestors  []string          `json:"ancestors"`
	Properties *spec.PropertySet `json:"properties,omitempty"`
}

// handleDefinition returns a definition with its ancestors and, for
// interfaces, its effective properties.
func (s *Server) handleDefinition(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	version, err := s.version(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defs, idx, err := s.snapshot()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	if _, ok := idx.Get(name); !ok {
		writeError(w, http.StatusNotFound, errors.Newf("no definition named %q", name))
		return
	}

	visible := spec.NewIndex(spec.Filter(defs, version))
	def, ok := visible.Get(name)
	if !ok {
		writeError(w, http.StatusNotFound, errors.Newf("%s is not present at version %d", name, version))
		return
	}

	detail := definitionDetail{
		Definition: def,
		Ancestors:  visible.Ancestors(name, version),
	}
	if detail.Ancestors == nil {
		detail.Ancestors = []string{}
	}
	if _, ok := def.(*spec.Interface); ok {
		props, err := visible.Properties(name, version)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		detail.Properties = props
	}
	writeJSON(w, http.StatusOK, detail)
}

// version reads the version query parameter. It defaults to the server's
// maximum version; "latest" selects every version.
func (s *Server) version(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("version")
	switch raw {
	case "":
		return s.maxVersion, nil
	case "latest":
		return spec.Latest, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, errors.Newf("invalid version %q", raw)
	}
	return v, nil
}

func contentType(ext string) string {
	switch strings.ToLower(ext) {
	case ".json":
		return "application/json; charset=utf-8"
	case ".yaml", ".yml":
		return "application/yaml; charset=utf-8"
	case ".md":
		return "text/markdown; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
