// Package emit defines the Emitter interface and the registry of output
// targets. Emitters register themselves from their package init functions;
// import the emitter packages for side effects to make them available:
//
//	import _ "github.com/estree/estreegen/pkg/emit/dts"
package emit

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/estree/estreegen/pkg/spec"
)

// Emitter renders a parsed schema at a maximum version.
type Emitter interface {
	// Name returns the target name used in configuration, e.g. "dts".
	Name() string

	// FileExtension returns the extension of the generated file, with dot.
	FileExtension() string

	// Emit renders defs. It never modifies defs and returns no text on error.
	Emit(defs []spec.Definition, maxVersion int) (string, error)
}

// ErrUnknownEmitter is returned by Lookup for unregistered targets.
var ErrUnknownEmitter = errors.New("unknown emitter")

// Emitter registry
var (
	emittersMu sync.RWMutex
	emitters   = make(map[string]Emitter)
)

// Register registers an emitter in the global registry.
// Called by emitter implementations in their init() functions.
func Register(e Emitter) {
	emittersMu.Lock()
	defer emittersMu.Unlock()
	emitters[strings.ToLower(e.Name())] = e
}

// Get returns an emitter by name.
func Get(name string) (Emitter, bool) {
	emittersMu.RLock()
	defer emittersMu.RUnlock()
	e, ok := emitters[strings.ToLower(name)]
	return e, ok
}

// Lookup is Get with an error naming the registered targets.
func Lookup(name string) (Emitter, error) {
	if e, ok := Get(name); ok {
		return e, nil
	}
	return nil, errors.WithHintf(
		errors.Wrapf(ErrUnknownEmitter, "%q", name),
		"available targets: %s", strings.Join(List(), ", "),
	)
}

// List returns all registered emitter names (sorted).
func List() []string {
	emittersMu.RLock()
	defer emittersMu.RUnlock()
	names := make([]string, 0, len(emitters))
	for name := range emitters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnsupportedNode reports a model value no renderer handles. The value is
// attached as a JSON detail so the faulty entry can be located.
func UnsupportedNode(v any) error {
	err := errors.Newf("no renderer for %T", v)
	if dump, jerr := json.Marshal(v); jerr == nil {
		err = errors.WithDetail(err, string(dump))
	}
	return err
}
