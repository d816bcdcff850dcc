// Package data dumps the version-filtered schema model as JSON or YAML for
// consumers that prefer structured data over generated code.
package data

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/estree/estreegen/pkg/emit"
	"github.com/estree/estreegen/pkg/spec"
	"gopkg.in/yaml.v3"
)

func init() {
	emit.Register(JSON{})
	emit.Register(YAML{})
}

// JSON implements emit.Emitter with two-space indented JSON.
type JSON struct{}

// Name implements emit.Emitter.
func (JSON) Name() string { return "json" }

// FileExtension implements emit.Emitter.
func (JSON) FileExtension() string { return ".json" }

// Emit implements emit.Emitter.
func (JSON) Emit(defs []spec.Definition, maxVersion int) (string, error) {
	filtered := spec.Filter(defs, maxVersion)
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(filtered); err != nil {
		return "", errors.Wrap(err, "encoding json")
	}
	return buf.String(), nil
}

// YAML implements emit.Emitter with a YAML sequence of definitions.
type YAML struct{}

// Name implements emit.Emitter.
func (YAML) Name() string { return "yaml" }

// FileExtension implements emit.Emitter.
func (YAML) FileExtension() string { return ".yaml" }

// Emit implements emit.Emitter.
func (YAML) Emit(defs []spec.Definition, maxVersion int) (string, error) {
	filtered := spec.Filter(defs, maxVersion)
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(filtered); err != nil {
		return "", errors.Wrap(err, "encoding yaml")
	}
	if err := enc.Close(); err != nil {
		return "", errors.Wrap(err, "encoding yaml")
	}
	return buf.String(), nil
}
