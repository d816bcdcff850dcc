// Package docs derives the documentation text emitted for definitions and
// properties.
package docs

import (
	"fmt"
	"strings"

	"github.com/estree/estreegen/pkg/spec"
)

// Options selects the optional parts of a resolved doc.
type Options struct {
	// PropertyNotes appends a "Docs for `prop`: ..." paragraph for every
	// visible own property of an interface that carries a doc.
	PropertyNotes bool
}

// Item is anything Resolve can document: a spec.Definition or a
// *spec.Property.
type Item interface {
	DefDoc() string
	DefAdded() *spec.Version
}

// Resolve returns the documentation for item at maxVersion: its own doc, the
// property notes when enabled, and a link to the introducing proposal.
// Non-empty parts are separated by a blank line.
func Resolve(item Item, maxVersion int, opts Options) string {
	parts := []string{item.DefDoc()}

	if iface, ok := item.(*spec.Interface); ok && opts.PropertyNotes {
		for _, p := range iface.Props {
			if p.Doc != "" && spec.Visible(p.Added, maxVersion) {
				parts = append(parts, fmt.Sprintf("Docs for `%s`: %s", p.Name, p.Doc))
			}
		}
	}

	if link := ProposalURL(item.DefAdded()); link != "" {
		parts = append(parts, "Original proposal: "+link)
	}

	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n\n")
}

// ProposalURL returns the repository of the proposal that introduced v, or
// "" for baseline, legacy and unmarked items. A proposal containing a slash
// is taken as a URL without scheme.
func ProposalURL(v *spec.Version) string {
	if v == nil || v.Legacy || v.Year == spec.BaselineYear || v.Proposal == "" {
		return ""
	}
	if strings.Contains(v.Proposal, "/") {
		return "https://" + v.Proposal
	}
	return "https://github.com/tc39/proposal-" + v.Proposal
}
