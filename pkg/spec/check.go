package spec

import "fmt"

// Primitives are reference names that resolve outside the schema.
var Primitives = map[string]bool{
	"string":  true,
	"number":  true,
	"boolean": true,
	"bigint":  true,
	"RegExp":  true,
	"any":     true,
}

// Rule identifiers reported by Check.
const (
	RuleDuplicateDefinition = "SC01"
	RuleDuplicateProperty   = "SC02"
	RuleUnresolvedReference = "SC03"
	RuleBaseAddedLater      = "SC04"
	RuleBaseOlderThanChild  = "SC05"
)

// Finding is a non-fatal problem reported by Check.
type Finding struct {
	RuleID     string `json:"rule_id"`
	Definition string `json:"definition"`
	Message    string `json:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s %s: %s", f.RuleID, f.Definition, f.Message)
}

// Check lints defs and returns every finding in source order. Findings never
// make a model unusable; emitters accept any parsed model.
func Check(defs []Definition) []Finding {
	var findings []Finding
	idx := NewIndex(defs)
	seen := make(map[string]bool, len(defs))

	report := func(rule, def, format string, args ...any) {
		findings = append(findings, Finding{RuleID: rule, Definition: def, Message: fmt.Sprintf(format, args...)})
	}

	for _, d := range defs {
		name := d.DefName()
		if seen[name] {
			report(RuleDuplicateDefinition, name, "definition declared more than once")
		}
		seen[name] = true

		iface, ok := d.(*Interface)
		if !ok {
			continue
		}

		props := make(map[string]bool, len(iface.Props))
		for _, p := range iface.Props {
			if props[p.Name] {
				report(RuleDuplicateProperty, name, "property %q declared more than once", p.Name)
			}
			props[p.Name] = true
			walkReferences(p.Type, func(ref string) {
				if _, ok := idx.Get(ref); !ok && !Primitives[ref] {
					report(RuleUnresolvedReference, name, "property %q references unknown type %q", p.Name, ref)
				}
			})
		}

		for _, b := range iface.Bases {
			base, ok := idx.Get(b.Name)
			if !ok {
				report(RuleUnresolvedReference, name, "base %q is not defined", b.Name)
				continue
			}
			baseAdded := base.DefAdded()
			switch {
			case b.Added == nil && laterThan(baseAdded, iface.Added):
				report(RuleBaseAddedLater, name, "extends %q unconditionally but %q was added in %d", b.Name, b.Name, baseAdded.Year)
			case b.Added != nil && laterThan(iface.Added, b.Added):
				report(RuleBaseOlderThanChild, name, "base %q is gated at %d, before the interface itself (%d)", b.Name, b.Added.Year, iface.Added.Year)
			}
		}
	}
	return findings
}

// laterThan reports whether a is strictly newer than b, treating a nil marker
// as older than every version.
func laterThan(a, b *Version) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.Year > b.Year
}

func walkReferences(t Type, fn func(string)) {
	switch t := t.(type) {
	case *Reference:
		fn(t.Name)
	case *Array:
		walkReferences(t.Base, fn)
	case *Union:
		for _, a := range t.Alternatives {
			walkReferences(a.Type, fn)
		}
	case *Object:
		for _, p := range t.Props {
			walkReferences(p.Type, fn)
		}
	}
}
