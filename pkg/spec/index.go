package spec

import (
	"strings"

	"github.com/cockroachdb/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ErrInheritanceCycle is returned when an interface reaches itself through
// its visible bases.
var ErrInheritanceCycle = errors.New("inheritance cycle")

// PropertySet is an effective property set keyed by property name in
// declaration order.
type PropertySet = orderedmap.OrderedMap[string, *Property]

// Index resolves definitions by name.
type Index struct {
	defs   []Definition
	byName map[string]Definition
}

// NewIndex indexes defs by name. When a name repeats, the first definition
// wins.
func NewIndex(defs []Definition) *Index {
	idx := &Index{defs: defs, byName: make(map[string]Definition, len(defs))}
	for _, d := range defs {
		if _, ok := idx.byName[d.DefName()]; !ok {
			idx.byName[d.DefName()] = d
		}
	}
	return idx
}

// Definitions returns the indexed definitions in source order.
func (idx *Index) Definitions() []Definition {
	return idx.defs
}

// Get returns the definition named name.
func (idx *Index) Get(name string) (Definition, bool) {
	d, ok := idx.byName[name]
	return d, ok
}

// Interface returns the interface named name.
func (idx *Index) Interface(name string) (*Interface, bool) {
	d, ok := idx.byName[name].(*Interface)
	return d, ok
}

// Properties returns the effective property set of the interface name at
// maxVersion: the properties of its visible bases in base order, followed by
// its own. An own property that shares a name with an inherited one replaces
// it without moving it. Bases that name no interface are skipped.
func (idx *Index) Properties(name string, maxVersion int) (*PropertySet, error) {
	iface, ok := idx.Interface(name)
	if !ok {
		return nil, errors.Newf("no interface named %q", name)
	}
	props := orderedmap.New[string, *Property]()
	if err := idx.collect(iface, maxVersion, props, nil); err != nil {
		return nil, err
	}
	return props, nil
}

func (idx *Index) collect(iface *Interface, maxVersion int, into *PropertySet, path []string) error {
	for _, seen := range path {
		if seen == iface.Name {
			cycle := append(path, iface.Name)
			return errors.WithDetail(
				errors.Wrapf(ErrInheritanceCycle, "interface %q", iface.Name),
				strings.Join(cycle, " <: "),
			)
		}
	}
	path = append(path, iface.Name)

	for _, b := range iface.Bases {
		if !Visible(b.Added, maxVersion) {
			continue
		}
		base, ok := idx.Interface(b.Name)
		if !ok {
			continue
		}
		if err := idx.collect(base, maxVersion, into, path); err != nil {
			return err
		}
	}
	for _, p := range iface.Props {
		if Visible(p.Added, maxVersion) {
			into.Set(p.Name, p)
		}
	}
	return nil
}

// Ancestors returns the names of every interface reachable through the
// visible bases of name, nearest first, without duplicates.
func (idx *Index) Ancestors(name string, maxVersion int) []string {
	var out []string
	seen := map[string]bool{name: true}
	queue := []string{name}
	for len(queue) > 0 {
		iface, ok := idx.Interface(queue[0])
		queue = queue[1:]
		if !ok {
			continue
		}
		for _, b := range iface.VisibleBases(maxVersion) {
			if seen[b] {
				continue
			}
			seen[b] = true
			out = append(out, b)
			queue = append(queue, b)
		}
	}
	return out
}
