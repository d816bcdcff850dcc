package spec

// Filter returns a deep copy of defs holding only the items visible at
// maxVersion.
//
// Unions are normalised to the shape the parser produces for their printed
// form: a union with no visible alternative becomes the reference "any", and a
// union left with a single unmarked alternative becomes that bare type.
func Filter(defs []Definition, maxVersion int) []Definition {
	out := make([]Definition, 0, len(defs))
	for _, d := range defs {
		if !Visible(d.DefAdded(), maxVersion) {
			continue
		}
		switch d := d.(type) {
		case *Interface:
			out = append(out, filterInterface(d, maxVersion))
		case *Enum:
			out = append(out, filterEnum(d, maxVersion))
		}
	}
	return out
}

func filterInterface(d *Interface, maxVersion int) *Interface {
	c := &Interface{
		Name:       d.Name,
		Doc:        d.Doc,
		Added:      d.Added.clone(),
		Section:    cloneStrings(d.Section),
		Headerless: d.Headerless,
		Props:      filterProps(d.Props, maxVersion),
	}
	for _, b := range d.Bases {
		if Visible(b.Added, maxVersion) {
			c.Bases = append(c.Bases, Base{Name: b.Name, Added: b.Added.clone()})
		}
	}
	return c
}

func filterEnum(d *Enum, maxVersion int) *Enum {
	c := &Enum{
		Name:       d.Name,
		Doc:        d.Doc,
		Added:      d.Added.clone(),
		Section:    cloneStrings(d.Section),
		Headerless: d.Headerless,
	}
	pendingBreak := false
	for _, v := range d.Values {
		if !Visible(v.Added, maxVersion) {
			// The next kept value inherits the line break.
			pendingBreak = pendingBreak || v.Break
			continue
		}
		c.Values = append(c.Values, &EnumValue{
			Value: Literal{Value: v.Value.Value},
			Added: v.Added.clone(),
			Break: len(c.Values) > 0 && (v.Break || pendingBreak),
		})
		pendingBreak = false
	}
	return c
}

func filterProps(props []*Property, maxVersion int) []*Property {
	var out []*Property
	for _, p := range props {
		if !Visible(p.Added, maxVersion) {
			continue
		}
		out = append(out, &Property{
			Name:  p.Name,
			Type:  FilterType(p.Type, maxVersion),
			Doc:   p.Doc,
			Added: p.Added.clone(),
		})
	}
	return out
}

// FilterType returns a copy of t without the union alternatives and object
// properties that are not visible at maxVersion.
func FilterType(t Type, maxVersion int) Type {
	switch t := t.(type) {
	case *Literal:
		return &Literal{Value: t.Value}
	case *Reference:
		return &Reference{Name: t.Name}
	case *Array:
		return &Array{Base: FilterType(t.Base, maxVersion)}
	case *Object:
		return &Object{Props: filterProps(t.Props, maxVersion)}
	case *Union:
		var alts []Alternative
		for _, a := range t.Alternatives {
			if Visible(a.Added, maxVersion) {
				alts = append(alts, Alternative{Type: FilterType(a.Type, maxVersion), Added: a.Added.clone()})
			}
		}
		switch {
		case len(alts) == 0:
			return &Reference{Name: "any"}
		case len(alts) == 1 && alts[0].Added == nil:
			return alts[0].Type
		}
		return &Union{Alternatives: alts}
	}
	return t
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
