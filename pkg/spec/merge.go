package spec

// Merge applies the definitions of an extension spec on top of base and
// returns the combined sequence. Neither input is modified.
//
// An extension interface without bases whose name already exists in base is
// a property patch: its properties replace same-named base properties in
// place and new ones are appended, while the base keeps its own doc, bases
// and markers. Every other extension definition replaces the same-named base
// definition in place, or is appended when the name is new.
func Merge(base, ext []Definition) []Definition {
	out := append([]Definition(nil), base...)
	index := make(map[string]int, len(out))
	for i, d := range out {
		if _, ok := index[d.DefName()]; !ok {
			index[d.DefName()] = i
		}
	}

	for _, d := range ext {
		i, exists := index[d.DefName()]
		if !exists {
			index[d.DefName()] = len(out)
			out = append(out, d)
			continue
		}
		patch, isPatch := d.(*Interface)
		target, isInterface := out[i].(*Interface)
		if isPatch && len(patch.Bases) == 0 && isInterface {
			out[i] = patchInterface(target, patch)
			continue
		}
		out[i] = d
	}
	return out
}

func patchInterface(target, patch *Interface) *Interface {
	merged := *target
	merged.Props = append([]*Property(nil), target.Props...)
	for _, p := range patch.Props {
		replaced := false
		for j, existing := range merged.Props {
			if existing.Name == p.Name {
				merged.Props[j] = p
				replaced = true
				break
			}
		}
		if !replaced {
			merged.Props = append(merged.Props, p)
		}
	}
	return &merged
}
