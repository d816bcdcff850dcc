package spec

// RootSection is the placement path element that pins a definition to the
// top level of the generated documentation.
const RootSection = "<root>"

// Definition is a top-level schema entry: *Interface or *Enum.
type Definition interface {
	DefName() string
	DefDoc() string
	DefAdded() *Version
	Placement() (section []string, headerless bool)
	isDefinition()
}

// Interface declares a node shape with ordered properties and bases.
type Interface struct {
	Name       string
	Bases      []Base
	Props      []*Property
	Doc        string
	Added      *Version
	Section    []string
	Headerless bool
}

// Base is one entry of an interface's inheritance list. A nil Added means
// the relationship holds in every version.
type Base struct {
	Name  string
	Added *Version
}

// Enum declares a closed set of literal values.
type Enum struct {
	Name       string
	Values     []*EnumValue
	Doc        string
	Added      *Version
	Section    []string
	Headerless bool
}

// EnumValue is one literal of an enum.
type EnumValue struct {
	Value Literal
	Added *Version

	// Break records that the value started a new source line.
	Break bool
}

// Property is a named, typed field of an interface or inline object.
type Property struct {
	Name  string
	Type  Type
	Doc   string
	Added *Version
}

func (*Interface) isDefinition() {}
func (*Enum) isDefinition()      {}

func (d *Interface) DefName() string    { return d.Name }
func (d *Interface) DefDoc() string     { return d.Doc }
func (d *Interface) DefAdded() *Version { return d.Added }

// Placement returns the explicit section path and the headerless flag.
func (d *Interface) Placement() ([]string, bool) { return d.Section, d.Headerless }

func (d *Enum) DefName() string             { return d.Name }
func (d *Enum) DefDoc() string              { return d.Doc }
func (d *Enum) DefAdded() *Version          { return d.Added }
func (d *Enum) Placement() ([]string, bool) { return d.Section, d.Headerless }

// Prop returns the own property with the given name.
func (d *Interface) Prop(name string) (*Property, bool) {
	for _, p := range d.Props {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// VisibleBases returns the names of the bases present at maxVersion.
func (d *Interface) VisibleBases(maxVersion int) []string {
	var names []string
	for _, b := range d.Bases {
		if Visible(b.Added, maxVersion) {
			names = append(names, b.Name)
		}
	}
	return names
}

// Type is a property type: *Literal, *Reference, *Array, *Union or *Object.
type Type interface {
	isType()
}

// Literal is a constant type. Value is nil, string, float64 or bool; nil is
// the "any" placeholder.
type Literal struct {
	Value any
}

// Reference names another definition or a primitive.
type Reference struct {
	Name string
}

// Array is a homogeneous list of Base.
type Array struct {
	Base Type
}

// Union lists alternative types in declaration order.
type Union struct {
	Alternatives []Alternative
}

// Alternative is a union member with its own optional marker.
type Alternative struct {
	Type  Type
	Added *Version
}

// Object is an inline structural type.
type Object struct {
	Props []*Property
}

func (*Literal) isType()   {}
func (*Reference) isType() {}
func (*Array) isType()     {}
func (*Union) isType()     {}
func (*Object) isType()    {}

// IsNull reports whether t is the null literal.
func IsNull(t Type) bool {
	lit, ok := t.(*Literal)
	return ok && lit.Value == nil
}

// Lookup returns the first definition named name.
func Lookup(defs []Definition, name string) (Definition, bool) {
	for _, d := range defs {
		if d.DefName() == name {
			return d, true
		}
	}
	return nil, false
}

// DefDoc returns the property doc.
func (p *Property) DefDoc() string { return p.Doc }

// DefAdded returns the property marker.
func (p *Property) DefAdded() *Version { return p.Added }

// Kind returns "interface" or "enum".
func Kind(d Definition) string {
	if _, ok := d.(*Enum); ok {
		return "enum"
	}
	return "interface"
}
