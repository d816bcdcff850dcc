package spec

import "encoding/json"

// Definitions and types encode to JSON and YAML as objects tagged with a
// "kind" field.

type interfaceDoc struct {
	Kind       string      `json:"kind" yaml:"kind"`
	Name       string      `json:"name" yaml:"name"`
	Doc        string      `json:"doc,omitempty" yaml:"doc,omitempty"`
	Added      *Version    `json:"added,omitempty" yaml:"added,omitempty"`
	Section    []string    `json:"section,omitempty" yaml:"section,omitempty"`
	Headerless bool        `json:"headerless,omitempty" yaml:"headerless,omitempty"`
	Bases      []Base      `json:"bases" yaml:"bases"`
	Props      []*Property `json:"props" yaml:"props"`
}

type enumDoc struct {
	Kind       string       `json:"kind" yaml:"kind"`
	Name       string       `json:"name" yaml:"name"`
	Doc        string       `json:"doc,omitempty" yaml:"doc,omitempty"`
	Added      *Version     `json:"added,omitempty" yaml:"added,omitempty"`
	Section    []string     `json:"section,omitempty" yaml:"section,omitempty"`
	Headerless bool         `json:"headerless,omitempty" yaml:"headerless,omitempty"`
	Values     []*EnumValue `json:"values" yaml:"values"`
}

type typeDoc struct {
	Kind  string        `json:"kind" yaml:"kind"`
	Value any           `json:"value,omitempty" yaml:"value,omitempty"`
	Name  string        `json:"name,omitempty" yaml:"name,omitempty"`
	Base  Type          `json:"base,omitempty" yaml:"base,omitempty"`
	Types []Alternative `json:"types,omitempty" yaml:"types,omitempty"`
	Items []*Property   `json:"items,omitempty" yaml:"items,omitempty"`
}

// literalDoc keeps a null value explicit.
type literalDoc struct {
	Kind  string `json:"kind" yaml:"kind"`
	Value any    `json:"value" yaml:"value"`
}

func (d *Interface) doc() interfaceDoc {
	bases := d.Bases
	if bases == nil {
		bases = []Base{}
	}
	props := d.Props
	if props == nil {
		props = []*Property{}
	}
	return interfaceDoc{
		Kind: "interface", Name: d.Name, Doc: d.Doc, Added: d.Added,
		Section: d.Section, Headerless: d.Headerless, Bases: bases, Props: props,
	}
}

func (d *Enum) doc() enumDoc {
	values := d.Values
	if values == nil {
		values = []*EnumValue{}
	}
	return enumDoc{
		Kind: "enum", Name: d.Name, Doc: d.Doc, Added: d.Added,
		Section: d.Section, Headerless: d.Headerless, Values: values,
	}
}

// MarshalJSON implements json.Marshaler.
func (d *Interface) MarshalJSON() ([]byte, error) { return json.Marshal(d.doc()) }

// MarshalYAML implements yaml.Marshaler.
func (d *Interface) MarshalYAML() (any, error) { return d.doc(), nil }

// MarshalJSON implements json.Marshaler.
func (d *Enum) MarshalJSON() ([]byte, error) { return json.Marshal(d.doc()) }

// MarshalYAML implements yaml.Marshaler.
func (d *Enum) MarshalYAML() (any, error) { return d.doc(), nil }

// MarshalJSON implements json.Marshaler.
func (t *Literal) MarshalJSON() ([]byte, error) {
	return json.Marshal(literalDoc{Kind: "literal", Value: t.Value})
}

// MarshalYAML implements yaml.Marshaler.
func (t *Literal) MarshalYAML() (any, error) {
	return literalDoc{Kind: "literal", Value: t.Value}, nil
}

// MarshalJSON implements json.Marshaler.
func (t *Reference) MarshalJSON() ([]byte, error) {
	return json.Marshal(typeDoc{Kind: "reference", Name: t.Name})
}

// MarshalYAML implements yaml.Marshaler.
func (t *Reference) MarshalYAML() (any, error) {
	return typeDoc{Kind: "reference", Name: t.Name}, nil
}

// MarshalJSON implements json.Marshaler.
func (t *Array) MarshalJSON() ([]byte, error) {
	return json.Marshal(typeDoc{Kind: "array", Base: t.Base})
}

// MarshalYAML implements yaml.Marshaler.
func (t *Array) MarshalYAML() (any, error) {
	return typeDoc{Kind: "array", Base: t.Base}, nil
}

// MarshalJSON implements json.Marshaler.
func (t *Union) MarshalJSON() ([]byte, error) {
	return json.Marshal(typeDoc{Kind: "union", Types: t.Alternatives})
}

// MarshalYAML implements yaml.Marshaler.
func (t *Union) MarshalYAML() (any, error) {
	return typeDoc{Kind: "union", Types: t.Alternatives}, nil
}

// MarshalJSON implements json.Marshaler.
func (t *Object) MarshalJSON() ([]byte, error) {
	return json.Marshal(typeDoc{Kind: "object", Items: t.Props})
}

// MarshalYAML implements yaml.Marshaler.
func (t *Object) MarshalYAML() (any, error) {
	return typeDoc{Kind: "object", Items: t.Props}, nil
}

// Field tags for the remaining model types.
type (
	propertyDoc struct {
		Name  string   `json:"name" yaml:"name"`
		Type  Type     `json:"type" yaml:"type"`
		Doc   string   `json:"doc,omitempty" yaml:"doc,omitempty"`
		Added *Version `json:"added,omitempty" yaml:"added,omitempty"`
	}
	baseDoc struct {
		Name  string   `json:"name" yaml:"name"`
		Added *Version `json:"added,omitempty" yaml:"added,omitempty"`
	}
	alternativeDoc struct {
		Type  Type     `json:"type" yaml:"type"`
		Added *Version `json:"added,omitempty" yaml:"added,omitempty"`
	}
	enumValueDoc struct {
		Value any      `json:"value" yaml:"value"`
		Added *Version `json:"added,omitempty" yaml:"added,omitempty"`
	}
)

// MarshalJSON implements json.Marshaler.
func (p *Property) MarshalJSON() ([]byte, error) {
	return json.Marshal(propertyDoc{Name: p.Name, Type: p.Type, Doc: p.Doc, Added: p.Added})
}

// MarshalYAML implements yaml.Marshaler.
func (p *Property) MarshalYAML() (any, error) {
	return propertyDoc{Name: p.Name, Type: p.Type, Doc: p.Doc, Added: p.Added}, nil
}

// MarshalJSON implements json.Marshaler.
func (b Base) MarshalJSON() ([]byte, error) {
	return json.Marshal(baseDoc(b))
}

// MarshalYAML implements yaml.Marshaler.
func (b Base) MarshalYAML() (any, error) {
	return baseDoc(b), nil
}

// MarshalJSON implements json.Marshaler.
func (a Alternative) MarshalJSON() ([]byte, error) {
	return json.Marshal(alternativeDoc(a))
}

// MarshalYAML implements yaml.Marshaler.
func (a Alternative) MarshalYAML() (any, error) {
	return alternativeDoc(a), nil
}

// MarshalJSON implements json.Marshaler.
func (v *EnumValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(enumValueDoc{Value: v.Value.Value, Added: v.Added})
}

// MarshalYAML implements yaml.Marshaler.
func (v *EnumValue) MarshalYAML() (any, error) {
	return enumValueDoc{Value: v.Value.Value, Added: v.Added}, nil
}
