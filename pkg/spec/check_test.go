package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ruleIDs(findings []Finding) []string {
	var ids []string
	for _, f := range findings {
		ids = append(ids, f.RuleID)
	}
	return ids
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		defs []Definition
		want []string
	}{
		{
			name: "clean",
			defs: []Definition{
				&Interface{Name: "Node", Props: []*Property{{Name: "type", Type: ref("string")}}},
				&Interface{Name: "Program", Bases: []Base{{Name: "Node"}}, Props: []*Property{
					{Name: "body", Type: &Array{Base: ref("Node")}},
				}},
			},
		},
		{
			name: "duplicate definition",
			defs: []Definition{&Interface{Name: "A"}, &Enum{Name: "A"}},
			want: []string{RuleDuplicateDefinition},
		},
		{
			name: "duplicate property",
			defs: []Definition{&Interface{Name: "A", Props: []*Property{
				{Name: "x", Type: ref("string")},
				{Name: "x", Type: ref("number")},
			}}},
			want: []string{RuleDuplicateProperty},
		},
		{
			name: "unresolved reference inside union and object",
			defs: []Definition{&Interface{Name: "A", Props: []*Property{
				{Name: "x", Type: &Union{Alternatives: []Alternative{{Type: ref("Missing")}, {Type: &Literal{}}}}},
				{Name: "y", Type: &Object{Props: []*Property{{Name: "z", Type: ref("Gone")}}}},
			}}},
			want: []string{RuleUnresolvedReference, RuleUnresolvedReference},
		},
		{
			name: "unresolved base",
			defs: []Definition{&Interface{Name: "A", Bases: []Base{{Name: "Missing"}}}},
			want: []string{RuleUnresolvedReference},
		},
		{
			name: "base added later than child",
			defs: []Definition{
				&Interface{Name: "Chain", Added: v(2020)},
				&Interface{Name: "Call", Bases: []Base{{Name: "Chain"}}},
			},
			want: []string{RuleBaseAddedLater},
		},
		{
			name: "gated base older than child",
			defs: []Definition{
				&Interface{Name: "Node"},
				&Interface{Name: "Class", Added: v(2015), Bases: []Base{{Name: "Node", Added: &Version{Year: 5, Legacy: true}}}},
			},
			want: []string{RuleBaseOlderThanChild},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ruleIDs(Check(tt.defs)))
		})
	}
}

func TestFindingString(t *testing.T) {
	f := Finding{RuleID: RuleDuplicateProperty, Definition: "A", Message: `property "x" declared more than once`}
	assert.Equal(t, `SC02 A: property "x" declared more than once`, f.String())
}

func TestKind(t *testing.T) {
	assert.Equal(t, "interface", Kind(&Interface{Name: "A"}))
	assert.Equal(t, "enum", Kind(&Enum{Name: "E"}))
}
