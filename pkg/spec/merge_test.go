package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	base := []Definition{
		&Interface{Name: "Node", Props: []*Property{{Name: "type", Type: ref("string")}}},
		&Interface{
			Name:  "Identifier",
			Doc:   "An identifier.",
			Bases: []Base{{Name: "Node"}},
			Props: []*Property{
				{Name: "name", Type: ref("string")},
				{Name: "raw", Type: ref("string")},
			},
		},
		&Enum{Name: "Kind", Values: []*EnumValue{{Value: Literal{Value: "var"}}}},
	}
	ext := []Definition{
		&Interface{Name: "Identifier", Props: []*Property{
			{Name: "name", Type: ref("Name")},
			{Name: "optional", Type: ref("boolean")},
		}},
		&Enum{Name: "Kind", Values: []*EnumValue{{Value: Literal{Value: "let"}}}},
		&Interface{Name: "Private", Bases: []Base{{Name: "Node"}}},
	}

	got := Merge(base, ext)
	require.Len(t, got, 4)

	id := got[1].(*Interface)
	assert.Equal(t, "An identifier.", id.Doc)
	assert.Equal(t, []Base{{Name: "Node"}}, id.Bases)
	require.Len(t, id.Props, 3)
	assert.Equal(t, "name", id.Props[0].Name)
	assert.Equal(t, ref("Name"), id.Props[0].Type)
	assert.Equal(t, "raw", id.Props[1].Name)
	assert.Equal(t, "optional", id.Props[2].Name)

	assert.Same(t, ext[1], got[2])
	assert.Equal(t, "Private", got[3].DefName())

	// Inputs are untouched.
	assert.Len(t, base[1].(*Interface).Props, 2)
	assert.Equal(t, ref("string"), base[1].(*Interface).Props[0].Type)
}

func TestMergeReplacesInterfaceWithBases(t *testing.T) {
	base := []Definition{&Interface{Name: "A", Props: []*Property{{Name: "x", Type: ref("string")}}}}
	ext := []Definition{&Interface{Name: "A", Bases: []Base{{Name: "Node"}}}}

	got := Merge(base, ext)
	require.Len(t, got, 1)
	assert.Same(t, ext[0], got[0])
}
