package spec

import (
	"fmt"
	"math"
)

// Latest selects every version when used as a maximum version.
const Latest = math.MaxInt

// BaselineYear is the year written as the @es6 shorthand.
const BaselineYear = 2015

// Version records when an item entered the schema.
type Version struct {
	Year     int    `json:"year" yaml:"year"`
	Proposal string `json:"proposal,omitempty" yaml:"proposal,omitempty"`

	// Legacy marks the bare numeric scheme, @added(5). Its number is stored in
	// Year and compared directly to the maximum version.
	Legacy bool `json:"legacy,omitempty" yaml:"legacy,omitempty"`
}

// IsBaseline reports whether the marker is the plain @es6 shorthand.
func (v *Version) IsBaseline() bool {
	return v != nil && !v.Legacy && v.Year == BaselineYear && v.Proposal == ""
}

// String renders the marker in DSL annotation syntax.
func (v *Version) String() string {
	switch {
	case v == nil:
		return ""
	case v.IsBaseline():
		return "@es6"
	case v.Legacy:
		return fmt.Sprintf("@added(%d)", v.Year)
	default:
		return fmt.Sprintf("@added(%d, %s)", v.Year, v.Proposal)
	}
}

// Visible reports whether an item with marker v is present at maxVersion.
func Visible(v *Version, maxVersion int) bool {
	return v == nil || v.Year <= maxVersion
}

func (v *Version) clone() *Version {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
