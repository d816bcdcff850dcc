// Package spec defines the semantic model of an ESTree schema: interfaces and
// enums, their property types and the version markers that gate visibility.
//
// The model is produced by package parser and consumed read-only by the
// emitters under pkg/emit. Helpers in this package derive new values from a
// model (Filter, Merge, Index) and never mutate their input.
//
// # Visibility
//
// Every definition, base, property, enum value and union alternative may
// carry a *Version. An item is visible at a maximum version when it has no
// marker or when its year is not greater than the maximum:
//
//	spec.Visible(prop.Added, 2017)
//
// Use Latest to select every version.
package spec
