// SPDX-License-Identifier: Apache-2.0

// Package convert implements the conversion string grammar and the column
// conversion engine that maps gene identifier columns between namespaces
// using a reference mapping table.
package convert

import (
	"fmt"
	"regexp"
)

// MergeMode selects how rows without a reference mapping are treated.
type MergeMode string

const (
	// MergeOuter keeps unmapped rows with missing values. This is the
	// default.
	MergeOuter = MergeMode("outer")
	// MergeInner drops unmapped rows.
	MergeInner = MergeMode("inner")
)

// Spec describes a single column conversion.
//
// The string form is `<from>:<type><symbol><to>:<type>[?<how>]` where:
//   - `<from>` is the name of the column in the input that has the IDs,
//   - `<type>` is the namespace of the input or output column, one of the
//     supported id types,
//   - `<to>` is the name of the output column,
//   - `<symbol>` is either `+` or `>`, to preserve (`+`) or replace (`>`)
//     the input column,
//   - `<how>` is `inner` or `outer`, defaulting to `outer`.
type Spec struct {
	SourceColumn string
	SourceType   IdType
	TargetColumn string
	TargetType   IdType
	KeepSource   bool
	MergeMode    MergeMode
}

// Column names and type tokens match minimally, the symbol is the first
// `+`/`>` encountered, and the merge mode captures everything after a
// trailing `?`. Anchored, no trailing garbage.
var specRegex = regexp.MustCompile(`^(.+?):(.+?)([+>])(.+?):(.+?)(?:\?(.+))?$`)

// ParseSpec parses a conversion string. It returns a ParseError when the
// string does not match the grammar or names an unknown id type or merge
// mode, never a partially populated spec.
func ParseSpec(raw string) (Spec, error) {
	groups := specRegex.FindStringSubmatch(raw)
	if groups == nil {
		return Spec{}, &ParseError{Raw: raw, Reason: "does not match <from>:<type><+|>><to>:<type>[?<how>]"}
	}

	sourceType, err := ParseIdType(groups[2])
	if err != nil {
		return Spec{}, &ParseError{Raw: raw, Reason: err.Error()}
	}
	targetType, err := ParseIdType(groups[5])
	if err != nil {
		return Spec{}, &ParseError{Raw: raw, Reason: err.Error()}
	}

	mode := MergeOuter
	if groups[6] != "" {
		switch MergeMode(groups[6]) {
		case MergeInner, MergeOuter:
			mode = MergeMode(groups[6])
		default:
			return Spec{}, &ParseError{Raw: raw, Reason: fmt.Sprintf("unknown merge mode %q", groups[6])}
		}
	}

	return Spec{
		SourceColumn: groups[1],
		SourceType:   sourceType,
		TargetColumn: groups[4],
		TargetType:   targetType,
		KeepSource:   groups[3] == "+",
		MergeMode:    mode,
	}, nil
}

// ParseSpecs parses all conversion strings up front, failing on the first
// invalid one.
func ParseSpecs(raws []string) ([]Spec, error) {
	specs := make([]Spec, 0, len(raws))
	for _, raw := range raws {
		spec, err := ParseSpec(raw)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// String renders the canonical conversion string. The merge mode is
// always rendered, so String followed by ParseSpec is the identity.
func (s Spec) String() string {
	symbol := ">"
	if s.KeepSource {
		symbol = "+"
	}
	return fmt.Sprintf("%s:%s%s%s:%s?%s", s.SourceColumn, s.SourceType, symbol, s.TargetColumn, s.TargetType, s.MergeMode)
}
