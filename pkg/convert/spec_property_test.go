// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"testing"

	"pgregory.net/rapid"
)

// Property-based tests for the conversion string grammar.

// TestParseSpec_RoundTrip verifies that rendering any spec to its
// canonical string and parsing it back is the identity. Column names draw
// from the full accepted alphabet, everything but the reserved
// delimiters.
func TestParseSpec_RoundTrip(t *testing.T) {
	columnGen := rapid.StringMatching(`[a-zA-Z0-9_. !èé-]{1,30}`)
	idTypeGen := rapid.SampledFrom(IdTypes())
	mergeModeGen := rapid.SampledFrom([]MergeMode{MergeOuter, MergeInner})

	rapid.Check(t, func(t *rapid.T) {
		spec := Spec{
			SourceColumn: columnGen.Draw(t, "source_column"),
			SourceType:   idTypeGen.Draw(t, "source_type"),
			TargetColumn: columnGen.Draw(t, "target_column"),
			TargetType:   idTypeGen.Draw(t, "target_type"),
			KeepSource:   rapid.Bool().Draw(t, "keep_source"),
			MergeMode:    mergeModeGen.Draw(t, "merge_mode"),
		}

		reparsed, err := ParseSpec(spec.String())
		if err != nil {
			t.Fatalf("canonical string %q failed to parse: %v", spec.String(), err)
		}
		if reparsed != spec {
			t.Fatalf("round trip changed the spec: %+v != %+v", reparsed, spec)
		}
	})
}
