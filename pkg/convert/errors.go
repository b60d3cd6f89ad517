// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"fmt"
	"strings"
)

// ParseError is returned for a conversion string that does not match the
// grammar or that names an unknown id type or merge mode.
type ParseError struct {
	Raw    string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid conversion string %q: %s", e.Raw, e.Reason)
}

// MissingColumnError is returned when a conversion names a source column
// that the working table does not have at application time. SpecIndex is
// the zero based position of the conversion in the run, or -1 when the
// conversion was applied outside of a pipeline.
type MissingColumnError struct {
	SpecIndex int
	Column    string
	Available []string
}

func (e *MissingColumnError) Error() string {
	position := ""
	if e.SpecIndex >= 0 {
		position = fmt.Sprintf(" (conversion %d)", e.SpecIndex+1)
	}
	return fmt.Sprintf("source column %q not in working table%s, available columns: %s",
		e.Column, position, strings.Join(e.Available, ", "))
}
