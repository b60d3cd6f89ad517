// SPDX-License-Identifier: Apache-2.0

package table

import (
	"fmt"
	"strings"
)

// ColumnError is returned when an operation references a column the table
// does not have.
type ColumnError struct {
	Column    string
	Available []string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("column %q not found, available columns: %s", e.Column, strings.Join(e.Available, ", "))
}
