// SPDX-License-Identifier: Apache-2.0

package refcache

import "fmt"

// ReadError is returned when the cache artifact exists but cannot be
// parsed into the expected table shape. It is treated as equivalent to an
// absent artifact.
type ReadError struct {
	Location string
	Err      error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading cache artifact %s: %v", e.Location, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
