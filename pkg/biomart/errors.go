// SPDX-License-Identifier: Apache-2.0

package biomart

import "fmt"

// FetchError is returned when a BioMart request fails. Status is the HTTP
// status code when a response was received, 0 otherwise.
type FetchError struct {
	Dataset string
	Status  int
	Err     error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetching %s from biomart: got response %d: %v", e.Dataset, e.Status, e.Err)
	}
	return fmt.Sprintf("fetching %s from biomart: %v", e.Dataset, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
