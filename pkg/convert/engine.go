// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"fmt"

	"github.com/MrHedmad/panid/pkg/table"
)

// Apply performs a single conversion of the working table against the
// reference table.
//
// The reference is reduced to the target and source namespace columns,
// rows without a target value are dropped so they cannot surface as
// spurious duplicates after the join, and the source namespace column is
// renamed to the spec's source column so the join key lines up with the
// working table. A source id mapping to several reference rows fans out
// to one output row per distinct mapping; that is how chained conversions
// accumulate one to many relationships (gene to transcript to RefSeq id).
//
// Under the outer merge mode unmapped rows are kept with missing values,
// so the output can only grow, never shrink. Under the inner merge mode
// unmapped rows are dropped.
func Apply(working table.Table, spec Spec, ref table.Table) (table.Table, error) {
	if !working.HasColumn(spec.SourceColumn) {
		return table.Table{}, &MissingColumnError{
			SpecIndex: -1,
			Column:    spec.SourceColumn,
			Available: working.Columns(),
		}
	}

	selection, err := ref.Select(spec.TargetType.Column(), spec.SourceType.Column())
	if err != nil {
		return table.Table{}, fmt.Errorf("selecting %s mapping from reference: %w", spec, err)
	}
	selection, err = selection.DropMissing(spec.TargetType.Column())
	if err != nil {
		return table.Table{}, err
	}
	selection, err = selection.Rename(spec.SourceType.Column(), spec.SourceColumn)
	if err != nil {
		return table.Table{}, err
	}
	selection = selection.Dedupe()

	how := table.JoinLeft
	if spec.MergeMode == MergeInner {
		how = table.JoinInner
	}
	merged, err := working.Join(selection, spec.SourceColumn, how)
	if err != nil {
		return table.Table{}, fmt.Errorf("joining %s mapping: %w", spec, err)
	}
	merged = merged.Dedupe()

	if !spec.KeepSource {
		merged, err = merged.Drop(spec.SourceColumn)
		if err != nil {
			return table.Table{}, err
		}
	}

	merged, err = merged.Rename(spec.TargetType.Column(), spec.TargetColumn)
	if err != nil {
		return table.Table{}, err
	}
	return merged, nil
}
