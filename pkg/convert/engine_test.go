// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/MrHedmad/panid/pkg/table"
)

// testRef maps one gene to two transcripts and carries a mapping with a
// missing target value plus an exact duplicate, the two shapes the engine
// must not let leak into the output.
func testRef() table.Table {
	return table.New(
		[]string{"ensg_version", "ensg", "enst", "hgnc_symbol"},
		[]string{"ENSG00000000003.16", "ENSG00000000003", "ENST00000373020", "TSPAN6"},
		[]string{"ENSG00000000003.16", "ENSG00000000003", "ENST00000494424", "TSPAN6"},
		[]string{"ENSG00000001036.14", "ENSG00000001036", "ENST00000002165", "FUCA2"},
		[]string{"ENSG00000001036.14", "ENSG00000001036", "ENST00000002165", "FUCA2"},
		[]string{"ENSG00000003137.8", "ENSG00000003137", "ENST00000001146", ""},
	)
}

func TestApply(t *testing.T) {
	t.Parallel()

	input := table.New(
		[]string{"id", "other_data"},
		[]string{"ENSG00000000003.16", "restructured"},
		[]string{"ENSG00000001036.14", "banana"},
		[]string{"ENSG00000404040.4", "unmapped"},
	)

	tests := []struct {
		name string
		spec Spec

		wantColumns []string
		wantRows    [][]string
	}{
		{
			name: "replace, outer - unversioned gene ids",
			spec: Spec{
				SourceColumn: "id",
				SourceType:   EnsemblGeneVersion,
				TargetColumn: "ensembl",
				TargetType:   EnsemblGene,
				KeepSource:   false,
				MergeMode:    MergeOuter,
			},

			wantColumns: []string{"other_data", "ensembl"},
			wantRows: [][]string{
				{"restructured", "ENSG00000000003"},
				{"banana", "ENSG00000001036"},
				{"unmapped", ""},
			},
		},
		{
			name: "keep, outer - fan-out to transcripts",
			spec: Spec{
				SourceColumn: "id",
				SourceType:   EnsemblGeneVersion,
				TargetColumn: "transcript",
				TargetType:   EnsemblTranscript,
				KeepSource:   true,
				MergeMode:    MergeOuter,
			},

			wantColumns: []string{"id", "other_data", "transcript"},
			wantRows: [][]string{
				{"ENSG00000000003.16", "restructured", "ENST00000373020"},
				{"ENSG00000000003.16", "restructured", "ENST00000494424"},
				{"ENSG00000001036.14", "banana", "ENST00000002165"},
				{"ENSG00000404040.4", "unmapped", ""},
			},
		},
		{
			name: "replace, inner - unmapped rows dropped",
			spec: Spec{
				SourceColumn: "id",
				SourceType:   EnsemblGeneVersion,
				TargetColumn: "gene_name",
				TargetType:   HGNCSymbol,
				KeepSource:   false,
				MergeMode:    MergeInner,
			},

			wantColumns: []string{"other_data", "gene_name"},
			wantRows: [][]string{
				{"restructured", "TSPAN6"},
				{"banana", "FUCA2"},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := Apply(input, tc.spec, testRef())
			require.NoError(t, err)
			require.Equal(t, tc.wantColumns, got.Columns())
			require.Empty(t, cmp.Diff(tc.wantRows, got.Rows()))
		})
	}
}

// A reference row whose target value is missing must not pair up with a
// complete row for the same source id and produce a spurious duplicate.
func TestApply_MissingTargetValuesDropped(t *testing.T) {
	t.Parallel()

	ref := table.New(
		[]string{"ensg", "hgnc_symbol"},
		[]string{"ENSG00000000003", "TSPAN6"},
		[]string{"ENSG00000000003", ""},
	)
	input := table.New(
		[]string{"gene", "payload"},
		[]string{"ENSG00000000003", "p"},
	)

	got, err := Apply(input, Spec{
		SourceColumn: "gene",
		SourceType:   EnsemblGene,
		TargetColumn: "symbol",
		TargetType:   HGNCSymbol,
		KeepSource:   true,
		MergeMode:    MergeOuter,
	}, ref)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff([][]string{{"ENSG00000000003", "p", "TSPAN6"}}, got.Rows()))
}

func TestApply_OuterNeverShrinks(t *testing.T) {
	t.Parallel()

	input := table.New(
		[]string{"id", "other_data"},
		[]string{"ENSG00000000003.16", "a"},
		[]string{"ENSG00000404040.4", "b"},
		[]string{"", "c"},
	)

	got, err := Apply(input, Spec{
		SourceColumn: "id",
		SourceType:   EnsemblGeneVersion,
		TargetColumn: "transcript",
		TargetType:   EnsemblTranscript,
		KeepSource:   true,
		MergeMode:    MergeOuter,
	}, testRef())
	require.NoError(t, err)
	require.GreaterOrEqual(t, got.NumRows(), input.NumRows())
}

func TestApply_InnerNeverAddsSourceValues(t *testing.T) {
	t.Parallel()

	input := table.New(
		[]string{"id", "other_data"},
		[]string{"ENSG00000000003.16", "a"},
		[]string{"ENSG00000404040.4", "b"},
	)

	got, err := Apply(input, Spec{
		SourceColumn: "id",
		SourceType:   EnsemblGeneVersion,
		TargetColumn: "transcript",
		TargetType:   EnsemblTranscript,
		KeepSource:   true,
		MergeMode:    MergeInner,
	}, testRef())
	require.NoError(t, err)

	inputIDs, err := input.Column("id")
	require.NoError(t, err)
	gotIDs, err := got.Column("id")
	require.NoError(t, err)
	require.Subset(t, inputIDs, gotIDs)
}

func TestApply_MissingSourceColumn(t *testing.T) {
	t.Parallel()

	input := table.New([]string{"other_data"}, []string{"x"})

	_, err := Apply(input, Spec{
		SourceColumn: "id",
		SourceType:   EnsemblGene,
		TargetColumn: "out",
		TargetType:   HGNCSymbol,
	}, testRef())

	missingErr := &MissingColumnError{}
	require.ErrorAs(t, err, &missingErr)
	require.Equal(t, "id", missingErr.Column)
	require.Equal(t, -1, missingErr.SpecIndex)
	require.Equal(t, []string{"other_data"}, missingErr.Available)
}
