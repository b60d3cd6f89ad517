// SPDX-License-Identifier: Apache-2.0

package table

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestTable_Select(t *testing.T) {
	t.Parallel()

	src := New(
		[]string{"a", "b", "c"},
		[]string{"1", "2", "3"},
		[]string{"4", "5", "6"},
	)

	tests := []struct {
		name    string
		columns []string

		wantColumns []string
		wantRows    [][]string
		wantErr     error
	}{
		{
			name:    "ok - reordered subset",
			columns: []string{"c", "a"},

			wantColumns: []string{"c", "a"},
			wantRows:    [][]string{{"3", "1"}, {"6", "4"}},
		},
		{
			name:    "error - unknown column",
			columns: []string{"a", "z"},

			wantErr: &ColumnError{Column: "z", Available: []string{"a", "b", "c"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := src.Select(tc.columns...)
			if tc.wantErr != nil {
				require.Equal(t, tc.wantErr.Error(), err.Error())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.wantColumns, got.Columns())
			require.Empty(t, cmp.Diff(tc.wantRows, got.Rows()))
		})
	}
}

func TestTable_SelectDoesNotAliasSource(t *testing.T) {
	t.Parallel()

	src := New([]string{"a", "b"}, []string{"1", "2"})
	selected, err := src.Select("a")
	require.NoError(t, err)

	renamed, err := selected.Rename("a", "z")
	require.NoError(t, err)

	require.Equal(t, []string{"a", "b"}, src.Columns())
	require.Equal(t, []string{"a"}, selected.Columns())
	require.Equal(t, []string{"z"}, renamed.Columns())
}

func TestTable_Drop(t *testing.T) {
	t.Parallel()

	src := New(
		[]string{"a", "b", "c"},
		[]string{"1", "2", "3"},
	)

	got, err := src.Drop("b")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "c"}, got.Columns())
	require.Empty(t, cmp.Diff([][]string{{"1", "3"}}, got.Rows()))

	_, err = src.Drop("z")
	colErr := &ColumnError{}
	require.ErrorAs(t, err, &colErr)
	require.Equal(t, "z", colErr.Column)
}

func TestTable_DropMissing(t *testing.T) {
	t.Parallel()

	src := New(
		[]string{"id", "value"},
		[]string{"a", "x"},
		[]string{"b", ""},
		[]string{"c", "y"},
	)

	got, err := src.DropMissing("value")
	require.NoError(t, err)
	require.Empty(t, cmp.Diff([][]string{{"a", "x"}, {"c", "y"}}, got.Rows()))
}

func TestTable_Dedupe(t *testing.T) {
	t.Parallel()

	src := New(
		[]string{"a", "b"},
		[]string{"1", "2"},
		[]string{"1", "2"},
		[]string{"3", "4"},
		[]string{"1", "2"},
	)

	deduped := src.Dedupe()
	require.Empty(t, cmp.Diff([][]string{{"1", "2"}, {"3", "4"}}, deduped.Rows()))

	// idempotent
	require.True(t, deduped.Dedupe().Equal(deduped))
}

func TestTable_Coalesce(t *testing.T) {
	t.Parallel()

	src := New(
		[]string{"primary", "fallback"},
		[]string{"keep", "ignored"},
		[]string{"", "used"},
		[]string{"", ""},
	)

	got, err := src.Coalesce("primary", "fallback")
	require.NoError(t, err)
	require.Empty(t, cmp.Diff([][]string{
		{"keep", "ignored"},
		{"used", "used"},
		{"", ""},
	}, got.Rows()))

	// the source table is untouched
	require.Empty(t, cmp.Diff([][]string{
		{"keep", "ignored"},
		{"", "used"},
		{"", ""},
	}, src.Rows()))
}

func TestTable_Derive(t *testing.T) {
	t.Parallel()

	src := New(
		[]string{"id"},
		[]string{"abc.1"},
		[]string{""},
	)

	got, err := src.Derive("bare", "id", func(s string) string {
		return strings.TrimSuffix(s, ".1")
	})
	require.NoError(t, err)
	require.Equal(t, []string{"id", "bare"}, got.Columns())
	// missing input values stay missing instead of going through fn
	require.Empty(t, cmp.Diff([][]string{{"abc.1", "abc"}, {"", ""}}, got.Rows()))
}

func TestTable_Join(t *testing.T) {
	t.Parallel()

	left := New(
		[]string{"id", "payload"},
		[]string{"a", "one"},
		[]string{"b", "two"},
		[]string{"", "blank"},
	)
	right := New(
		[]string{"extra", "id"},
		[]string{"x1", "a"},
		[]string{"x2", "a"},
		[]string{"x3", "c"},
		[]string{"x4", ""},
	)

	tests := []struct {
		name string
		how  JoinHow

		wantRows [][]string
	}{
		{
			name: "left join fans out and keeps unmatched rows",
			how:  JoinLeft,

			wantRows: [][]string{
				{"a", "one", "x1"},
				{"a", "one", "x2"},
				{"b", "two", ""},
				{"", "blank", ""},
			},
		},
		{
			name: "inner join drops unmatched rows",
			how:  JoinInner,

			wantRows: [][]string{
				{"a", "one", "x1"},
				{"a", "one", "x2"},
			},
		},
		{
			name: "outer join appends unmatched right rows",
			how:  JoinOuter,

			wantRows: [][]string{
				{"a", "one", "x1"},
				{"a", "one", "x2"},
				{"b", "two", ""},
				{"", "blank", ""},
				{"c", "", "x3"},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := left.Join(right, "id", tc.how)
			require.NoError(t, err)
			require.Equal(t, []string{"id", "payload", "extra"}, got.Columns())
			require.Empty(t, cmp.Diff(tc.wantRows, got.Rows()))
		})
	}
}

func TestTable_JoinMissingKeyColumn(t *testing.T) {
	t.Parallel()

	left := New([]string{"id"}, []string{"a"})
	right := New([]string{"other"}, []string{"b"})

	_, err := left.Join(right, "id", JoinLeft)
	colErr := &ColumnError{}
	require.True(t, errors.As(err, &colErr))
	require.Equal(t, "id", colErr.Column)
}

func TestReadWriteCSV(t *testing.T) {
	t.Parallel()

	in := "id,name\na,alpha\nb,\"beta, maybe\"\n"
	got, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []string{"id", "name"}, got.Columns())
	require.Empty(t, cmp.Diff([][]string{{"a", "alpha"}, {"b", "beta, maybe"}}, got.Rows()))

	var out strings.Builder
	require.NoError(t, got.WriteCSV(&out))
	require.Equal(t, in, out.String())
}

func TestReadCSV_Errors(t *testing.T) {
	t.Parallel()

	_, err := ReadCSV(strings.NewReader(""))
	require.Error(t, err)

	_, err = ReadCSV(strings.NewReader("a,b\nonly_one"))
	require.Error(t, err)
}

func TestReadTSV(t *testing.T) {
	t.Parallel()

	in := "Gene stable ID version\tHGNC symbol\nENSG00000000003.16\tTSPAN6\n"
	got, err := ReadTSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []string{"Gene stable ID version", "HGNC symbol"}, got.Columns())
	require.Empty(t, cmp.Diff([][]string{{"ENSG00000000003.16", "TSPAN6"}}, got.Rows()))
}
