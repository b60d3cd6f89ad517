// SPDX-License-Identifier: Apache-2.0

package biomart

import (
	"fmt"
	"strings"

	"github.com/MrHedmad/panid/pkg/table"
)

// columnRenames maps the normalized biomart headers to the canonical
// reference table columns, matching the id type tokens.
var columnRenames = map[string]string{
	"gene_stable_id_version":             "ensg_version",
	"ncbi_gene_(formerly_entrezgene)_id": "ncbi_gene_id",
	"transcript_stable_id_version":       "enst_version",
	"refseq_mrna_id":                     "refseq_rna_id",
}

// cleanup turns the merged biomart download into the reference table: bad
// column names renamed, the mRNA and ncRNA RefSeq columns fused (they do
// not conflict), and unversioned gene and transcript id columns derived
// from the versioned ones.
func cleanup(merged table.Table) (table.Table, error) {
	var err error
	for old, renamed := range columnRenames {
		if !merged.HasColumn(old) {
			continue
		}
		merged, err = merged.Rename(old, renamed)
		if err != nil {
			return table.Table{}, fmt.Errorf("cleaning up reference table: %w", err)
		}
	}

	merged, err = merged.Coalesce("refseq_rna_id", "refseq_ncrna_id")
	if err != nil {
		return table.Table{}, fmt.Errorf("fusing refseq columns: %w", err)
	}
	merged, err = merged.Drop("refseq_ncrna_id")
	if err != nil {
		return table.Table{}, fmt.Errorf("fusing refseq columns: %w", err)
	}

	merged, err = merged.Derive("ensg", "ensg_version", DropVersion)
	if err != nil {
		return table.Table{}, fmt.Errorf("deriving unversioned gene ids: %w", err)
	}
	merged, err = merged.Derive("enst", "enst_version", DropVersion)
	if err != nil {
		return table.Table{}, fmt.Errorf("deriving unversioned transcript ids: %w", err)
	}
	return merged, nil
}

// DropVersion strips the version suffix, the last dot separated segment,
// from an identifier.
func DropVersion(id string) string {
	parts := strings.Split(id, ".")
	return strings.Join(parts[:len(parts)-1], ".")
}
