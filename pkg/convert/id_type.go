// SPDX-License-Identifier: Apache-2.0

package convert

import "fmt"

// IdType is one of the supported gene identifier namespaces. Its string
// value doubles as the column name holding that namespace in the
// reference table.
type IdType string

const (
	EnsemblGeneVersion       = IdType("ensg_version")
	EnsemblGene              = IdType("ensg")
	EnsemblTranscriptVersion = IdType("enst_version")
	EnsemblTranscript        = IdType("enst")
	NCBIGene                 = IdType("ncbi_gene_id")
	RefSeqRNA                = IdType("refseq_rna_id")
	HGNCID                   = IdType("hgnc_id")
	HGNCSymbol               = IdType("hgnc_symbol")
)

// idTypes is the closed set of recognised namespaces, in the order they
// are reported to the user.
var idTypes = []IdType{
	EnsemblGeneVersion,
	EnsemblGene,
	EnsemblTranscriptVersion,
	EnsemblTranscript,
	NCBIGene,
	RefSeqRNA,
	HGNCID,
	HGNCSymbol,
}

// IdTypes returns all supported identifier namespaces.
func IdTypes() []IdType {
	return append([]IdType(nil), idTypes...)
}

// ParseIdType validates a namespace token from a conversion string.
func ParseIdType(token string) (IdType, error) {
	for _, t := range idTypes {
		if string(t) == token {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown id type %q", token)
}

// Column is the reference table column holding this namespace.
func (t IdType) Column() string {
	return string(t)
}
