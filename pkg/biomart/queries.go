// SPDX-License-Identifier: Apache-2.0

package biomart

import (
	"fmt"
	"strings"
)

// DefaultURL is the Ensembl BioMart martservice endpoint.
const DefaultURL = "https://asia.ensembl.org/biomart/martservice"

const baseXML = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE Query>
<Query  virtualSchemaName = "default" formatter = "TSV" header = "1" uniqueRows = "1" datasetConfigVersion = "0.6" >

	<Dataset name = "hsapiens_gene_ensembl" interface = "default" >
        %s
    </Dataset>
</Query>`

// GenXMLQuery renders a BioMart XML query asking for the given attributes
// of the human gene dataset.
func GenXMLQuery(attributes []string) string {
	queries := make([]string, 0, len(attributes))
	for _, item := range attributes {
		queries = append(queries, fmt.Sprintf(`<Attribute name = "%s" />`, item))
	}
	return fmt.Sprintf(baseXML, strings.Join(queries, "\n"))
}

// datasetQueries are the attribute groups fetched to assemble the
// reference table, one request each.
var datasetQueries = map[string]string{
	"entrez": GenXMLQuery([]string{"ensembl_gene_id_version", "entrezgene_id"}),
	"refseq": GenXMLQuery([]string{
		"ensembl_gene_id_version",
		"ensembl_transcript_id_version",
		"refseq_mrna",
		"refseq_ncrna",
	}),
	"symbols": GenXMLQuery([]string{"ensembl_gene_id_version", "hgnc_id", "hgnc_symbol"}),
}

// datasetOrder fixes the merge order of the per-namespace tables.
var datasetOrder = []string{"entrez", "refseq", "symbols"}
