// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"context"
	"fmt"
	"io"

	loglib "github.com/MrHedmad/panid/pkg/log"
	"github.com/MrHedmad/panid/pkg/table"
)

// ReferenceProvider supplies the merged identifier mapping table. The
// table is read only for the duration of a run.
type ReferenceProvider interface {
	Get(ctx context.Context) (table.Table, error)
}

// Pipeline reads an input table, loads the reference table and applies an
// ordered list of conversions, writing the converted table out.
type Pipeline struct {
	provider ReferenceProvider
	logger   loglib.Logger
}

func NewPipeline(provider ReferenceProvider, logger loglib.Logger) *Pipeline {
	return &Pipeline{
		provider: provider,
		logger: loglib.NewLogger(logger).WithFields(loglib.Fields{
			loglib.ModuleField: "convert_pipeline",
		}),
	}
}

// Run applies the conversion strings in order to the CSV table read from
// in, writing the result as CSV to out. Conversions are strictly
// sequential: each one sees the output of the previous one, so chains
// like raw id to gene id to symbol work on intermediate columns. The
// final table is deduplicated before writing.
//
// Any failure aborts the run before anything is written to out.
func (p *Pipeline) Run(ctx context.Context, in io.Reader, out io.Writer, rawSpecs []string) error {
	specs, err := ParseSpecs(rawSpecs)
	if err != nil {
		return err
	}

	ref, err := p.provider.Get(ctx)
	if err != nil {
		return fmt.Errorf("loading reference table: %w", err)
	}

	working, err := table.ReadCSV(in)
	if err != nil {
		return fmt.Errorf("reading input table: %w", err)
	}

	converted, err := p.apply(working, specs, ref)
	if err != nil {
		return err
	}

	if err := converted.WriteCSV(out); err != nil {
		return fmt.Errorf("writing output table: %w", err)
	}
	return nil
}

func (p *Pipeline) apply(working table.Table, specs []Spec, ref table.Table) (table.Table, error) {
	for i, spec := range specs {
		p.logger.Info("applying conversion", loglib.Fields{
			"conversion": spec.String(),
			"position":   i + 1,
			"total":      len(specs),
		})
		if !working.HasColumn(spec.SourceColumn) {
			return table.Table{}, &MissingColumnError{
				SpecIndex: i,
				Column:    spec.SourceColumn,
				Available: working.Columns(),
			}
		}
		converted, err := Apply(working, spec, ref)
		if err != nil {
			return table.Table{}, fmt.Errorf("applying conversion %d: %w", i+1, err)
		}
		working = converted
	}
	return working.Dedupe(), nil
}
