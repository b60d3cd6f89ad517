// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrHedmad/panid/cmd/config"
	"github.com/MrHedmad/panid/pkg/biomart"
	"github.com/MrHedmad/panid/pkg/convert"
	"github.com/MrHedmad/panid/pkg/refcache"
)

var convertCmd = &cobra.Command{
	Use:   "convert [flags] <conversion>...",
	Short: "Convert gene identifier columns of a csv file between namespaces",
	Long: `Convert applies each conversion string in order to the input table.

A conversion string is <from>:<type><symbol><to>:<type>[?<how>] where <from>
is the input column holding the IDs, <to> the name of the output column,
<type> one of the supported id namespaces, <symbol> either + (keep the input
column) or > (replace it), and <how> an optional inner or outer merge mode,
defaulting to outer.`,
	Args: cobra.MinimumNArgs(1),
	RunE: withSignalWatcher(runConvert),
}

func init() {
	convertCmd.Flags().String("input_file", "", "An input .csv file to convert (default: standard input)")
	convertCmd.Flags().String("output", "", "An output file to save to (default: standard output)")
}

func runConvert(ctx context.Context, args []string) error {
	logger := newLogger()

	in := io.Reader(os.Stdin)
	if inputFile := config.InputFile(); inputFile != "" {
		f, err := os.Open(inputFile)
		if err != nil {
			return fmt.Errorf("opening input file: %w", err)
		}
		defer f.Close()
		in = f
	}

	out := io.Writer(os.Stdout)
	if outputFile := config.OutputFile(); outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("opening output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	client := biomart.NewClient(config.BiomartConfig(), biomart.WithLogger(logger))
	cache := refcache.New(config.CacheConfig(), client.FetchIDTable, refcache.WithLogger(logger))

	return convert.NewPipeline(cache, logger).Run(ctx, in, out, args)
}
