// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/MrHedmad/panid/cmd/config"
	"github.com/MrHedmad/panid/pkg/biomart"
	"github.com/MrHedmad/panid/pkg/refcache"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh fetches a fresh reference table, replacing the cached one regardless of its age",
	RunE:  withSignalWatcher(refresh),
}

func refresh(ctx context.Context, _ []string) error {
	logger := newLogger()

	client := biomart.NewClient(config.BiomartConfig(), biomart.WithLogger(logger))
	cache := refcache.New(config.CacheConfig(), client.FetchIDTable, refcache.WithLogger(logger))

	return cache.Rebuild(ctx)
}
