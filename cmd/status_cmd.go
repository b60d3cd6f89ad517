// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MrHedmad/panid/cmd/config"
	jsonlib "github.com/MrHedmad/panid/internal/json"
	"github.com/MrHedmad/panid/pkg/convert"
	"github.com/MrHedmad/panid/pkg/refcache"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Status reports the state of the cached reference table and the supported namespaces",
	RunE:  withSignalWatcher(status),
}

func init() {
	statusCmd.Flags().Bool("json", false, "Output the status in JSON format")
}

type statusOutput struct {
	Cache      refcache.Status `json:"cache"`
	Namespaces []string        `json:"namespaces"`
}

func status(ctx context.Context, _ []string) error {
	// status never triggers a rebuild, so the builder is left nil
	cache := refcache.New(config.CacheConfig(), nil)

	namespaces := make([]string, 0, len(convert.IdTypes()))
	for _, idType := range convert.IdTypes() {
		namespaces = append(namespaces, idType.Column())
	}

	output := statusOutput{
		Cache:      cache.Status(),
		Namespaces: namespaces,
	}

	if viper.GetBool("json") {
		statusBytes, err := jsonlib.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling status: %w", err)
		}
		fmt.Println(string(statusBytes))
		return nil
	}

	fmt.Printf("Cache artifact: %s\n", output.Cache.Location)
	switch {
	case !output.Cache.Exists:
		fmt.Println("State: absent (next run will fetch from biomart)")
	case output.Cache.Stale:
		fmt.Printf("State: stale, %ds old (next run will fetch from biomart)\n", output.Cache.Age)
	default:
		fmt.Printf("State: fresh, %ds old\n", output.Cache.Age)
	}
	fmt.Printf("Supported namespaces:\n")
	for _, namespace := range namespaces {
		fmt.Printf("  - %s\n", namespace)
	}
	return nil
}
