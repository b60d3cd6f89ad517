// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/MrHedmad/panid/pkg/backoff"
	"github.com/MrHedmad/panid/pkg/biomart"
	"github.com/MrHedmad/panid/pkg/convert"
	"github.com/MrHedmad/panid/pkg/refcache"
)

// DefaultCacheFile is where the reference table artifact lives unless
// configured otherwise.
const DefaultCacheFile = "/var/tmp/panid_cache/ID_data.csv"

func Load() error {
	return LoadFile(viper.GetString("config"))
}

func LoadFile(file string) error {
	if file != "" {
		viper.SetConfigFile(file)
		viper.SetConfigType(filepath.Ext(file)[1:])
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

func LogLevel() string {
	if viper.GetBool("verbose") {
		return "debug"
	}
	switch {
	case viper.GetString("log-level") != "":
		// CLI argument
		return viper.GetString("log-level")
	case viper.GetString("PANID_LOG_LEVEL") != "":
		// env config
		return viper.GetString("PANID_LOG_LEVEL")
	default:
		return "info"
	}
}

func InputFile() string {
	return viper.GetString("input_file")
}

func OutputFile() string {
	return viper.GetString("output")
}

func CacheConfig() *refcache.Config {
	location := viper.GetString("cache-file")
	if location == "" {
		location = viper.GetString("PANID_CACHE_FILE")
	}
	if location == "" {
		location = DefaultCacheFile
	}

	timeout := viper.GetDuration("cache-timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("PANID_CACHE_TIMEOUT")
	}

	requiredColumns := make([]string, 0, len(convert.IdTypes()))
	for _, idType := range convert.IdTypes() {
		requiredColumns = append(requiredColumns, idType.Column())
	}

	return &refcache.Config{
		Location:        location,
		Timeout:         timeout,
		RequiredColumns: requiredColumns,
	}
}

func BiomartConfig() *biomart.Config {
	url := viper.GetString("biomart-url")
	if url == "" {
		url = viper.GetString("PANID_BIOMART_URL")
	}

	initialInterval := viper.GetDuration("PANID_BIOMART_BACKOFF_INITIAL_INTERVAL")
	if initialInterval == 0 {
		initialInterval = time.Second
	}
	maxInterval := viper.GetDuration("PANID_BIOMART_BACKOFF_MAX_INTERVAL")
	if maxInterval == 0 {
		maxInterval = time.Minute
	}
	maxRetries := viper.GetUint("PANID_BIOMART_BACKOFF_MAX_RETRIES")
	if maxRetries == 0 {
		maxRetries = 3
	}

	return &biomart.Config{
		URL: url,
		Backoff: backoff.Config{
			Exponential: &backoff.ExponentialConfig{
				InitialInterval: initialInterval,
				MaxInterval:     maxInterval,
				MaxRetries:      maxRetries,
			},
		},
		// the download bars are only worth rendering when info logs are
		// visible, the program should otherwise run silently
		ShowProgress: LogLevel() == "debug" || LogLevel() == "info" || LogLevel() == "trace",
	}
}
