// SPDX-License-Identifier: Apache-2.0

// Package refcache persists the reference mapping table to disk and
// rebuilds it through a builder callback once the artifact goes stale.
// Freshness is judged on the artifact's mtime.
package refcache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	loglib "github.com/MrHedmad/panid/pkg/log"
	"github.com/MrHedmad/panid/pkg/table"
)

// DefaultTimeout is the staleness window of the cached artifact, 604800
// seconds.
const DefaultTimeout = 7 * 24 * time.Hour

// Builder produces a fresh reference table. It is invoked only on cache
// misses and may block on network I/O for a long time.
type Builder func(ctx context.Context) (table.Table, error)

type Config struct {
	// Location is the path of the cached CSV artifact.
	Location string
	// Timeout is the staleness window. Defaults to DefaultTimeout.
	Timeout time.Duration
	// RequiredColumns, when set, must all be present in a loaded
	// artifact; an artifact missing any is treated as unreadable and
	// triggers a rebuild.
	RequiredColumns []string
}

type Cache struct {
	location        string
	timeout         time.Duration
	requiredColumns []string
	builder         Builder
	clock           clockwork.Clock
	logger          loglib.Logger
}

type Option func(*Cache)

func New(cfg *Config, builder Builder, opts ...Option) *Cache {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	c := &Cache{
		location:        cfg.Location,
		timeout:         timeout,
		requiredColumns: cfg.RequiredColumns,
		builder:         builder,
		clock:           clockwork.NewRealClock(),
		logger:          loglib.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithClock(clock clockwork.Clock) Option {
	return func(c *Cache) {
		c.clock = clock
	}
}

func WithLogger(logger loglib.Logger) Option {
	return func(c *Cache) {
		c.logger = loglib.NewLogger(logger).WithFields(loglib.Fields{
			loglib.ModuleField: "reference_cache",
		})
	}
}

// Get returns the cached reference table, rebuilding the artifact first
// when it is absent, stale or unreadable. A failed rebuild leaves any
// previous artifact untouched.
func (c *Cache) Get(ctx context.Context) (table.Table, error) {
	if c.Stale() {
		c.logger.Info("cache artifact absent or stale, rebuilding", loglib.Fields{
			"location": c.location,
		})
		if err := c.Rebuild(ctx); err != nil {
			return table.Table{}, err
		}
		return c.load()
	}

	t, err := c.load()
	if err != nil {
		readErr := &ReadError{}
		if !errors.As(err, &readErr) {
			return table.Table{}, err
		}
		// a corrupt artifact is as good as a missing one
		c.logger.Warn(err, "cache artifact unreadable, rebuilding", loglib.Fields{
			"location": c.location,
		})
		if err := c.Rebuild(ctx); err != nil {
			return table.Table{}, err
		}
		return c.load()
	}
	return t, nil
}

// Stale reports whether the artifact is absent or older than the
// staleness window.
func (c *Cache) Stale() bool {
	info, err := os.Stat(c.location)
	if err != nil {
		return true
	}
	return info.ModTime().Before(c.clock.Now().Add(-c.timeout))
}

// Rebuild invokes the builder and atomically replaces the artifact. The
// fresh table is written to a temporary file next to the artifact and
// renamed over it only once fully written, so a failure part way through
// can never leave a truncated cache behind.
func (c *Cache) Rebuild(ctx context.Context) error {
	dir := filepath.Dir(c.location)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	t, err := c.builder(ctx)
	if err != nil {
		return fmt.Errorf("rebuilding reference table: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(c.location)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating cache temp file: %w", err)
	}
	if err := t.WriteCSV(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing cache artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing cache temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.location); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing cache artifact: %w", err)
	}
	c.logger.Info("cache artifact rebuilt", loglib.Fields{"location": c.location})
	return nil
}

func (c *Cache) load() (table.Table, error) {
	f, err := os.Open(c.location)
	if err != nil {
		return table.Table{}, fmt.Errorf("opening cache artifact: %w", err)
	}
	defer f.Close()

	t, err := table.ReadCSV(f)
	if err != nil {
		return table.Table{}, &ReadError{Location: c.location, Err: err}
	}
	for _, col := range c.requiredColumns {
		if !t.HasColumn(col) {
			return table.Table{}, &ReadError{
				Location: c.location,
				Err:      fmt.Errorf("artifact is missing column %q", col),
			}
		}
	}
	return t, nil
}

// Status describes the artifact on disk, for operator reporting.
type Status struct {
	Location string        `json:"location"`
	Exists   bool          `json:"exists"`
	Stale    bool          `json:"stale"`
	Age      time.Duration `json:"age_seconds"`
	Timeout  time.Duration `json:"timeout_seconds"`
}

func (c *Cache) Status() Status {
	status := Status{
		Location: c.location,
		Timeout:  c.timeout / time.Second,
		Stale:    true,
	}
	info, err := os.Stat(c.location)
	if err != nil {
		return status
	}
	status.Exists = true
	status.Age = c.clock.Now().Sub(info.ModTime()) / time.Second
	status.Stale = c.Stale()
	return status
}
