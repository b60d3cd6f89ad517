// SPDX-License-Identifier: Apache-2.0

// Package biomart retrieves identifier mapping tables from the Ensembl
// BioMart service and assembles them into the single reference table the
// conversion engine joins against.
package biomart

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	httplib "github.com/MrHedmad/panid/internal/http"
	"github.com/MrHedmad/panid/internal/progress"
	backofflib "github.com/MrHedmad/panid/pkg/backoff"
	loglib "github.com/MrHedmad/panid/pkg/log"
	"github.com/MrHedmad/panid/pkg/table"
)

type Config struct {
	// URL of the martservice endpoint. Defaults to DefaultURL.
	URL string
	// Backoff is the retry policy for the dataset requests. Defaults to
	// no retries.
	Backoff backofflib.Config
	// ShowProgress renders a byte progress bar per download. The bars are
	// there to check on very long downloads, biomart can be slow.
	ShowProgress bool
}

func (c *Config) url() string {
	if c.URL == "" {
		return DefaultURL
	}
	return c.URL
}

// Client fetches and merges the per-namespace mapping tables.
type Client struct {
	httpClient      httplib.Client
	backoffProvider backofflib.Provider
	logger          loglib.Logger
	url             string
	barBuilder      func(totalBytes int64, description string) progress.Bar
}

type Option func(*Client)

func NewClient(cfg *Config, opts ...Option) *Client {
	c := &Client{
		httpClient:      &http.Client{},
		backoffProvider: backofflib.NewProvider(&cfg.Backoff),
		logger:          loglib.NewNoopLogger(),
		url:             cfg.url(),
		barBuilder: func(totalBytes int64, description string) progress.Bar {
			if !cfg.ShowProgress {
				return progress.NoopBar{}
			}
			return progress.NewBytesBar(totalBytes, description)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithHTTPClient(client httplib.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

func WithLogger(logger loglib.Logger) Option {
	return func(c *Client) {
		c.logger = loglib.NewLogger(logger).WithFields(loglib.Fields{
			loglib.ModuleField: "biomart_client",
		})
	}
}

// FetchIDTable downloads all attribute groups and merges them into the
// reference table: an outer join on the versioned gene id, normalized
// column names, the two RefSeq columns coalesced into one, and
// unversioned id columns derived from the versioned ones.
func (c *Client) FetchIDTable(ctx context.Context) (table.Table, error) {
	c.logger.Info("starting to retrieve from biomart")

	merged := table.Table{}
	for i, name := range datasetOrder {
		c.logger.Info("retrieving dataset", loglib.Fields{"dataset": name})
		t, err := c.fetchDataset(ctx, name, datasetQueries[name])
		if err != nil {
			return table.Table{}, err
		}
		if i == 0 {
			merged = t
			continue
		}
		merged, err = merged.Join(t, "gene_stable_id_version", table.JoinOuter)
		if err != nil {
			return table.Table{}, fmt.Errorf("merging %s dataset: %w", name, err)
		}
	}
	c.logger.Info("got all necessary data from biomart")

	return cleanup(merged)
}

func (c *Client) fetchDataset(ctx context.Context, name, query string) (table.Table, error) {
	var body []byte
	op := func() error {
		var err error
		body, err = c.get(ctx, name, query)
		return err
	}
	notify := func(err error, wait time.Duration) {
		c.logger.Warn(err, "biomart request failed, retrying", loglib.Fields{
			"dataset": name,
			"backoff": wait,
		})
	}
	if err := c.backoffProvider(ctx).RetryNotify(op, notify); err != nil {
		fetchErr := &FetchError{}
		if errors.As(err, &fetchErr) {
			return table.Table{}, fetchErr
		}
		return table.Table{}, &FetchError{Dataset: name, Err: err}
	}

	t, err := table.ReadTSV(bytes.NewReader(body))
	if err != nil {
		return table.Table{}, &FetchError{Dataset: name, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return normalizeColumns(t), nil
}

func (c *Client) get(ctx context.Context, name, query string) ([]byte, error) {
	reqURL := fmt.Sprintf("%s?%s", c.url, url.Values{"query": []string{query}}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", backofflib.ErrPermanent, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fetchErr := &FetchError{Dataset: name, Status: resp.StatusCode, Err: errors.New(resp.Status)}
		if resp.StatusCode >= 500 {
			// server side failures are worth a retry
			return nil, fetchErr
		}
		return nil, fmt.Errorf("%w: %w", backofflib.ErrPermanent, fetchErr)
	}

	// ContentLength is -1 when the response does not announce a size, the
	// bar degrades to a spinner.
	total := resp.ContentLength
	if total < 0 {
		total = 0
	}
	bar := c.barBuilder(total, "downloading "+name)
	defer bar.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.TeeReader(resp.Body, barWriter{bar})); err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return buf.Bytes(), nil
}

// barWriter advances a progress bar as response bytes flow through a
// TeeReader.
type barWriter struct {
	bar progress.Bar
}

func (w barWriter) Write(p []byte) (int, error) {
	if err := w.bar.Add(len(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// normalizeColumns lowercases the biomart headers and replaces spaces
// with underscores, since biomart capitalization is not dependable.
func normalizeColumns(t table.Table) table.Table {
	out := t
	for _, col := range t.Columns() {
		normalized := strings.ReplaceAll(strings.TrimSpace(strings.ToLower(col)), " ", "_")
		if normalized == col {
			continue
		}
		// column always present, rename cannot fail here
		out, _ = out.Rename(col, normalized)
	}
	return out
}
