// Package fetch retrieves per-region restaurant datasets.
//
// Datasets are static JSON files at <base>/data/<region>.json. The base is
// either an http(s) URL (a deployed site) or a file:// URL (a local
// checkout), so the same Fetcher serves the TUI, the CLI and the server.
// One request per call. Retrying is the caller's decision.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/atomic"

	"github.com/abelbrown/aagag/internal/catalog"
	"github.com/abelbrown/aagag/internal/logging"
	"github.com/abelbrown/aagag/internal/model"
)

// maxDatasetBytes bounds a single dataset body.
const maxDatasetBytes = 32 << 20

// ErrUnknownRegion is returned for a region key outside the catalog.
var ErrUnknownRegion = errors.New("unknown region")

// StatusError is returned when the dataset request completes with a
// non-200 status.
type StatusError struct {
	Region string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: HTTP %d %s", e.Region, e.Code, http.StatusText(e.Code))
}

// Stats is a snapshot of the fetcher's counters.
type Stats struct {
	Requests int64
	Failures int64
}

// Fetcher retrieves datasets for the regions of one catalog.
type Fetcher struct {
	client  *http.Client
	base    string
	regions catalog.Catalog

	requests atomic.Int64
	failures atomic.Int64
}

// NewFetcher creates a Fetcher reading from base with the given timeout.
// A file:// base is served from the local filesystem.
func NewFetcher(base string, timeout time.Duration, regions catalog.Catalog) *Fetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.RegisterProtocol("file", http.NewFileTransport(http.Dir("/")))

	return &Fetcher{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		base:    strings.TrimRight(base, "/"),
		regions: regions,
	}
}

// Catalog returns the regions this fetcher accepts.
func (f *Fetcher) Catalog() catalog.Catalog {
	return f.regions
}

// URL returns the dataset location for region.
func (f *Fetcher) URL(region string) string {
	return f.base + "/data/" + url.PathEscape(region) + ".json"
}

// Fetch retrieves and decodes the dataset for region.
//
// The function respects context cancellation and will return early
// if the context is cancelled.
func (f *Fetcher) Fetch(ctx context.Context, region string) (*model.Dataset, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if _, ok := f.regions.Lookup(region); !ok {
		return nil, fmt.Errorf("fetch %q: %w", region, ErrUnknownRegion)
	}

	f.requests.Inc()
	ds, err := f.get(ctx, region)
	if err != nil {
		f.failures.Inc()
		logging.Warn("Dataset fetch failed", "region", region, "error", err)
		return nil, err
	}

	logging.Debug("Dataset fetched", "region", region, "entries", ds.Len(), "source", ds.Metadata.Source)
	return ds, nil
}

func (f *Fetcher) get(ctx context.Context, region string) (*model.Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL(region), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "aagag (https://github.com/abelbrown/aagag)")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", region, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Region: region, Code: resp.StatusCode}
	}

	var ds model.Dataset
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxDatasetBytes)).Decode(&ds); err != nil {
		return nil, fmt.Errorf("decode %s dataset: %w", region, err)
	}
	return &ds, nil
}

// Stats returns the current counters.
func (f *Fetcher) Stats() Stats {
	return Stats{
		Requests: f.requests.Load(),
		Failures: f.failures.Load(),
	}
}

// Close releases idle connections held by the client.
func (f *Fetcher) Close() {
	f.client.CloseIdleConnections()
}
