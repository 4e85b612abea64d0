// =============================================================================
// XML Contract Corrector - Reference Data Sources
// =============================================================================
//
// Strategies for acquiring the reference table. A source either returns a
// loaded table or a *LoadError; it never falls back on its own. Fallback is
// an explicit composition decision made by the caller via Chain, typically
// gated on the allow_demo_data configuration flag.
//
// SOURCES:
//   - HTTPSource : fetches the published CSV over HTTP with a TTL cache
//   - FileSource : reads a local .csv or .xlsx file
//   - DemoSource : the built-in demonstration dataset
//   - Chain      : primary source with an explicit fallback
//
// A LoadError is fatal to a batch: no document can be resolved without the
// table, so the driver reports a single batch-level failure and processes
// nothing.
//
// =============================================================================

package refdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// LoadError wraps a reference table acquisition failure. It is fatal to the
// batch that needed the table.
type LoadError struct {
	// Source names the failed source, e.g. "http" or a file path.
	Source string

	// Err is the underlying cause.
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("reference table unavailable from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Source is a reference table acquisition strategy.
type Source interface {
	// Load returns the reference table, or a *LoadError.
	Load(ctx context.Context) (*Table, error)

	// Name identifies the source in logs and error messages.
	Name() string
}

// =============================================================================
// HTTP SOURCE
// =============================================================================

// DefaultCacheTTL is how long a fetched table is served from cache when no
// TTL is configured.
const DefaultCacheTTL = 15 * time.Minute

// HTTPSource fetches the published reference CSV over HTTP and caches the
// parsed table for a TTL, so repeated batch runs do not refetch it.
type HTTPSource struct {
	// URL is the location of the published CSV.
	URL string

	// TTL is the cache lifetime. Zero means DefaultCacheTTL.
	TTL time.Duration

	// Client is the HTTP client. Nil means http.DefaultClient.
	Client *http.Client

	// Logger receives fetch and cache events; nil is allowed.
	Logger *zap.Logger

	mu        sync.Mutex
	cached    *Table
	fetchedAt time.Time
	now       func() time.Time // test hook
}

// Name implements Source.
func (s *HTTPSource) Name() string {
	return "http"
}

// Load returns the cached table when it is still fresh, otherwise fetches
// and parses the CSV. A fetch failure never serves stale data; the table
// either loads or the batch fails.
func (s *HTTPSource) Load(ctx context.Context) (*Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	now := time.Now
	if s.now != nil {
		now = s.now
	}
	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	if s.cached != nil && now().Sub(s.fetchedAt) < ttl {
		logger.Debug("serving reference table from cache",
			zap.Time("fetched_at", s.fetchedAt))
		return s.cached, nil
	}

	table, err := s.fetch(ctx, logger)
	if err != nil {
		return nil, &LoadError{Source: s.Name(), Err: err}
	}

	s.cached = table
	s.fetchedAt = now()
	return table, nil
}

// fetch performs one HTTP GET and parses the body.
func (s *HTTPSource) fetch(ctx context.Context, logger *zap.Logger) (*Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	table, err := ParseCSV(resp.Body, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("reference table fetched",
		zap.String("url", s.URL),
		zap.Int("records", table.Len()))
	return table, nil
}

// =============================================================================
// FILE SOURCE
// =============================================================================

// FileSource reads the reference table from a local file. The format is
// chosen by extension: .xlsx goes through the workbook loader, everything
// else is treated as CSV.
type FileSource struct {
	// Path is the table file path.
	Path string

	// Logger receives duplicate-key warnings; nil is allowed.
	Logger *zap.Logger
}

// Name implements Source.
func (s *FileSource) Name() string {
	return s.Path
}

// Load implements Source.
func (s *FileSource) Load(ctx context.Context) (*Table, error) {
	_ = ctx // local reads have no cancellation point

	var (
		table *Table
		err   error
	)
	if strings.EqualFold(filepath.Ext(s.Path), ".xlsx") {
		table, err = ParseXLSX(s.Path, s.Logger)
	} else {
		table, err = parseCSVFile(s.Path, s.Logger)
	}
	if err != nil {
		return nil, &LoadError{Source: s.Name(), Err: err}
	}
	return table, nil
}

// =============================================================================
// CHAIN
// =============================================================================

// Chain tries a primary source and, only on failure, an explicitly chosen
// fallback. The fallback decision belongs to configuration; construct a
// Chain only when the operator opted in.
type Chain struct {
	// Primary is tried first.
	Primary Source

	// Fallback is tried when Primary fails.
	Fallback Source

	// Logger records the substitution; nil is allowed.
	Logger *zap.Logger
}

// Name implements Source.
func (c *Chain) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", c.Primary.Name(), c.Fallback.Name())
}

// Load implements Source.
func (c *Chain) Load(ctx context.Context) (*Table, error) {
	table, err := c.Primary.Load(ctx)
	if err == nil {
		return table, nil
	}

	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Warn("primary reference source failed, using fallback",
		zap.String("primary", c.Primary.Name()),
		zap.String("fallback", c.Fallback.Name()),
		zap.Error(err))

	return c.Fallback.Load(ctx)
}
