package refdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSourceFetchesAndCaches(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	src := &HTTPSource{URL: srv.URL, TTL: time.Hour}

	table, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, 1, hits)

	// A second load within the TTL is served from cache.
	again, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Same(t, table, again)
	assert.Equal(t, 1, hits)
}

func TestHTTPSourceRefetchesAfterTTL(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	current := time.Now()
	src := &HTTPSource{
		URL: srv.URL,
		TTL: time.Minute,
		now: func() time.Time { return current },
	}

	_, err := src.Load(context.Background())
	require.NoError(t, err)

	current = current.Add(2 * time.Minute)

	_, err = src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, hits)
}

func TestHTTPSourceErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	src := &HTTPSource{URL: srv.URL}

	_, err := src.Load(context.Background())
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "http", loadErr.Source)
}

func TestHTTPSourceUnreachable(t *testing.T) {
	src := &HTTPSource{URL: "http://127.0.0.1:1/commandes.csv"}

	_, err := src.Load(context.Background())
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestFileSourceCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commandes.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	src := &FileSource{Path: path}
	table, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
}

func TestFileSourceMissingFile(t *testing.T) {
	src := &FileSource{Path: filepath.Join(t.TempDir(), "absent.csv")}

	_, err := src.Load(context.Background())
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, src.Path, loadErr.Source)
}

func TestChainUsesPrimaryWhenHealthy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commandes.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	chain := &Chain{
		Primary:  &FileSource{Path: path},
		Fallback: DemoSource{},
	}

	table, err := chain.Load(context.Background())
	require.NoError(t, err)
	// The primary table resolves an id the demo table also carries; check a
	// field that differs per source shape instead: the primary has 2 rows
	// loaded from disk with the same content, so verify via KeyColumn.
	assert.Equal(t, "Numéro de commande", table.KeyColumn())
	assert.Equal(t, 2, table.Len())
}

func TestChainFallsBackOnFailure(t *testing.T) {
	chain := &Chain{
		Primary:  &FileSource{Path: filepath.Join(t.TempDir(), "absent.csv")},
		Fallback: DemoSource{},
	}

	table, err := chain.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	rec, err := table.Resolve("000646")
	require.NoError(t, err)
	assert.Equal(t, "Houria Gherras", rec.HRBP)
}
