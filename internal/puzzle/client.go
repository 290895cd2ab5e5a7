// internal/puzzle/client.go
//
// Read-only access to the static puzzle store.
// Responsibilities:
//   - Client: GET <base>/<dateKey>.json over HTTP.
//   - FSSource: the same lookup over an fs.FS (a directory or the embedded sample set).
//
// Notes:
//   - No retries and no caching beyond what the transport does natively.
//   - Every failure wraps ErrNoPuzzle so callers can treat them alike.

package puzzle

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the public static puzzle store.
const DefaultBaseURL = "https://ping.github.io/freebee-static/puzzles/"

// Fetcher resolves a puzzle document by date key.
type Fetcher interface {
	Fetch(ctx context.Context, key string) (*Puzzle, error)
}

// Client fetches puzzle documents from a remote static store.
type Client struct {
	base string
	http *http.Client
}

// NewClient builds a Client for base. A nil hc gets a 10s timeout client.
func NewClient(base string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{base: strings.TrimSuffix(base, "/") + "/", http: hc}
}

// URL returns the document address for key.
func (c *Client) URL(key string) string {
	return c.base + key + ".json"
}

// Fetch issues one GET for key.
func (c *Client) Fetch(ctx context.Context, key string) (*Puzzle, error) {
	url := c.URL(key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoPuzzle, err)
	}
	res, err := c.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("puzzle fetch failed")
		return nil, fmt.Errorf("%w: %v", ErrNoPuzzle, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		log.Error().Int("status", res.StatusCode).Str("url", url).Msg("puzzle fetch non-success")
		return nil, fmt.Errorf("%w: %s returned %d", ErrNoPuzzle, key, res.StatusCode)
	}
	p, err := Decode(res.Body)
	if err != nil {
		log.Error().Err(err).Str("url", url).Msg("puzzle document unusable")
		return nil, fmt.Errorf("%w: %v", ErrNoPuzzle, err)
	}
	return p, nil
}

// FSSource serves puzzle documents named <key>.json from a file system.
type FSSource struct {
	fsys fs.FS
	dir  string
}

// NewFSSource reads documents from dir inside fsys ("." for the root).
func NewFSSource(fsys fs.FS, dir string) *FSSource {
	return &FSSource{fsys: fsys, dir: dir}
}

// Fetch opens and decodes <dir>/<key>.json.
func (s *FSSource) Fetch(ctx context.Context, key string) (*Puzzle, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoPuzzle, err)
	}
	if strings.ContainsAny(key, `/\.`) || key == "" {
		return nil, fmt.Errorf("%w: bad key %q", ErrNoPuzzle, key)
	}
	f, err := s.fsys.Open(path.Join(s.dir, key+".json"))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Str("key", key).Msg("puzzle open failed")
		}
		return nil, fmt.Errorf("%w: %v", ErrNoPuzzle, err)
	}
	defer f.Close()

	p, err := Decode(f)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("puzzle document unusable")
		return nil, fmt.Errorf("%w: %v", ErrNoPuzzle, err)
	}
	return p, nil
}
