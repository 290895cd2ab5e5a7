// internal/session/engine.go
//
// Persistence side of the session engine.
// Responsibilities:
//   - Restore a puzzle's found words from a shared blob or from the device store.
//   - Persist the full list after every accepted guess (one write, no batching).
//   - Encode/decode the shareable blob used by "continue on another device" links.
//
// Blob format: base64( letters + center + "|" + comma-joined words ).
// A blob is one-shot: Restore reports that it was consumed and the caller
// clears wherever it came from.

package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/freebee/internal/puzzle"
	"github.com/robalobadob/freebee/internal/store"
)

// RestoredMessage is shown when a shared blob replaced local progress.
const RestoredMessage = "Restored game guesses"

// ErrBadShare is returned for blobs that do not decode.
var ErrBadShare = errors.New("malformed share data")

// Engine loads and saves guess lists through a Store.
type Engine struct {
	Store store.Store
}

// NewEngine returns an Engine over st.
func NewEngine(st store.Store) *Engine {
	return &Engine{Store: st}
}

// Restored is the outcome of Restore.
type Restored struct {
	Words       []string
	FromShare   bool   // words came from the blob
	ConsumeBlob bool   // a blob was supplied; its source should be cleared
	Message     string // user notice, empty when nothing to say
}

// Restore picks the starting word list for p. A blob tagged with p's identity
// wins over the stored list and is written through immediately. Anything
// unreadable degrades to an empty list.
func (e *Engine) Restore(ctx context.Context, device string, p *puzzle.Puzzle, blob string) Restored {
	r := e.Resolve(ctx, device, p, blob)
	e.Adopt(ctx, device, p, r)
	return r
}

// Resolve is Restore without the write-through. Callers that may still
// discard the result persist it with Adopt once it is accepted.
func (e *Engine) Resolve(ctx context.Context, device string, p *puzzle.Puzzle, blob string) Restored {
	var r Restored
	if blob != "" {
		r.ConsumeBlob = true
		id, words, err := DecodeShareable(blob)
		switch {
		case err != nil:
			log.Warn().Err(err).Str("device", device).Msg("ignoring share data")
		case id == p.Identity():
			r.Words, r.FromShare, r.Message = New(p, words).Words(), true, RestoredMessage
			return r
		default:
			log.Debug().Str("device", device).Str("want", p.Identity()).Str("got", id).Msg("share data for another puzzle")
		}
	}
	r.Words = e.load(ctx, device, p)
	return r
}

// Adopt writes shared words from r through to the device store.
func (e *Engine) Adopt(ctx context.Context, device string, p *puzzle.Puzzle, r Restored) {
	if !r.FromShare {
		return
	}
	if err := e.Persist(ctx, device, p, r.Words); err != nil {
		log.Warn().Err(err).Str("device", device).Msg("persist restored guesses")
	}
}

func (e *Engine) load(ctx context.Context, device string, p *puzzle.Puzzle) []string {
	raw, ok, err := e.Store.Load(ctx, device, p.StorageKey())
	if err != nil {
		log.Warn().Err(err).Str("device", device).Str("key", p.StorageKey()).Msg("load guesses")
		return []string{}
	}
	if !ok {
		return []string{}
	}
	var words []string
	if err := json.Unmarshal([]byte(raw), &words); err != nil {
		log.Warn().Err(err).Str("device", device).Str("key", p.StorageKey()).Msg("stored guesses unreadable")
		return []string{}
	}
	if words == nil {
		words = []string{}
	}
	return words
}

// Persist writes the whole word list for p.
func (e *Engine) Persist(ctx context.Context, device string, p *puzzle.Puzzle, words []string) error {
	if words == nil {
		words = []string{}
	}
	b, err := json.Marshal(words)
	if err != nil {
		return err
	}
	return e.Store.Save(ctx, device, p.StorageKey(), string(b))
}

// Submit applies a guess to s and persists the new list when it is accepted.
// A failed write is returned alongside the acceptance.
func (e *Engine) Submit(ctx context.Context, device string, s *Session, word string) (Accepted, error) {
	a, err := s.Submit(word)
	if err != nil {
		return a, err
	}
	return a, e.Persist(ctx, device, s.Puzzle, s.Words())
}

// ExportShareable encodes the found words for a continuation link.
func ExportShareable(p *puzzle.Puzzle, words []string) string {
	raw := p.Identity() + "|" + strings.Join(words, ",")
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// DecodeShareable reverses ExportShareable, returning the identity tag and words.
func DecodeShareable(blob string) (identity string, words []string, err error) {
	// '+' often arrives as a space after a round through a query string.
	blob = strings.ReplaceAll(strings.TrimSpace(blob), " ", "+")
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", nil, errors.Join(ErrBadShare, err)
	}
	identity, list, ok := strings.Cut(string(raw), "|")
	if !ok {
		return "", nil, ErrBadShare
	}
	words = []string{}
	if list != "" {
		words = strings.Split(list, ",")
	}
	return identity, words, nil
}
