// internal/httpserver/routes_game.go
//
// HTTP routes for playing a puzzle. All state is per device.
//   - GET  /game         → select a day (query `day`), load the puzzle, restore guesses (query `data`)
//   - POST /game/guess   → submit a word against the loaded puzzle
//   - POST /game/day     → turn a picked calendar date into a `day` value
//   - GET  /game/random  → a random `day` value
//   - GET  /game/levels  → level ladder for the current score
//   - GET  /game/words   → found words, alphabetical, with points
//   - GET  /game/share   → continuation link carrying the found words
//
// The `day` and `data` parameters mirror the page fragment the web client
// keeps. `data` is one-shot: responses report consumedData so the client
// drops it from its address bar.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/freebee/internal/daily"
	"github.com/robalobadob/freebee/internal/game"
	"github.com/robalobadob/freebee/internal/session"
)

// CopiedMessage is shown after a share link is produced.
const CopiedMessage = "Copied game link"

// mountGame registers all /game routes.
func (s *Server) mountGame(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Get("/", s.handleLoad)
		r.Post("/guess", s.handleGuess)
		r.Post("/day", s.handlePickDate)
		r.Get("/random", s.handleRandom)
		r.Get("/levels", s.handleLevels)
		r.Get("/words", s.handleWords)
		r.Get("/share", s.handleShare)
	})
}

// -----------------------------------------------------------------------------
// GET /game

// gameRes is the board plus progress returned by /game.
type gameRes struct {
	Day          string   `json:"day"`
	Key          string   `json:"key"`
	Message      string   `json:"message"`
	Letters      string   `json:"letters"`
	Center       string   `json:"center"`
	WordCount    int      `json:"wordCount"`
	Total        int      `json:"total"`
	Guessed      []string `json:"guessed"` // most recent first
	Score        int      `json:"score"`
	Level        string   `json:"level"`
	PointsToNext *int     `json:"pointsToNext,omitempty"`
	ConsumedData bool     `json:"consumedData"`
}

// supersededRes answers a load that a newer selection overtook. Its blob, if
// any, was read but not stored.
type supersededRes struct {
	Error        string `json:"error"`
	ConsumedData bool   `json:"consumedData"`
}

// handleLoad resolves the day, fetches the puzzle and restores progress.
// A failed fetch leaves the device Loading; a response overtaken by a newer
// selection from the same device is discarded.
func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	dev := deviceID(r)
	q := r.URL.Query()
	day := strings.TrimSpace(q.Get("day"))
	blob := q.Get("data")

	key, err := s.codec.Resolve(day)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid_day", err.Error())
		return
	}
	d, _ := daily.Decode(key) // Resolve only hands back decodable keys
	if err := s.codec.CheckSelectable(d.Time(s.codec.Zone())); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid_day", err.Error())
		return
	}
	canonical := day
	if canonical == "" {
		canonical = key
	}

	ctrl := s.controller(dev)
	ticket := ctrl.Select(key, canonical)

	p, err := s.fetcher.Fetch(r.Context(), key)
	if err != nil {
		ctrl.Fail(ticket)
		log.Warn().Err(err).Str("device", dev).Str("key", key).Msg("no puzzle")
		writeError(w, http.StatusNotFound, "no_puzzle")
		return
	}

	restored := s.engine.Resolve(r.Context(), dev, p, blob)
	sess := session.New(p, restored.Words)
	if !ctrl.Ready(ticket, sess) {
		writeJSON(w, http.StatusConflict, supersededRes{Error: "superseded", ConsumedData: restored.ConsumeBlob})
		return
	}
	s.engine.Adopt(r.Context(), dev, p, restored)

	msg := s.codec.Message(day)
	if restored.Message != "" {
		msg = restored.Message
	}
	res := gameRes{
		Day:          canonical,
		Key:          key,
		Message:      msg,
		Letters:      p.Letters,
		Center:       p.Center,
		WordCount:    p.WordCount(),
		Total:        p.Total,
		Guessed:      sess.Recent(),
		Score:        sess.Score(),
		Level:        sess.Level().Name,
		ConsumedData: restored.ConsumeBlob,
	}
	if n, ok := sess.PointsToNext(); ok {
		res.PointsToNext = &n
	}
	writeJSON(w, http.StatusOK, res)
}

// -----------------------------------------------------------------------------
// POST /game/guess

type guessReq struct {
	Word string `json:"word"`
}

type guessRes struct {
	session.Accepted
	Score        int    `json:"score"`
	Level        string `json:"level"`
	PointsToNext *int   `json:"pointsToNext,omitempty"`
}

// handleGuess validates and records a guess for the device's current puzzle.
// Rejections are 422 with the player-facing reason in message.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	dev := deviceID(r)

	var res guessRes
	err := s.controller(dev).Do(func(sess *session.Session, _ session.Ticket) error {
		a, err := s.engine.Submit(r.Context(), dev, sess, req.Word)
		if err != nil && !game.IsRejection(err) {
			// the guess stands in memory; the next successful write carries it
			log.Warn().Err(err).Str("device", dev).Msg("persist guesses")
			err = nil
		}
		if err != nil {
			return err
		}
		res = guessRes{Accepted: a, Score: sess.Score(), Level: sess.Level().Name}
		if n, ok := sess.PointsToNext(); ok {
			res.PointsToNext = &n
		}
		return nil
	})
	switch {
	case errors.Is(err, session.ErrNotReady):
		writeError(w, http.StatusConflict, "no_puzzle_loaded")
	case game.IsRejection(err):
		writeMessage(w, http.StatusUnprocessableEntity, "rejected", err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, "server_error")
	default:
		writeJSON(w, http.StatusOK, res)
	}
}

// -----------------------------------------------------------------------------
// POST /game/day, GET /game/random

type pickReq struct {
	Date string `json:"date"` // YYYY-MM-DD, as a date input reports it
}

type dayRes struct {
	Day string `json:"day"`
}

// handlePickDate validates a picked date and returns the `day` value to load.
func (s *Server) handlePickDate(w http.ResponseWriter, r *http.Request) {
	var req pickReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(req.Date), s.codec.Zone())
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid_day", daily.ErrInvalidKey.Error())
		return
	}
	if err := s.codec.CheckSelectable(t); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid_day", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, dayRes{Day: s.codec.DayParam(t)})
}

// handleRandom returns a random day between the oldest puzzle and today.
func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dayRes{Day: s.codec.Random(nil)})
}

// -----------------------------------------------------------------------------
// GET /game/levels, /game/words

type levelsRes struct {
	Score        int         `json:"score"`
	Level        string      `json:"level"`
	PointsToNext *int        `json:"pointsToNext,omitempty"`
	Ladder       []game.Rung `json:"ladder"` // lowest first
}

func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	var res levelsRes
	err := s.controller(deviceID(r)).Do(func(sess *session.Session, _ session.Ticket) error {
		res = levelsRes{Score: sess.Score(), Level: sess.Level().Name, Ladder: sess.Ladder()}
		if n, ok := sess.PointsToNext(); ok {
			res.PointsToNext = &n
		}
		return nil
	})
	if err != nil {
		writeError(w, http.StatusConflict, "no_puzzle_loaded")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type wordsRes struct {
	Count int                 `json:"count"`
	Words []session.WordScore `json:"words"`
}

func (s *Server) handleWords(w http.ResponseWriter, r *http.Request) {
	var res wordsRes
	err := s.controller(deviceID(r)).Do(func(sess *session.Session, _ session.Ticket) error {
		res = wordsRes{Count: sess.Len(), Words: sess.Sorted()}
		return nil
	})
	if err != nil {
		writeError(w, http.StatusConflict, "no_puzzle_loaded")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// -----------------------------------------------------------------------------
// GET /game/share

type shareRes struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}

// handleShare builds PUBLIC_URL#day=<key>&data=<blob> for the current puzzle.
func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	var link string
	err := s.controller(deviceID(r)).Do(func(sess *session.Session, t session.Ticket) error {
		frag := url.Values{}
		frag.Set("day", t.Key) // absolute, so the link outlives "yesterday"
		frag.Set("data", session.ExportShareable(sess.Puzzle, sess.Words()))
		link = strings.SplitN(s.cfg.PublicURL, "#", 2)[0] + "#" + frag.Encode()
		return nil
	})
	if err != nil {
		writeError(w, http.StatusConflict, "no_puzzle_loaded")
		return
	}
	writeJSON(w, http.StatusOK, shareRes{URL: link, Message: CopiedMessage})
}
