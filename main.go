// main.go
//
// Entry point for the Freebee server.
// Responsibilities:
//   - Load .env and set the zerolog level.
//   - Pick the guess store (SQLite when DB_PATH is set, memory otherwise).
//   - Pick the puzzle source (local dir, embedded samples, or the remote bucket).
//   - Build the date codec for TIMEZONE and start the HTTP server.

package main

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/freebee/assets"
	"github.com/robalobadob/freebee/internal/daily"
	"github.com/robalobadob/freebee/internal/httpserver"
	"github.com/robalobadob/freebee/internal/puzzle"
	"github.com/robalobadob/freebee/internal/session"
	"github.com/robalobadob/freebee/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	production := getEnv("NODE_ENV", "development") == "production"
	if !production {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "UTC"))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid TIMEZONE")
	}

	st, closer := openStore(getEnv("DB_PATH", ""))
	if closer != nil {
		defer closer.Close()
	}

	srv := httpserver.New(httpserver.Config{
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		PublicURL:    getEnv("PUBLIC_URL", "http://localhost:5173/"),
		DeviceSecret: getEnv("DEVICE_SECRET", ""),
		Secure:       production,
	}, puzzleSource(), session.NewEngine(st), daily.NewCodec(loc))

	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Str("tz", loc.String()).Msg("starting freebee")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// openStore returns the guess store and, for SQLite, the handle to close.
func openStore(path string) (store.Store, io.Closer) {
	if path == "" {
		log.Info().Msg("guesses kept in memory")
		return store.NewMemoryStore(), nil
	}
	db, err := store.OpenSQLite(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("failed to open guess store")
	}
	log.Info().Str("path", path).Msg("guesses stored in sqlite")
	return db, db
}

func puzzleSource() puzzle.Fetcher {
	if dir := getEnv("PUZZLE_DIR", ""); dir != "" {
		log.Info().Str("dir", dir).Msg("serving puzzles from disk")
		return puzzle.NewFSSource(os.DirFS(dir), ".")
	}
	if strings.EqualFold(getEnv("PUZZLE_EMBEDDED", ""), "true") {
		log.Info().Strs("keys", assets.PuzzleKeys()).Msg("serving embedded sample puzzles")
		return puzzle.NewFSSource(assets.FS, assets.PuzzleDir)
	}
	base := getEnv("PUZZLE_BASE_URL", puzzle.DefaultBaseURL)
	log.Info().Str("base", base).Msg("fetching puzzles from remote store")
	return puzzle.NewClient(base, nil)
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
