// internal/daily/daily.go
//
// Date codec for daily puzzles.
// Responsibilities:
//   - Encode calendar dates to the compact YYYYMMDD puzzle key and decode them back.
//   - Resolve the `day` parameter ("", "yesterday" or a key) to a concrete key.
//   - Guard selectable dates (no future dates, nothing before the oldest puzzle).
//   - Render keys for user-facing messages.
//
// Notes:
//   - The reference time zone is carried by Codec; nothing here reads a process-wide zone.
//   - Decode is deliberately lenient about day-of-month: "20230230" decodes to
//     {2023 2 30}. Keep it that way, stored keys in the wild depend on it.

package daily

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
)

const (
	keyLayout     = "20060102"
	humanLayout   = "Jan 2, 2006"
	pickerLayout  = "2006.01.02"
	invalidHuman  = "Invalid DateTime"
	yesterdayWord = "yesterday"
)

var (
	ErrInvalidKey   = errors.New("invalid date key")
	ErrFutureDate   = errors.New("Future date")
	ErrBeforeOldest = fmt.Errorf("No puzzle available before %s", OldestPuzzleDate.Format(pickerLayout))
)

// OldestPuzzleDate is the first day the static puzzle store has a document for.
var OldestPuzzleDate = Date{Year: 2020, Month: 1, Day: 1}

// Date is a decoded puzzle key. Fields are kept raw so that lenient keys
// survive a round trip unchanged.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Key renders the date as YYYYMMDD.
func (d Date) Key() string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day)
}

// String renders the date as YYYY-MM-DD, the value a date picker expects.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Format renders the date with a time layout.
func (d Date) Format(layout string) string {
	return d.Time(time.UTC).Format(layout)
}

// Time returns midnight of d in loc. Impossible days roll over the way time.Date does.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, loc)
}

// Decode parses an 8-digit key. Only the month (1–12) and day (1–31) ranges
// are checked.
func Decode(key string) (Date, error) {
	key = strings.TrimSpace(key)
	if len(key) != 8 {
		return Date{}, ErrInvalidKey
	}
	for i := 0; i < len(key); i++ {
		if key[i] < '0' || key[i] > '9' {
			return Date{}, ErrInvalidKey
		}
	}
	d := Date{Year: atoi(key[0:4]), Month: atoi(key[4:6]), Day: atoi(key[6:8])}
	if d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > 31 {
		return Date{}, ErrInvalidKey
	}
	return d, nil
}

// atoi converts a run of ASCII digits; callers have already checked them.
func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}

// Humanize renders a key as a medium date ("Oct 3, 2023"). Keys that are not
// real calendar dates render as "Invalid DateTime".
func Humanize(key string) string {
	t, err := time.Parse(keyLayout, key)
	if err != nil {
		return invalidHuman
	}
	return t.Format(humanLayout)
}

// Codec binds date arithmetic to a reference time zone and clock.
type Codec struct {
	Location *time.Location
	Now      func() time.Time
}

// NewCodec returns a Codec for loc using the wall clock.
func NewCodec(loc *time.Location) *Codec {
	return &Codec{Location: loc, Now: time.Now}
}

// Zone returns the reference time zone, UTC when unset.
func (c *Codec) Zone() *time.Location {
	return c.loc()
}

func (c *Codec) loc() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

func (c *Codec) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Encode renders t as a key in the codec's zone.
func (c *Codec) Encode(t time.Time) string {
	return t.In(c.loc()).Format(keyLayout)
}

// DateOf returns the calendar date of t in the codec's zone.
func (c *Codec) DateOf(t time.Time) Date {
	t = t.In(c.loc())
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// Today returns midnight today in the codec's zone.
func (c *Codec) Today() time.Time {
	return c.DateOf(c.now()).Time(c.loc())
}

// Yesterday returns midnight yesterday in the codec's zone.
func (c *Codec) Yesterday() time.Time {
	return c.Today().AddDate(0, 0, -1)
}

// Resolve maps a `day` parameter to a key: "" is today, "yesterday" is
// yesterday, anything else must decode.
func (c *Codec) Resolve(day string) (string, error) {
	switch strings.TrimSpace(day) {
	case "":
		return c.Encode(c.Today()), nil
	case yesterdayWord:
		return c.Encode(c.Yesterday()), nil
	}
	d, err := Decode(day)
	if err != nil {
		return "", fmt.Errorf("%q: %w", day, err)
	}
	return d.Key(), nil
}

// CheckSelectable rejects dates after today and before the oldest puzzle.
func (c *Codec) CheckSelectable(t time.Time) error {
	sel := c.DateOf(t).Time(c.loc())
	if sel.After(c.Today()) {
		return ErrFutureDate
	}
	if sel.Before(OldestPuzzleDate.Time(c.loc())) {
		return ErrBeforeOldest
	}
	return nil
}

// DayParam is the `day` value to record for a picked date: empty for today,
// "yesterday" for yesterday, otherwise the key.
func (c *Codec) DayParam(t time.Time) string {
	key := c.Encode(t)
	switch key {
	case c.Encode(c.Today()):
		return ""
	case c.Encode(c.Yesterday()):
		return yesterdayWord
	}
	return key
}

// Message is the banner shown after a puzzle selection.
func (c *Codec) Message(day string) string {
	if day == "" {
		return "Puzzle for Today"
	}
	key, err := c.Resolve(day)
	if err != nil {
		return "Puzzle for " + invalidHuman
	}
	return "Puzzle for " + Humanize(key)
}

// Random picks a key uniformly between the oldest puzzle and today, inclusive.
// n returns a value in [0, max); nil uses crypto/rand.
func (c *Codec) Random(n func(max int64) int64) string {
	oldest := OldestPuzzleDate.Time(time.UTC)
	today := c.DateOf(c.now()).Time(time.UTC)
	days := int64(today.Sub(oldest).Hours() / 24)
	if days < 0 {
		days = 0
	}
	if n == nil {
		n = cryptoInt
	}
	pick := oldest.AddDate(0, 0, int(n(days+1)))
	return pick.Format(keyLayout)
}

func cryptoInt(max int64) int64 {
	v, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		return 0
	}
	return v.Int64()
}
