package daily

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedCodec(t *testing.T, now string) *Codec {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, now)
	require.NoError(t, err)
	return &Codec{Location: time.UTC, Now: func() time.Time { return ts }}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		want    Date
		wantErr bool
	}{
		{"plain", "20231003", Date{2023, 10, 3}, false},
		{"trimmed", " 20200101 ", Date{2020, 1, 1}, false},
		{"february 30 is accepted", "20230230", Date{2023, 2, 30}, false},
		{"day 31 in a 30-day month", "20230431", Date{2023, 4, 31}, false},
		{"too short", "2023103", Date{}, true},
		{"too long", "202310031", Date{}, true},
		{"empty", "", Date{}, true},
		{"non numeric", "2023ab01", Date{}, true},
		{"month zero", "20230001", Date{}, true},
		{"month thirteen", "20231301", Date{}, true},
		{"day zero", "20230100", Date{}, true},
		{"day thirty two", "20230132", Date{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.key)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	c := NewCodec(time.UTC)
	start := OldestPuzzleDate.Time(time.UTC)
	for i := 0; i < 3*366; i += 7 {
		day := start.AddDate(0, 0, i)
		d, err := Decode(c.Encode(day))
		require.NoError(t, err)
		assert.Equal(t, c.DateOf(day), d)
		assert.Equal(t, day, d.Time(time.UTC))
	}

	lenient := Date{2023, 2, 30}
	back, err := Decode(lenient.Key())
	require.NoError(t, err)
	assert.Equal(t, lenient, back)
	assert.Equal(t, "2023-02-30", back.String())
}

func TestEncodeUsesCodecZone(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	ts := time.Date(2023, 10, 3, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, "20231003", NewCodec(time.UTC).Encode(ts))
	assert.Equal(t, "20231004", NewCodec(tokyo).Encode(ts))
}

func TestTodayAndYesterday(t *testing.T) {
	c := fixedCodec(t, "2024-03-01T17:45:00Z")
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), c.Today())
	assert.Equal(t, "20240229", c.Encode(c.Yesterday()))
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Oct 3, 2023", Humanize("20231003"))
	assert.Equal(t, "Jan 1, 2020", Humanize("20200101"))
	assert.Equal(t, "Invalid DateTime", Humanize("20230230"))
	assert.Equal(t, "Invalid DateTime", Humanize("yesterday"))
}

func TestResolve(t *testing.T) {
	c := fixedCodec(t, "2024-03-01T09:00:00Z")

	key, err := c.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "20240301", key)

	key, err = c.Resolve("yesterday")
	require.NoError(t, err)
	assert.Equal(t, "20240229", key)

	key, err = c.Resolve("20231003")
	require.NoError(t, err)
	assert.Equal(t, "20231003", key)

	_, err = c.Resolve("tomorrow")
	assert.True(t, errors.Is(err, ErrInvalidKey))
}

func TestCheckSelectable(t *testing.T) {
	c := fixedCodec(t, "2024-03-01T09:00:00Z")

	assert.NoError(t, c.CheckSelectable(time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)))
	assert.NoError(t, c.CheckSelectable(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.ErrorIs(t, c.CheckSelectable(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)), ErrFutureDate)
	assert.ErrorIs(t, c.CheckSelectable(time.Date(2019, 12, 31, 0, 0, 0, 0, time.UTC)), ErrBeforeOldest)
	assert.Equal(t, "No puzzle available before 2020.01.01", ErrBeforeOldest.Error())
}

func TestDayParam(t *testing.T) {
	c := fixedCodec(t, "2024-03-01T09:00:00Z")

	assert.Equal(t, "", c.DayParam(c.Today()))
	assert.Equal(t, "yesterday", c.DayParam(c.Yesterday()))
	assert.Equal(t, "20240228", c.DayParam(time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)))
}

func TestMessage(t *testing.T) {
	c := fixedCodec(t, "2024-03-01T09:00:00Z")

	assert.Equal(t, "Puzzle for Today", c.Message(""))
	assert.Equal(t, "Puzzle for Oct 3, 2023", c.Message("20231003"))
	assert.Equal(t, "Puzzle for Feb 29, 2024", c.Message("yesterday"))
}

func TestRandom(t *testing.T) {
	c := fixedCodec(t, "2020-01-11T09:00:00Z")

	var seenMax int64
	first := c.Random(func(max int64) int64 { seenMax = max; return 0 })
	assert.Equal(t, "20200101", first)
	assert.Equal(t, int64(11), seenMax)

	last := c.Random(func(max int64) int64 { return max - 1 })
	assert.Equal(t, "20200111", last)

	for i := 0; i < 20; i++ {
		d, err := Decode(c.Random(nil))
		require.NoError(t, err)
		assert.NoError(t, c.CheckSelectable(d.Time(time.UTC)))
	}
}
