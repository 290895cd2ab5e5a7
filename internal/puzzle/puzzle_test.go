package puzzle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `{"letters":"abcdefg","center":"a","wordlist":["face"," Facade "],"total":20}`

func TestDecode(t *testing.T) {
	p, err := Decode(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, "abcdefg", p.Letters)
	assert.Equal(t, "a", p.Center)
	assert.Equal(t, []string{"face", "facade"}, p.WordList)
	assert.Equal(t, 20, p.Total)
	assert.True(t, p.Contains("facade"))
	assert.False(t, p.Contains("zzzz"))
	assert.Equal(t, 2, p.WordCount())
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode(strings.NewReader(`<html>`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		p       Puzzle
		wantErr bool
	}{
		{"seven letters with center", Puzzle{Letters: "abcdefg", Center: "a", Total: 1}, false},
		{"six outer letters", Puzzle{Letters: "bcdefg", Center: "a", Total: 1}, false},
		{"center missing from seven", Puzzle{Letters: "bcdefgh", Center: "a", Total: 1}, true},
		{"repeated letter", Puzzle{Letters: "abcdefa", Center: "a", Total: 1}, true},
		{"too few", Puzzle{Letters: "abc", Center: "a", Total: 1}, true},
		{"long center", Puzzle{Letters: "abcdefg", Center: "ab", Total: 1}, true},
		{"zero total", Puzzle{Letters: "abcdefg", Center: "a", Total: 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPuzzle)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIdentityAndStorageKey(t *testing.T) {
	p := &Puzzle{Letters: "abcdefg", Center: "a"}
	assert.Equal(t, "abcdefga", p.Identity())
	assert.Equal(t, "guessed_abcdefg_a", p.StorageKey())
}

func TestContainsWithoutDecode(t *testing.T) {
	p := &Puzzle{WordList: []string{"face", "facade", "face"}}
	assert.True(t, p.Contains("face"))
	assert.False(t, p.Contains("fade"))
	assert.Equal(t, 2, p.WordCount())
}

func TestClientFetch(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		switch r.URL.Path {
		case "/puzzles/20231003.json":
			_, _ = w.Write([]byte(sampleDoc))
		case "/puzzles/20231004.json":
			_, _ = w.Write([]byte(`{"letters":`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	c := NewClient(ts.URL+"/puzzles", nil)
	assert.Equal(t, ts.URL+"/puzzles/20231003.json", c.URL("20231003"))

	p, err := c.Fetch(context.Background(), "20231003")
	require.NoError(t, err)
	assert.Equal(t, "/puzzles/20231003.json", gotPath)
	assert.Equal(t, 20, p.Total)

	_, err = c.Fetch(context.Background(), "20231004")
	assert.ErrorIs(t, err, ErrNoPuzzle)

	_, err = c.Fetch(context.Background(), "19990101")
	assert.ErrorIs(t, err, ErrNoPuzzle)
}

func TestFSSourceFetch(t *testing.T) {
	fsys := fstest.MapFS{
		"puzzles/20231003.json": {Data: []byte(sampleDoc)},
		"puzzles/20231005.json": {Data: []byte(`{"letters":"abc","center":"a","wordlist":[],"total":3}`)},
	}
	src := NewFSSource(fsys, "puzzles")

	p, err := src.Fetch(context.Background(), "20231003")
	require.NoError(t, err)
	assert.Equal(t, "a", p.Center)

	_, err = src.Fetch(context.Background(), "20231004")
	assert.ErrorIs(t, err, ErrNoPuzzle)

	_, err = src.Fetch(context.Background(), "20231005")
	assert.ErrorIs(t, err, ErrNoPuzzle)

	_, err = src.Fetch(context.Background(), "../secret")
	assert.ErrorIs(t, err, ErrNoPuzzle)
}
