package life

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"sparse-life/pkg/core"
)

func TestStringRoundTrip(t *testing.T) {
	glider, _ := core.LookupPattern("glider")
	board := New(glider.At(core.Coord{Row: -3, Col: 7}))
	board.Step()

	restored, err := Parse([]byte(board.String()), DefaultMaxIterations)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !slices.Equal(board.Coordinates(), restored.Coordinates()) {
		t.Fatalf("coordinates changed across round trip: %v vs %v", board.Coordinates(), restored.Coordinates())
	}
	if board.IsFinished() != restored.IsFinished() {
		t.Fatal("terminal flag changed across round trip")
	}

	finished := New(core.NewCoordSet(core.Coord{}, core.Coord{Col: 1}, core.Coord{Row: 1}, core.Coord{Row: 1, Col: 1}).Slice())
	finished.Step()
	restored, err = Parse([]byte(finished.String()), DefaultMaxIterations)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !restored.IsFinished() || restored.Population() != 4 {
		t.Fatalf("finished block restored as finished=%v population=%d", restored.IsFinished(), restored.Population())
	}
}

func TestSnapshotEncoding(t *testing.T) {
	board := New([]core.Coord{{Row: 1, Col: 0}, {Row: 0, Col: 2}})
	data, err := json.Marshal(board)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"coordinates":[[0,2],[1,0]],"is_finished":false}`
	if string(data) != want {
		t.Fatalf("encoded %s, expected %s", data, want)
	}

	data, err = json.Marshal(New(nil).Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"coordinates":[],"is_finished":true}` {
		t.Fatalf("empty board encoded as %s", data)
	}
}

func TestParseTreatsListAsSet(t *testing.T) {
	board, err := Parse([]byte(`{"coordinates": [[1,1],[0,0],[1,1]], "is_finished": false}`), 10)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if board.Population() != 2 || board.MaxIterations() != 10 {
		t.Fatalf("population=%d max=%d", board.Population(), board.MaxIterations())
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	cases := map[string]string{
		"not json":          `nope`,
		"top-level list":    `[[0,0]]`,
		"missing":           `{"is_finished": false}`,
		"null":              `{"coordinates": null}`,
		"string":            `{"coordinates": "0,0"}`,
		"object":            `{"coordinates": {"0": 0}}`,
		"triple":            `{"coordinates": [[0,0,0]]}`,
		"single":            `{"coordinates": [[0]]}`,
		"float":             `{"coordinates": [[0.5,1]]}`,
		"quoted":            `{"coordinates": [["0",1]]}`,
		"nested":            `{"coordinates": [[[0],1]]}`,
		"bare int":          `{"coordinates": [1, 2]}`,
		"bad finished flag": `{"coordinates": [[0,0]], "is_finished": "yes"}`,
	}
	for name, payload := range cases {
		if _, err := Parse([]byte(payload), DefaultMaxIterations); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestDecodeCoordinates(t *testing.T) {
	got, err := DecodeCoordinates([]byte(` [[-1, 2], [3, -4]] `))
	if err != nil {
		t.Fatal(err)
	}
	want := []core.Coord{{Row: -1, Col: 2}, {Row: 3, Col: -4}}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v, expected %v", got, want)
	}

	got, err = DecodeCoordinates([]byte(`[]`))
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("empty list decoded as (%v, %v)", got, err)
	}
}
