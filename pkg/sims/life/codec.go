package life

import (
	"bytes"
	"encoding/json"
	"errors"

	"sparse-life/pkg/core"
)

// State is the sparse, serializable form of a Board. Coordinate order carries
// no meaning.
type State struct {
	Coordinates []core.Coord `json:"coordinates"`
	IsFinished  bool         `json:"is_finished"`
}

// UnmarshalJSON rejects payloads whose coordinates are missing or are not a
// list of [row, col] integer pairs.
func (s *State) UnmarshalJSON(data []byte) error {
	var raw struct {
		Coordinates json.RawMessage `json:"coordinates"`
		IsFinished  bool            `json:"is_finished"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return invalidInput("%v", err)
	}
	coords, err := DecodeCoordinates(raw.Coordinates)
	if err != nil {
		return err
	}
	s.Coordinates = coords
	s.IsFinished = raw.IsFinished
	return nil
}

// DecodeCoordinates validates an untyped JSON payload as a list of
// [row, col] integer pairs.
func DecodeCoordinates(data []byte) ([]core.Coord, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, invalidInput("coordinates must be a list of [row, col] pairs")
	}
	var coords []core.Coord
	if err := json.Unmarshal(data, &coords); err != nil {
		return nil, invalidInput("%v", err)
	}
	if coords == nil {
		coords = []core.Coord{}
	}
	return coords, nil
}

// Snapshot returns the board's sparse state with coordinates sorted row-major.
func (b *Board) Snapshot() State {
	return State{Coordinates: b.live.Slice(), IsFinished: b.finished}
}

// MarshalJSON encodes the board as its State.
func (b *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Snapshot())
}

// String returns the JSON form stored by hosts between requests.
func (b *Board) String() string {
	data, err := b.MarshalJSON()
	if err != nil {
		return ""
	}
	return string(data)
}

// FromState rebuilds a Board. The state's terminal flag overrides cfg.Finished.
func FromState(s State, cfg Config) (*Board, error) {
	cfg.Finished = s.IsFinished
	return NewWithConfig(s.Coordinates, cfg)
}

// Parse rebuilds a Board from its JSON form with the given step ceiling.
func Parse(data []byte, maxIterations int) (*Board, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return nil, err
		}
		return nil, invalidInput("%v", err)
	}
	return FromState(s, Config{MaxIterations: maxIterations})
}
