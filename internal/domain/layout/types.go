package layout

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSide is returned when a wall side is not one of top, bottom, left or right.
var ErrInvalidSide = errors.New("invalid wall side")

// Side names the wall of a room an opening sits on.
type Side string

const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// ParseSide normalises s into a Side.
func ParseSide(s string) (Side, error) {
	switch side := Side(strings.ToLower(strings.TrimSpace(s))); side {
	case SideTop, SideBottom, SideLeft, SideRight:
		return side, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSide, s)
	}
}

// Opposite returns the facing wall.
func (s Side) Opposite() Side {
	switch s {
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	case SideLeft:
		return SideRight
	default:
		return SideLeft
	}
}

// Horizontal reports whether the wall runs along the x axis.
func (s Side) Horizontal() bool {
	return s == SideTop || s == SideBottom
}

// Canvas is the pixel size of a rendered floor.
type Canvas struct {
	W int `json:"w"`
	H int `json:"h"`
}

// Door is an opening drawn on a room wall, in canvas pixels.
type Door struct {
	X    int  `json:"x"`
	Y    int  `json:"y"`
	W    int  `json:"w"`
	H    int  `json:"h"`
	Side Side `json:"side"`
}

// Window is a glazed opening drawn on a room wall, in canvas pixels.
type Window struct {
	X    int  `json:"x"`
	Y    int  `json:"y"`
	W    int  `json:"w"`
	H    int  `json:"h"`
	Side Side `json:"side"`
}

// RoomBox is one placed room.
type RoomBox struct {
	Name    string   `json:"name"`
	Area    float64  `json:"area"`
	Dims    string   `json:"dims"`
	X       int      `json:"x"`
	Y       int      `json:"y"`
	W       int      `json:"w"`
	H       int      `json:"h"`
	Doors   []Door   `json:"doors"`
	Windows []Window `json:"windows"`
}

// FloorPlan is the packed layout of a single floor.
type FloorPlan struct {
	Floor  string    `json:"floor"`
	Canvas Canvas    `json:"canvas"`
	Rooms  []RoomBox `json:"rooms"`
}

// RoomOption overrides door and window placement for matching rooms.
// Nil counts and empty sides fall back to the defaults.
type RoomOption struct {
	DoorSide Side `json:"door_side,omitempty"`

	// Doors above 1 add a door on the wall opposite DoorSide. The first
	// door is always placed, so 0 and 1 behave the same.
	Doors *int `json:"doors,omitempty"`

	// Windows is capped at 12 and at what the wall holds with 4px spacing.
	Windows *int `json:"windows,omitempty"`

	WindowSide Side `json:"window_side,omitempty"`
}

// RoomOptionEntry binds an option to a room-name substring.
type RoomOptionEntry struct {
	Key    string
	Option RoomOption
}

// RoomOptions is an ordered set of overrides. It decodes from a JSON object
// and keeps the document order, which decides which key wins when several
// match the same room.
type RoomOptions []RoomOptionEntry

// Match returns the first option whose lower-cased key is a substring of the
// lower-cased room name. Empty keys never match.
func (o RoomOptions) Match(name string) (RoomOption, bool) {
	lower := strings.ToLower(name)
	for _, e := range o {
		key := strings.ToLower(strings.TrimSpace(e.Key))
		if key == "" {
			continue
		}
		if strings.Contains(lower, key) {
			return e.Option, true
		}
	}
	return RoomOption{}, false
}

// Validate checks sides and counts of every entry.
func (o RoomOptions) Validate() error {
	for _, e := range o {
		if e.Option.DoorSide != "" {
			if _, err := ParseSide(string(e.Option.DoorSide)); err != nil {
				return fmt.Errorf("room_options[%s].door_side: %w", e.Key, err)
			}
		}
		if e.Option.WindowSide != "" {
			if _, err := ParseSide(string(e.Option.WindowSide)); err != nil {
				return fmt.Errorf("room_options[%s].window_side: %w", e.Key, err)
			}
		}
		if e.Option.Doors != nil && (*e.Option.Doors < 0 || *e.Option.Doors > maxDoors) {
			return fmt.Errorf("room_options[%s].doors must be between 0 and %d", e.Key, maxDoors)
		}
		if e.Option.Windows != nil && (*e.Option.Windows < 0 || *e.Option.Windows > maxWindows) {
			return fmt.Errorf("room_options[%s].windows must be between 0 and %d", e.Key, maxWindows)
		}
	}
	return nil
}

// UnmarshalJSON decodes a JSON object into entries in document order.
func (o *RoomOptions) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("room_options: %w", err)
	}
	if tok == nil {
		*o = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("room_options: expected a JSON object")
	}

	var entries RoomOptions
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("room_options: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return errors.New("room_options: expected a string key")
		}

		var opt RoomOption
		if err := dec.Decode(&opt); err != nil {
			return fmt.Errorf("room_options[%s]: %w", key, err)
		}
		entries = append(entries, RoomOptionEntry{Key: key, Option: opt})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("room_options: %w", err)
	}

	*o = entries
	return nil
}

// MarshalJSON encodes the entries as a JSON object in order.
func (o RoomOptions) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Option)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
