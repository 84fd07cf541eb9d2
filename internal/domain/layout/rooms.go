package layout

import (
	"slices"
	"strings"
)

// RoomSpec describes how a kind of room is sized.
type RoomSpec struct {
	Keyword   string
	Weight    float64
	AspectMin float64
	AspectMax float64
}

// Aspect returns the width/height ratio used for the room: the midpoint of its range.
func (s RoomSpec) Aspect() float64 {
	return (s.AspectMin + s.AspectMax) / 2
}

// roomSpecs is scanned in order; the first keyword contained in the room
// name wins, so "Master Bedroom" resolves to master, not bedroom.
var roomSpecs = []RoomSpec{
	{Keyword: "living", Weight: 1.6, AspectMin: 1.4, AspectMax: 1.8},
	{Keyword: "master", Weight: 1.4, AspectMin: 1.2, AspectMax: 1.5},
	{Keyword: "bedroom", Weight: 1.2, AspectMin: 1.1, AspectMax: 1.4},
	{Keyword: "kitchen", Weight: 0.9, AspectMin: 1.2, AspectMax: 1.6},
	{Keyword: "dining", Weight: 0.8, AspectMin: 1.0, AspectMax: 1.4},
	{Keyword: "bathroom", Weight: 0.4, AspectMin: 1.0, AspectMax: 1.2},
	{Keyword: "guest", Weight: 1.0, AspectMin: 1.1, AspectMax: 1.3},
	{Keyword: "study", Weight: 0.7, AspectMin: 1.0, AspectMax: 1.3},
}

var defaultSpec = RoomSpec{Weight: 1.0, AspectMin: 1.0, AspectMax: 1.3}

// windowedKinds get windows without an explicit override.
var windowedKinds = []string{"living", "bedroom", "kitchen", "dining", "master", "guest"}

// Room programmes per band, in packing order.
var (
	compactRooms = []string{
		"Living Room",
		"Bedroom",
		"Kitchen",
		"Bathroom",
	}
	standardRooms = []string{
		"Living Room",
		"Master Bedroom",
		"Bedroom 2",
		"Kitchen",
		"Dining Area",
		"Bathroom",
	}
	largeRooms = []string{
		"Living Room",
		"Master Bedroom",
		"Bedroom 2",
		"Kitchen",
		"Dining Room",
		"Guest Room",
		"Bathroom 1",
		"Bathroom 2",
	}
)

// Band thresholds in square feet per floor.
const (
	compactBandLimit  = 1000
	standardBandLimit = 2500
)

// LookupSpec returns the sizing rule for a room name.
func LookupSpec(name string) RoomSpec {
	lower := strings.ToLower(name)
	for _, spec := range roomSpecs {
		if strings.Contains(lower, spec.Keyword) {
			return spec
		}
	}
	return defaultSpec
}

// RoomsFor returns the room programme for a floor of the given area.
func RoomsFor(areaPerFloor float64) []string {
	switch {
	case areaPerFloor < compactBandLimit:
		return slices.Clone(compactRooms)
	case areaPerFloor < standardBandLimit:
		return slices.Clone(standardRooms)
	default:
		return slices.Clone(largeRooms)
	}
}

func hasDefaultWindows(name string) bool {
	lower := strings.ToLower(name)
	return slices.ContainsFunc(windowedKinds, func(kind string) bool {
		return strings.Contains(lower, kind)
	})
}
