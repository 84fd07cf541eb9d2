package layout

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Canvas geometry, in pixels.
const (
	CanvasWidth  = 760
	CanvasHeight = 460
	Margin       = 12
	Gutter       = 8

	availableWidth  = CanvasWidth - 2*Margin
	availableHeight = CanvasHeight - 2*Margin
)

// FootprintAspect is the width/height ratio of every floor footprint.
const FootprintAspect = 1.4

const (
	minRoomPx      = 12
	minFootprintPx = 40

	// Area clamps keep the geometry finite for degenerate inputs.
	minAreaSqFt = 1.0
	maxAreaSqFt = 1e9
)

// sizedRoom carries a room between sizing, packing and emission.
type sizedRoom struct {
	name     string
	area     float64
	widthFt  float64
	heightFt float64
	w, h     int
}

// row is a run of rooms laid out left to right.
type row struct {
	rooms  []int
	width  int
	height int
}

// Pack lays out the floors of a building of totalAreaSqFt square feet split
// evenly across floorCount floors. With singleImage only the ground floor is
// produced; the area per floor still uses the full floor count.
func Pack(totalAreaSqFt float64, floorCount int, singleImage bool, opts RoomOptions) []FloorPlan {
	if floorCount < 1 {
		floorCount = 1
	}
	areaPerFloor := clampArea(totalAreaSqFt / float64(floorCount))

	floors := floorCount
	if singleImage {
		floors = 1
	}

	plans := make([]FloorPlan, 0, floors)
	for i := 0; i < floors; i++ {
		plans = append(plans, packFloor(FloorLabel(i), areaPerFloor, opts))
	}
	return plans
}

// FloorLabel names the i-th floor counting from the ground.
func FloorLabel(i int) string {
	switch i {
	case 0:
		return "Ground Floor"
	case 1:
		return "First Floor"
	case 2:
		return "Second Floor"
	case 3:
		return "Third Floor"
	default:
		return fmt.Sprintf("Floor %d", i)
	}
}

func clampArea(a float64) float64 {
	// NaN fails both comparisons and lands on the minimum.
	if !(a >= minAreaSqFt) {
		return minAreaSqFt
	}
	if a > maxAreaSqFt {
		return maxAreaSqFt
	}
	return a
}

// footprint returns the floor size in feet and the pixels-per-foot scale
// that fits it into the available canvas.
func footprint(areaPerFloor float64) (widthFt, heightFt, ppf float64) {
	widthFt = math.Sqrt(areaPerFloor * FootprintAspect)
	heightFt = areaPerFloor / widthFt
	ppf = math.Min(availableWidth/widthFt, availableHeight/heightFt)
	return widthFt, heightFt, ppf
}

func packFloor(label string, areaPerFloor float64, opts RoomOptions) FloorPlan {
	widthFt, _, ppf := footprint(areaPerFloor)

	limit := int(math.Floor(widthFt * ppf))
	if limit < minFootprintPx {
		limit = availableWidth
	}

	rooms := sizeRooms(RoomsFor(areaPerFloor), areaPerFloor, ppf)
	rows := packRows(rooms, limit)
	scale := fitScale(rows, availableHeight)

	boxes := make([]RoomBox, 0, len(rooms))
	y := Margin
	for _, r := range rows {
		x := Margin + (availableWidth-r.width)/2
		for _, idx := range r.rooms {
			room := rooms[idx]
			box := RoomBox{
				Name: room.name,
				Area: math.Round(room.area*10) / 10,
				Dims: fmt.Sprintf("%.0f' x %.0f'", room.widthFt, room.heightFt),
				X:    x,
				Y:    y,
				W:    room.w,
				H:    scalePx(room.h, scale),
			}
			opt, matched := opts.Match(room.name)
			box.Doors = placeDoors(box, ppf, opt, matched)
			box.Windows = placeWindows(box, ppf, opt, matched)
			boxes = append(boxes, box)

			x += room.w + Gutter
		}
		y += scalePx(r.height, scale) + Gutter
	}

	return FloorPlan{
		Floor:  label,
		Canvas: Canvas{W: CanvasWidth, H: CanvasHeight},
		Rooms:  boxes,
	}
}

// sizeRooms splits the floor area by weight and converts each share into
// pixel dimensions at the room's aspect ratio.
func sizeRooms(names []string, areaPerFloor, ppf float64) []sizedRoom {
	weights := make([]float64, len(names))
	specs := make([]RoomSpec, len(names))
	for i, name := range names {
		specs[i] = LookupSpec(name)
		weights[i] = specs[i].Weight
	}
	total := floats.Sum(weights)

	rooms := make([]sizedRoom, len(names))
	for i, name := range names {
		area := areaPerFloor * weights[i] / total
		wFt := math.Sqrt(area * specs[i].Aspect())
		hFt := area / wFt

		rooms[i] = sizedRoom{
			name:     name,
			area:     area,
			widthFt:  wFt,
			heightFt: hFt,
			w:        min(max(minRoomPx, int(math.Floor(wFt*ppf))), availableWidth),
			h:        max(minRoomPx, int(math.Floor(hFt*ppf))),
		}
	}
	return rooms
}

// packRows fills rows greedily in room order. A room that does not fit the
// current row opens a new one; a row always accepts its first room.
func packRows(rooms []sizedRoom, limit int) []row {
	var rows []row
	var cur row
	for i, r := range rooms {
		if len(cur.rooms) > 0 && cur.width+Gutter+r.w > limit {
			rows = append(rows, cur)
			cur = row{}
		}
		if len(cur.rooms) > 0 {
			cur.width += Gutter
		}
		cur.width += r.w
		cur.height = max(cur.height, r.h)
		cur.rooms = append(cur.rooms, i)
	}
	if len(cur.rooms) > 0 {
		rows = append(rows, cur)
	}
	return rows
}

// fitScale returns the vertical factor applied to room heights so that the
// stacked rows and their gutters fit into avail. Gutters are not scaled.
func fitScale(rows []row, avail int) float64 {
	if len(rows) == 0 {
		return 1
	}
	heights := make([]float64, len(rows))
	for i, r := range rows {
		heights[i] = float64(r.height)
	}
	gutters := float64(Gutter * (len(rows) - 1))
	sum := floats.Sum(heights)
	if sum+gutters <= float64(avail) {
		return 1
	}
	return (float64(avail) - gutters) / sum
}

func scalePx(px int, scale float64) int {
	if scale >= 1 {
		return px
	}
	return max(1, int(math.Floor(float64(px)*scale)))
}
