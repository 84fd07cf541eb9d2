package layout

import "math"

const (
	doorLengthFt  = 3
	doorMinLength = 12
	doorDepthFt   = 7
	doorMinDepth  = 8
	maxDoors      = 2

	windowLengthFt   = 4
	windowMinLength  = 12
	windowDepth      = 6
	windowMinSpacing = 4
	maxWindows       = 12

	// Rooms wider than this get two default windows.
	wideRoomPx = 220
)

// placeDoors puts the first door on the room's default or overridden wall.
// Every room keeps that door whatever count is requested; a count above one
// adds a second door on the opposite wall.
func placeDoors(box RoomBox, ppf float64, opt RoomOption, matched bool) []Door {
	side := SideRight
	if box.W > box.H {
		side = SideBottom
	}
	count := 1

	if matched {
		if opt.DoorSide != "" {
			if s, err := ParseSide(string(opt.DoorSide)); err == nil {
				side = s
			}
		}
		if opt.Doors != nil && *opt.Doors > 1 {
			count = maxDoors
		}
	}

	doors := make([]Door, 0, count)
	for i := 0; i < count; i++ {
		s := side
		if i == 1 {
			s = side.Opposite()
		}
		doors = append(doors, doorOn(box, s, ppf))
	}
	return doors
}

// doorOn centres a door on the given wall, inside the room rectangle. The
// door is 3ft along the wall and 7ft across it, clamped to the room.
func doorOn(box RoomBox, side Side, ppf float64) Door {
	wall, cross := wallLengths(box, side)

	length := min(max(doorMinLength, int(math.Round(doorLengthFt*ppf))), wall)
	depth := min(max(doorMinDepth, int(math.Round(doorDepthFt*ppf))), cross)
	offset := (wall - length) / 2

	x, y, w, h := openingRect(box, side, offset, length, depth)
	return Door{X: x, Y: y, W: w, H: h, Side: side}
}

// placeWindows spreads windows evenly along one wall. An explicit count is
// kept whenever the wall can hold it with the minimum spacing; on a wall too
// short for that the count drops to the most that fit, so windows never
// leave the room.
func placeWindows(box RoomBox, ppf float64, opt RoomOption, matched bool) []Window {
	side := SideTop
	count := 0
	if hasDefaultWindows(box.Name) {
		count = 1
		if box.W > wideRoomPx {
			count = 2
		}
	}

	if matched && opt.Windows != nil {
		count = min(max(*opt.Windows, 0), maxWindows)
		if opt.WindowSide != "" {
			if s, err := ParseSide(string(opt.WindowSide)); err == nil {
				side = s
			}
		}
	}

	wall, cross := wallLengths(box, side)
	length := max(windowMinLength, int(math.Round(windowLengthFt*ppf)))
	for count > 0 {
		fit := (wall - windowMinSpacing*(count+1)) / count
		if fit >= 1 {
			length = min(length, fit)
			break
		}
		count--
	}

	windows := make([]Window, 0, count)
	if count == 0 {
		return windows
	}

	spacing := max(windowMinSpacing, (wall-count*length)/(count+1))
	depth := min(windowDepth, cross)
	offset := spacing
	for i := 0; i < count; i++ {
		x, y, w, h := openingRect(box, side, offset, length, depth)
		windows = append(windows, Window{X: x, Y: y, W: w, H: h, Side: side})
		offset += length + spacing
	}
	return windows
}

// wallLengths returns the length of the wall on side and the room extent
// across it.
func wallLengths(box RoomBox, side Side) (wall, cross int) {
	if side.Horizontal() {
		return box.W, box.H
	}
	return box.H, box.W
}

// openingRect converts a position along a wall into a canvas rectangle
// lying against that wall inside the room.
func openingRect(box RoomBox, side Side, offset, length, depth int) (x, y, w, h int) {
	switch side {
	case SideTop:
		return box.X + offset, box.Y, length, depth
	case SideBottom:
		return box.X + offset, box.Y + box.H - depth, length, depth
	case SideLeft:
		return box.X, box.Y + offset, depth, length
	default:
		return box.X + box.W - depth, box.Y + offset, depth, length
	}
}
